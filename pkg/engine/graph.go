package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tidwall/btree"
)

// ErrInvalidGraph marks map data that cannot be served: duplicate node ids,
// dangling floor references, or edges pointing at unknown nodes. It is fatal
// at construction time; a GraphStore is never built from a broken map.
var ErrInvalidGraph = errors.New("invalid graph")

// Neighbor is one adjacency entry: a reachable node id and the edge weight.
type Neighbor struct {
	ID     string
	Weight float64
}

// GraphStore holds the immutable wayfinding graph: the node table, the
// undirected weighted adjacency built from the edge table, and the floor
// plans. It is built once at startup and only read afterwards, so all
// methods are safe for concurrent use without locking.
type GraphStore struct {
	nodes  *btree.BTreeG[*Node]
	adj    map[string][]Neighbor
	floors map[string]*FloorPlan
	count  int
}

func nodeLess(a, b *Node) bool { return a.ID < b.ID }

// NewGraphStore validates the map tables and builds the store.
// Every edge endpoint must reference an existing node and every node must
// reference an existing floor; violations return ErrInvalidGraph wrapped
// with detail. No mutation API is exposed after construction.
func NewGraphStore(nodes []Node, edges []Edge, floors []FloorPlan) (*GraphStore, error) {
	g := &GraphStore{
		nodes:  btree.NewBTreeG(nodeLess),
		adj:    make(map[string][]Neighbor, len(nodes)),
		floors: make(map[string]*FloorPlan, len(floors)),
	}

	for i := range floors {
		f := floors[i]
		if _, dup := g.floors[f.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate floor id %q", ErrInvalidGraph, f.ID)
		}
		g.floors[f.ID] = &f
	}

	for i := range nodes {
		n := nodes[i]
		if _, dup := g.nodes.Get(&Node{ID: n.ID}); dup {
			return nil, fmt.Errorf("%w: duplicate node id %q", ErrInvalidGraph, n.ID)
		}
		if _, ok := g.floors[n.Floor]; !ok {
			return nil, fmt.Errorf("%w: node %q references unknown floor %q", ErrInvalidGraph, n.ID, n.Floor)
		}
		g.nodes.Set(&n)
	}
	g.count = len(nodes)

	// Edges are bidirectional: store both directions in the adjacency so
	// the planner never has to special-case direction.
	for _, e := range edges {
		if _, ok := g.nodes.Get(&Node{ID: e.Source}); !ok {
			return nil, fmt.Errorf("%w: edge references unknown node %q", ErrInvalidGraph, e.Source)
		}
		if _, ok := g.nodes.Get(&Node{ID: e.Target}); !ok {
			return nil, fmt.Errorf("%w: edge references unknown node %q", ErrInvalidGraph, e.Target)
		}
		g.adj[e.Source] = append(g.adj[e.Source], Neighbor{ID: e.Target, Weight: e.Weight})
		g.adj[e.Target] = append(g.adj[e.Target], Neighbor{ID: e.Source, Weight: e.Weight})
	}

	return g, nil
}

// Get looks up a node by id.
func (g *GraphStore) Get(id string) (*Node, bool) {
	return g.nodes.Get(&Node{ID: id})
}

// Scan visits every node in ascending id order. Stops early if fn returns
// false. This ordering is load-bearing: the resolver's tie-breaking keeps
// the first maximum it encounters, so the winner among equal scores is
// always the lowest node id.
func (g *GraphStore) Scan(fn func(*Node) bool) {
	g.nodes.Scan(fn)
}

// Neighbors returns the adjacency list for a node id. The returned slice is
// shared and must not be modified.
func (g *GraphStore) Neighbors(id string) []Neighbor {
	return g.adj[id]
}

// Len reports the number of nodes.
func (g *GraphStore) Len() int {
	return g.count
}

// Floor looks up a floor plan by id.
func (g *GraphStore) Floor(id string) (*FloorPlan, bool) {
	f, ok := g.floors[id]
	return f, ok
}

// Floors returns all floor plans ordered by level.
func (g *GraphStore) Floors() []*FloorPlan {
	out := make([]*FloorPlan, 0, len(g.floors))
	for _, f := range g.floors {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out
}
