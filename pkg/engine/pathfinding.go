package engine

import "container/heap"

// Path is the full ordered route between a start and destination node,
// inclusive of both endpoints. A one-node path (start == destination) is
// legal and has zero cost.
type Path struct {
	Nodes []*Node `json:"nodes"`
	Cost  float64 `json:"cost"`
}

// frontierItem is one entry in the Dijkstra priority queue.
type frontierItem struct {
	id   string
	dist float64
}

// frontier is a min-heap over tentative distances.
type frontier []frontierItem

func (f frontier) Len() int           { return len(f) }
func (f frontier) Less(i, j int) bool { return f[i].dist < f[j].dist }
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)        { *f = append(*f, x.(frontierItem)) }
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

// ShortestPath runs Dijkstra from startID over the undirected weighted
// adjacency and returns the minimum-cost path to endID, or nil when endID
// is unreachable (disconnected component) or either id is unknown.
//
// Precondition: edge weights are non-negative. Map validation guarantees
// this at load time; the search does not re-check.
func (g *GraphStore) ShortestPath(startID, endID string) *Path {
	start, ok := g.Get(startID)
	if !ok {
		return nil
	}
	if _, ok := g.Get(endID); !ok {
		return nil
	}
	if startID == endID {
		return &Path{Nodes: []*Node{start}}
	}

	dist := map[string]float64{startID: 0}
	prev := map[string]string{}
	done := map[string]bool{}

	fr := &frontier{{id: startID}}
	for fr.Len() > 0 {
		cur := heap.Pop(fr).(frontierItem)
		if done[cur.id] {
			continue
		}
		done[cur.id] = true

		// The first time the destination is popped its distance is final,
		// nothing further can improve it.
		if cur.id == endID {
			break
		}

		for _, nb := range g.Neighbors(cur.id) {
			alt := cur.dist + nb.Weight
			if d, seen := dist[nb.ID]; !seen || alt < d {
				dist[nb.ID] = alt
				prev[nb.ID] = cur.id
				heap.Push(fr, frontierItem{id: nb.ID, dist: alt})
			}
		}
	}

	// Walk predecessors backwards from the destination. If the chain does
	// not reach the start the destination was never settled.
	var ids []string
	for cur := endID; ; {
		ids = append(ids, cur)
		p, ok := prev[cur]
		if !ok {
			break
		}
		cur = p
	}
	if ids[len(ids)-1] != startID {
		return nil
	}

	nodes := make([]*Node, len(ids))
	for i, id := range ids {
		n, _ := g.Get(id)
		nodes[len(ids)-1-i] = n
	}
	return &Path{Nodes: nodes, Cost: dist[endID]}
}
