package engine

import (
	"errors"
	"testing"
)

func TestGraphValidation(t *testing.T) {
	nodes, edges, floors := testTables()

	t.Run("ValidMap", func(t *testing.T) {
		g, err := NewGraphStore(nodes, edges, floors)
		if err != nil {
			t.Fatalf("valid map rejected: %v", err)
		}
		if g.Len() != len(nodes) {
			t.Errorf("expected %d nodes, got %d", len(nodes), g.Len())
		}
	})

	t.Run("DanglingEdge", func(t *testing.T) {
		bad := append([]Edge{}, edges...)
		bad = append(bad, Edge{Source: "LOBBY", Target: "GHOST", Weight: 1})
		_, err := NewGraphStore(nodes, bad, floors)
		if !errors.Is(err, ErrInvalidGraph) {
			t.Fatalf("expected ErrInvalidGraph, got %v", err)
		}
	})

	t.Run("DuplicateNodeID", func(t *testing.T) {
		dup := append([]Node{}, nodes...)
		dup = append(dup, nodes[0])
		_, err := NewGraphStore(dup, edges, floors)
		if !errors.Is(err, ErrInvalidGraph) {
			t.Fatalf("expected ErrInvalidGraph, got %v", err)
		}
	})

	t.Run("UnknownFloor", func(t *testing.T) {
		bad := append([]Node{}, nodes...)
		bad = append(bad, Node{ID: "X1", Name: "X", Floor: "99", Kind: KindRoom})
		_, err := NewGraphStore(bad, edges, floors)
		if !errors.Is(err, ErrInvalidGraph) {
			t.Fatalf("expected ErrInvalidGraph, got %v", err)
		}
	})
}

func TestAdjacencyIsBidirectional(t *testing.T) {
	nodes, edges, floors := testTables()
	g, err := NewGraphStore(nodes, edges, floors)
	if err != nil {
		t.Fatal(err)
	}

	find := func(id, target string) (float64, bool) {
		for _, nb := range g.Neighbors(id) {
			if nb.ID == target {
				return nb.Weight, true
			}
		}
		return 0, false
	}

	wOut, okOut := find("ENTRANCE", "LOBBY")
	wIn, okIn := find("LOBBY", "ENTRANCE")
	if !okOut || !okIn {
		t.Fatal("edge must appear in both adjacency lists")
	}
	if wOut != 5 || wIn != 5 {
		t.Errorf("weights differ across directions: %v vs %v", wOut, wIn)
	}

	if nbs := g.Neighbors("ISLAND"); len(nbs) != 0 {
		t.Errorf("ISLAND should have no neighbors, got %v", nbs)
	}
}

func TestScanOrderIsAscendingByID(t *testing.T) {
	nodes, edges, floors := testTables()
	g, err := NewGraphStore(nodes, edges, floors)
	if err != nil {
		t.Fatal(err)
	}

	var prev string
	g.Scan(func(n *Node) bool {
		if prev != "" && n.ID <= prev {
			t.Errorf("scan order broken: %q after %q", n.ID, prev)
		}
		prev = n.ID
		return true
	})
}

func TestFloorsOrderedByLevel(t *testing.T) {
	nodes, edges, floors := testTables()
	g, err := NewGraphStore(nodes, edges, floors)
	if err != nil {
		t.Fatal(err)
	}

	fs := g.Floors()
	for i := 1; i < len(fs); i++ {
		if fs[i].Level < fs[i-1].Level {
			t.Errorf("floors out of order: %v", fs)
		}
	}
	if _, ok := g.Floor("1"); !ok {
		t.Error("floor lookup failed")
	}
}
