package engine

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func mkNode(id, floor string, kind Kind, x, y float64) *Node {
	return &Node{ID: id, Name: id, Floor: floor, Kind: kind, Position: r2.Vec{X: x, Y: y}}
}

func TestPlanSegmentsSingleFloor(t *testing.T) {
	path := &Path{Nodes: []*Node{
		mkNode("A", "1", KindRoom, 0, 0),
		mkNode("B", "1", KindCorridor, 30, 0),
		mkNode("C", "1", KindRoom, 30, 40),
	}}

	plan := PlanSegments(path, DefaultTuning())
	if len(plan.Segments) != 1 {
		t.Fatalf("segments = %d, want 1", len(plan.Segments))
	}
	if len(plan.Transitions) != 0 {
		t.Fatalf("transitions = %d, want 0", len(plan.Transitions))
	}

	seg := plan.Segments[0]
	if seg.Floor != "1" || len(seg.Nodes) != 3 {
		t.Fatalf("segment = %+v", seg)
	}
	if seg.Length != 70 {
		t.Errorf("length = %v, want 70", seg.Length)
	}
	// The 90-degree bend at B is the single turn.
	if len(seg.Turns) != 1 {
		t.Fatalf("turns = %d, want 1", len(seg.Turns))
	}
	if seg.Turns[0].Point != (r2.Vec{X: 30, Y: 0}) {
		t.Errorf("turn point = %v", seg.Turns[0].Point)
	}
	if seg.Turns[0].Next != (r2.Vec{X: 30, Y: 40}) {
		t.Errorf("turn next = %v", seg.Turns[0].Next)
	}
}

func TestPlanSegmentsStraightLineHasNoTurns(t *testing.T) {
	path := &Path{Nodes: []*Node{
		mkNode("A", "1", KindRoom, 0, 0),
		mkNode("B", "1", KindCorridor, 10, 10),
		mkNode("C", "1", KindCorridor, 20, 20),
		mkNode("D", "1", KindRoom, 35, 35),
	}}

	plan := PlanSegments(path, DefaultTuning())
	if turns := plan.Segments[0].Turns; len(turns) != 0 {
		t.Errorf("collinear path produced %d turns", len(turns))
	}
}

func TestPlanSegmentsShallowBendBelowThreshold(t *testing.T) {
	// Roughly an 11-degree bend, under the default 25-degree cutoff.
	path := &Path{Nodes: []*Node{
		mkNode("A", "1", KindRoom, 0, 0),
		mkNode("B", "1", KindCorridor, 50, 0),
		mkNode("C", "1", KindRoom, 100, 10),
	}}

	plan := PlanSegments(path, DefaultTuning())
	if turns := plan.Segments[0].Turns; len(turns) != 0 {
		t.Errorf("shallow bend counted as a turn: %v", turns)
	}
}

func TestPlanSegmentsFloorChange(t *testing.T) {
	path := &Path{Nodes: []*Node{
		mkNode("A", "1", KindEntrance, 0, 0),
		mkNode("LIFT1", "1", KindLift, 40, 0),
		mkNode("LIFT2", "2", KindLift, 40, 0),
		mkNode("B", "2", KindRoom, 40, 30),
	}}

	plan := PlanSegments(path, DefaultTuning())
	if len(plan.Segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(plan.Segments))
	}
	if len(plan.Transitions) != 1 {
		t.Fatalf("transitions = %d, want 1", len(plan.Transitions))
	}

	// The boundary lift closes the first segment; the second starts fresh on
	// the new floor with no shared node.
	first, second := plan.Segments[0], plan.Segments[1]
	if last := first.Nodes[len(first.Nodes)-1]; last.ID != "LIFT1" {
		t.Errorf("first segment ends at %s, want LIFT1", last.ID)
	}
	if second.Nodes[0].ID != "LIFT2" {
		t.Errorf("second segment starts at %s, want LIFT2", second.Nodes[0].ID)
	}

	tr := plan.Transitions[0]
	if tr.Cue != CueLift {
		t.Errorf("cue = %s, want lift", tr.Cue)
	}
	if tr.Via.ID != "LIFT1" {
		t.Errorf("via = %s, want LIFT1", tr.Via.ID)
	}
	if tr.ToFloor != "2" {
		t.Errorf("to_floor = %s, want 2", tr.ToFloor)
	}

	// Length covers within-floor travel only, never the vertical hop.
	if first.Length != 40 {
		t.Errorf("first length = %v, want 40", first.Length)
	}
	if second.Length != 30 {
		t.Errorf("second length = %v, want 30", second.Length)
	}
}

func TestPlanSegmentsStairsAndUnknownCues(t *testing.T) {
	path := &Path{Nodes: []*Node{
		mkNode("A", "1", KindRoom, 0, 0),
		mkNode("ST1", "1", KindStairs, 20, 0),
		mkNode("ST2", "2", KindStairs, 20, 0),
		mkNode("ODD", "2", KindCorridor, 40, 0),
		mkNode("B", "3", KindRoom, 40, 20),
	}}

	plan := PlanSegments(path, DefaultTuning())
	if len(plan.Transitions) != 2 {
		t.Fatalf("transitions = %d, want 2", len(plan.Transitions))
	}
	if plan.Transitions[0].Cue != CueStairs {
		t.Errorf("first cue = %s, want stairs", plan.Transitions[0].Cue)
	}
	// A floor change through a non-connector node still produces a
	// transition, just without a recognizable cue.
	if plan.Transitions[1].Cue != CueUnknown {
		t.Errorf("second cue = %s, want unknown", plan.Transitions[1].Cue)
	}
}

// Concatenating the segments' node lists must reproduce the path exactly,
// in order, with nothing duplicated or dropped.
func TestPlanSegmentsConcatenationInvariant(t *testing.T) {
	g := newTestGraph(t)
	path := g.ShortestPath("ENTRANCE", "LAB")
	if path == nil {
		t.Fatal("expected a path")
	}

	plan := PlanSegments(path, DefaultTuning())

	var flat []*Node
	for _, seg := range plan.Segments {
		flat = append(flat, seg.Nodes...)
	}
	if len(flat) != len(path.Nodes) {
		t.Fatalf("flattened %d nodes, path has %d", len(flat), len(path.Nodes))
	}
	for i := range flat {
		if flat[i].ID != path.Nodes[i].ID {
			t.Fatalf("node %d: %s != %s", i, flat[i].ID, path.Nodes[i].ID)
		}
	}
	if len(plan.Transitions) != len(plan.Segments)-1 {
		t.Errorf("%d segments but %d transitions", len(plan.Segments), len(plan.Transitions))
	}
}

func TestPlanSegmentsEmptyPath(t *testing.T) {
	for _, path := range []*Path{nil, {}} {
		plan := PlanSegments(path, DefaultTuning())
		if len(plan.Segments) != 0 || len(plan.Transitions) != 0 {
			t.Errorf("empty path produced %+v", plan)
		}
	}
}

func TestPlanSegmentsCoincidentPointsSkipped(t *testing.T) {
	path := &Path{Nodes: []*Node{
		mkNode("A", "1", KindRoom, 0, 0),
		mkNode("B", "1", KindCorridor, 0, 0),
		mkNode("C", "1", KindRoom, 10, 0),
	}}

	plan := PlanSegments(path, DefaultTuning())
	if turns := plan.Segments[0].Turns; len(turns) != 0 {
		t.Errorf("zero-length hop produced turns: %v", turns)
	}
}
