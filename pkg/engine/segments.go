package engine

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Segment is a maximal run of consecutive path nodes on the same floor.
// Adjacent segments never share a node: the outgoing node of the old floor
// closes one segment and the incoming node of the new floor opens the next,
// because the transition itself (stairs/lift) is a discrete event, not a
// point both floors share.
type Segment struct {
	Floor  string  `json:"floor"`
	Nodes  []*Node `json:"nodes"`
	Length float64 `json:"length"`
	Turns  []Turn  `json:"turns,omitempty"`
}

// Turn marks an interior point of a segment where the walking direction
// changes sharply. Next carries the following point so the renderer can
// orient the turn arrow.
type Turn struct {
	Point r2.Vec `json:"point"`
	Next  r2.Vec `json:"next"`
}

// CueKind names the guidance overlay shown while crossing floors.
type CueKind string

const (
	CueStairs  CueKind = "stairs"
	CueLift    CueKind = "lift"
	CueUnknown CueKind = "unknown"
)

// Transition is the floor-change event between two consecutive segments.
// Via is the last node of the outgoing segment, the one whose Kind selects
// the cue.
type Transition struct {
	Cue     CueKind `json:"cue"`
	Via     *Node   `json:"via"`
	ToFloor string  `json:"to_floor"`
}

// RoutePlan is a path decomposed for presentation: per-floor segments plus
// the transition cue between each consecutive pair. There are always
// exactly len(Segments)-1 transitions.
type RoutePlan struct {
	Segments    []*Segment   `json:"segments"`
	Transitions []Transition `json:"transitions,omitempty"`
}

// cueFor maps a boundary node's kind to its guidance cue. Kind is a closed
// set, so anything that is not a vertical connector falls to CueUnknown.
func cueFor(k Kind) CueKind {
	switch k {
	case KindStairs:
		return CueStairs
	case KindLift:
		return CueLift
	default:
		return CueUnknown
	}
}

// PlanSegments partitions a path into same-floor segments, computes each
// segment's traversal length and turns, and derives the transition cues.
// Concatenating the segments' node lists reproduces the path exactly.
func PlanSegments(path *Path, tuning Tuning) *RoutePlan {
	plan := &RoutePlan{}
	if path == nil || len(path.Nodes) == 0 {
		return plan
	}

	current := &Segment{Floor: path.Nodes[0].Floor, Nodes: []*Node{path.Nodes[0]}}
	for _, n := range path.Nodes[1:] {
		if n.Floor != current.Floor {
			plan.Segments = append(plan.Segments, current)
			current = &Segment{Floor: n.Floor}
		}
		current.Nodes = append(current.Nodes, n)
	}
	plan.Segments = append(plan.Segments, current)

	for _, seg := range plan.Segments {
		seg.Length = segmentLength(seg.Nodes)
		seg.Turns = findTurns(seg.Nodes, tuning.TurnThresholdDeg)
	}

	for i := 0; i < len(plan.Segments)-1; i++ {
		out := plan.Segments[i]
		via := out.Nodes[len(out.Nodes)-1]
		plan.Transitions = append(plan.Transitions, Transition{
			Cue:     cueFor(via.Kind),
			Via:     via,
			ToFloor: plan.Segments[i+1].Floor,
		})
	}

	return plan
}

// segmentLength sums the Euclidean distances between consecutive nodes.
// All nodes in a segment share a floor, so every hop is continuous travel.
func segmentLength(nodes []*Node) float64 {
	var length float64
	for i := 0; i < len(nodes)-1; i++ {
		d := r2.Sub(nodes[i+1].Position, nodes[i].Position)
		length += math.Hypot(d.X, d.Y)
	}
	return length
}

// findTurns checks each interior node of a segment: if the angle between
// the incoming and outgoing direction vectors exceeds the threshold it is a
// turn. Zero-magnitude vectors (coincident points) are skipped rather than
// treated as errors; map data owners are responsible for sane coordinates.
func findTurns(nodes []*Node, thresholdDeg float64) []Turn {
	if len(nodes) < 3 {
		return nil
	}

	var turns []Turn
	for i := 1; i < len(nodes)-1; i++ {
		v1 := r2.Sub(nodes[i].Position, nodes[i-1].Position)
		v2 := r2.Sub(nodes[i+1].Position, nodes[i].Position)

		m1 := math.Hypot(v1.X, v1.Y)
		m2 := math.Hypot(v2.X, v2.Y)
		if m1 == 0 || m2 == 0 {
			continue
		}

		angle := math.Acos(r2.Dot(v1, v2)/(m1*m2)) * 180 / math.Pi
		if angle > thresholdDeg {
			turns = append(turns, Turn{Point: nodes[i].Position, Next: nodes[i+1].Position})
		}
	}
	return turns
}
