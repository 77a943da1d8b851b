package engine

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Kind classifies a map node. It is a closed tag set: transition cue
// selection switches on it exhaustively, so unknown values are rejected
// at map load time rather than handled at query time.
type Kind string

const (
	KindRoom      Kind = "room"
	KindLab       Kind = "lab"
	KindOffice    Kind = "office"
	KindUtility   Kind = "utility"
	KindCorridor  Kind = "corridor"
	KindLift      Kind = "lift"
	KindStairs    Kind = "stairs"
	KindEntrance  Kind = "entrance"
	KindBuilding  Kind = "building"
	KindOpenSpace Kind = "open-space"
	KindGround    Kind = "ground"
	KindRoad      Kind = "road"
	KindSpecial   Kind = "special"
)

var validKinds = map[Kind]struct{}{
	KindRoom: {}, KindLab: {}, KindOffice: {}, KindUtility: {},
	KindCorridor: {}, KindLift: {}, KindStairs: {}, KindEntrance: {},
	KindBuilding: {}, KindOpenSpace: {}, KindGround: {}, KindRoad: {},
	KindSpecial: {},
}

// ParseKind validates a raw tag string against the closed set.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := validKinds[k]; !ok {
		return "", fmt.Errorf("unknown node kind %q", s)
	}
	return k, nil
}

// Node is a named, located point of interest in the wayfinding graph.
type Node struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Floor    string   `json:"floor"`
	Kind     Kind     `json:"kind"`
	Position r2.Vec   `json:"position"`
	Aliases  []string `json:"aliases,omitempty"`
}

// Edge is a weighted, bidirectional connection between two nodes.
// Weight is the traversal cost (usually physical distance). Weights must be
// non-negative; zero is degenerate but legal. Map validation enforces this
// at load time, the planner does not re-check.
type Edge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// FloorPlan is the geometric context for the nodes on one level.
// Geometry and ViewBox are opaque to the engine: they are carried through
// to the renderer untouched.
type FloorPlan struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
	ViewBox  string `json:"view_box,omitempty"`
	Geometry any    `json:"geometry,omitempty"`
}
