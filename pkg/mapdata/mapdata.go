// Package mapdata loads the kiosk's static map tables from YAML.
//
// A map file has three sections: floors (plan metadata plus renderer
// geometry), nodes (the location vertices) and edges (the weighted
// connections). Decoding is strict: unknown fields, unknown node kinds and
// negative edge weights are load-time errors, never silently fixed. The
// engine's graph validation (dangling ids) happens afterwards, when the
// tables are handed to engine.New.
package mapdata

import (
	"fmt"
	"os"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/campuskiosk/wayfind/pkg/engine"
)

// File is the top-level structure of a map YAML file.
type File struct {
	Floors []Floor `yaml:"floors"`
	Nodes  []Node  `yaml:"nodes"`
	Edges  []Edge  `yaml:"edges"`
}

// Floor describes one level: ordering metadata for the engine, view box
// and polygon geometry for the renderer.
type Floor struct {
	ID       string    `yaml:"id" json:"id"`
	Name     string    `yaml:"name" json:"name"`
	Level    int       `yaml:"level" json:"level"`
	ViewBox  string    `yaml:"view_box" json:"view_box,omitempty"`
	Geometry []Polygon `yaml:"geometry" json:"geometry,omitempty"`
}

// Polygon is a renderer shape. The engine never interprets these; they are
// carried through to the map view untouched.
type Polygon struct {
	ID     string  `yaml:"id" json:"id"`
	Points []Point `yaml:"points" json:"points"`
	Kind   string  `yaml:"kind" json:"kind,omitempty"`
	Label  string  `yaml:"label" json:"label,omitempty"`
	NodeID string  `yaml:"node_id" json:"node_id,omitempty"`
	Color  *Color  `yaml:"color" json:"color,omitempty"`
}

// Color holds the fill/wall/stroke colors of a polygon.
type Color struct {
	Top    string `yaml:"top" json:"top,omitempty"`
	Wall   string `yaml:"wall" json:"wall,omitempty"`
	Stroke string `yaml:"stroke" json:"stroke,omitempty"`
}

// Point is a 2D coordinate in a floor's local plane.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Node is a location vertex row.
type Node struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Floor    string   `yaml:"floor"`
	Kind     string   `yaml:"kind"`
	Position Point    `yaml:"position"`
	Aliases  []string `yaml:"aliases"`
}

// Edge is a connection row. Source/target order carries no meaning, every
// edge is traversable in both directions at the same cost.
type Edge struct {
	Source string  `yaml:"source"`
	Target string  `yaml:"target"`
	Weight float64 `yaml:"weight"`
}

// Load reads and parses a map file. Environment variables in the file are
// expanded before decoding, and decoding runs in strict mode so typos in
// field names fail loudly instead of dropping data.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read map file %q: %w", path, err)
	}
	return Parse(os.ExpandEnv(string(data)), path)
}

// Parse decodes map YAML from a string. name is used in error messages.
func Parse(data, name string) (*File, error) {
	var f File
	decoder := yaml.NewDecoder(strings.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("YAML syntax error in %q: %w", name, err)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("invalid map data in %q: %w", name, err)
	}
	return &f, nil
}

// validate applies the row-level rules that do not need the full graph:
// required fields, known kinds, non-negative weights.
func (f *File) validate() error {
	if len(f.Nodes) == 0 {
		return fmt.Errorf("map has no nodes")
	}
	for _, n := range f.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node with empty id (name %q)", n.Name)
		}
		if n.Name == "" {
			return fmt.Errorf("node %q has no name", n.ID)
		}
		if _, err := engine.ParseKind(n.Kind); err != nil {
			return fmt.Errorf("node %q: %w", n.ID, err)
		}
	}
	for _, e := range f.Edges {
		if e.Source == "" || e.Target == "" {
			return fmt.Errorf("edge with empty endpoint (%q -> %q)", e.Source, e.Target)
		}
		if e.Weight < 0 {
			return fmt.Errorf("edge %s-%s has negative weight %v", e.Source, e.Target, e.Weight)
		}
	}
	return nil
}

// EngineTables converts the file rows into the engine's domain types.
// Kind strings were already validated, so conversion cannot fail.
func (f *File) EngineTables() (nodes []engine.Node, edges []engine.Edge, floors []engine.FloorPlan) {
	nodes = make([]engine.Node, 0, len(f.Nodes))
	for _, n := range f.Nodes {
		nodes = append(nodes, engine.Node{
			ID:       n.ID,
			Name:     n.Name,
			Floor:    n.Floor,
			Kind:     engine.Kind(n.Kind),
			Position: r2.Vec{X: n.Position.X, Y: n.Position.Y},
			Aliases:  n.Aliases,
		})
	}

	edges = make([]engine.Edge, 0, len(f.Edges))
	for _, e := range f.Edges {
		edges = append(edges, engine.Edge{Source: e.Source, Target: e.Target, Weight: e.Weight})
	}

	floors = make([]engine.FloorPlan, 0, len(f.Floors))
	for _, fl := range f.Floors {
		floors = append(floors, engine.FloorPlan{
			ID:       fl.ID,
			Name:     fl.Name,
			Level:    fl.Level,
			ViewBox:  fl.ViewBox,
			Geometry: fl.Geometry,
		})
	}
	return nodes, edges, floors
}
