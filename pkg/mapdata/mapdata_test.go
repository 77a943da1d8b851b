package mapdata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/campuskiosk/wayfind/pkg/engine"
)

const sampleMap = `
floors:
  - id: "1"
    name: Ground Floor
    level: 0
    view_box: "0 0 400 300"
    geometry:
      - id: poly-lobby
        kind: room
        label: Lobby
        node_id: LOBBY
        points:
          - {x: 0, y: 0}
          - {x: 100, y: 0}
          - {x: 100, y: 80}
        color:
          top: "#e8e8e8"
  - id: "2"
    name: First Floor
    level: 1
nodes:
  - id: ENTRANCE
    name: Main Entrance
    floor: "1"
    kind: entrance
    position: {x: 10, y: 20}
    aliases: [front gate]
  - id: LOBBY
    name: Lobby
    floor: "1"
    kind: open-space
    position: {x: 60, y: 20}
edges:
  - source: ENTRANCE
    target: LOBBY
    weight: 50
`

func TestParse(t *testing.T) {
	f, err := Parse(sampleMap, "sample")
	if err != nil {
		t.Fatal(err)
	}

	if len(f.Floors) != 2 || len(f.Nodes) != 2 || len(f.Edges) != 1 {
		t.Fatalf("parsed %d floors, %d nodes, %d edges", len(f.Floors), len(f.Nodes), len(f.Edges))
	}
	if f.Nodes[0].Position.X != 10 || f.Nodes[0].Position.Y != 20 {
		t.Errorf("position = %+v", f.Nodes[0].Position)
	}
	if g := f.Floors[0].Geometry; len(g) != 1 || g[0].NodeID != "LOBBY" || len(g[0].Points) != 3 {
		t.Errorf("geometry = %+v", g)
	}
}

func TestParseRejectsUnknownField(t *testing.T) {
	bad := strings.Replace(sampleMap, "weight: 50", "wieght: 50", 1)
	if _, err := Parse(bad, "sample"); err == nil {
		t.Fatal("misspelled field should fail strict decoding")
	}
}

func TestParseRejectsBadRows(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"NoNodes", "floors:\n  - id: \"1\"\n    name: G\n    level: 0\n"},
		{"EmptyNodeID", `
nodes:
  - id: ""
    name: Lobby
    floor: "1"
    kind: room
`},
		{"EmptyNodeName", `
nodes:
  - id: LOBBY
    name: ""
    floor: "1"
    kind: room
`},
		{"UnknownKind", `
nodes:
  - id: LOBBY
    name: Lobby
    floor: "1"
    kind: ballroom
`},
		{"EmptyEdgeEndpoint", `
nodes:
  - id: LOBBY
    name: Lobby
    floor: "1"
    kind: room
edges:
  - source: LOBBY
    target: ""
    weight: 1
`},
		{"NegativeWeight", `
nodes:
  - id: A
    name: A
    floor: "1"
    kind: room
  - id: B
    name: B
    floor: "1"
    kind: room
edges:
  - source: A
    target: B
    weight: -3
`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.data, tc.name); err == nil {
				t.Errorf("expected a validation error")
			}
		})
	}
}

// Zero-weight edges are legal: a doorway between adjacent spaces costs
// nothing to cross.
func TestParseAcceptsZeroWeight(t *testing.T) {
	data := strings.Replace(sampleMap, "weight: 50", "weight: 0", 1)
	if _, err := Parse(data, "sample"); err != nil {
		t.Fatal(err)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("CAMPUS_NAME", "North Campus Entrance")
	data := strings.Replace(sampleMap, "Main Entrance", "${CAMPUS_NAME}", 1)

	path := filepath.Join(t.TempDir(), "campus.yaml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.Nodes[0].Name != "North Campus Entrance" {
		t.Errorf("name = %q, env expansion failed", f.Nodes[0].Name)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestEngineTables(t *testing.T) {
	f, err := Parse(sampleMap, "sample")
	if err != nil {
		t.Fatal(err)
	}

	nodes, edges, floors := f.EngineTables()
	if len(nodes) != 2 || len(edges) != 1 || len(floors) != 2 {
		t.Fatalf("tables: %d nodes, %d edges, %d floors", len(nodes), len(edges), len(floors))
	}
	if nodes[0].Kind != engine.KindEntrance {
		t.Errorf("kind = %s", nodes[0].Kind)
	}
	if nodes[0].Position.X != 10 || nodes[0].Position.Y != 20 {
		t.Errorf("position = %+v", nodes[0].Position)
	}

	// The converted tables must build a valid graph end to end.
	if _, err := engine.NewGraphStore(nodes, edges, floors); err != nil {
		t.Fatal(err)
	}
}
