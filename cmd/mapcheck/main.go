// Command mapcheck validates a campus map file without starting the kiosk:
// it loads the YAML, builds the graph (surfacing any InvalidGraph error),
// and reports nodes unreachable from the kiosk start node so map authors
// catch disconnected wings before deployment.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/campuskiosk/wayfind/pkg/engine"
	"github.com/campuskiosk/wayfind/pkg/mapdata"
)

func main() {
	mapPath := flag.String("map", "configs/campus.yaml", "Path to the campus map YAML file")
	startID := flag.String("start", "ENTRANCE", "Node ID to check reachability from")
	flag.Parse()

	mapFile, err := mapdata.Load(*mapPath)
	if err != nil {
		log.Fatalf("Map file rejected: %v", err)
	}
	nodes, edges, floors := mapFile.EngineTables()

	eng, err := engine.New(engine.Options{
		Nodes:       nodes,
		Edges:       edges,
		Floors:      floors,
		StartNodeID: *startID,
	})
	if err != nil {
		log.Fatalf("Graph rejected: %v", err)
	}

	g := eng.Graph()
	fmt.Printf("Map OK: %d nodes, %d floors, %d edges\n", g.Len(), len(g.Floors()), len(mapFile.Edges))

	var unreachable []string
	g.Scan(func(n *engine.Node) bool {
		if g.ShortestPath(*startID, n.ID) == nil {
			unreachable = append(unreachable, n.ID)
		}
		return true
	})

	if len(unreachable) > 0 {
		fmt.Printf("WARNING: %d nodes unreachable from %s:\n", len(unreachable), *startID)
		for _, id := range unreachable {
			fmt.Printf("  - %s\n", id)
		}
		os.Exit(1)
	}
	fmt.Printf("All nodes reachable from %s\n", *startID)
}
