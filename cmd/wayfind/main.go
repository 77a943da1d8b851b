package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/campuskiosk/wayfind/internal/mcp"
	"github.com/campuskiosk/wayfind/internal/server"
	"github.com/campuskiosk/wayfind/pkg/engine"
	"github.com/campuskiosk/wayfind/pkg/mapdata"
)

func main() {
	httpAddr := flag.String("http-addr", ":9091", "Address and port for the REST API server (e.g. :9091)")
	mapPath := flag.String("map", "configs/campus.yaml", "Path to the campus map YAML file")
	startID := flag.String("start", "ENTRANCE", "Node ID of the kiosk location, origin of every route")
	authToken := flag.String("auth-token", "", "Bearer token for the HTTP API (empty disables auth)")
	mcpStdio := flag.Bool("mcp", false, "Serve the assistant MCP tools over stdio instead of HTTP")

	flag.Parse()

	mapFile, err := mapdata.Load(*mapPath)
	if err != nil {
		log.Fatalf("Could not load map data: %v", err)
	}
	nodes, edges, floors := mapFile.EngineTables()

	eng, err := engine.New(engine.Options{
		Nodes:       nodes,
		Edges:       edges,
		Floors:      floors,
		StartNodeID: *startID,
	})
	if err != nil {
		log.Fatalf("Could not build the wayfinding engine: %v", err)
	}

	srv := server.NewServer(eng, *httpAddr, *authToken)

	if *mcpStdio {
		// Assistant mode: the conversational AI runtime spawns this binary
		// and speaks MCP over stdin/stdout. No HTTP, no signals: the
		// transport closing is the shutdown.
		mcpServer := mcp.NewMCPServer(eng, srv.Sessions())
		if err := mcpServer.Run(context.Background(), &sdk.StdioTransport{}); err != nil {
			log.Fatalf("MCP server stopped: %v", err)
		}
		return
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Fatal(srv.Run())
	}()

	<-shutdownChan

	srv.Shutdown()
}
