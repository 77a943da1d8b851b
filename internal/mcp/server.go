// Package mcp exposes the wayfinding engine to the conversational
// assistant as MCP tools. The assistant's tool-dispatch loop supplies a
// destination string and consumes the narration string; everything in
// between (resolve, route, plan, playback) happens here.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/campuskiosk/wayfind/internal/server"
	"github.com/campuskiosk/wayfind/pkg/engine"
)

func NewMCPServer(eng *engine.Engine, sessions *server.SessionManager) *mcp.Server {
	service := NewService(eng, sessions)

	s := mcp.NewServer(&mcp.Implementation{
		Name:    "Wayfind Campus Navigation",
		Version: "0.3.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "find_destination",
		Description: "Look up a campus location by name, alias or room code. Returns where it is without starting navigation.",
	}, service.FindDestination)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "navigate_to",
		Description: "Show the visitor the route from the kiosk to a destination. Returns the sentence to speak back.",
	}, service.NavigateTo)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "close_map",
		Description: "Close the map view when the visitor is done with navigation.",
	}, service.CloseMap)

	return s
}
