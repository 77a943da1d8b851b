package mcp

import (
	"context"
	"fmt"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/campuskiosk/wayfind/internal/server"
	"github.com/campuskiosk/wayfind/pkg/engine"
)

// Service implements the assistant-facing tools. It shares the playback
// SessionManager with the HTTP API so the map view the renderer polls is
// the one the voice assistant started.
type Service struct {
	engine   *engine.Engine
	sessions *server.SessionManager

	// The kiosk presents one route at a time: a new navigate_to replaces
	// the previous session (last write wins).
	mu      sync.Mutex
	current string
}

func NewService(eng *engine.Engine, sessions *server.SessionManager) *Service {
	return &Service{engine: eng, sessions: sessions}
}

// --- Tool Handlers ---

func (s *Service) FindDestination(ctx context.Context, req *mcp.CallToolRequest, args FindDestinationArgs) (*mcp.CallToolResult, FindDestinationResult, error) {
	node, ok := s.engine.FindDestination(args.Query)
	if !ok {
		return nil, FindDestinationResult{
			Found:   false,
			Message: fmt.Sprintf("I couldn't find a location called %q. Please try again.", args.Query),
		}, nil
	}

	floorName := node.Floor
	if f, ok := s.engine.Graph().Floor(node.Floor); ok {
		floorName = f.Name
	}

	return nil, FindDestinationResult{
		Found:   true,
		NodeID:  node.ID,
		Name:    node.Name,
		Floor:   node.Floor,
		Message: fmt.Sprintf("%s is on %s.", node.Name, floorName),
	}, nil
}

func (s *Service) NavigateTo(ctx context.Context, req *mcp.CallToolRequest, args NavigateToArgs) (*mcp.CallToolResult, NavigateToResult, error) {
	res := s.engine.NavigateTo(args.Destination)
	if !res.Found() {
		return nil, NavigateToResult{Message: res.Message}, nil
	}

	sess := s.sessions.Start(s.engine, res)
	s.replaceCurrent(sess.ID)

	return nil, NavigateToResult{
		Message:   res.Message,
		SessionID: sess.ID,
	}, nil
}

func (s *Service) CloseMap(ctx context.Context, req *mcp.CallToolRequest, args CloseMapArgs) (*mcp.CallToolResult, CloseMapResult, error) {
	s.replaceCurrent("")
	return nil, CloseMapResult{Message: "Okay, closing the map."}, nil
}

// replaceCurrent swaps the active session, closing the superseded one.
func (s *Service) replaceCurrent(id string) {
	s.mu.Lock()
	old := s.current
	s.current = id
	s.mu.Unlock()

	if old != "" {
		s.sessions.Close(old)
	}
}
