package server

import (
	"time"

	"github.com/campuskiosk/wayfind/pkg/engine"
)

// ResolveRequest asks for a destination lookup.
type ResolveRequest struct {
	Query string `json:"query"`
}

// ResolveResponse carries the lookup outcome. Found false is a normal
// negative result, not an error.
type ResolveResponse struct {
	Found bool         `json:"found"`
	Node  *engine.Node `json:"node,omitempty"`
}

// RouteRequest asks for a shortest path between two node ids. StartID may
// be empty, in which case the server uses the engine's kiosk origin.
type RouteRequest struct {
	StartID       string `json:"start_id,omitempty"`
	DestinationID string `json:"destination_id"`
}

// RouteResponse carries the computed path, or Found false when the
// destination is unreachable.
type RouteResponse struct {
	Found bool         `json:"found"`
	Path  *engine.Path `json:"path,omitempty"`
}

// PlanResponse carries everything the renderer needs to draw a route.
type PlanResponse struct {
	Found bool              `json:"found"`
	Path  *engine.Path      `json:"path,omitempty"`
	Plan  *engine.RoutePlan `json:"plan,omitempty"`
}

// SessionRequest starts a playback session, either from a free-text query
// (the voice path) or from an already-resolved destination id. Sessions
// always start at the kiosk's configured origin.
type SessionRequest struct {
	Query         string `json:"query,omitempty"`
	DestinationID string `json:"destination_id,omitempty"`
}

// SessionResponse is returned on session creation. Message is the spoken
// narration; SessionID is only set when a route was actually produced.
type SessionResponse struct {
	SessionID string                   `json:"session_id,omitempty"`
	CreatedAt time.Time                `json:"created_at,omitzero"`
	Result    *engine.NavigationResult `json:"result"`
}

// SessionStateResponse is the live playback state the renderer polls.
type SessionStateResponse struct {
	SessionID string                  `json:"session_id"`
	Playback  engine.PlaybackSnapshot `json:"playback"`
}
