// Package engine implements the kiosk's indoor wayfinding core: it turns a
// free-text destination utterance into a validated location, computes the
// cheapest route through the multi-floor connectivity graph, decomposes the
// route into per-floor segments with transition cues, and drives the timed
// playback the renderer animates.
//
// The graph is built once at startup and never mutated, so resolution and
// planning are pure, synchronous, re-entrant computations; the only
// stateful component is the PlaybackController.
//
// Basic usage:
//
//	eng, err := engine.New(engine.Options{
//	    Nodes: nodes, Edges: edges, Floors: floors,
//	    StartNodeID: "ENTRANCE",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res := eng.NavigateTo("computer lab")
//	fmt.Println(res.Message)
package engine

import (
	"fmt"
	"log/slog"
)

// Options configures the engine. Nodes, Edges and Floors are the static
// map tables, usually produced by pkg/mapdata.
type Options struct {
	Nodes  []Node
	Edges  []Edge
	Floors []FloorPlan

	// StartNodeID is the kiosk's own location, the origin of every route
	// the assistant requests.
	StartNodeID string

	// Tuning overrides the engine constants; zero value means defaults.
	Tuning *Tuning
}

// Engine bundles the graph, resolver and planners behind the small surface
// the assistant layer and the HTTP API call.
type Engine struct {
	graph    *GraphStore
	resolver *Resolver
	tuning   Tuning
	startID  string
}

// New validates the map tables and builds the engine. A broken map
// (ErrInvalidGraph) is fatal: the kiosk must not serve queries over it.
func New(opts Options) (*Engine, error) {
	tuning := DefaultTuning()
	if opts.Tuning != nil {
		tuning = *opts.Tuning
	}

	g, err := NewGraphStore(opts.Nodes, opts.Edges, opts.Floors)
	if err != nil {
		return nil, err
	}

	if opts.StartNodeID != "" {
		if _, ok := g.Get(opts.StartNodeID); !ok {
			return nil, fmt.Errorf("%w: start node %q not in map", ErrInvalidGraph, opts.StartNodeID)
		}
	}

	slog.Info("wayfinding engine ready",
		"nodes", g.Len(),
		"floors", len(g.Floors()),
		"start", opts.StartNodeID,
	)

	return &Engine{
		graph:    g,
		resolver: NewResolver(g, tuning),
		tuning:   tuning,
		startID:  opts.StartNodeID,
	}, nil
}

// Graph exposes the immutable store for read-only consumers (HTTP map
// dumps, tests).
func (e *Engine) Graph() *GraphStore { return e.graph }

// Tuning returns the constants the engine was built with.
func (e *Engine) Tuning() Tuning { return e.tuning }

// StartNodeID returns the configured kiosk origin.
func (e *Engine) StartNodeID() string { return e.startID }

// FindDestination resolves a destination utterance to a node.
func (e *Engine) FindDestination(query string) (*Node, bool) {
	return e.resolver.Resolve(query)
}

// Route computes the cheapest path between two node ids, nil when
// unreachable.
func (e *Engine) Route(startID, destID string) *Path {
	return e.graph.ShortestPath(startID, destID)
}

// PlanRoute decomposes a path for presentation.
func (e *Engine) PlanRoute(path *Path) *RoutePlan {
	return PlanSegments(path, e.tuning)
}

// NewPlayback builds a playback controller wired to this engine's tuning.
func (e *Engine) NewPlayback(clock Clock) *PlaybackController {
	if clock == nil {
		clock = RealClock()
	}
	return NewPlaybackController(e.tuning, clock)
}

// NavigationResult is the outcome of a full destination request. Message is
// always set and ready to be spoken; Node is set whenever resolution
// succeeded even if routing then failed, so the assistant can still name
// the place it found.
type NavigationResult struct {
	Query   string     `json:"query"`
	Node    *Node      `json:"node,omitempty"`
	Path    *Path      `json:"path,omitempty"`
	Plan    *RoutePlan `json:"plan,omitempty"`
	Message string     `json:"message"`
}

// Found reports whether a full route was produced.
func (r *NavigationResult) Found() bool { return r.Plan != nil }

// NavigateTo runs the whole chain for an utterance: resolve, route from
// the kiosk origin, plan. Every failure mode yields a spoken fallback
// rather than an error.
func (e *Engine) NavigateTo(query string) *NavigationResult {
	res := &NavigationResult{Query: query}

	node, ok := e.resolver.Resolve(query)
	if !ok {
		res.Message = fmt.Sprintf("I couldn't find a location called %q. Please try again.", query)
		return res
	}
	res.Node = node

	path := e.graph.ShortestPath(e.startID, node.ID)
	if path == nil {
		res.Message = fmt.Sprintf("I found %s, but couldn't calculate a path to it.", node.Name)
		return res
	}
	res.Path = path
	res.Plan = PlanSegments(path, e.tuning)
	res.Message = fmt.Sprintf("Showing the path to %s.", node.Name)
	return res
}
