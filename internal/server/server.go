// Package server exposes the wayfinding engine over HTTP for the kiosk
// shell and the on-screen renderer: destination resolution, route
// planning, playback sessions, and static map dumps.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campuskiosk/wayfind/pkg/engine"
)

const (
	sessionSweepInterval = 30 * time.Second
	sessionMaxAge        = 10 * time.Minute
)

// Server holds the HTTP interface, the engine and the playback sessions.
type Server struct {
	Engine *engine.Engine

	httpServer *http.Server
	sessions   *SessionManager
	authToken  string
}

// NewServer wires the HTTP surface around an already-built engine.
func NewServer(eng *engine.Engine, httpAddr string, authToken string) *Server {
	s := &Server{
		Engine:    eng,
		sessions:  NewSessionManager(nil),
		authToken: authToken,
	}

	mux := http.NewServeMux()
	s.registerHTTPHandlers(mux)

	// Chain middlewares: Recovery -> Logging -> Auth -> Mux.
	// Order matters: Recovery must be outer-most to catch everything.
	var handler http.Handler = mux
	handler = s.authMiddleware(handler)
	handler = s.LoggingMiddleware(handler)
	handler = s.RecoveryMiddleware(handler)

	// Liveness and metrics stay outside auth so probes and scrapers work
	// without credentials.
	rootMux := http.NewServeMux()
	rootMux.HandleFunc("GET /healthz", s.handleHealthz)
	rootMux.Handle("GET /metrics", promhttp.Handler())
	rootMux.Handle("/", handler)

	s.httpServer = &http.Server{
		Addr:    httpAddr,
		Handler: rootMux,
	}

	return s
}

// Sessions exposes the session manager to sibling serving layers (the MCP
// assistant shares sessions with the HTTP renderer API).
func (s *Server) Sessions() *SessionManager {
	return s.sessions
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeHTTPResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Run starts the session janitor and the HTTP server, blocking until the
// server stops.
func (s *Server) Run() error {
	s.sessions.StartJanitor(sessionSweepInterval, sessionMaxAge)

	log.Printf("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server startup failed: %w", err)
	}
	return nil
}

// Shutdown stops the HTTP server gracefully and closes all sessions.
func (s *Server) Shutdown() {
	log.Println("Starting graceful shutdown of HTTP server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	s.sessions.StopJanitor()
}
