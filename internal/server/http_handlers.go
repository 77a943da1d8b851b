package server

import (
	"encoding/json"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/campuskiosk/wayfind/pkg/engine"
	"github.com/campuskiosk/wayfind/pkg/metrics"
)

// registerHTTPHandlers sets up the API routes on the protected mux.
func (s *Server) registerHTTPHandlers(mux *http.ServeMux) {
	mux.HandleFunc("POST /navigation/resolve", s.handleResolve)
	mux.HandleFunc("POST /navigation/route", s.handleRoute)
	mux.HandleFunc("POST /navigation/plan", s.handlePlan)

	mux.HandleFunc("POST /navigation/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /navigation/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /navigation/sessions/{id}", s.handleCloseSession)

	mux.HandleFunc("GET /map/floors", s.handleFloors)
	mux.HandleFunc("GET /map/nodes", s.handleNodes)

	// pprof stays behind auth with the rest of the API.
	mux.HandleFunc("GET /debug/pprof/", pprof.Index)
	mux.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, "malformed JSON body: "+err.Error())
		return
	}

	node, ok := s.Engine.FindDestination(req.Query)
	if !ok {
		metrics.ResolveTotal.WithLabelValues("miss").Inc()
		s.writeHTTPResponse(w, http.StatusOK, ResolveResponse{Found: false})
		return
	}
	metrics.ResolveTotal.WithLabelValues("hit").Inc()
	s.writeHTTPResponse(w, http.StatusOK, ResolveResponse{Found: true, Node: node})
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, "malformed JSON body: "+err.Error())
		return
	}
	if req.DestinationID == "" {
		s.writeHTTPError(w, http.StatusBadRequest, "destination_id is required")
		return
	}

	start := req.StartID
	if start == "" {
		start = s.Engine.StartNodeID()
	}

	began := time.Now()
	path := s.Engine.Route(start, req.DestinationID)
	metrics.RouteDuration.Observe(time.Since(began).Seconds())

	if path == nil {
		s.writeHTTPResponse(w, http.StatusOK, RouteResponse{Found: false})
		return
	}
	s.writeHTTPResponse(w, http.StatusOK, RouteResponse{Found: true, Path: path})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, "malformed JSON body: "+err.Error())
		return
	}
	if req.DestinationID == "" {
		s.writeHTTPError(w, http.StatusBadRequest, "destination_id is required")
		return
	}

	start := req.StartID
	if start == "" {
		start = s.Engine.StartNodeID()
	}

	began := time.Now()
	path := s.Engine.Route(start, req.DestinationID)
	metrics.RouteDuration.Observe(time.Since(began).Seconds())

	if path == nil {
		s.writeHTTPResponse(w, http.StatusOK, PlanResponse{Found: false})
		return
	}
	s.writeHTTPResponse(w, http.StatusOK, PlanResponse{
		Found: true,
		Path:  path,
		Plan:  s.Engine.PlanRoute(path),
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, "malformed JSON body: "+err.Error())
		return
	}

	query := req.Query
	if query == "" && req.DestinationID != "" {
		// Direct id selection, e.g. a touch on the map list.
		query = req.DestinationID
	}
	if query == "" {
		s.writeHTTPError(w, http.StatusBadRequest, "query or destination_id is required")
		return
	}

	res := s.Engine.NavigateTo(query)
	if res.Node == nil {
		metrics.ResolveTotal.WithLabelValues("miss").Inc()
	} else {
		metrics.ResolveTotal.WithLabelValues("hit").Inc()
	}

	if !res.Found() {
		// Negative outcome: the message is still usable for narration.
		s.writeHTTPResponse(w, http.StatusOK, SessionResponse{Result: res})
		return
	}

	sess := s.sessions.Start(s.Engine, res)
	s.writeHTTPResponse(w, http.StatusCreated, SessionResponse{
		SessionID: sess.ID,
		CreatedAt: sess.CreatedAt,
		Result:    res,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessions.Get(r.PathValue("id"))
	if !ok {
		s.writeHTTPError(w, http.StatusNotFound, "session not found")
		return
	}
	s.writeHTTPResponse(w, http.StatusOK, SessionStateResponse{
		SessionID: sess.ID,
		Playback:  sess.Controller.Snapshot(),
	})
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.Close(r.PathValue("id")) {
		s.writeHTTPError(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFloors(w http.ResponseWriter, r *http.Request) {
	s.writeHTTPResponse(w, http.StatusOK, s.Engine.Graph().Floors())
}

func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	g := s.Engine.Graph()
	nodes := make([]*engine.Node, 0, g.Len())
	g.Scan(func(n *engine.Node) bool {
		nodes = append(nodes, n)
		return true
	})
	s.writeHTTPResponse(w, http.StatusOK, nodes)
}

// --- Response helpers ---

func (s *Server) writeHTTPResponse(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeHTTPError(w http.ResponseWriter, statusCode int, message string) {
	s.writeHTTPResponse(w, statusCode, map[string]string{"error": message})
}
