package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campuskiosk/wayfind/pkg/engine"
	"github.com/campuskiosk/wayfind/pkg/metrics"
)

// Session is one live route presentation: the navigation result that
// produced it and the playback controller animating it. The kiosk shell
// normally keeps a single session, but the manager supports several for
// multi-screen installs.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Result     *engine.NavigationResult   `json:"result"`
	Controller *engine.PlaybackController `json:"-"`
}

// SessionManager tracks active playback sessions by id.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	clock    engine.Clock

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSessionManager creates an empty manager. clock is shared with the
// controllers it creates so tests can drive virtual time end to end.
func NewSessionManager(clock engine.Clock) *SessionManager {
	if clock == nil {
		clock = engine.RealClock()
	}
	return &SessionManager{
		sessions: make(map[string]*Session),
		clock:    clock,
		stop:     make(chan struct{}),
	}
}

// Start creates a session for a successful navigation result and begins
// playback immediately.
func (sm *SessionManager) Start(eng *engine.Engine, res *engine.NavigationResult) *Session {
	ctrl := eng.NewPlayback(sm.clock)
	ctrl.Start(res.Plan)

	s := &Session{
		ID:         uuid.New().String(),
		CreatedAt:  sm.clock.Now(),
		Result:     res,
		Controller: ctrl,
	}

	sm.mu.Lock()
	sm.sessions[s.ID] = s
	sm.mu.Unlock()

	metrics.ActiveSessions.Inc()
	return s
}

// Get retrieves a session by id.
func (sm *SessionManager) Get(id string) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	s, ok := sm.sessions[id]
	return s, ok
}

// Close stops a session's playback and removes it. Reports whether the
// session existed.
func (sm *SessionManager) Close(id string) bool {
	sm.mu.Lock()
	s, ok := sm.sessions[id]
	if ok {
		delete(sm.sessions, id)
	}
	sm.mu.Unlock()

	if !ok {
		return false
	}
	s.Controller.Close()
	metrics.ActiveSessions.Dec()
	return true
}

// Len reports the number of live sessions.
func (sm *SessionManager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// StartJanitor launches the background sweep that drops sessions older
// than maxAge. Visitors walk away from kiosks; the renderer cannot be
// trusted to DELETE.
func (sm *SessionManager) StartJanitor(interval, maxAge time.Duration) {
	sm.wg.Add(1)
	go func() {
		defer sm.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-sm.stop:
				return
			case <-ticker.C:
				sm.sweep(maxAge)
			}
		}
	}()
}

// StopJanitor stops the sweep goroutine and closes every session.
func (sm *SessionManager) StopJanitor() {
	sm.stopOnce.Do(func() { close(sm.stop) })
	sm.wg.Wait()

	sm.mu.Lock()
	stale := make([]string, 0, len(sm.sessions))
	for id := range sm.sessions {
		stale = append(stale, id)
	}
	sm.mu.Unlock()
	for _, id := range stale {
		sm.Close(id)
	}
}

func (sm *SessionManager) sweep(maxAge time.Duration) {
	now := sm.clock.Now()

	sm.mu.RLock()
	var expired []string
	for id, s := range sm.sessions {
		if now.Sub(s.CreatedAt) > maxAge {
			expired = append(expired, id)
		}
	}
	sm.mu.RUnlock()

	for _, id := range expired {
		sm.Close(id)
	}
}
