package engine

import (
	"sync"
	"time"
)

// PlaybackState names the phases of route presentation.
type PlaybackState string

const (
	// StateIdle means no route is loaded.
	StateIdle PlaybackState = "idle"
	// StatePlaying means segment SegmentIndex is being animated.
	StatePlaying PlaybackState = "playing"
	// StateTransition means the floor-change cue between SegmentIndex and
	// SegmentIndex+1 is on screen.
	StateTransition PlaybackState = "transition"
	// StateDone means the last segment finished; terminal until a new plan
	// arrives or the controller is closed.
	StateDone PlaybackState = "done"
)

// PlaybackSnapshot is the controller state handed to the renderer on each
// poll: which phase is active, which segment it concerns, the cue kind
// during transitions, and how long the phase lasts in total.
type PlaybackSnapshot struct {
	State         PlaybackState `json:"state"`
	SegmentIndex  int           `json:"segment_index"`
	Cue           CueKind       `json:"cue,omitempty"`
	PhaseDuration time.Duration `json:"phase_duration"`
	PhaseStarted  time.Time     `json:"phase_started"`
}

// PlaybackController sequences route presentation: animate a segment for a
// duration derived from its length, show a transition cue between floors,
// advance, and finish. It is cooperative and timer-driven, with exactly one
// pending timer at any moment. A new plan always wins: starting or closing
// invalidates any pending callback deterministically, so a superseded
// route can never advance the state machine.
type PlaybackController struct {
	mu     sync.Mutex
	clock  Clock
	tuning Tuning

	plan    *RoutePlan
	state   PlaybackState
	segment int
	cue     CueKind

	timer Timer
	gen   uint64

	phaseDuration time.Duration
	phaseStarted  time.Time
}

// NewPlaybackController builds an idle controller. Pass RealClock() outside
// of tests.
func NewPlaybackController(tuning Tuning, clock Clock) *PlaybackController {
	return &PlaybackController{
		clock: clock, tuning: tuning,
		state: StateIdle,
	}
}

// SegmentDuration converts a segment's length into its animation time at
// the fixed traversal speed, floored so instant segments still register.
func (pc *PlaybackController) SegmentDuration(seg *Segment) time.Duration {
	d := time.Duration(seg.Length / pc.tuning.TraversalSpeed * float64(time.Second))
	if d < pc.tuning.MinSegmentDuration {
		d = pc.tuning.MinSegmentDuration
	}
	return d
}

// Start loads a plan and begins playing its first segment, preempting
// whatever was in flight. An empty plan resets the controller to idle.
func (pc *PlaybackController) Start(plan *RoutePlan) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.invalidateLocked()
	if plan == nil || len(plan.Segments) == 0 {
		pc.plan = nil
		pc.state = StateIdle
		return
	}
	pc.plan = plan
	pc.playSegmentLocked(0)
}

// Close cancels any pending timer and returns to idle.
func (pc *PlaybackController) Close() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.invalidateLocked()
	pc.plan = nil
	pc.state = StateIdle
	pc.segment = 0
	pc.cue = ""
}

// Snapshot returns the current phase for the renderer.
func (pc *PlaybackController) Snapshot() PlaybackSnapshot {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	return PlaybackSnapshot{
		State:         pc.state,
		SegmentIndex:  pc.segment,
		Cue:           pc.cue,
		PhaseDuration: pc.phaseDuration,
		PhaseStarted:  pc.phaseStarted,
	}
}

// invalidateLocked bumps the generation and stops the pending timer. A
// callback from a stale generation observes the mismatch and does nothing,
// which covers the race where the timer already fired but has not taken
// the lock yet.
func (pc *PlaybackController) invalidateLocked() {
	pc.gen++
	if pc.timer != nil {
		pc.timer.Stop()
		pc.timer = nil
	}
}

func (pc *PlaybackController) playSegmentLocked(k int) {
	pc.state = StatePlaying
	pc.segment = k
	pc.cue = ""
	pc.phaseDuration = pc.SegmentDuration(pc.plan.Segments[k])
	pc.phaseStarted = pc.clock.Now()
	pc.scheduleLocked(pc.phaseDuration, pc.segmentDone)
}

func (pc *PlaybackController) scheduleLocked(d time.Duration, fn func(gen uint64)) {
	gen := pc.gen
	pc.timer = pc.clock.AfterFunc(d, func() { fn(gen) })
}

// segmentDone fires when the current segment's animation time elapses.
func (pc *PlaybackController) segmentDone(gen uint64) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if gen != pc.gen || pc.state != StatePlaying {
		return
	}

	k := pc.segment
	if k >= len(pc.plan.Segments)-1 {
		pc.state = StateDone
		pc.cue = ""
		pc.timer = nil
		return
	}

	// Segments are split exactly at floor changes, so consecutive segments
	// always differ; the check stays for plans built elsewhere.
	if pc.plan.Segments[k].Floor != pc.plan.Segments[k+1].Floor {
		pc.state = StateTransition
		pc.cue = pc.transitionCueLocked(k)
		pc.phaseDuration = pc.tuning.TransitionDwell
		pc.phaseStarted = pc.clock.Now()
		pc.scheduleLocked(pc.phaseDuration, pc.transitionDone)
		return
	}

	pc.playSegmentLocked(k + 1)
}

// transitionCueLocked returns the cue for the floor change after segment k.
// PlanSegments always populates Transitions, but a caller-built plan may
// not; in that case the cue is derived from the boundary node directly.
func (pc *PlaybackController) transitionCueLocked(k int) CueKind {
	if k < len(pc.plan.Transitions) {
		return pc.plan.Transitions[k].Cue
	}
	out := pc.plan.Segments[k].Nodes
	if len(out) == 0 {
		return CueUnknown
	}
	return cueFor(out[len(out)-1].Kind)
}

// transitionDone fires when the cue dwell elapses and the next segment
// starts playing.
func (pc *PlaybackController) transitionDone(gen uint64) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if gen != pc.gen || pc.state != StateTransition {
		return
	}
	pc.playSegmentLocked(pc.segment + 1)
}
