package engine

import "time"

// Tuning groups the empirical constants of the engine. The values were
// chosen by observation on the deployed kiosk, not derived; keep them
// overridable for tests but do not "improve" them, behavior parity matters
// more than optimality here.
type Tuning struct {
	// SubstringWeight scales the score for query⊂candidate and
	// candidate⊂query containment matches.
	SubstringWeight float64

	// WordMatchWeight is the score added per shared word (length > 1)
	// between the query and a candidate name/alias.
	WordMatchWeight float64

	// ConfidenceThreshold is the minimum fuzzy score a best match must
	// exceed (strictly) to be returned at all.
	ConfidenceThreshold float64

	// TurnThresholdDeg is the direction change, in degrees, above which an
	// interior path point counts as a turn.
	TurnThresholdDeg float64

	// TraversalSpeed is the playback animation speed in map distance units
	// per second.
	TraversalSpeed float64

	// MinSegmentDuration floors the per-segment playback duration so very
	// short segments do not flash by instantly.
	MinSegmentDuration time.Duration

	// TransitionDwell is how long a floor-transition cue stays on screen
	// before playback advances to the next segment.
	TransitionDwell time.Duration
}

// DefaultTuning returns the constants the kiosk runs with in production.
func DefaultTuning() Tuning {
	return Tuning{
		SubstringWeight:     10,
		WordMatchWeight:     2,
		ConfidenceThreshold: 2,
		TurnThresholdDeg:    25,
		TraversalSpeed:      150,
		MinSegmentDuration:  time.Second,
		TransitionDwell:     3 * time.Second,
	}
}
