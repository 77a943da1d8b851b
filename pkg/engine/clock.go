package engine

import "time"

// Clock abstracts timer scheduling so playback tests can drive virtual
// time instead of sleeping on real timers.
type Clock interface {
	Now() time.Time
	// AfterFunc schedules fn to run once after d on its own goroutine.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a pending callback. Stop reports whether the callback was
// prevented from running.
type Timer interface {
	Stop() bool
}

type realClock struct{}

// RealClock returns the wall-clock implementation used in production.
func RealClock() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
