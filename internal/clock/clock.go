// Package clock provides the timing plumbing for the simulation: a
// cancelable frame loop with delta filtering, auxiliary interval timers and
// an injectable wall clock. Nothing in this package holds game state.
package clock

import (
	"sync"
	"time"
)

// Clock supplies wall-clock time. The simulation reads time only through it.
type Clock interface {
	Now() time.Time
}

// System is the real wall clock.
type System struct{}

// Now returns time.Now().
func (System) Now() time.Time { return time.Now() }

// Manual is a clock that only moves when told to. Safe for concurrent use.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual creates a manual clock starting at the given time.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// Set moves the clock to t.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// TimeScale converts elapsed wall time into a normalized step, where one
// target frame equals 1.0. The result is capped at maxScale to bound the
// worst-case step size.
func TimeScale(elapsed time.Duration, targetFrameMs, maxScale float64) float64 {
	if targetFrameMs <= 0 || elapsed <= 0 {
		return 0
	}
	dt := float64(elapsed) / float64(time.Millisecond) / targetFrameMs
	if maxScale > 0 && dt > maxScale {
		return maxScale
	}
	return dt
}

// Millis converts a duration in milliseconds from config into a time.Duration.
func Millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
