package clock

import "time"

// DefaultMaxDelta is the delta at or above which a frame is dropped.
const DefaultMaxDelta = 100 * time.Millisecond

// DeltaTracker turns a stream of frame timestamps into per-frame elapsed
// times. The first observation only records the timestamp. Deltas that are
// not positive or reach maxDelta (for example after the process was
// backgrounded) are reported as not ok so the caller skips the tick.
type DeltaTracker struct {
	last     time.Time
	started  bool
	maxDelta time.Duration
}

// NewDeltaTracker creates a tracker; maxDelta <= 0 selects DefaultMaxDelta.
func NewDeltaTracker(maxDelta time.Duration) *DeltaTracker {
	if maxDelta <= 0 {
		maxDelta = DefaultMaxDelta
	}
	return &DeltaTracker{maxDelta: maxDelta}
}

// Observe records a frame timestamp and returns the elapsed time since the
// previous one. ok is false when the tick must be skipped.
func (d *DeltaTracker) Observe(now time.Time) (elapsed time.Duration, ok bool) {
	if !d.started {
		d.started = true
		d.last = now
		return 0, false
	}

	elapsed = now.Sub(d.last)
	d.last = now

	if elapsed <= 0 || elapsed >= d.maxDelta {
		return elapsed, false
	}
	return elapsed, true
}

// Reset forgets the previous timestamp so the next frame is treated as the first.
func (d *DeltaTracker) Reset() {
	d.started = false
	d.last = time.Time{}
}
