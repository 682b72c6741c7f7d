package clock

import (
	"context"
	"sync"
	"time"
)

// Interval is a cancelable fixed-period timer. Its callback runs on the
// timer goroutine, so callers that mutate shared state must funnel the
// work to the state owner instead of mutating directly.
type Interval struct {
	period time.Duration
	fn     func(now time.Time)

	stopOnce sync.Once
	stopped  chan struct{}
}

// NewInterval creates a timer firing fn every period.
func NewInterval(period time.Duration, fn func(now time.Time)) *Interval {
	return &Interval{
		period:  period,
		fn:      fn,
		stopped: make(chan struct{}),
	}
}

// Run blocks firing the callback until ctx is done or Stop is called.
// A non-positive period disables the timer.
func (iv *Interval) Run(ctx context.Context) {
	if iv.period <= 0 {
		select {
		case <-ctx.Done():
		case <-iv.stopped:
		}
		return
	}

	t := time.NewTicker(iv.period)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-iv.stopped:
			return
		case now := <-t.C:
			iv.fn(now)
		}
	}
}

// Stop cancels the timer. Safe to call repeatedly.
func (iv *Interval) Stop() {
	iv.stopOnce.Do(func() { close(iv.stopped) })
}
