package clock

import (
	"context"
	"sync"
	"time"
)

// FrameSource delivers display-refresh signals.
type FrameSource interface {
	// Frames returns the channel of refresh timestamps.
	Frames() <-chan time.Time
	// Close releases the source. It may be called more than once.
	Close()
}

// TickerSource is a FrameSource backed by time.Ticker, standing in for a
// display refresh signal at a fixed rate.
type TickerSource struct {
	ticker *time.Ticker
	once   sync.Once
}

// NewTickerSource creates a source firing fps times per second.
func NewTickerSource(fps int) *TickerSource {
	if fps <= 0 {
		fps = 60
	}
	return &TickerSource{ticker: time.NewTicker(time.Second / time.Duration(fps))}
}

// Frames implements FrameSource.
func (s *TickerSource) Frames() <-chan time.Time { return s.ticker.C }

// Close implements FrameSource.
func (s *TickerSource) Close() { s.once.Do(s.ticker.Stop) }

// ManualSource is a FrameSource driven by explicit Emit calls.
type ManualSource struct {
	ch   chan time.Time
	once sync.Once
}

// NewManualSource creates an unbuffered manual source.
func NewManualSource() *ManualSource {
	return &ManualSource{ch: make(chan time.Time)}
}

// Emit delivers one frame timestamp, blocking until the loop receives it
// or ctx is done.
func (s *ManualSource) Emit(ctx context.Context, t time.Time) bool {
	select {
	case s.ch <- t:
		return true
	case <-ctx.Done():
		return false
	}
}

// Frames implements FrameSource.
func (s *ManualSource) Frames() <-chan time.Time { return s.ch }

// Close implements FrameSource. The channel is left open so a concurrent
// Emit cannot panic; Emit callers should use a cancelable context.
func (s *ManualSource) Close() { s.once.Do(func() {}) }

// TickFunc receives the elapsed time since the previous accepted frame.
type TickFunc func(elapsed time.Duration)

// Loop repeatedly invokes a tick callback with the elapsed time between
// display refresh signals. It holds no game state.
type Loop struct {
	source FrameSource
	delta  *DeltaTracker
	tick   TickFunc

	stopOnce sync.Once
	stopped  chan struct{}
}

// NewLoop creates a loop over source. Frames with a delta at or above
// maxDelta are skipped.
func NewLoop(source FrameSource, maxDelta time.Duration, tick TickFunc) *Loop {
	return &Loop{
		source:  source,
		delta:   NewDeltaTracker(maxDelta),
		tick:    tick,
		stopped: make(chan struct{}),
	}
}

// Run blocks delivering ticks until ctx is done or Stop is called.
func (l *Loop) Run(ctx context.Context) {
	defer l.source.Close()
	frames := l.source.Frames()

	for {
		select {
		case <-ctx.Done():
			return
		case <-l.stopped:
			return
		case now, ok := <-frames:
			if !ok {
				return
			}
			// Stop may race with a ready frame; never tick after it.
			select {
			case <-l.stopped:
				return
			default:
			}
			if elapsed, ok := l.delta.Observe(now); ok {
				l.tick(elapsed)
			}
		}
	}
}

// Stop cancels all future tick invocations. Safe to call repeatedly.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stopped) })
}

// Done is closed once Stop has been called.
func (l *Loop) Done() <-chan struct{} {
	return l.stopped
}
