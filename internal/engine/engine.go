// Package engine runs a Game for hosts that have no event loop of their own.
// One goroutine owns the game: frame ticks, auxiliary timers and player
// commands are all funneled to it and applied one at a time.
package engine

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-ostrich/internal/clock"
	"github.com/vovakirdan/flappy-ostrich/internal/core"
	"github.com/vovakirdan/flappy-ostrich/internal/games/ostrich"
)

// DefaultQueueSize bounds pending player commands.
const DefaultQueueSize = 64

// Command is a player request delivered to the owner goroutine.
type Command struct {
	Action     core.Action
	Difficulty string // Tier name for ActionDifficulty; empty cycles
}

// Options configures an Engine.
type Options struct {
	FPS       int               // Frame rate when Source is nil (default 60)
	Source    clock.FrameSource // Display refresh signal; nil uses a ticker
	QueueSize int               // Command buffer (default DefaultQueueSize)
	Logger    *log.Logger       // nil discards
}

// op is one mutation of the game, run on the owner goroutine.
type op func(g *ostrich.Game) ostrich.Snapshot

// Engine drives a Game on a single owner goroutine.
type Engine struct {
	game   *ostrich.Game
	opts   Options
	logger *log.Logger

	cmds chan Command
	ops  chan op

	mu   sync.Mutex
	subs []chan ostrich.Snapshot

	stopOnce sync.Once
	stopped  chan struct{}
}

// New creates an engine for game. The engine takes ownership: callers must
// not touch game after Run starts.
func New(game *ostrich.Game, opts Options) *Engine {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultQueueSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{
		game:    game,
		opts:    opts,
		logger:  logger,
		cmds:    make(chan Command, opts.QueueSize),
		ops:     make(chan op),
		stopped: make(chan struct{}),
	}
}

// Send enqueues a command without blocking. It returns false when the queue
// is full or the engine has stopped; the command is dropped.
func (e *Engine) Send(cmd Command) bool {
	select {
	case <-e.stopped:
		return false
	default:
	}
	select {
	case e.cmds <- cmd:
		return true
	default:
		e.logger.Warn("command queue full, dropping", "action", cmd.Action)
		return false
	}
}

// Subscribe returns a channel receiving snapshots after every committed
// mutation. Slow readers only see the latest one. The channel is closed
// when Run returns.
func (e *Engine) Subscribe() <-chan ostrich.Snapshot {
	ch := make(chan ostrich.Snapshot, 1)
	e.mu.Lock()
	e.subs = append(e.subs, ch)
	e.mu.Unlock()
	return ch
}

// Stop cancels the loop and every timer. Safe to call repeatedly.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.stopped) })
}

// Run blocks until ctx is done or Stop is called.
func (e *Engine) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer e.closeSubscribers()

	cfg := e.game.Config()
	source := e.opts.Source
	if source == nil {
		source = clock.NewTickerSource(e.opts.FPS)
	}

	loop := clock.NewLoop(source, clock.Millis(cfg.Loop.MaxDeltaMs), func(elapsed time.Duration) {
		e.submit(ctx, func(g *ostrich.Game) ostrich.Snapshot { return g.Tick(elapsed) })
	})
	timers := []*clock.Interval{
		e.interval(ctx, cfg.Pickups.CollectibleIntervalMs, (*ostrich.Game).SpawnCollectible),
		e.interval(ctx, cfg.Pickups.PowerUpIntervalMs, (*ostrich.Game).SpawnPowerUp),
		e.interval(ctx, cfg.Difficulty.EvalIntervalMs, (*ostrich.Game).ReevaluateDifficulty),
	}

	var wg sync.WaitGroup
	wg.Add(1 + len(timers))
	go func() {
		defer wg.Done()
		loop.Run(ctx)
	}()
	for _, iv := range timers {
		go func(iv *clock.Interval) {
			defer wg.Done()
			iv.Run(ctx)
		}(iv)
	}
	defer func() {
		loop.Stop()
		for _, iv := range timers {
			iv.Stop()
		}
		cancel()
		wg.Wait()
	}()

	e.publish(e.game.Snapshot())

	for {
		select {
		case <-ctx.Done():
			return
		case <-e.stopped:
			return
		case cmd := <-e.cmds:
			e.commit(e.game.Apply(cmd.Action, cmd.Difficulty))
		case fn := <-e.ops:
			e.commit(fn(e.game))
		}
	}
}

func (e *Engine) interval(ctx context.Context, ms int, fn op) *clock.Interval {
	return clock.NewInterval(time.Duration(ms)*time.Millisecond, func(time.Time) {
		e.submit(ctx, fn)
	})
}

// submit hands fn to the owner goroutine, giving up when the engine stops.
func (e *Engine) submit(ctx context.Context, fn op) {
	select {
	case e.ops <- fn:
	case <-ctx.Done():
	case <-e.stopped:
	}
}

func (e *Engine) commit(snap ostrich.Snapshot) {
	for _, ev := range snap.Events {
		switch ev.Kind {
		case ostrich.EventStart:
			e.logger.Info("run started", "difficulty", ev.Tier)
		case ostrich.EventGameOver:
			e.logger.Info("run ended", "score", ev.Value)
		case ostrich.EventNewHighScore:
			e.logger.Info("new high score", "score", ev.Value)
		case ostrich.EventDifficulty:
			e.logger.Debug("difficulty changed", "tier", ev.Tier)
		case ostrich.EventPowerUp:
			e.logger.Debug("power-up", "type", ev.PowerUp)
		}
	}
	e.publish(snap)
}

// publish delivers snap to every subscriber, replacing any unread snapshot.
func (e *Engine) publish(snap ostrich.Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, ch := range e.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

func (e *Engine) closeSubscribers() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, ch := range e.subs {
		close(ch)
	}
	e.subs = nil
}
