package engine

import (
	"context"
	"testing"
	"time"

	"github.com/vovakirdan/flappy-ostrich/internal/clock"
	"github.com/vovakirdan/flappy-ostrich/internal/config"
	"github.com/vovakirdan/flappy-ostrich/internal/core"
	"github.com/vovakirdan/flappy-ostrich/internal/games/ostrich"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// quietConfig disables the wall-clock timers so tests only see what they drive.
func quietConfig() config.OstrichConfig {
	cfg := config.DefaultOstrichConfig()
	cfg.Pickups.CollectibleIntervalMs = 0
	cfg.Pickups.PowerUpIntervalMs = 0
	cfg.Difficulty.EvalIntervalMs = 0
	return cfg
}

func startEngine(t *testing.T, cfg config.OstrichConfig) (*Engine, *clock.ManualSource, <-chan ostrich.Snapshot, context.Context) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

	game := ostrich.New(cfg, ostrich.WithClock(clock.NewManual(epoch)), ostrich.WithSeed(9))
	src := clock.NewManualSource()
	e := New(game, Options{Source: src})
	sub := e.Subscribe()

	done := make(chan struct{})
	go func() {
		e.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		e.Stop()
		<-done
		cancel()
	})
	return e, src, sub, ctx
}

func waitFor(t *testing.T, ch <-chan ostrich.Snapshot, cond func(ostrich.Snapshot) bool) ostrich.Snapshot {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case snap, ok := <-ch:
			if !ok {
				t.Fatal("subscription closed")
			}
			if cond(snap) {
				return snap
			}
		case <-deadline:
			t.Fatal("timed out waiting for snapshot")
		}
	}
}

func TestEngineAppliesCommands(t *testing.T) {
	e, _, sub, _ := startEngine(t, quietConfig())

	waitFor(t, sub, func(s ostrich.Snapshot) bool { return s.Status.Phase == ostrich.PhaseIdle })

	if !e.Send(Command{Action: core.ActionDifficulty, Difficulty: "hard"}) {
		t.Fatal("send failed")
	}
	e.Send(Command{Action: core.ActionStart})
	snap := waitFor(t, sub, func(s ostrich.Snapshot) bool { return s.Status.Phase == ostrich.PhasePlaying })
	if snap.Selected != config.TierHard {
		t.Errorf("selected = %s, expected hard", snap.Selected)
	}

	e.Send(Command{Action: core.ActionPause})
	waitFor(t, sub, func(s ostrich.Snapshot) bool { return s.Status.Phase == ostrich.PhasePaused })
}

func TestEngineTicksOnFrames(t *testing.T) {
	e, src, sub, ctx := startEngine(t, quietConfig())

	e.Send(Command{Action: core.ActionStart})
	waitFor(t, sub, func(s ostrich.Snapshot) bool { return s.Status.Phase == ostrich.PhasePlaying })

	for i := 0; i < 3; i++ {
		if !src.Emit(ctx, epoch.Add(time.Duration(i)*16*time.Millisecond)) {
			t.Fatal("emit failed")
		}
	}
	snap := waitFor(t, sub, func(s ostrich.Snapshot) bool { return s.State.Player.Y > 300 })
	if len(snap.State.Obstacles) == 0 {
		t.Error("ticks should spawn the first obstacle")
	}
}

func TestEngineTimersSpawnPickups(t *testing.T) {
	cfg := quietConfig()
	cfg.Pickups.CollectibleIntervalMs = 5
	e, _, sub, _ := startEngine(t, cfg)

	e.Send(Command{Action: core.ActionStart})
	waitFor(t, sub, func(s ostrich.Snapshot) bool { return len(s.State.Collectibles) > 0 })
}

func TestEngineStop(t *testing.T) {
	game := ostrich.New(quietConfig(), ostrich.WithSeed(1))
	e := New(game, Options{Source: clock.NewManualSource()})
	sub := e.Subscribe()

	done := make(chan struct{})
	go func() {
		e.Run(context.Background())
		close(done)
	}()

	e.Stop()
	e.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}

	for range sub {
	}
	if e.Send(Command{Action: core.ActionJump}) {
		t.Error("Send after Stop should report failure")
	}
}

func TestSendDropsWhenFull(t *testing.T) {
	game := ostrich.New(quietConfig(), ostrich.WithSeed(1))
	e := New(game, Options{QueueSize: 1})

	if !e.Send(Command{Action: core.ActionStart}) {
		t.Fatal("first send should fit")
	}
	if e.Send(Command{Action: core.ActionJump}) {
		t.Error("second send should be dropped")
	}
}
