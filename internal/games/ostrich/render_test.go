package ostrich

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/flappy-ostrich/internal/core"
)

func TestRenderOverlays(t *testing.T) {
	g, _ := newTestGame(t)
	dst := core.NewScreen(80, 24)

	g.Render(dst)
	if out := dst.String(); !strings.Contains(out, "FLAPPY OSTRICH") || !strings.Contains(out, "MEDIUM") {
		t.Errorf("idle screen missing title:\n%s", out)
	}

	g.Start()
	g.TogglePause()
	g.Render(dst)
	if !strings.Contains(dst.String(), "PAUSED") {
		t.Error("paused overlay missing")
	}

	g.TogglePause()
	g.state.Player.Y = 600
	g.Tick(frame)
	g.Render(dst)
	if !strings.Contains(dst.String(), "GAME OVER") {
		t.Error("game over overlay missing")
	}
}

func TestRenderWorld(t *testing.T) {
	g, clk := newTestGame(t)
	g.Start()
	g.state.Obstacles = []Obstacle{{ID: 1, X: 400, Width: 60, GapTop: 200, BaseGapTop: 200, Gap: 180}}
	g.state.Collectibles = []Collectible{{ID: 1, X: 600, Y: 300, Size: 30}}
	g.state.Active = Activate(nil, PowerUpSlowMotion, clk.Now(), 5*time.Second)

	dst := core.NewScreen(80, 24)
	g.Render(dst)

	if !strings.Contains(dst.Row(0), "Score: 0") {
		t.Errorf("HUD missing score: %q", dst.Row(0))
	}
	if !strings.Contains(dst.Row(0), "~5s") {
		t.Errorf("HUD missing active power-up: %q", dst.Row(0))
	}

	// World 800x600 on 80x24: x scales by 0.1, y by 0.04.
	if r := dst.Get(16, 12); r != PlayerBodyChar {
		t.Errorf("player cell = %q, expected body", r)
	}
	if r := dst.Get(41, 3); r != ObstacleChar {
		t.Errorf("obstacle above gap = %q", r)
	}
	if r := dst.Get(41, 10); r == ObstacleChar {
		t.Error("gap should be open")
	}
	if r := dst.Get(60, 12); r != CollectibleChar {
		t.Errorf("collectible cell = %q", r)
	}
	if r := dst.Get(0, 16); r != HorizonChar {
		t.Errorf("horizon cell = %q", r)
	}
}

func TestDrawEmptyScreen(t *testing.T) {
	g, _ := newTestGame(t)
	Draw(core.NewScreen(0, 0), g.Snapshot(), g.Config())
}
