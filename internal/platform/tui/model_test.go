package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappy-ostrich/internal/audio"
	"github.com/vovakirdan/flappy-ostrich/internal/config"
	"github.com/vovakirdan/flappy-ostrich/internal/core"
	"github.com/vovakirdan/flappy-ostrich/internal/games/ostrich"
	"github.com/vovakirdan/flappy-ostrich/internal/storage"
)

type cueRecorder struct {
	played []audio.Cue
}

func (r *cueRecorder) Play(c audio.Cue) { r.played = append(r.played, c) }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, sound audio.Player) Model {
	t.Helper()
	return NewModel(Options{
		Config: config.DefaultOstrichConfig(),
		Sound:  sound,
		Seed:   42,
		Width:  80,
		Height: 24,
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestKeyMapActions(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"w jumps", runes("w"), core.ActionJump},
		{"up jumps", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump},
		{"p pauses", runes("p"), core.ActionPause},
		{"esc pauses", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{"enter starts", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionStart},
		{"r starts", runes("r"), core.ActionStart},
		{"d cycles difficulty", runes("d"), core.ActionDifficulty},
		{"tab opens scores", tea.KeyMsg{Type: tea.KeyTab}, core.ActionScores},
		{"q quits", runes("q"), core.ActionQuit},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"x is unbound", runes("x"), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.Action(tt.msg); got != tt.want {
				t.Errorf("Action(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestModelStartsIdle(t *testing.T) {
	m := newTestModel(t, nil)

	if got := m.Game().Status().Phase; got != ostrich.PhaseIdle {
		t.Fatalf("phase = %v, want idle", got)
	}
	if view := m.View(); !strings.Contains(view, "FLAPPY OSTRICH") {
		t.Errorf("idle view missing title:\n%s", view)
	}
	if m.Init() == nil {
		t.Error("Init should schedule frames and timers")
	}
}

func TestModelStartAndJumpPlaySounds(t *testing.T) {
	rec := &cueRecorder{}
	m := newTestModel(t, rec)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.Game().Status().Phase; got != ostrich.PhasePlaying {
		t.Fatalf("phase after enter = %v, want playing", got)
	}

	m, _ = update(t, m, runes("w"))
	if len(rec.played) != 1 || rec.played[0] != audio.CueJump {
		t.Errorf("played = %v, want [jump]", rec.played)
	}
}

func TestModelTickUsesFrameDelta(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	startY := m.Game().Snapshot().State.Player.Y

	base := time.Now()
	m, cmd := update(t, m, TickMsg(base))
	if cmd == nil {
		t.Fatal("tick should schedule the next frame")
	}
	if y := m.Game().Snapshot().State.Player.Y; y != startY {
		t.Fatalf("first frame moved the player: %v -> %v", startY, y)
	}

	m, _ = update(t, m, TickMsg(base.Add(16*time.Millisecond)))
	if y := m.Game().Snapshot().State.Player.Y; y <= startY {
		t.Errorf("gravity did not pull the player down: %v -> %v", startY, y)
	}

	// a stalled frame is dropped
	before := m.Game().Snapshot().State.Player.Y
	m, _ = update(t, m, TickMsg(base.Add(5*time.Second)))
	if y := m.Game().Snapshot().State.Player.Y; y != before {
		t.Errorf("stalled frame moved the player: %v -> %v", before, y)
	}
}

func TestModelTimers(t *testing.T) {
	m := newTestModel(t, nil)

	m, cmd := update(t, m, TimerMsg{Timer: timerCollectible})
	if cmd == nil {
		t.Error("timer should re-arm")
	}
	if n := len(m.Game().Snapshot().State.Collectibles); n != 0 {
		t.Errorf("collectible spawned while idle: %d", n)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, TimerMsg{Timer: timerCollectible})
	m, _ = update(t, m, TimerMsg{Timer: timerPowerUp})
	m, _ = update(t, m, TimerMsg{Timer: timerDifficulty})

	snap := m.Game().Snapshot()
	if len(snap.State.Collectibles) != 1 {
		t.Errorf("collectibles = %d, want 1", len(snap.State.Collectibles))
	}
	if len(snap.State.PowerUps) != 1 {
		t.Errorf("power-ups = %d, want 1", len(snap.State.PowerUps))
	}
}

func TestModelDisabledTimer(t *testing.T) {
	if cmd := timerCmd(timerPowerUp, 0); cmd != nil {
		t.Error("zero period should disable the timer")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, nil)
	m, cmd := update(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestModelScoreboardToggle(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.showScores {
		t.Fatal("tab should open the scoreboard while idle")
	}
	if view := m.View(); !strings.Contains(view, "HIGH SCORES") {
		t.Errorf("scoreboard view missing title:\n%s", view)
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("back should return a command")
	}
	msg := cmd()
	if _, ok := msg.(scoresClosedMsg); !ok {
		t.Fatalf("back produced %T, want scoresClosedMsg", msg)
	}
	m, _ = update(t, m, msg)
	if m.showScores {
		t.Error("scoreboard still shown after back")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.showScores {
		t.Error("scoreboard opened during a run")
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.screen.Width() != 120 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d, want 120x39", m.screen.Width(), m.screen.Height())
	}
	if got := m.Game().Status().Phase; got != ostrich.PhasePlaying {
		t.Errorf("resize changed phase to %v", got)
	}
}

func TestModelLoadsStoredHighScore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	if err := store.SaveHighScore(17); err != nil {
		t.Fatalf("SaveHighScore() error = %v", err)
	}

	m := NewModel(Options{Config: config.DefaultOstrichConfig(), Store: store, Width: 80, Height: 24})
	if got := m.Game().Status().HighScore; got != 17 {
		t.Errorf("high score = %d, want 17", got)
	}
}
