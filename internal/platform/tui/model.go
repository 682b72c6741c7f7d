package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-ostrich/internal/audio"
	"github.com/vovakirdan/flappy-ostrich/internal/clock"
	"github.com/vovakirdan/flappy-ostrich/internal/config"
	"github.com/vovakirdan/flappy-ostrich/internal/core"
	"github.com/vovakirdan/flappy-ostrich/internal/games/ostrich"
	"github.com/vovakirdan/flappy-ostrich/internal/storage"
)

// Terminal size assumed when the host cannot measure one.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Options configures a Model.
type Options struct {
	Config config.OstrichConfig
	Store  *storage.Store // nil disables persistence
	Sound  audio.Player   // nil plays nothing
	Logger *log.Logger    // nil discards
	FPS    int            // Frame rate (default 60)
	Seed   int64          // 0 seeds from the clock
	Width  int            // Initial terminal size
	Height int
}

// Model is the Bubble Tea model for a Flappy Ostrich session.
type Model struct {
	game   *ostrich.Game
	screen *core.Screen
	delta  *clock.DeltaTracker
	keys   KeyMap
	help   help.Model
	sound  audio.Player
	store  *storage.Store
	logger *log.Logger
	fps    int

	scores     ScoreboardModel
	showScores bool
	quitting   bool
}

// NewModel creates a new Bubble Tea model with a fresh game.
func NewModel(opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = DefaultWidth, DefaultHeight
	}
	if opts.Sound == nil {
		opts.Sound = audio.Silent{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	gameOpts := []ostrich.Option{
		ostrich.WithSeed(opts.Seed),
		ostrich.WithErrorHandler(func(op string, err error) {
			logger.Warn("storage failure", "op", op, "error", err)
		}),
	}
	if opts.Store != nil {
		gameOpts = append(gameOpts, ostrich.WithStore(opts.Store))
	}

	h := help.New()
	h.Width = opts.Width

	return Model{
		game:   ostrich.New(opts.Config, gameOpts...),
		screen: core.NewScreen(opts.Width, playfieldHeight(opts.Height)),
		delta:  clock.NewDeltaTracker(clock.Millis(opts.Config.Loop.MaxDeltaMs)),
		keys:   DefaultKeyMap(),
		help:   h,
		sound:  opts.Sound,
		store:  opts.Store,
		logger: logger,
		fps:    opts.FPS,
		scores: NewScoreboardModel(opts.Store, opts.Width, opts.Height),
	}
}

// playfieldHeight leaves one row for the help bar.
func playfieldHeight(h int) int {
	return max(h-1, 1)
}

// Game exposes the underlying simulation.
func (m Model) Game() *ostrich.Game {
	return m.game
}

// Init starts the frame loop and the wall-clock schedules.
func (m Model) Init() tea.Cmd {
	cfg := m.game.Config()
	return tea.Batch(
		tickCmd(m.fps),
		timerCmd(timerCollectible, cfg.Pickups.CollectibleIntervalMs),
		timerCmd(timerPowerUp, cfg.Pickups.PowerUpIntervalMs),
		timerCmd(timerDifficulty, cfg.Difficulty.EvalIntervalMs),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showScores {
			return m.updateScores(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case TimerMsg:
		return m.handleTimer(msg.Timer)

	case scoresClosedMsg:
		m.showScores = false
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch a := m.keys.Action(msg); a {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionScores:
		if m.game.Status().IsPlaying() {
			return m, nil
		}
		m.scores.reload()
		m.showScores = true
		return m, nil
	case core.ActionNone:
		return m, nil
	default:
		m.handle(m.game.Apply(a, ""))
		return m, nil
	}
}

func (m Model) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.scores.Update(msg)
	if sb, ok := updated.(ScoreboardModel); ok {
		m.scores = sb
	}
	if m.scores.IsQuitting() {
		m.quitting = true
	}
	return m, cmd
}

// handleResize processes window resize events. The world is scaled to the
// terminal, so the run continues unchanged.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
	m.help.Width = msg.Width
	updated, _ := m.scores.Update(msg)
	if sb, ok := updated.(ScoreboardModel); ok {
		m.scores = sb
	}
	return m, nil
}

// handleTick advances the simulation by the measured frame delta.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if elapsed, ok := m.delta.Observe(now); ok {
		m.handle(m.game.Tick(elapsed))
	}
	return m, tickCmd(m.fps)
}

func (m Model) handleTimer(t timer) (tea.Model, tea.Cmd) {
	cfg := m.game.Config()
	switch t {
	case timerCollectible:
		m.handle(m.game.SpawnCollectible())
		return m, timerCmd(t, cfg.Pickups.CollectibleIntervalMs)
	case timerPowerUp:
		m.handle(m.game.SpawnPowerUp())
		return m, timerCmd(t, cfg.Pickups.PowerUpIntervalMs)
	case timerDifficulty:
		m.handle(m.game.ReevaluateDifficulty())
		return m, timerCmd(t, cfg.Difficulty.EvalIntervalMs)
	}
	return m, nil
}

// handle reacts to the events of a committed transition.
func (m Model) handle(snap ostrich.Snapshot) {
	audio.PlayEvents(m.sound, snap.Events)
	for _, ev := range snap.Events {
		switch ev.Kind {
		case ostrich.EventStart:
			m.logger.Info("run started", "difficulty", ev.Tier)
		case ostrich.EventGameOver:
			m.logger.Info("run ended", "score", ev.Value)
		case ostrich.EventNewHighScore:
			m.logger.Info("new high score", "score", ev.Value)
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".ostrich", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("ostrich_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showScores {
		return m.scores.View()
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program with a new model.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
