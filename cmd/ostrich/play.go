package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-ostrich/internal/audio"
	"github.com/vovakirdan/flappy-ostrich/internal/platform/tui"
	"github.com/vovakirdan/flappy-ostrich/internal/storage"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start Flappy Ostrich in the current terminal.

Controls:
  Space/Up/W  - Jump
  P/Esc       - Pause / resume
  Enter/R     - Start or restart a run
  D           - Cycle difficulty (before a run)
  Tab         - Scoreboard (before a run)
  Ctrl+S      - Save a text screenshot
  Q/Ctrl+C    - Quit

Examples:
  ostrich play
  ostrich play --difficulty easy
  ostrich play --mute
  ostrich play --config ./my-ostrich.yaml --log-file ostrich.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal, so logs only go to --log-file.
	logger, closeLog, err := newLogger("ostrich", io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := tui.DefaultWidth, tui.DefaultHeight
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	} else {
		defer store.Close()
	}

	var sound audio.Player = audio.Silent{}
	if !flagMute {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			logger.Warn("audio unavailable", "error", err)
		}
		if sm.Initialized() {
			defer sm.Cleanup()
			sound = sm
		}
	}

	if err := tui.Run(tui.Options{
		Config: cfg,
		Store:  store,
		Sound:  sound,
		Logger: logger,
		FPS:    flagFPS,
		Seed:   flagSeed,
		Width:  width,
		Height: height,
	}); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
