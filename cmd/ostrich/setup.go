package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-ostrich/internal/config"
)

// loadConfig resolves the game configuration and applies --difficulty.
func loadConfig() (config.OstrichConfig, error) {
	cfg, err := config.LoadOstrich(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		if _, ok := config.ParseTier(flagDifficulty); !ok {
			return cfg, fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", flagDifficulty)
		}
		config.ApplyDifficultyPreset(&cfg, flagDifficulty)
	}
	return cfg, nil
}

// newLogger builds the process logger. fallback receives logs when no
// --log-file is given; the returned closer releases the file.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(strings.ToLower(flagLogLevel))
	if err != nil {
		return nil, nil, fmt.Errorf("bad --log-level: %w", err)
	}

	w, closer := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}
