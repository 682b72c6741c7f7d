package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-ostrich/internal/platform/web"
	"github.com/vovakirdan/flappy-ostrich/internal/storage"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the WebSocket server",
	Long: `Start an HTTP server for browser and bot clients.

Endpoints:
  /ws       - One game per connection. Send {"t":"jump"}, {"t":"pause"},
              {"t":"start"} or {"t":"difficulty","d":{"tier":"hard"}};
              state arrives as msgpack binary frames.
  /scores   - Top runs as JSON (?difficulty=hard&limit=10)
  /healthz  - Liveness probe

Examples:
  ostrich web
  ostrich web --addr :9000 --fps 30`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address")
}

func runWeb(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger("ostrich-web", os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	opts := web.Options{Config: cfg, Store: store, Logger: logger}
	if cmd.Flags().Changed("fps") {
		opts.FPS = flagFPS
	}
	server := web.NewServer(opts)

	fmt.Printf("Starting Flappy Ostrich web server on %s\n", flagWebAddr)
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.ListenAndServe(ctx, flagWebAddr)
}
