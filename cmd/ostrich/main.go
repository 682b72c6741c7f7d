// ostrich is an endless side-scroller: guide the ostrich through gaps in
// the obstacles, grab coins and power-ups, and beat your high score.
//
// Usage:
//
//	ostrich play             - Play in this terminal
//	ostrich serve            - Start SSH server for remote play
//	ostrich web              - Start WebSocket server for browser clients
//	ostrich scores           - Show high scores
//	ostrich config           - Print or check the game configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.ostrich/scores.db)
//	--config <path>       - Use a custom game config YAML
//	--difficulty <tier>   - Starting difficulty: easy, medium, hard
//	--log-level <level>   - debug, info, warn, error (default: info)
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ostrich",
	Short: "Flappy Ostrich - an endless runner for your terminal",
	Long: `Flappy Ostrich is an endless side-scroller. Jump through the gaps,
collect coins and power-ups, and survive as the world speeds up.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  web      - Start WebSocket server for browser clients
  scores   - View high scores
  config   - Print or check the game configuration

Examples:
  ostrich play
  ostrich play --difficulty hard
  ostrich serve --ssh :2222
  ostrich web --addr :8080
  ostrich scores --difficulty easy`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.ostrich/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Starting difficulty: easy, medium, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}
