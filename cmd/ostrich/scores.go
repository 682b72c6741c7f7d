package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-ostrich/internal/config"
	"github.com/vovakirdan/flappy-ostrich/internal/platform/tui"
	"github.com/vovakirdan/flappy-ostrich/internal/storage"
)

var (
	flagScoresLimit       int
	flagScoresInteractive bool
	flagScoresClear       bool
	flagScoresRecent      bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best runs, optionally for one difficulty.

Examples:
  ostrich scores
  ostrich scores --difficulty hard --limit 20
  ostrich scores --recent    # Latest runs instead of the best
  ostrich scores -i          # Browse in the interactive scoreboard
  ostrich scores --clear     # Delete all runs and the high score`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVarP(&flagScoresInteractive, "interactive", "i", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the latest runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded runs")
}

func runScores(_ *cobra.Command, _ []string) error {
	difficulty := ""
	if flagDifficulty != "" {
		tier, ok := config.ParseTier(flagDifficulty)
		if !ok {
			return fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", flagDifficulty)
		}
		difficulty = string(tier)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(); err != nil {
			return err
		}
		fmt.Println("All scores cleared.")
		return nil
	}

	if flagScoresInteractive {
		width, height := tui.DefaultWidth, tui.DefaultHeight
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		_, err := tui.RunScoreboard(store, width, height)
		return err
	}

	var scores []storage.ScoreEntry
	if flagScoresRecent {
		scores, err = store.RecentScores(flagScoresLimit)
	} else {
		scores, err = store.TopScores(difficulty, flagScoresLimit)
	}
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	title := "All difficulties"
	if difficulty != "" && !flagScoresRecent {
		title = difficulty
	}
	prefix := "High Scores - "
	if flagScoresRecent {
		prefix = "Recent Runs - "
	}
	heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	fmt.Println(heading.Render(prefix + title))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'ostrich play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-8s  %s\n", "Rank", "Score", "Tier", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %s\n", "----", "-----", "----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-8s  %s\n", i+1, entry.Score, entry.Difficulty, dateStr)
	}

	fmt.Println()
	if highScore, err := store.LoadHighScore(); err == nil {
		fmt.Printf("Best: %d\n", highScore)
	}

	if difficulty == "" {
		byTier, err := store.GetStatsByDifficulty()
		if err != nil || len(byTier) == 0 {
			return nil
		}
		names := make([]string, 0, len(byTier))
		for name := range byTier {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			return config.Tier(names[i]).Rank() < config.Tier(names[j]).Rank()
		})
		fmt.Println()
		for _, name := range names {
			st := byTier[name]
			fmt.Printf("  %-8s  runs %-4d  best %-6d  avg %.1f\n", name, st.RunsCount, st.BestScore, st.AvgScore)
		}
	}
	return nil
}
