package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-arena/internal/platform/tui"
	"github.com/vovakirdan/tui-arena/internal/storage"
)

var (
	flagDailyDate string
	flagBoard     bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top 10 runs, or the daily challenge board for a date.

Examples:
  arena scores
  arena scores --daily 2026-08-30
  arena scores --board`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagDailyDate, "daily", "", "Show the daily board for a date (YYYY-MM-DD)")
	scoresCmd.Flags().BoolVar(&flagBoard, "board", false, "Open the interactive leaderboard")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagBoard {
		width, height := terminalSize()
		if boardErr := tui.RunScoreboard(store, width, height); boardErr != nil {
			fmt.Fprintf(os.Stderr, "Error showing leaderboard: %v\n", boardErr)
			os.Exit(1)
		}
		return
	}

	var (
		runs  []storage.RunRecord
		title string
	)
	if flagDailyDate != "" {
		runs, err = store.DailyBoard(flagDailyDate, 10)
		title = fmt.Sprintf("Daily Challenge - %s", flagDailyDate)
	} else {
		runs, err = store.TopRuns(10)
		title = "Top Runs"
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'arena play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %-20s  %s\n", "Rank", "Score", "Wave", "Kills", "Death", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %-20s  %s\n", "----", "-----", "----", "-----", "-----", "----")

	for i, r := range runs {
		death := r.DeathCause
		if death == "" {
			death = "-"
		}
		fmt.Printf("  %-4d  %-8d  %-5d  %-6d  %-20s  %s\n",
			i+1, r.Score, r.Wave, r.Kills, death, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, statsErr := store.GetRunStats(); statsErr == nil && stats.RunsCount > 0 {
		fmt.Printf("Runs: %d  Best: %d  Best wave: %d  Total kills: %d\n",
			stats.RunsCount, stats.HighScore, stats.BestWave, stats.TotalKills)
		if !stats.LastPlayed.IsZero() {
			fmt.Printf("Last played: %s\n", formatAgo(stats.LastPlayed))
		}
	}
}

// formatAgo renders a timestamp as a rough relative duration.
func formatAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Format("2006-01-02")
	}
}
