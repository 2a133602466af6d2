package main

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-arena/internal/arena"
	"github.com/vovakirdan/tui-arena/internal/platform/tui"
)

var flagDate string

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Play the daily challenge",
	Long: `Play the seeded daily challenge run.

Every player gets the same enemy waves, mutator drafts, and contracts
for a given date, so scores on the daily board are directly comparable.
The --seed flag is ignored; the seed is derived from the date.

Examples:
  arena daily
  arena daily --date 2026-08-29`,
	Run: runDaily,
}

func init() {
	dailyCmd.Flags().StringVar(&flagDate, "date", "", "Challenge date (YYYY-MM-DD, default today)")
}

func runDaily(_ *cobra.Command, _ []string) {
	date := flagDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if !datePattern.MatchString(date) {
		fmt.Fprintf(os.Stderr, "Error: invalid date %q, expected YYYY-MM-DD\n", date)
		os.Exit(1)
	}

	game := arena.NewDaily(loadArenaConfig(), date)
	store := openStore()

	runErr := tui.Run(game, store, runtimeConfig())

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
