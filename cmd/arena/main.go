// arena is a terminal arena roguelike: survive escalating waves of enemies,
// draft mutators between waves, and chase the daily challenge leaderboard.
//
// Usage:
//
//	arena play               - Start a run
//	arena daily              - Play today's seeded daily challenge
//	arena scores             - Show the leaderboard
//	arena serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible runs
//	--db <path>     - Set database path (default: ~/.arena/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arena",
	Short: "Arena - wave survival roguelike in your terminal",
	Long: `Arena is a terminal-based wave survival roguelike. Fight off
escalating waves of enemies in a shrinking circle of themed levels,
draft run-altering mutators between waves, and take on optional
wave contracts for bonus rewards.

Available commands:
  play     - Start a run
  daily    - Play today's seeded daily challenge
  scores   - View the leaderboard
  serve    - Start SSH server for remote play

Examples:
  arena play
  arena play --difficulty hard
  arena daily
  arena scores --board
  arena serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arena/runs.db", "Path to runs database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
