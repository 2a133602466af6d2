package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-arena/internal/arena"
	"github.com/vovakirdan/tui-arena/internal/config"
	"github.com/vovakirdan/tui-arena/internal/core"
	"github.com/vovakirdan/tui-arena/internal/platform/tui"
	"github.com/vovakirdan/tui-arena/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start an arena run.

Controls:
  WASD/Arrows - Move
  Space       - Dash
  J           - Light attack
  K           - Heavy attack (press to charge, press again to release)
  L           - Pulse attack
  T           - Time slow
  1-3         - Pick a mutator during the draft
  Y/N         - Accept/decline a wave event
  P/Esc       - Pause
  R           - Restart (after game over)
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - More health and energy, gentler enemy scaling
  normal - Baseline tuning
  hard   - Less health, faster and harder-hitting enemies

Examples:
  arena play
  arena play --difficulty hard
  arena play --seed 42
  arena play --config ./my-arena.yaml`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom arena config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

// terminalSize reports the attached terminal's dimensions, with fallbacks.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

// runtimeConfig builds the runtime config from global flags and terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := terminalSize()
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// loadArenaConfig loads the arena config and applies the difficulty preset.
func loadArenaConfig() config.ArenaConfig {
	cfg, err := config.LoadArena(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load config: %v\n", err)
		cfg = config.DefaultArenaConfig()
	}
	if flagDifficulty != "" {
		config.ApplyArenaPreset(&cfg, config.DifficultyPreset(flagDifficulty))
	}
	return cfg
}

// openStore opens the runs database, or returns nil if unavailable.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage; the run still works
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, _ []string) {
	rtCfg := runtimeConfig()
	if rtCfg.Seed == 0 {
		rtCfg.Seed = time.Now().UnixNano()
	}

	game := arena.New(loadArenaConfig(), core.NewSeededRand(rtCfg.Seed))
	store := openStore()

	runErr := tui.Run(game, store, rtCfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
