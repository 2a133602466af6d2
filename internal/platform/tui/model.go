package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-arena/internal/arena"
	"github.com/vovakirdan/tui-arena/internal/core"
	"github.com/vovakirdan/tui-arena/internal/storage"
)

// Model is the Bubble Tea model driving a single arena run.
type Model struct {
	game     *arena.Game
	screen   *core.Screen
	store    *storage.Store
	config   core.RuntimeConfig
	input    core.Input
	snap     arena.Snapshot
	quitting bool
	runSaved bool // Whether the run has been persisted for the current game over
}

// NewModel creates a new Bubble Tea model for the given run.
func NewModel(game *arena.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		config: cfg,
		input:  core.NewInput(),
		snap:   game.State(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Terminals report no key releases, so
// movement keys rely on auto-repeat and are cleared every tick, and the
// heavy attack toggles between press and release on the same key.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	switch msg.String() {
	case "w", "up":
		m.input.Up = true
	case "s", "down":
		m.input.Down = true
	case "a", "left":
		m.input.Left = true
	case "d", "right":
		m.input.Right = true
	case " ":
		m.input.Dash = true
	case "j":
		m.input.Light = true
	case "k":
		if m.snap.Charging {
			m.input.HeavyRelease = true
		} else {
			m.input.HeavyPress = true
		}
	case "l":
		m.input.Pulse = true
	case "t":
		m.input.TimeSlow = true
	case "1", "2", "3":
		m.input.MutatorChoice = int(msg.String()[0] - '1')
	case "y":
		m.input.EventAccept = true
	case "n":
		m.input.EventDecline = true
	case "r":
		if m.snap.Phase == arena.PhaseGameOver {
			m.input.Restart = true
		}
	case "p", "esc":
		m.input.Pause = true
	}

	return m, nil
}

// handleResize processes window resize events. The simulation runs in world
// space, so only the screen buffer needs resizing.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick advances the simulation one step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.game.Step(m.input, m.config.Dt())
	m.snap = m.game.State()

	// Persist the run on game over (once per run)
	if m.snap.Phase == arena.PhaseGameOver && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}
	if m.snap.Phase != arena.PhaseGameOver {
		m.runSaved = false
	}

	// Clear inputs for the next frame; held movement comes back via key repeat
	m.input.ClearOneShot()
	m.input.Up, m.input.Down, m.input.Left, m.input.Right = false, false, false, false

	return m, tickCmd(m.config.TickRate)
}

// saveRun records the finished run. Best effort: the game continues whether
// or not the write succeeds.
func (m *Model) saveRun() {
	if m.store == nil || m.snap.Score <= 0 {
		return
	}
	rec := storage.RunRecord{
		Score:      m.snap.Score,
		Wave:       m.snap.Wave,
		Level:      m.snap.Level,
		Kills:      m.snap.Kills,
		Duration:   int(m.snap.RunTime),
		Mutators:   m.snap.MutatorNames,
		DeathCause: m.snap.DeathCause,
	}
	if m.snap.Daily {
		rec.DailyDate = m.snap.DailyDate
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveRun(rec)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arena", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("arena_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for the given run.
func Run(game *arena.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
