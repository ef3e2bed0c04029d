package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/replay"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// RunOptions controls an interactive session.
type RunOptions struct {
	// Store receives the recording when Record is set.
	Store *storage.Store

	// Record captures every tick's input so the session can be replayed.
	Record bool

	// ConfigYAML is stored with the recording so replays use the same field.
	ConfigYAML []byte
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	keyMapper  *KeyMapper
	recorder   *replay.Recorder
	loop       uint64
	gameState  core.GameState
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts RunOptions) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		loop:       newTickLoop(),
	}

	if opts.Record {
		m.recorder = replay.NewRecorder(game.ID(), cfg.Seed, cfg.TickRate, opts.ConfigYAML, cfg.ClockOrSystem())
		cfg.Clock = m.recorder
	}
	m.config = cfg

	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err != nil {
			log.Warn("screenshot failed", "error", err)
		} else {
			log.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to the menu is only offered while paused
	if m.inputFrame.Has(core.ActionBack) && m.gameState.Paused {
		m.backToMenu = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
// The game keeps its state: the field size does not depend on the window.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.recorder != nil {
		m.recorder.Record(m.inputFrame)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate, m.loop)
}

// saveScreenshot writes the current frame as text under ~/.snake/screenshots.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".snake", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create %s: %w", dir, err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Recording returns the captured session, if recording was enabled.
func (m Model) Recording() (replay.Recording, bool) {
	if m.recorder == nil {
		return replay.Recording{}, false
	}
	return m.recorder.Recording(), true
}

// RunResult describes how an interactive session ended.
type RunResult struct {
	BackToMenu  bool
	RecordingID int64 // Zero when nothing was recorded
}

// Run starts the Bubble Tea program with the given game.
// A recorded session is saved to opts.Store when the program exits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts RunOptions) (RunResult, error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return RunResult{}, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return RunResult{}, nil
	}

	result := RunResult{BackToMenu: m.BackToMenu()}
	if rec, ok := m.Recording(); ok && opts.Store != nil && len(rec.Frames) > 0 {
		id, err := opts.Store.SaveRecording(rec)
		if err != nil {
			return result, err
		}
		log.Info("recording saved", "id", id, "game", rec.GameID, "ticks", len(rec.Frames))
		result.RecordingID = id
	}

	return result, nil
}
