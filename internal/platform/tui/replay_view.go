package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/replay"
)

const maxReplaySpeed = 8

// ReplayKeyMap defines the key bindings for the replay viewer.
type ReplayKeyMap struct {
	Pause  key.Binding
	Faster key.Binding
	Slower key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Faster, k.Slower, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReplayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultReplayKeyMap returns default key bindings.
func DefaultReplayKeyMap() ReplayKeyMap {
	return ReplayKeyMap{
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "=", "right"),
			key.WithHelp("+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-", "left"),
			key.WithHelp("-", "slower"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplayModel plays a recording back in the terminal.
type ReplayModel struct {
	game     registry.Game
	player   *replay.Player
	screen   *core.Screen
	help     help.Model
	keys     ReplayKeyMap
	width    int
	height   int
	speed    int
	loop     uint64
	paused   bool
	quitting bool
}

// NewReplayModel creates a replay viewer. The game must match the recording's variant.
func NewReplayModel(game registry.Game, rec replay.Recording, width, height int) ReplayModel {
	return ReplayModel{
		game:   game,
		player: replay.NewPlayer(rec),
		screen: core.NewScreen(width, max(1, height-1)),
		help:   help.New(),
		keys:   DefaultReplayKeyMap(),
		width:  width,
		height: height,
		speed:  1,
		loop:   newTickLoop(),
	}
}

// Init resets the game from the recording and starts the playback loop.
func (m ReplayModel) Init() tea.Cmd {
	m.game.Reset(m.player.RuntimeConfig(m.width, m.height))
	return m.tick()
}

func (m ReplayModel) tick() tea.Cmd {
	rate := m.player.Recording().TickRate
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}
	return tickCmd(rate*m.speed, m.loop)
}

// Update handles messages for the replay viewer.
func (m ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
		case key.Matches(msg, m.keys.Faster):
			m.speed = min(maxReplaySpeed, m.speed*2)
		case key.Matches(msg, m.keys.Slower):
			m.speed = max(1, m.speed/2)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screen.Resize(msg.Width, max(1, msg.Height-1))
		m.help.Width = msg.Width
		if r, ok := m.game.(registry.Resizer); ok {
			r.Resize(msg.Width, msg.Height)
		}
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		if !m.paused {
			if in, ok := m.player.Next(); ok {
				m.game.Step(in)
			}
		}
		return m, m.tick()
	}

	return m, nil
}

// View renders the game and a status line.
func (m ReplayModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	played, total := m.player.Progress()
	status := fmt.Sprintf(" Replay #%d  %d/%d  %dx", m.player.Recording().ID, played, total, m.speed)
	switch {
	case m.player.Done():
		status += "  [finished]"
	case m.paused:
		status += "  [paused]"
	}

	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + statusStyle.Render(status+"  "+m.help.View(m.keys))
}

// RunReplay plays a recording in the terminal until the user quits.
func RunReplay(game registry.Game, rec replay.Recording, width, height int) error {
	p := tea.NewProgram(
		NewReplayModel(game, rec, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
