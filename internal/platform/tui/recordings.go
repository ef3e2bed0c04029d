package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// maxRecordings is the number of recordings the browser loads.
const maxRecordings = 200

// RecordingsKeyMap defines the key bindings for the recordings browser.
type RecordingsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Replay key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordingsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Replay, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RecordingsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Replay},
		{k.Delete, k.Back, k.Quit},
	}
}

// DefaultRecordingsKeyMap returns default key bindings.
func DefaultRecordingsKeyMap() RecordingsKeyMap {
	return RecordingsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Replay: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "replay"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RecordingsModel is the Bubble Tea model for the recordings browser.
type RecordingsModel struct {
	store      *storage.Store
	recordings []storage.RecordingInfo
	table      table.Model
	help       help.Model
	keys       RecordingsKeyMap
	width      int
	height     int
	status     string // Last error or notice
	quitting   bool
	goingBack  bool
	replayID   int64 // Set when the user picks a recording
}

// NewRecordingsModel creates a new recordings browser.
func NewRecordingsModel(store *storage.Store, width, height int) RecordingsModel {
	h := help.New()
	h.ShowAll = false

	m := RecordingsModel{
		store:  store,
		keys:   DefaultRecordingsKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()

	return m
}

// createTable creates a new table sized to the window.
func (m *RecordingsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Variant", Width: 16},
		{Title: "Ticks", Width: 8},
		{Title: "Length", Width: 9},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the recording list from the store.
func (m *RecordingsModel) load() {
	m.recordings = nil
	if m.store != nil {
		recs, err := m.store.ListRecordings(maxRecordings)
		if err != nil {
			m.status = err.Error()
			log.Warn("cannot list recordings", "error", err)
		} else {
			m.recordings = recs
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current recordings.
func (m *RecordingsModel) updateTableRows() {
	rows := make([]table.Row, len(m.recordings))
	for i, r := range m.recordings {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			variantTitle(r.GameID),
			fmt.Sprintf("%d", r.Ticks),
			r.Duration.Round(time.Second).String(),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
}

// variantTitle returns the display name of a registered variant.
func variantTitle(id string) string {
	for _, g := range registry.List() {
		if g.ID == id {
			return g.Title
		}
	}
	return id
}

// selectedRecording returns the recording under the cursor.
func (m RecordingsModel) selectedRecording() (storage.RecordingInfo, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.recordings) {
		return storage.RecordingInfo{}, false
	}
	return m.recordings[i], true
}

// Init initializes the recordings model.
func (m RecordingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the recordings browser.
func (m RecordingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Replay):
			if rec, ok := m.selectedRecording(); ok {
				m.replayID = rec.ID
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if rec, ok := m.selectedRecording(); ok && m.store != nil {
				if err := m.store.DeleteRecording(rec.ID); err != nil {
					m.status = err.Error()
				} else {
					m.status = fmt.Sprintf("Deleted recording %d", rec.ID)
				}
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the recordings browser.
func (m RecordingsModel) View() string {
	if m.quitting || m.goingBack || m.replayID != 0 {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("RECORDINGS", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerStyled(tableStyle.Render(m.renderTableContent()), m.width))
	b.WriteString("\n")

	if m.status != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m RecordingsModel) renderTableContent() string {
	if len(m.recordings) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No recordings yet.\nPlay with --record to capture a session.")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RecordingsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RecordingsModel) IsQuitting() bool {
	return m.quitting
}

// ReplayID returns the recording the user chose to replay, or zero.
func (m RecordingsModel) ReplayID() int64 {
	return m.replayID
}

// RecordingsResult holds the outcome of the recordings browser.
type RecordingsResult struct {
	ReplayID int64
	Back     bool
}

// RunRecordings runs the recordings browser.
func RunRecordings(store *storage.Store, width, height int) (RecordingsResult, error) {
	model := NewRecordingsModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return RecordingsResult{}, err
	}

	m, ok := finalModel.(RecordingsModel)
	if !ok {
		return RecordingsResult{}, nil
	}

	return RecordingsResult{ReplayID: m.ReplayID(), Back: m.IsGoingBack()}, nil
}
