package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// actionBinding pairs a game action with its Bubble Tea key binding.
type actionBinding struct {
	action  core.Action
	binding key.Binding
}

// KeyMapper translates Bubble Tea key messages to game actions.
// Bindings are built from core.DefaultBindings so the tcell frontend and
// this one accept the same keys. It also implements help.KeyMap.
type KeyMapper struct {
	bindings []actionBinding
}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	km := &KeyMapper{}
	for _, b := range core.DefaultBindings {
		km.bindings = append(km.bindings, actionBinding{
			action: b.Action,
			binding: key.NewBinding(
				key.WithKeys(b.Keys...),
				key.WithHelp(helpKeys(b.Keys), b.Help),
			),
		})
	}
	return km
}

// helpKeys joins key names for display, showing space as "space".
func helpKeys(keys []string) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		names[i] = k
	}
	return strings.Join(names, "/")
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	for _, b := range km.bindings {
		if key.Matches(msg, b.binding) {
			return b.action, b.action == core.ActionQuit
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// Binding returns the key binding for an action.
func (km *KeyMapper) Binding(action core.Action) (key.Binding, bool) {
	for _, b := range km.bindings {
		if b.action == action {
			return b.binding, true
		}
	}
	return key.Binding{}, false
}

// ShortHelp implements help.KeyMap.
func (km *KeyMapper) ShortHelp() []key.Binding {
	var out []key.Binding
	for _, a := range []core.Action{core.ActionPause, core.ActionBack, core.ActionQuit} {
		if b, ok := km.Binding(a); ok {
			out = append(out, b)
		}
	}
	return out
}

// FullHelp implements help.KeyMap.
func (km *KeyMapper) FullHelp() [][]key.Binding {
	steer := make([]key.Binding, 0, 4)
	for _, a := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight} {
		if b, ok := km.Binding(a); ok {
			steer = append(steer, b)
		}
	}
	return [][]key.Binding{steer, km.ShortHelp()}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionRecordings
)

// MenuKeyMap defines the variant picker bindings.
type MenuKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Back       key.Binding
	Recordings key.Binding
	Quit       key.Binding
}

// ShortHelp implements help.KeyMap.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Recordings, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns the default menu bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("w", "up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("s", "down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
		),
		Recordings: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "recordings"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKeyToMenuAction translates a key to a menu action.
func (k MenuKeyMap) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch {
	case key.Matches(msg, k.Quit):
		return MenuActionQuit
	case key.Matches(msg, k.Up):
		return MenuActionUp
	case key.Matches(msg, k.Down):
		return MenuActionDown
	case key.Matches(msg, k.Select):
		return MenuActionSelect
	case key.Matches(msg, k.Back):
		return MenuActionBack
	case key.Matches(msg, k.Recordings):
		return MenuActionRecordings
	}
	return MenuActionNone
}
