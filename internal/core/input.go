package core

import (
	"fmt"
	"slices"
	"sort"
)

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - steer up
	ActionDown           // S, Down arrow - steer down
	ActionLeft           // A, Left arrow - steer left
	ActionRight          // D, Right arrow - steer right
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B - go back to menu
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P, Escape - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// IsDirection reports whether a is one of the four steering actions.
func (a Action) IsDirection() bool {
	return a >= ActionUp && a <= ActionRight
}

// ParseAction is the inverse of Action.String.
func ParseAction(name string) (Action, error) {
	for a := ActionNone; a <= ActionPause; a++ {
		if a.String() == name {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("unknown action %q", name)
}

// Binding ties an action to the key names that trigger it. Names follow
// the Bubble Tea convention ("up", "esc", "ctrl+c", or the rune itself)
// so every frontend shares one set of bindings.
type Binding struct {
	Action Action
	Keys   []string
	Help   string // Short label for help bars
}

// DefaultBindings are the in-game key bindings, in help-bar order.
var DefaultBindings = []Binding{
	{Action: ActionUp, Keys: []string{"w", "up"}, Help: "up"},
	{Action: ActionDown, Keys: []string{"s", "down"}, Help: "down"},
	{Action: ActionLeft, Keys: []string{"a", "left"}, Help: "left"},
	{Action: ActionRight, Keys: []string{"d", "right"}, Help: "right"},
	{Action: ActionPause, Keys: []string{"p", "esc", " "}, Help: "pause"},
	{Action: ActionBack, Keys: []string{"b"}, Help: "menu (paused)"},
	{Action: ActionConfirm, Keys: []string{"enter"}, Help: "confirm"},
	{Action: ActionQuit, Keys: []string{"q", "ctrl+c"}, Help: "quit"},
}

// MapKeyName maps a key name to a game action using DefaultBindings.
func MapKeyName(key string) (action Action, isQuit bool) {
	for _, b := range DefaultBindings {
		if slices.Contains(b.Keys, key) {
			return b.Action, b.Action == ActionQuit
		}
	}
	return ActionNone, false
}

// InputFrame represents the input state for a single simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool

	// Steer holds directional presses in arrival order, repeats included.
	// Games apply them one by one so the last legal turn wins.
	Steer []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
	if a.IsDirection() {
		f.Steer = append(f.Steer, a)
	}
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	for _, v := range f.Actions {
		if v {
			return false
		}
	}
	return true
}

// List returns the triggered actions in ascending order.
// Used when a frame has to be serialized.
func (f InputFrame) List() []Action {
	out := make([]Action, 0, len(f.Actions))
	for a, v := range f.Actions {
		if v {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Sequence returns the frame's presses for serialization: other actions in
// ascending order, then the directional presses in arrival order.
// Setting them back in this order rebuilds an equivalent frame.
func (f InputFrame) Sequence() []Action {
	out := make([]Action, 0, len(f.Actions)+len(f.Steer))
	for _, a := range f.List() {
		if !a.IsDirection() {
			out = append(out, a)
		}
	}
	return append(out, f.Steer...)
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Steer = f.Steer[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Steer = slices.Clone(f.Steer)
	return clone
}
