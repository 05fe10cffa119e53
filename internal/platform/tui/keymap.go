package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/redlight-arcade/internal/core"
)

// GameKeyMap defines the in-game key bindings.
type GameKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Start      key.Binding
	Restart    key.Binding
	Freeze     key.Binding
	Back       key.Binding
	Quit       key.Binding
	Screenshot key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Freeze, k.Start, k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Freeze},
		{k.Start, k.Restart, k.Back, k.Quit, k.Screenshot},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("up/w", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("down/s", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("left/a", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("right/d", "move right"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Freeze: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "stop"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "leave"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game input.
//
// Terminals report key presses and auto-repeats but never releases, so a
// direction counts as held until no press for it has arrived for the
// release delay. Freeze releases everything at once.
type KeyMapper struct {
	keys     GameKeyMap
	release  time.Duration
	held     [len(core.Directions)]bool
	lastSeen [len(core.Directions)]time.Time
}

// NewKeyMapper creates a key mapper with default bindings.
func NewKeyMapper(release time.Duration) *KeyMapper {
	return &KeyMapper{
		keys:    DefaultGameKeyMap(),
		release: release,
	}
}

// Keys returns the bindings in use.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to an action or a direction.
// isDir is true when the key is a movement key.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, dir core.Direction, isDir bool) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.ActionQuit, 0, false
	case key.Matches(msg, km.keys.Back):
		return core.ActionBack, 0, false
	case key.Matches(msg, km.keys.Start):
		return core.ActionStart, 0, false
	case key.Matches(msg, km.keys.Restart):
		return core.ActionRestart, 0, false
	case key.Matches(msg, km.keys.Freeze):
		return core.ActionFreeze, 0, false
	case key.Matches(msg, km.keys.Up):
		return core.ActionNone, core.DirUp, true
	case key.Matches(msg, km.keys.Down):
		return core.ActionNone, core.DirDown, true
	case key.Matches(msg, km.keys.Left):
		return core.ActionNone, core.DirLeft, true
	case key.Matches(msg, km.keys.Right):
		return core.ActionNone, core.DirRight, true
	}
	return core.ActionNone, 0, false
}

// MapKeyToFrame records a key press at now into frame.
// Returns the action so the caller can handle quit and back.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, now time.Time, frame *core.InputFrame) core.Action {
	action, dir, isDir := km.MapKey(msg)
	if isDir {
		if !km.held[dir] {
			frame.Press(dir)
			km.held[dir] = true
		}
		km.lastSeen[dir] = now
		return core.ActionNone
	}

	// Freeze closes every held direction with a release edge, so presses
	// earlier in the same frame do not survive it
	if action == core.ActionFreeze {
		for _, d := range core.Directions {
			if km.held[d] {
				km.held[d] = false
				frame.Release(d)
			}
		}
	}
	if action != core.ActionNone {
		frame.Set(action)
	}
	return action
}

// Expire adds a release to frame for every direction not repeated within the release delay.
func (km *KeyMapper) Expire(now time.Time, frame *core.InputFrame) {
	for _, d := range core.Directions {
		if km.held[d] && now.Sub(km.lastSeen[d]) >= km.release {
			km.held[d] = false
			frame.Release(d)
		}
	}
}

// Held reports whether the mapper currently treats d as held.
func (km *KeyMapper) Held(d core.Direction) bool {
	return d.Valid() && km.held[d]
}
