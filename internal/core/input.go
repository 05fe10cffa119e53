package core

import (
	"strings"
	"time"
)

// Direction is one of the four movement directions.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every direction in a fixed order.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// Delta returns the unit step for the direction in screen coordinates (y grows down).
func (d Direction) Delta() Point {
	switch d {
	case DirUp:
		return Point{0, -1}
	case DirDown:
		return Point{0, 1}
	case DirLeft:
		return Point{-1, 0}
	case DirRight:
		return Point{1, 0}
	default:
		return Point{}
	}
}

// ParseDirection converts a direction token ("up", "ArrowUp", "w", ...) to a Direction.
// Unrecognized tokens return false and are meant to be ignored by callers.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "arrowup", "w":
		return DirUp, true
	case "down", "arrowdown", "s":
		return DirDown, true
	case "left", "arrowleft", "a":
		return DirLeft, true
	case "right", "arrowright", "d":
		return DirRight, true
	}
	return 0, false
}

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionStart          // Enter - start a session from idle
	ActionRestart        // R key - restart game after game over
	ActionFreeze         // Space - release every held direction
	ActionBack           // B, Escape - leave the game
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionStart:
		return "Start"
	case ActionRestart:
		return "Restart"
	case ActionFreeze:
		return "Freeze"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// KeyEdge is a single press or release of a direction.
type KeyEdge struct {
	Dir  Direction
	Down bool
}

// InputFrame collects everything the platform observed since the previous frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Edges holds direction presses and releases in arrival order.
	Edges []KeyEdge

	// Elapsed is the wall time covered by this frame. Zero means one nominal frame.
	Elapsed time.Duration
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
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Press records a direction press.
func (f *InputFrame) Press(d Direction) {
	f.Edges = append(f.Edges, KeyEdge{Dir: d, Down: true})
}

// Release records a direction release.
func (f *InputFrame) Release(d Direction) {
	f.Edges = append(f.Edges, KeyEdge{Dir: d, Down: false})
}

// Clear resets all actions and edges for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Edges = f.Edges[:0]
	f.Elapsed = 0
}
