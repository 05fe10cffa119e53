package redlight

import (
	"time"

	"github.com/vovakirdan/redlight-arcade/internal/core"
)

// TickOutcome classifies one movement tick.
type TickOutcome int

const (
	Continuing TickOutcome = iota
	Eliminated
	Reached
)

// String returns a lowercase name for the outcome.
func (o TickOutcome) String() string {
	switch o {
	case Continuing:
		return "continuing"
	case Eliminated:
		return "eliminated"
	case Reached:
		return "reached"
	default:
		return "unknown"
	}
}

// Player is the controlled figure.
type Player struct {
	Pos   core.Point
	Alive bool
}

// Engine moves the player and decides the result of each tick.
type Engine struct {
	bounds     core.Bounds
	finish     core.Rect
	start      core.Point
	speed      int
	tickPeriod time.Duration

	player Player
}

// NewEngine creates an engine with the player alive at start.
// speed is in playfield units per tickPeriod.
func NewEngine(bounds core.Bounds, finish core.Rect, start core.Point, speed int, tickPeriod time.Duration) *Engine {
	e := &Engine{
		bounds:     bounds,
		finish:     finish,
		start:      start,
		speed:      speed,
		tickPeriod: tickPeriod,
	}
	e.Reset()
	return e
}

// Reset puts the player back at the start, alive.
func (e *Engine) Reset() {
	e.player = Player{Pos: e.bounds.Clamp(e.start), Alive: true}
}

// Player returns a copy of the player.
func (e *Engine) Player() Player {
	return e.player
}

// Advance runs one tick covering dt.
//
// Holding any direction while the light is red eliminates the player even
// if the move would be clamped away or opposite keys cancel out. An
// eliminated player stays at the last legal position. Elimination is
// checked before the finish zone.
func (e *Engine) Advance(in InputState, phase Phase, dt time.Duration) TickOutcome {
	if !e.player.Alive {
		return Eliminated
	}

	step := e.step(dt)
	var delta core.Point
	for _, d := range core.Directions {
		if in.Held(d) {
			u := d.Delta()
			delta = delta.Add(core.Point{X: u.X * step, Y: u.Y * step})
		}
	}
	next := e.bounds.Clamp(e.player.Pos.Add(delta))

	if phase == PhaseRed && in.Any() {
		e.player.Alive = false
		return Eliminated
	}

	e.player.Pos = next
	if e.finish.Interior(next.X, next.Y) {
		return Reached
	}
	return Continuing
}

// step converts dt to a distance. One full tick period moves exactly speed units.
func (e *Engine) step(dt time.Duration) int {
	if dt <= 0 || e.tickPeriod <= 0 {
		return 0
	}
	return int(int64(e.speed) * int64(dt) / int64(e.tickPeriod))
}
