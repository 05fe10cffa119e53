package redlight

import (
	"testing"
	"time"

	"github.com/vovakirdan/redlight-arcade/internal/core"
)

const tick = 30 * time.Millisecond

func newTestEngine() *Engine {
	// Same geometry as the default field
	return NewEngine(
		core.Inset(600, 600, 20),
		core.NewRect(550, 50, 30, 100),
		core.Point{X: 50, Y: 400},
		3,
		tick,
	)
}

func held(dirs ...core.Direction) InputState {
	var in InputState
	for _, d := range dirs {
		in[d] = true
	}
	return in
}

func TestEngineGreenMovement(t *testing.T) {
	tests := []struct {
		name  string
		in    InputState
		ticks int
		want  core.Point
	}{
		{"right 10 ticks", held(core.DirRight), 10, core.Point{X: 80, Y: 400}},
		{"up 10 ticks", held(core.DirUp), 10, core.Point{X: 50, Y: 370}},
		{"diagonal is not normalized", held(core.DirUp, core.DirRight), 10, core.Point{X: 80, Y: 370}},
		{"opposite keys cancel", held(core.DirLeft, core.DirRight), 10, core.Point{X: 50, Y: 400}},
		{"nothing held", InputState{}, 10, core.Point{X: 50, Y: 400}},
		{"clamped at left margin", held(core.DirLeft), 20, core.Point{X: 20, Y: 400}},
		{"clamped at bottom margin", held(core.DirDown), 100, core.Point{X: 50, Y: 580}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			for i := 0; i < tt.ticks; i++ {
				if out := e.Advance(tt.in, PhaseGreen, tick); out != Continuing {
					t.Fatalf("tick %d: outcome %v, expected continuing", i, out)
				}
			}
			if got := e.Player().Pos; got != tt.want {
				t.Errorf("position = %+v, expected %+v", got, tt.want)
			}
			if !e.Player().Alive {
				t.Error("player should be alive on green")
			}
		})
	}
}

func TestEngineNeverLeavesBounds(t *testing.T) {
	e := newTestEngine()
	bounds := core.Inset(600, 600, 20)
	for _, d := range core.Directions {
		for i := 0; i < 300; i++ {
			e.Advance(held(d), PhaseGreen, tick)
			if p := e.Player().Pos; !bounds.Has(p) {
				t.Fatalf("player left bounds at %+v", p)
			}
		}
	}
	if x := e.Player().Pos.X; x > 580 {
		t.Errorf("x = %d exceeds max 580", x)
	}
}

func TestEngineRedEliminates(t *testing.T) {
	tests := []struct {
		name string
		in   InputState
	}{
		{"up", held(core.DirUp)},
		{"diagonal", held(core.DirDown, core.DirLeft)},
		{"opposite keys still count", held(core.DirLeft, core.DirRight)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			e.Advance(held(core.DirRight), PhaseGreen, tick)
			before := e.Player().Pos

			if out := e.Advance(tt.in, PhaseRed, tick); out != Eliminated {
				t.Fatalf("outcome = %v, expected eliminated", out)
			}
			p := e.Player()
			if p.Alive {
				t.Error("player should be dead")
			}
			if p.Pos != before {
				t.Errorf("player moved to %+v, should stay at %+v", p.Pos, before)
			}
		})
	}
}

func TestEngineRedAgainstWallEliminates(t *testing.T) {
	e := NewEngine(core.Inset(600, 600, 20), core.NewRect(550, 50, 30, 100), core.Point{X: 20, Y: 400}, 3, tick)
	if out := e.Advance(held(core.DirLeft), PhaseRed, tick); out != Eliminated {
		t.Errorf("holding into a wall on red should still eliminate, got %v", out)
	}
}

func TestEngineRedStandingStill(t *testing.T) {
	e := newTestEngine()
	for i := 0; i < 50; i++ {
		if out := e.Advance(InputState{}, PhaseRed, tick); out != Continuing {
			t.Fatalf("standing still on red gave %v", out)
		}
	}
}

func TestEngineReachesFinish(t *testing.T) {
	e := NewEngine(core.Inset(600, 600, 20), core.NewRect(550, 50, 30, 100), core.Point{X: 545, Y: 100}, 3, tick)

	// 545 -> 548 -> 551: the edge at 550 is not inside
	if out := e.Advance(held(core.DirRight), PhaseGreen, tick); out != Continuing {
		t.Fatalf("first tick = %v, expected continuing", out)
	}
	if out := e.Advance(held(core.DirRight), PhaseGreen, tick); out != Reached {
		t.Fatalf("second tick = %v, expected reached", out)
	}
	if p := e.Player().Pos; p != (core.Point{X: 551, Y: 100}) {
		t.Errorf("position = %+v, expected (551, 100)", p)
	}
}

func TestEngineFinishEdgeIsOutside(t *testing.T) {
	e := NewEngine(core.Inset(600, 600, 20), core.NewRect(550, 50, 30, 100), core.Point{X: 547, Y: 100}, 3, tick)
	if out := e.Advance(held(core.DirRight), PhaseGreen, tick); out != Continuing {
		t.Errorf("landing exactly on the finish edge gave %v", out)
	}
}

func TestEngineEliminationBeatsFinish(t *testing.T) {
	e := NewEngine(core.Inset(600, 600, 20), core.NewRect(550, 50, 30, 100), core.Point{X: 548, Y: 100}, 3, tick)
	if out := e.Advance(held(core.DirRight), PhaseRed, tick); out != Eliminated {
		t.Fatalf("red tick into the finish gave %v, expected eliminated", out)
	}
	if e.Player().Pos.X != 548 {
		t.Error("eliminated player must not enter the finish")
	}
}

func TestEngineDeadPlayerStays(t *testing.T) {
	e := newTestEngine()
	e.Advance(held(core.DirUp), PhaseRed, tick)
	before := e.Player()

	if out := e.Advance(held(core.DirRight), PhaseGreen, tick); out != Eliminated {
		t.Errorf("dead player tick gave %v", out)
	}
	if e.Player() != before {
		t.Error("dead player must not move")
	}

	e.Reset()
	if p := e.Player(); !p.Alive || p.Pos != (core.Point{X: 50, Y: 400}) {
		t.Errorf("Reset gave %+v", p)
	}
}

func TestEngineScalesWithElapsed(t *testing.T) {
	tests := []struct {
		dt   time.Duration
		want int
	}{
		{tick, 53},
		{2 * tick, 56},
		{tick / 3, 51},
		{0, 50},
		{-tick, 50},
	}
	for _, tt := range tests {
		e := newTestEngine()
		e.Advance(held(core.DirRight), PhaseGreen, tt.dt)
		if x := e.Player().Pos.X; x != tt.want {
			t.Errorf("dt=%v: x = %d, expected %d", tt.dt, x, tt.want)
		}
	}
}
