package redlight

import "github.com/vovakirdan/redlight-arcade/internal/core"

// Snapshot is a read-only view of a session for renderers and remote clients.
type Snapshot struct {
	PlayerX          int    `json:"player_x"`
	PlayerY          int    `json:"player_y"`
	PlayerAlive      bool   `json:"player_alive"`
	Phase            Phase  `json:"-"`
	PhaseName        string `json:"phase"`
	HazardActive     bool   `json:"hazard_active"`
	State            State  `json:"-"`
	StateName        string `json:"state"`
	Reason           Reason `json:"reason,omitempty"`
	SecondsRemaining int    `json:"seconds_remaining"`
	Countdown        int    `json:"countdown"`
	ElapsedMs        int64  `json:"elapsed_ms"`
	Message          string `json:"message,omitempty"`
}

// Field is the static layout of the playfield.
type Field struct {
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Bounds core.Bounds `json:"bounds"`
	Finish core.Rect   `json:"finish"`
	Guard  core.Point  `json:"guard"`
	Start  core.Point  `json:"start"`
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	p := s.engine.Player()
	phase := s.light.Phase()
	return Snapshot{
		PlayerX:          p.Pos.X,
		PlayerY:          p.Pos.Y,
		PlayerAlive:      p.Alive,
		Phase:            phase,
		PhaseName:        phase.String(),
		HazardActive:     s.light.HazardActive(),
		State:            s.state,
		StateName:        s.state.String(),
		Reason:           s.reason,
		SecondsRemaining: s.timers.SecondsRemaining(),
		Countdown:        s.countdown,
		ElapsedMs:        s.PlayTime().Milliseconds(),
		Message:          Message(s.state, s.reason),
	}
}

// Field returns the playfield layout.
func (s *Session) Field() Field {
	return Field{
		Width:  s.cfg.Field.Width,
		Height: s.cfg.Field.Height,
		Bounds: s.cfg.Bounds(),
		Finish: s.cfg.FinishRect(),
		Guard:  s.cfg.GuardPoint(),
		Start:  s.cfg.StartPoint(),
	}
}

// Message returns the line shown when a session ends.
func Message(state State, reason Reason) string {
	switch {
	case state == StateWon:
		return "You've reached the finish line!"
	case state == StateLost && reason == ReasonCaught:
		return "You moved during red light!"
	case state == StateLost && reason == ReasonTimeout:
		return "Time's up!"
	default:
		return ""
	}
}
