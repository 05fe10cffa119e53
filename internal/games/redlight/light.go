package redlight

import (
	"time"

	"github.com/vovakirdan/redlight-arcade/internal/core"
)

// Phase is the current light color.
type Phase int

const (
	PhaseGreen Phase = iota // moving is allowed
	PhaseRed                // moving eliminates the player
)

// String returns "green" or "red".
func (p Phase) String() string {
	if p == PhaseRed {
		return "red"
	}
	return "green"
}

// PhaseRange is the [Min, Max) duration a phase lasts once entered.
type PhaseRange struct {
	Min, Max time.Duration
}

// Scheduler flips the light between green and red at random intervals.
//
// It owns at most one pending timer. Every re-arm goes through
// scheduleNext, and Stop bumps the generation so a callback that was
// already dequeued cannot flip the phase of a later run.
type Scheduler struct {
	clock  core.Clock
	random RandomRange
	warmup time.Duration
	green  PhaseRange
	red    PhaseRange

	phase   Phase
	running bool
	timer   core.Timer
	gen     uint64
	next    time.Duration // deadline of the pending toggle

	// OnToggle, if set, runs after every phase change.
	OnToggle func(Phase)
}

// NewScheduler creates a stopped scheduler showing green.
func NewScheduler(clock core.Clock, random RandomRange, warmup time.Duration, green, red PhaseRange) *Scheduler {
	return &Scheduler{
		clock:  clock,
		random: random,
		warmup: warmup,
		green:  green,
		red:    red,
	}
}

// Start resets the light to green and arms the first toggle after the warm-up.
func (s *Scheduler) Start() {
	s.Stop()
	s.phase = PhaseGreen
	s.running = true
	s.arm(s.warmup)
}

// Stop cancels the pending toggle. The phase keeps its last value.
func (s *Scheduler) Stop() {
	s.running = false
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Phase returns the current light.
func (s *Scheduler) Phase() Phase {
	return s.phase
}

// HazardActive reports whether the guard is watching, which is exactly when the light is red.
func (s *Scheduler) HazardActive() bool {
	return s.phase == PhaseRed
}

// Running reports whether toggles are being scheduled.
func (s *Scheduler) Running() bool {
	return s.running
}

// NextToggle returns the time of the pending toggle.
func (s *Scheduler) NextToggle() (time.Duration, bool) {
	if s.timer == nil {
		return 0, false
	}
	return s.next, true
}

// Reset puts a stopped scheduler back on green.
func (s *Scheduler) Reset() {
	s.Stop()
	s.phase = PhaseGreen
}

func (s *Scheduler) arm(d time.Duration) {
	gen := s.gen
	s.next = s.clock.Now() + d
	s.timer = s.clock.AfterFunc(d, func() { s.toggle(gen) })
}

func (s *Scheduler) toggle(gen uint64) {
	if !s.running || gen != s.gen {
		return
	}
	s.timer = nil
	if s.phase == PhaseGreen {
		s.phase = PhaseRed
	} else {
		s.phase = PhaseGreen
	}
	s.scheduleNext()
	if s.OnToggle != nil {
		s.OnToggle(s.phase)
	}
}

// scheduleNext arms the toggle that ends the current phase.
func (s *Scheduler) scheduleNext() {
	r := s.green
	if s.phase == PhaseRed {
		r = s.red
	}
	s.arm(s.random.Between(r.Min, r.Max))
}
