package redlight

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/redlight-arcade/internal/config"
	"github.com/vovakirdan/redlight-arcade/internal/core"
)

// State is the session's position in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateCountdown
	StateActive
	StateWon
	StateLost
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCountdown:
		return "countdown"
	case StateActive:
		return "active"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether s ends a session.
func (s State) Terminal() bool {
	return s == StateWon || s == StateLost
}

// Reason explains a loss.
type Reason string

const (
	ReasonNone    Reason = ""
	ReasonCaught  Reason = "caught"
	ReasonTimeout Reason = "timeout"
)

// Transition describes one state change.
type Transition struct {
	From      State
	To        State
	Reason    Reason
	Countdown int           // pre-roll value after the change
	Remaining int           // budget seconds after the change
	At        time.Duration // clock time of the change
}

// ProgressNotifier is told when a stage is cleared.
type ProgressNotifier interface {
	StageCleared(gameID string) error
}

// Options configures a Session. Zero values get defaults.
type Options struct {
	GameID   string      // reported to Progress; defaults to "redlight"
	Clock    core.Clock  // defaults to a fresh ManualClock
	Random   RandomRange // defaults to a time-seeded source
	Progress ProgressNotifier
	Logger   *log.Logger

	// OnTransition runs after every state change, including countdown steps.
	OnTransition func(Transition)
}

// Session is the authoritative state machine for one player.
// All methods and all clock callbacks must run on the same goroutine.
type Session struct {
	cfg    config.RedLightConfig
	gameID string

	clock   core.Clock
	sampler *Sampler
	light   *Scheduler
	engine  *Engine
	timers  *SessionClock

	state     State
	reason    Reason
	countdown int
	closed    bool
	activeAt  time.Duration
	endedAt   time.Duration

	progress     ProgressNotifier
	logger       *log.Logger
	onTransition func(Transition)
}

// NewSession validates cfg and builds an idle session. No timer is armed
// until Start.
func NewSession(cfg config.RedLightConfig, opts Options) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("redlight: %w", err)
	}

	if opts.GameID == "" {
		opts.GameID = GameID
	}
	if opts.Clock == nil {
		opts.Clock = core.NewManualClock()
	}
	if opts.Random == nil {
		opts.Random = NewRandomRange(time.Now().UnixNano())
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	greenLo, greenHi := cfg.Timing.GreenMs.Durations()
	redLo, redHi := cfg.Timing.RedMs.Durations()

	s := &Session{
		cfg:     cfg,
		gameID:  opts.GameID,
		clock:   opts.Clock,
		sampler: NewSampler(),
		light: NewScheduler(opts.Clock, opts.Random, cfg.Warmup(),
			PhaseRange{Min: greenLo, Max: greenHi},
			PhaseRange{Min: redLo, Max: redHi}),
		engine:       NewEngine(cfg.Bounds(), cfg.FinishRect(), cfg.StartPoint(), cfg.Player.SpeedPerTick, cfg.TickPeriod()),
		timers:       NewSessionClock(opts.Clock, cfg.TickPeriod(), cfg.Timing.BudgetSeconds),
		state:        StateIdle,
		progress:     opts.Progress,
		logger:       opts.Logger,
		onTransition: opts.OnTransition,
	}
	s.light.OnToggle = func(p Phase) {
		s.logger.Debug("light", "phase", p, "at", s.clock.Now())
	}
	return s, nil
}

// Clock returns the time source driving the session.
func (s *Session) Clock() core.Clock {
	return s.clock
}

// Config returns the configuration the session was built with.
func (s *Session) Config() config.RedLightConfig {
	return s.cfg
}

// Start leaves Idle for the pre-roll countdown. It returns false in any
// other state or after Close.
func (s *Session) Start() bool {
	if s.closed || s.state != StateIdle {
		return false
	}
	s.countdown = s.cfg.Timing.PreRollSeconds
	s.transition(StateCountdown, ReasonNone)
	s.timers.StartPreRoll(s.countdown, s.onPreRollSecond, s.enterActive)
	return true
}

// Restart returns a finished session to Idle with the player, light and
// budget reset. Held input is kept. It returns false unless the session
// is Won or Lost.
func (s *Session) Restart() bool {
	if s.closed || !s.state.Terminal() {
		return false
	}
	s.stopTimers()
	s.engine.Reset()
	s.light.Reset()
	s.timers.Reset()
	s.countdown = 0
	s.activeAt, s.endedAt = 0, 0
	s.transition(StateIdle, ReasonNone)
	return true
}

// Close cancels every timer. The session ignores Start and Restart afterwards.
func (s *Session) Close() {
	s.stopTimers()
	if s.state == StateActive && !s.closed {
		s.endedAt = s.clock.Now()
	}
	s.closed = true
}

// Press records a held direction. It has no effect on the player outside Active.
func (s *Session) Press(d core.Direction) {
	s.sampler.Press(d)
}

// Release records a released direction.
func (s *Session) Release(d core.Direction) {
	s.sampler.Release(d)
}

// ReleaseAll releases every direction.
func (s *Session) ReleaseAll() {
	s.sampler.ReleaseAll()
}

// Apply replays press and release edges in order.
func (s *Session) Apply(edges []core.KeyEdge) {
	s.sampler.Apply(edges)
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Reason returns why the session was lost, if it was.
func (s *Session) Reason() Reason {
	return s.reason
}

// Player returns a copy of the player.
func (s *Session) Player() Player {
	return s.engine.Player()
}

// PlayTime returns how long the session has been, or was, Active.
func (s *Session) PlayTime() time.Duration {
	switch {
	case s.state == StateActive && !s.closed:
		return s.clock.Now() - s.activeAt
	case s.state == StateActive, s.state.Terminal():
		return s.endedAt - s.activeAt
	default:
		return 0
	}
}

// Phase returns the current light.
func (s *Session) Phase() Phase {
	return s.light.Phase()
}

func (s *Session) onPreRollSecond(left int) {
	if s.state != StateCountdown {
		return
	}
	s.countdown = left
	s.transition(StateCountdown, ReasonNone)
}

func (s *Session) enterActive() {
	if s.state != StateCountdown {
		return
	}
	s.countdown = 0
	s.activeAt = s.clock.Now()
	s.transition(StateActive, ReasonNone)
	s.light.Start()
	s.timers.StartActive(s.onTick, s.onExpire)
}

// onTick samples input and the light as they are right now, moves the
// player and acts on the outcome.
func (s *Session) onTick(dt time.Duration) {
	if s.state != StateActive {
		return
	}
	switch s.engine.Advance(s.sampler.Snapshot(), s.light.Phase(), dt) {
	case Eliminated:
		s.finish(StateLost, ReasonCaught)
	case Reached:
		s.finish(StateWon, ReasonNone)
	}
}

func (s *Session) onExpire() {
	if s.state != StateActive {
		return
	}
	s.finish(StateLost, ReasonTimeout)
}

func (s *Session) finish(to State, reason Reason) {
	s.stopTimers()
	s.endedAt = s.clock.Now()
	s.transition(to, reason)
	if to == StateWon && s.progress != nil {
		if err := s.progress.StageCleared(s.gameID); err != nil {
			s.logger.Error("failed to record progress", "game", s.gameID, "err", err)
		}
	}
}

func (s *Session) stopTimers() {
	s.light.Stop()
	s.timers.Stop()
}

func (s *Session) transition(to State, reason Reason) {
	t := Transition{
		From:      s.state,
		To:        to,
		Reason:    reason,
		Countdown: s.countdown,
		Remaining: s.timers.SecondsRemaining(),
		At:        s.clock.Now(),
	}
	s.state = to
	s.reason = reason

	s.logger.Debug("transition", "from", t.From, "to", t.To, "reason", t.Reason, "countdown", t.Countdown, "remaining", t.Remaining)
	if s.onTransition != nil {
		s.onTransition(t)
	}
}
