package redlight

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/redlight-arcade/internal/config"
	"github.com/vovakirdan/redlight-arcade/internal/core"
)

type countingNotifier struct {
	cleared []string
	err     error
}

func (n *countingNotifier) StageCleared(gameID string) error {
	n.cleared = append(n.cleared, gameID)
	return n.err
}

type harness struct {
	t           *testing.T
	clock       *core.ManualClock
	session     *Session
	progress    *countingNotifier
	transitions []Transition
}

func newHarness(t *testing.T, cfg config.RedLightConfig) *harness {
	t.Helper()
	h := &harness{
		t:        t,
		clock:    core.NewManualClock(),
		progress: &countingNotifier{},
	}
	s, err := NewSession(cfg, Options{
		Clock:        h.clock,
		Random:       &lowRange{},
		Progress:     h.progress,
		OnTransition: func(tr Transition) { h.transitions = append(h.transitions, tr) },
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	h.session = s
	return h
}

// activate starts the session and runs through the pre-roll.
func (h *harness) activate() {
	h.t.Helper()
	if !h.session.Start() {
		h.t.Fatal("Start returned false")
	}
	h.clock.Advance(3 * time.Second)
	if h.session.State() != StateActive {
		h.t.Fatalf("state = %v after pre-roll, expected active", h.session.State())
	}
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.RedLightConfig)
	}{
		{"negative speed", func(c *config.RedLightConfig) { c.Player.SpeedPerTick = -3 }},
		{"zero-size finish", func(c *config.RedLightConfig) { c.Field.Finish.W, c.Field.Finish.H = 0, 0 }},
		{"zero tick", func(c *config.RedLightConfig) { c.Timing.TickPeriodMs = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			clock := core.NewManualClock()
			s, err := NewSession(cfg, Options{Clock: clock})
			if !errors.Is(err, config.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if s != nil {
				t.Error("no session should be returned on error")
			}
			if clock.Pending() != 0 {
				t.Error("no timer may be armed for a rejected config")
			}
		})
	}
}

func TestSessionDefaults(t *testing.T) {
	s, err := NewSession(config.DefaultRedLightConfig(), Options{})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	snap := s.Snapshot()
	if snap.State != StateIdle || snap.PlayerX != 50 || snap.PlayerY != 400 || !snap.PlayerAlive {
		t.Errorf("unexpected initial snapshot %+v", snap)
	}
	if snap.SecondsRemaining != 60 || snap.Phase != PhaseGreen {
		t.Errorf("unexpected initial clock or phase %+v", snap)
	}
	if s.Clock() == nil {
		t.Error("default clock should be created")
	}
}

func TestSessionStartGuards(t *testing.T) {
	h := newHarness(t, testConfig())

	if h.session.Restart() {
		t.Error("Restart from idle should be rejected")
	}
	if !h.session.Start() {
		t.Fatal("Start from idle should succeed")
	}
	if h.session.Start() {
		t.Error("Start during countdown should be rejected")
	}
	if h.session.Restart() {
		t.Error("Restart during countdown should be rejected")
	}
}

func TestSessionCountdownSequence(t *testing.T) {
	h := newHarness(t, testConfig())
	h.session.Start()

	want := []struct {
		after     time.Duration
		state     State
		countdown int
	}{
		{0, StateCountdown, 3},
		{time.Second, StateCountdown, 2},
		{time.Second, StateCountdown, 1},
		{time.Second, StateActive, 0},
	}
	for i, w := range want {
		h.clock.Advance(w.after)
		snap := h.session.Snapshot()
		if snap.State != w.state || snap.Countdown != w.countdown {
			t.Errorf("step %d: state %v countdown %d, expected %v %d", i, snap.State, snap.Countdown, w.state, w.countdown)
		}
	}

	// idle->countdown(3), 2, 1, active
	if len(h.transitions) != 4 {
		t.Fatalf("expected 4 transitions, got %d", len(h.transitions))
	}
	if h.transitions[0].From != StateIdle || h.transitions[3].To != StateActive {
		t.Errorf("unexpected transitions %+v", h.transitions)
	}
	if h.transitions[3].At != 3*time.Second {
		t.Errorf("active at %v, expected 3s", h.transitions[3].At)
	}
}

func TestSessionNoMutationBeforeActive(t *testing.T) {
	h := newHarness(t, testConfig())
	h.session.Press(core.DirRight)
	h.session.Press(core.DirUp)

	h.clock.Advance(30 * time.Second)
	checkUntouched := func(stage string) {
		t.Helper()
		snap := h.session.Snapshot()
		if snap.PlayerX != 10 || snap.PlayerY != 100 || !snap.PlayerAlive {
			t.Errorf("%s: player moved to (%d, %d)", stage, snap.PlayerX, snap.PlayerY)
		}
		if snap.Phase != PhaseGreen || snap.HazardActive {
			t.Errorf("%s: light changed to %v", stage, snap.Phase)
		}
		if snap.SecondsRemaining != 10 {
			t.Errorf("%s: budget changed to %d", stage, snap.SecondsRemaining)
		}
	}
	checkUntouched("idle")
	if h.clock.Pending() != 0 {
		t.Errorf("idle session has %d timers armed", h.clock.Pending())
	}

	h.session.Start()
	if h.clock.Pending() != 1 {
		t.Errorf("countdown should arm only the pre-roll, got %d timers", h.clock.Pending())
	}
	h.clock.Advance(3*time.Second - time.Millisecond)
	checkUntouched("countdown")

	// Held input is consumed once active
	h.clock.Advance(time.Millisecond + tick)
	if h.session.Player().Pos == (core.Point{X: 10, Y: 100}) {
		t.Error("held input should move the player once active")
	}
}

func TestSessionActiveArmsExactlyThreeTimers(t *testing.T) {
	h := newHarness(t, testConfig())
	h.activate()

	// light toggle, movement tick, budget countdown
	if h.clock.Pending() != 3 {
		t.Errorf("expected 3 armed timers while active, got %d", h.clock.Pending())
	}
}

func TestSessionWin(t *testing.T) {
	h := newHarness(t, testConfig())
	h.activate()
	h.session.Press(core.DirRight)

	// 10 + 30*3 = 100 sits on the finish edge
	h.clock.Advance(30 * tick)
	if h.session.State() != StateActive {
		t.Fatalf("state = %v on the finish edge, expected active", h.session.State())
	}

	h.clock.Advance(tick)
	snap := h.session.Snapshot()
	if snap.State != StateWon {
		t.Fatalf("state = %v, expected won", snap.State)
	}
	if snap.PlayerX != 103 || !snap.PlayerAlive {
		t.Errorf("winning player = (%d, alive=%v)", snap.PlayerX, snap.PlayerAlive)
	}
	if snap.ElapsedMs != 930 {
		t.Errorf("play time = %dms, expected 930", snap.ElapsedMs)
	}
	if snap.Message != "You've reached the finish line!" {
		t.Errorf("message = %q", snap.Message)
	}
	if len(h.progress.cleared) != 1 || h.progress.cleared[0] != GameID {
		t.Errorf("progress notified %v, expected one %q", h.progress.cleared, GameID)
	}
	if h.clock.Pending() != 0 {
		t.Errorf("%d timers still armed after win", h.clock.Pending())
	}

	// Terminal: nothing changes any more
	h.clock.Advance(time.Minute)
	after := h.session.Snapshot()
	if after != snap {
		t.Errorf("snapshot changed after win: %+v -> %+v", snap, after)
	}
	if len(h.progress.cleared) != 1 {
		t.Error("progress must be notified exactly once")
	}
}

func TestSessionProgressErrorDoesNotBreakWin(t *testing.T) {
	h := newHarness(t, testConfig())
	h.progress.err = errors.New("disk full")
	h.activate()
	h.session.Press(core.DirRight)
	h.clock.Advance(31 * tick)

	if h.session.State() != StateWon {
		t.Errorf("state = %v, expected won", h.session.State())
	}
}

func TestSessionCaughtOnRed(t *testing.T) {
	h := newHarness(t, testConfig())
	h.activate()

	// Warm-up is 5s, so red starts 5s into the active phase
	h.clock.Advance(5 * time.Second)
	if h.session.Phase() != PhaseRed {
		t.Fatalf("phase = %v, expected red", h.session.Phase())
	}
	if h.session.State() != StateActive {
		t.Fatal("standing still on red must not eliminate")
	}

	h.session.Press(core.DirUp)
	h.clock.Advance(tick)

	snap := h.session.Snapshot()
	if snap.State != StateLost || snap.Reason != ReasonCaught {
		t.Fatalf("state = %v/%v, expected lost/caught", snap.State, snap.Reason)
	}
	if snap.PlayerAlive {
		t.Error("caught player should be dead")
	}
	if snap.PlayerX != 10 || snap.PlayerY != 100 {
		t.Errorf("caught player should stay at last legal spot, got (%d, %d)", snap.PlayerX, snap.PlayerY)
	}
	if snap.Message != "You moved during red light!" {
		t.Errorf("message = %q", snap.Message)
	}
	if len(h.progress.cleared) != 0 {
		t.Error("a loss must not notify progress")
	}
	if h.clock.Pending() != 0 {
		t.Errorf("%d timers still armed after loss", h.clock.Pending())
	}

	// Phase is frozen with the session
	h.clock.Advance(time.Minute)
	if h.session.Phase() != PhaseRed {
		t.Error("light toggled after the session ended")
	}
}

func TestSessionRedTickIntoFinishLoses(t *testing.T) {
	h := newHarness(t, testConfig())
	h.activate()

	h.session.Press(core.DirRight)
	h.clock.Advance(30 * tick) // x = 100, on the edge
	h.session.Release(core.DirRight)

	h.clock.Advance(5*time.Second - 30*tick)
	if h.session.Phase() != PhaseRed {
		t.Fatal("expected red light")
	}

	h.session.Press(core.DirRight)
	h.clock.Advance(tick)
	if h.session.State() != StateLost || h.session.Reason() != ReasonCaught {
		t.Errorf("state = %v/%v, expected lost/caught", h.session.State(), h.session.Reason())
	}
	if len(h.progress.cleared) != 0 {
		t.Error("red tick into the finish must not count as a win")
	}
}

func TestSessionTimeout(t *testing.T) {
	h := newHarness(t, testConfig())
	h.activate()

	h.clock.Advance(10*time.Second - time.Millisecond)
	if h.session.State() != StateActive {
		t.Fatalf("state = %v before budget ran out", h.session.State())
	}
	if h.session.Snapshot().SecondsRemaining != 1 {
		t.Errorf("remaining = %d, expected 1", h.session.Snapshot().SecondsRemaining)
	}

	h.clock.Advance(time.Millisecond)
	snap := h.session.Snapshot()
	if snap.State != StateLost || snap.Reason != ReasonTimeout {
		t.Fatalf("state = %v/%v, expected lost/timeout", snap.State, snap.Reason)
	}
	if snap.SecondsRemaining != 0 || !snap.PlayerAlive {
		t.Errorf("timeout snapshot %+v", snap)
	}
	if snap.Message != "Time's up!" {
		t.Errorf("message = %q", snap.Message)
	}
	if h.clock.Pending() != 0 {
		t.Errorf("%d timers still armed after timeout", h.clock.Pending())
	}
}

func TestSessionTimeoutWherever(t *testing.T) {
	// Player parked next to the finish still times out
	cfg := testConfig()
	cfg.Field.Start = config.PointConfig{X: 95, Y: 100}
	h := newHarness(t, cfg)
	h.activate()
	h.clock.Advance(10 * time.Second)

	if h.session.State() != StateLost || h.session.Reason() != ReasonTimeout {
		t.Errorf("state = %v/%v, expected lost/timeout", h.session.State(), h.session.Reason())
	}
}

func TestSessionRestart(t *testing.T) {
	h := newHarness(t, testConfig())
	h.activate()

	// Lose on the first red, with the next toggle already armed
	h.clock.Advance(5 * time.Second)
	h.session.Press(core.DirDown)
	h.clock.Advance(tick)
	if h.session.State() != StateLost {
		t.Fatalf("setup: state = %v, expected lost", h.session.State())
	}
	if h.session.Start() {
		t.Error("Start from lost should be rejected")
	}

	if !h.session.Restart() {
		t.Fatal("Restart from lost should succeed")
	}
	snap := h.session.Snapshot()
	if snap.State != StateIdle || snap.Reason != ReasonNone {
		t.Errorf("after restart state = %v/%v", snap.State, snap.Reason)
	}
	if snap.PlayerX != 10 || snap.PlayerY != 100 || !snap.PlayerAlive {
		t.Errorf("player not reset: %+v", snap)
	}
	if snap.Phase != PhaseGreen || snap.HazardActive {
		t.Error("light not reset to green")
	}
	if snap.SecondsRemaining != 10 {
		t.Errorf("budget not reset: %d", snap.SecondsRemaining)
	}
	if h.clock.Pending() != 0 {
		t.Errorf("%d timers armed in idle after restart", h.clock.Pending())
	}

	h.session.Release(core.DirDown)
	restartedAt := h.clock.Now()
	h.activate()
	if h.clock.Pending() != 3 {
		t.Errorf("expected exactly 3 timers after restart, got %d", h.clock.Pending())
	}

	// The old session's red would have ended 2s after it began; nothing
	// may toggle before the new warm-up is over.
	h.clock.Advance(5*time.Second - time.Millisecond)
	if h.session.Phase() != PhaseGreen {
		t.Fatalf("ghost toggle: phase %v at %v", h.session.Phase(), h.clock.Now()-restartedAt)
	}
	h.clock.Advance(time.Millisecond)
	if h.session.Phase() != PhaseRed {
		t.Error("new session should toggle after its own warm-up")
	}
	if h.session.Snapshot().SecondsRemaining != 5 {
		t.Errorf("remaining = %d, expected 5", h.session.Snapshot().SecondsRemaining)
	}
}

func TestSessionRestartAfterWin(t *testing.T) {
	h := newHarness(t, testConfig())
	h.activate()
	h.session.Press(core.DirRight)
	h.clock.Advance(31 * tick)
	if h.session.State() != StateWon {
		t.Fatal("setup: expected win")
	}

	h.session.Restart()
	h.session.Release(core.DirRight)
	h.activate()
	h.clock.Advance(31 * tick)

	if h.session.State() != StateActive {
		t.Errorf("state = %v, expected active", h.session.State())
	}
	if p := h.session.Player().Pos; p != (core.Point{X: 10, Y: 100}) {
		t.Errorf("player at %+v, expected start", p)
	}
	if len(h.progress.cleared) != 1 {
		t.Errorf("progress notified %d times, expected 1", len(h.progress.cleared))
	}
}

func TestSessionZeroPreRoll(t *testing.T) {
	cfg := testConfig()
	cfg.Timing.PreRollSeconds = 0
	h := newHarness(t, cfg)

	h.session.Start()
	if h.session.State() != StateActive {
		t.Errorf("state = %v, expected active straight away", h.session.State())
	}
}

func TestSessionClose(t *testing.T) {
	h := newHarness(t, testConfig())
	h.activate()
	h.session.Close()

	if h.clock.Pending() != 0 {
		t.Errorf("Close left %d timers armed", h.clock.Pending())
	}
	before := h.session.Snapshot()
	h.clock.Advance(time.Minute)
	if h.session.Snapshot() != before {
		t.Error("closed session changed")
	}
	if h.session.Start() || h.session.Restart() {
		t.Error("closed session should reject Start and Restart")
	}
}

func TestSessionTransitionsAfterTerminal(t *testing.T) {
	h := newHarness(t, testConfig())
	h.activate()
	h.clock.Advance(10 * time.Second)

	n := len(h.transitions)
	last := h.transitions[n-1]
	if last.From != StateActive || last.To != StateLost || last.Reason != ReasonTimeout {
		t.Errorf("last transition = %+v", last)
	}
	h.clock.Advance(time.Minute)
	if len(h.transitions) != n {
		t.Error("transitions emitted after terminal state")
	}
}
