package redlight

import (
	"time"

	"github.com/vovakirdan/redlight-arcade/internal/core"
)

// SessionClock drives every periodic part of a session from one core.Clock:
// the pre-roll countdown, the movement tick and the budget countdown.
// Each driver is a single core.Ticker and can be stopped on its own.
type SessionClock struct {
	clock      core.Clock
	tickPeriod time.Duration
	budget     int

	preRoll   *core.Ticker
	tick      *core.Ticker
	countdown *core.Ticker

	preRollLeft int
	remaining   int
}

// NewSessionClock creates an idle clock with the full budget remaining.
func NewSessionClock(clock core.Clock, tickPeriod time.Duration, budgetSeconds int) *SessionClock {
	return &SessionClock{
		clock:      clock,
		tickPeriod: tickPeriod,
		budget:     budgetSeconds,
		remaining:  budgetSeconds,
	}
}

// StartPreRoll counts n seconds down. onSecond sees every value from n-1
// down to 1; onDone runs when the count reaches zero, in the same callback.
// n <= 0 calls onDone immediately.
func (c *SessionClock) StartPreRoll(n int, onSecond func(left int), onDone func()) {
	c.StopPreRoll()
	c.preRollLeft = n
	if n <= 0 {
		c.preRollLeft = 0
		onDone()
		return
	}
	c.preRoll = core.NewTicker(c.clock, time.Second, func() {
		c.preRollLeft--
		if c.preRollLeft > 0 {
			onSecond(c.preRollLeft)
			return
		}
		c.StopPreRoll()
		onDone()
	})
}

// StartActive restores the full budget and starts the movement tick and
// the budget countdown. onTick receives the tick period. onExpire runs
// once when the budget reaches zero; both drivers are already stopped then.
func (c *SessionClock) StartActive(onTick func(dt time.Duration), onExpire func()) {
	c.StopActive()
	c.remaining = c.budget
	c.tick = core.NewTicker(c.clock, c.tickPeriod, func() {
		onTick(c.tickPeriod)
	})
	c.countdown = core.NewTicker(c.clock, time.Second, func() {
		c.remaining--
		if c.remaining > 0 {
			return
		}
		c.remaining = 0
		c.StopActive()
		onExpire()
	})
}

// StopPreRoll cancels the pre-roll countdown.
func (c *SessionClock) StopPreRoll() {
	if c.preRoll != nil {
		c.preRoll.Stop()
		c.preRoll = nil
	}
}

// StopTick cancels the movement tick.
func (c *SessionClock) StopTick() {
	if c.tick != nil {
		c.tick.Stop()
		c.tick = nil
	}
}

// StopCountdown cancels the budget countdown.
func (c *SessionClock) StopCountdown() {
	if c.countdown != nil {
		c.countdown.Stop()
		c.countdown = nil
	}
}

// StopActive cancels the movement tick and the budget countdown.
func (c *SessionClock) StopActive() {
	c.StopTick()
	c.StopCountdown()
}

// Stop cancels every driver.
func (c *SessionClock) Stop() {
	c.StopPreRoll()
	c.StopActive()
}

// Reset stops everything and restores the full budget.
func (c *SessionClock) Reset() {
	c.Stop()
	c.remaining = c.budget
	c.preRollLeft = 0
}

// SecondsRemaining returns the budget left, in whole seconds.
func (c *SessionClock) SecondsRemaining() int {
	return c.remaining
}

// PreRollLeft returns the current pre-roll value.
func (c *SessionClock) PreRollLeft() int {
	return c.preRollLeft
}

// Running reports which drivers are armed.
func (c *SessionClock) Running() (preRoll, tick, countdown bool) {
	return c.preRoll != nil, c.tick != nil, c.countdown != nil
}
