package core

import (
	"container/heap"
	"time"
)

// Timer is a handle to a callback scheduled on a Clock.
type Timer interface {
	// Stop cancels the timer. Returns false if it already fired or was stopped.
	Stop() bool
}

// Clock is the single time source for a simulation.
// Callbacks run on the goroutine that advances the clock, never concurrently.
type Clock interface {
	// Now returns the elapsed simulated time since the clock was created.
	Now() time.Duration

	// AfterFunc schedules f to run once d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer
}

// ManualClock is a Clock that only moves when Advance is called.
// The platform advances it with wall-clock deltas; tests advance it directly.
type ManualClock struct {
	now     time.Duration
	seq     uint64
	pending timerHeap
}

// NewManualClock creates a clock at time zero with no pending timers.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Now returns the current simulated time.
func (c *ManualClock) Now() time.Duration {
	return c.now
}

// AfterFunc schedules f at Now()+d. Negative durations are treated as zero.
func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	c.seq++
	t := &manualTimer{
		clock: c,
		at:    c.now + d,
		seq:   c.seq,
		fn:    f,
		index: -1,
	}
	heap.Push(&c.pending, t)
	return t
}

// Advance moves time forward by d, firing every timer that comes due in
// deadline order. Timers with equal deadlines fire in scheduling order.
// A callback observes Now() equal to its own deadline and may schedule
// further timers; those fire within the same Advance if they are due.
func (c *ManualClock) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	target := c.now + d
	for len(c.pending) > 0 {
		next := c.pending[0]
		if next.at > target {
			break
		}
		heap.Pop(&c.pending)
		c.now = next.at
		next.fired = true
		next.fn()
	}
	c.now = target
}

// Pending returns the number of armed timers.
func (c *ManualClock) Pending() int {
	return len(c.pending)
}

// NextDeadline returns the time of the earliest armed timer.
func (c *ManualClock) NextDeadline() (time.Duration, bool) {
	if len(c.pending) == 0 {
		return 0, false
	}
	return c.pending[0].at, true
}

// manualTimer is a timer owned by a ManualClock.
type manualTimer struct {
	clock *ManualClock
	at    time.Duration
	seq   uint64
	fn    func()
	index int // position in the heap, -1 when not queued
	fired bool
}

// Stop removes the timer from the clock's queue.
func (t *manualTimer) Stop() bool {
	if t.fired || t.index < 0 {
		return false
	}
	heap.Remove(&t.clock.pending, t.index)
	return true
}

// timerHeap orders timers by deadline, then by scheduling sequence.
type timerHeap []*manualTimer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*manualTimer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// Ticker re-arms a callback every period on a Clock until stopped.
// It holds exactly one pending Timer at a time.
type Ticker struct {
	clock   Clock
	period  time.Duration
	fn      func()
	timer   Timer
	stopped bool
}

// NewTicker starts calling fn every period. The first call happens one
// period from now. A non-positive period is an error in the caller's
// configuration and produces a stopped ticker.
func NewTicker(clock Clock, period time.Duration, fn func()) *Ticker {
	t := &Ticker{clock: clock, period: period, fn: fn}
	if period <= 0 {
		t.stopped = true
		return t
	}
	t.arm()
	return t
}

func (t *Ticker) arm() {
	t.timer = t.clock.AfterFunc(t.period, t.fire)
}

func (t *Ticker) fire() {
	if t.stopped {
		return
	}
	// Re-arm before the callback so a Stop inside fn cancels the next one.
	t.arm()
	t.fn()
}

// Stop cancels the ticker. Safe to call more than once.
func (t *Ticker) Stop() {
	if t.stopped {
		return
	}
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// Active reports whether the ticker is still running.
func (t *Ticker) Active() bool {
	return !t.stopped
}
