package history

import (
	"time"

	"github.com/dshills/richedit/internal/event/loop"
)

// DefaultThrottle is the capture window used when none is given.
const DefaultThrottle = time.Second

// Throttle rate limits a function on a loop. The first call in a window
// runs fn immediately; later calls in the same window schedule a single
// trailing run when the window closes. It must only be used from the loop.
type Throttle struct {
	sched   loop.Scheduler
	wait    time.Duration
	fn      func()
	timer   loop.Timer
	pending bool
}

// NewThrottle creates a throttle running fn at most once per wait.
func NewThrottle(sched loop.Scheduler, wait time.Duration, fn func()) *Throttle {
	if wait <= 0 {
		wait = DefaultThrottle
	}
	return &Throttle{sched: sched, wait: wait, fn: fn}
}

// Call requests a run.
func (t *Throttle) Call() {
	if t.timer == nil {
		t.fn()
		t.timer = t.sched.AfterFunc(t.wait, t.windowEnd)
		return
	}
	t.pending = true
}

func (t *Throttle) windowEnd() {
	t.timer = nil
	if !t.pending {
		return
	}
	t.pending = false
	t.fn()
	t.timer = t.sched.AfterFunc(t.wait, t.windowEnd)
}

// Pending reports whether a trailing run is owed.
func (t *Throttle) Pending() bool {
	return t.pending
}

// Flush closes the current window, running fn now if a trailing run was
// owed. The next Call starts a new window.
func (t *Throttle) Flush() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	if t.pending {
		t.pending = false
		t.fn()
	}
}

// Cancel closes the current window and drops any owed run.
func (t *Throttle) Cancel() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.pending = false
}
