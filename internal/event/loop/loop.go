package loop

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Timer is a pending delayed task.
type Timer interface {
	// Stop prevents the task from running. Returns false if it already
	// ran or was stopped.
	Stop() bool
}

// Scheduler is the deferral surface handed to editor components.
type Scheduler interface {
	// Defer runs fn on the next tick.
	Defer(fn func())
	// AfterFunc runs fn on the loop once d has elapsed.
	AfterFunc(d time.Duration, fn func()) Timer
	// Now returns the loop's current time.
	Now() time.Time
}

// Loop is a single-threaded task queue with timers.
type Loop struct {
	mu     sync.Mutex
	tasks  []func()
	wake   chan struct{}
	manual bool
	now    time.Time
	timers []*timer
	seq    uint64
}

// New creates a loop driven by the wall clock.
func New() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// NewManual creates a loop whose clock starts at start and only moves
// through Advance.
func NewManual(start time.Time) *Loop {
	return &Loop{wake: make(chan struct{}, 1), manual: true, now: start}
}

// Now returns the loop's current time.
func (l *Loop) Now() time.Time {
	if !l.manual {
		return time.Now()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.now
}

// Post queues fn for the next tick. Safe for concurrent use.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Defer implements Scheduler.
func (l *Loop) Defer(fn func()) {
	l.Post(fn)
}

// AfterFunc implements Scheduler.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	t := &timer{loop: l, fn: fn, seq: l.seq}
	if l.manual {
		t.deadline = l.now.Add(d)
		l.timers = append(l.timers, t)
		return t
	}
	t.deadline = time.Now().Add(d)
	t.rt = time.AfterFunc(d, func() { l.Post(t.fire) })
	return t
}

// Pending returns the number of queued tasks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

// RunPending runs one tick: the tasks queued before the call, in order.
// Returns the number of tasks run.
func (l *Loop) RunPending() int {
	l.mu.Lock()
	tasks := l.tasks
	l.tasks = nil
	l.mu.Unlock()
	for _, fn := range tasks {
		fn()
	}
	return len(tasks)
}

// Drain runs ticks until the queue is empty.
func (l *Loop) Drain() {
	for {
		if l.RunPending() == 0 {
			return
		}
	}
}

// Advance moves a manual clock forward by d, running every timer that
// falls due in deadline order and draining the queue after each.
func (l *Loop) Advance(d time.Duration) {
	l.mu.Lock()
	target := l.now.Add(d)
	l.mu.Unlock()
	l.Drain()
	for {
		l.mu.Lock()
		next := l.nextDueLocked(target)
		if next == nil {
			l.now = target
			l.mu.Unlock()
			return
		}
		if next.deadline.After(l.now) {
			l.now = next.deadline
		}
		l.mu.Unlock()
		next.fire()
		l.Drain()
	}
}

// nextDueLocked removes and returns the earliest timer due at or before
// target.
func (l *Loop) nextDueLocked(target time.Time) *timer {
	sort.SliceStable(l.timers, func(i, j int) bool {
		a, b := l.timers[i], l.timers[j]
		if !a.deadline.Equal(b.deadline) {
			return a.deadline.Before(b.deadline)
		}
		return a.seq < b.seq
	})
	if len(l.timers) == 0 || l.timers[0].deadline.After(target) {
		return nil
	}
	t := l.timers[0]
	l.timers = l.timers[1:]
	return t
}

// Run processes tasks until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.Drain()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

type timer struct {
	loop     *Loop
	fn       func()
	deadline time.Time
	seq      uint64
	rt       *time.Timer
	done     bool
}

// fire runs the task unless it was stopped.
func (t *timer) fire() {
	t.loop.mu.Lock()
	if t.done {
		t.loop.mu.Unlock()
		return
	}
	t.done = true
	t.loop.mu.Unlock()
	t.fn()
}

func (t *timer) Stop() bool {
	l := t.loop
	l.mu.Lock()
	defer l.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	if t.rt != nil {
		t.rt.Stop()
	}
	for i, other := range l.timers {
		if other == t {
			l.timers = append(l.timers[:i], l.timers[i+1:]...)
			break
		}
	}
	return true
}
