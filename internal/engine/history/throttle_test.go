package history

import (
	"testing"
	"time"

	"github.com/dshills/richedit/internal/event/loop"
)

func newThrottle(wait time.Duration) (*loop.Loop, *Throttle, *int) {
	l := loop.NewManual(time.Unix(1700000000, 0))
	calls := new(int)
	return l, NewThrottle(l, wait, func() { *calls++ }), calls
}

func TestThrottleLeadingAndTrailing(t *testing.T) {
	l, th, calls := newThrottle(time.Second)

	th.Call()
	if *calls != 1 {
		t.Fatalf("leading call: calls = %d, want 1", *calls)
	}
	th.Call()
	th.Call()
	th.Call()
	if *calls != 1 || !th.Pending() {
		t.Fatalf("calls inside window: calls = %d, pending = %v", *calls, th.Pending())
	}
	l.Advance(999 * time.Millisecond)
	if *calls != 1 {
		t.Fatalf("trailing run fired early")
	}
	l.Advance(time.Millisecond)
	if *calls != 2 {
		t.Fatalf("trailing run: calls = %d, want 2", *calls)
	}

	// The trailing run opens a new window.
	th.Call()
	if *calls != 2 {
		t.Errorf("call right after trailing run should wait, calls = %d", *calls)
	}
	l.Advance(time.Second)
	if *calls != 3 {
		t.Errorf("calls = %d, want 3", *calls)
	}

	l.Advance(5 * time.Second)
	th.Call()
	if *calls != 4 {
		t.Errorf("call after idle window should run immediately, calls = %d", *calls)
	}
}

func TestThrottleSingleCallHasNoTrailingRun(t *testing.T) {
	l, th, calls := newThrottle(time.Second)
	th.Call()
	l.Advance(3 * time.Second)
	if *calls != 1 {
		t.Errorf("calls = %d, want 1", *calls)
	}
}

func TestThrottleFlush(t *testing.T) {
	l, th, calls := newThrottle(time.Second)
	th.Call()
	th.Call()
	th.Flush()
	if *calls != 2 || th.Pending() {
		t.Fatalf("Flush: calls = %d, pending = %v", *calls, th.Pending())
	}
	l.Advance(2 * time.Second)
	if *calls != 2 {
		t.Errorf("flushed run fired again, calls = %d", *calls)
	}
	th.Flush()
	if *calls != 2 {
		t.Errorf("Flush without pending run should do nothing, calls = %d", *calls)
	}
	th.Call()
	if *calls != 3 {
		t.Errorf("Call after Flush starts a new window, calls = %d", *calls)
	}
}

func TestThrottleCancel(t *testing.T) {
	l, th, calls := newThrottle(time.Second)
	th.Call()
	th.Call()
	th.Cancel()
	l.Advance(5 * time.Second)
	if *calls != 1 {
		t.Errorf("cancelled run fired, calls = %d", *calls)
	}
}
