package quiz

import (
	"sync"
	"time"
)

// Timer is a cancellable per-second countdown for timed quiz attempts.
// Start while running implicitly cancels the previous run; Cancel stops it
// with no further ticks and no finished signal. The finished callback fires
// exactly once, when the countdown reaches zero. Callbacks run outside the
// timer's lock.
type Timer struct {
	mu         sync.Mutex
	interval   time.Duration
	remaining  int
	generation int
	stop       chan struct{}
	onTick     func(remaining int)
	onFinish   func()
}

// NewTimer creates a timer ticking once per second.
func NewTimer(onTick func(remaining int), onFinish func()) *Timer {
	return NewTimerInterval(time.Second, onTick, onFinish)
}

// NewTimerInterval creates a timer with a custom tick interval. Tests use
// millisecond intervals to run countdowns quickly.
func NewTimerInterval(interval time.Duration, onTick func(remaining int), onFinish func()) *Timer {
	return &Timer{interval: interval, onTick: onTick, onFinish: onFinish}
}

// Start begins counting down from the given number of seconds, cancelling
// any countdown already running.
func (t *Timer) Start(seconds int) {
	t.mu.Lock()
	t.cancelLocked()
	t.generation++
	t.remaining = seconds
	t.stop = make(chan struct{})
	gen, stop := t.generation, t.stop
	t.mu.Unlock()

	go t.run(gen, stop)
}

// Cancel stops the countdown. Safe to call at any time, including after the
// timer has finished or was never started.
func (t *Timer) Cancel() {
	t.mu.Lock()
	t.cancelLocked()
	t.mu.Unlock()
}

func (t *Timer) cancelLocked() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
	t.generation++
}

// Remaining returns the seconds left on the current countdown.
func (t *Timer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

func (t *Timer) run(gen int, stop chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.mu.Lock()
			if gen != t.generation {
				// cancelled or restarted between tick and lock
				t.mu.Unlock()
				return
			}
			t.remaining--
			remaining := t.remaining
			finished := remaining <= 0
			if finished {
				t.stop = nil
				t.generation++
			}
			t.mu.Unlock()

			if t.onTick != nil {
				t.onTick(remaining)
			}
			if finished {
				if t.onFinish != nil {
					t.onFinish()
				}
				return
			}
		}
	}
}
