package loop

import (
	"sync"
	"time"
)

// Task is a self-rescheduling timer. Each iteration is armed only after the
// previous callback returns, so iterations of one task never overlap.
type Task struct {
	loop *Loop
	fn   func() time.Duration

	mu      sync.Mutex
	timer   *Timer
	stopped bool
	runs    int
}

// Repeat arms fn after initial. When fn returns a positive duration the task
// is re-armed for that long; zero or negative ends it.
func (l *Loop) Repeat(initial time.Duration, fn func() time.Duration) *Task {
	t := &Task{loop: l, fn: fn}
	t.arm(initial)
	return t
}

func (t *Task) arm(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.timer = t.loop.AfterFunc(d, t.fire)
}

func (t *Task) fire() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.timer = nil
	t.runs++
	t.mu.Unlock()

	next := t.fn()
	if next <= 0 {
		t.mu.Lock()
		t.stopped = true
		t.mu.Unlock()
		return
	}
	t.arm(next)
}

// Stop cancels the pending iteration, if any. A callback already running
// finishes but is not re-armed.
func (t *Task) Stop() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// Active reports whether the task will fire again.
func (t *Task) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.stopped
}

// Runs returns how many times the callback has been invoked.
func (t *Task) Runs() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.runs
}
