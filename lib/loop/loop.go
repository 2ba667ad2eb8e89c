// Package loop provides the single-threaded event loop that drives a
// horsepower runtime.
//
// Every timer callback and posted task runs on the goroutine that calls Run
// (real time) or Advance/Flush (virtual time). Nothing in the loop executes
// callbacks concurrently, so code running inside a callback may treat the
// runtime state as owned.
//
// Thread-safety model:
//   - Post, AfterFunc, Repeat, Stop: safe from any goroutine
//   - Run: must be called from exactly one goroutine
//   - Advance, Flush: manual loops only, from one goroutine
package loop

import (
	"container/heap"
	"context"
	"errors"
	"sync"
	"time"
)

// ErrManual is returned by Run on a loop created with NewManual.
var ErrManual = errors.New("loop: manual loop cannot Run; use Advance")

// Loop is a cooperative scheduler of timers and posted tasks.
type Loop struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers timerHeap
	tasks  []func()
	wake   chan struct{}
	clock  func() time.Time // nil for manual loops
}

// New creates a loop driven by the wall clock. Call Run to process work.
func New() *Loop {
	return &Loop{
		now:   time.Now(),
		wake:  make(chan struct{}, 1),
		clock: time.Now,
	}
}

// NewManual creates a loop driven by virtual time starting at start.
// Time only moves when Advance is called.
func NewManual(start time.Time) *Loop {
	return &Loop{
		now:  start,
		wake: make(chan struct{}, 1),
	}
}

// Manual reports whether the loop runs on virtual time.
func (l *Loop) Manual() bool {
	return l.clock == nil
}

// Now returns the loop's notion of the current time.
func (l *Loop) Now() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.clock != nil {
		return l.clock()
	}
	return l.now
}

// Post queues fn to run on the loop thread as its own macrotask.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()
	l.signal()
}

// AfterFunc arms a one-shot timer that calls fn on the loop thread after d.
// A non-positive d fires on the next turn of the loop.
func (l *Loop) AfterFunc(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	l.mu.Lock()
	now := l.now
	if l.clock != nil {
		now = l.clock()
	}
	l.seq++
	t := &Timer{loop: l, due: now.Add(d), seq: l.seq, fn: fn, index: -1}
	heap.Push(&l.timers, t)
	l.mu.Unlock()
	l.signal()
	return t
}

// Pending returns the number of armed timers plus queued tasks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers) + len(l.tasks)
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run processes tasks and timers until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	if l.clock == nil {
		return ErrManual
	}
	wait := time.NewTimer(time.Hour)
	defer wait.Stop()

	for {
		l.runReady(l.clock())

		d := time.Hour
		l.mu.Lock()
		if len(l.tasks) > 0 {
			d = 0
		} else if len(l.timers) > 0 {
			d = l.timers[0].due.Sub(l.clock())
		}
		l.mu.Unlock()
		if d <= 0 {
			continue
		}

		if !wait.Stop() {
			select {
			case <-wait.C:
			default:
			}
		}
		wait.Reset(d)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		case <-wait.C:
		}
	}
}

// Flush runs queued tasks and every timer due at the current virtual time,
// including work those callbacks schedule for the same instant.
func (l *Loop) Flush() {
	l.mu.Lock()
	now := l.now
	l.mu.Unlock()
	l.runReady(now)
}

// Advance moves virtual time forward by d, firing timers in due order.
// Each callback observes Now() equal to its own due time.
func (l *Loop) Advance(d time.Duration) {
	l.mu.Lock()
	target := l.now.Add(d)
	l.mu.Unlock()

	for {
		l.Flush()

		l.mu.Lock()
		if len(l.timers) == 0 || l.timers[0].due.After(target) {
			l.now = target
			l.mu.Unlock()
			break
		}
		l.now = l.timers[0].due
		l.mu.Unlock()
	}
	l.Flush()
}

// runReady drains posted tasks and fires timers due at or before now.
func (l *Loop) runReady(now time.Time) {
	for {
		l.mu.Lock()
		if len(l.tasks) > 0 {
			fn := l.tasks[0]
			l.tasks[0] = nil
			l.tasks = l.tasks[1:]
			l.mu.Unlock()
			fn()
			continue
		}
		if len(l.timers) > 0 && !l.timers[0].due.After(now) {
			t := heap.Pop(&l.timers).(*Timer)
			t.fired = true
			l.mu.Unlock()
			t.fn()
			continue
		}
		l.mu.Unlock()
		return
	}
}

// Timer is a one-shot cancellable timer owned by a Loop.
type Timer struct {
	loop  *Loop
	due   time.Time
	seq   uint64
	fn    func()
	index int
	fired bool
}

// Stop cancels the timer. It returns false if the timer already fired or
// was already stopped.
func (t *Timer) Stop() bool {
	if t == nil {
		return false
	}
	l := t.loop
	l.mu.Lock()
	defer l.mu.Unlock()
	if t.fired || t.index < 0 {
		return false
	}
	heap.Remove(&l.timers, t.index)
	return true
}

// Due returns the time at which the timer fires.
func (t *Timer) Due() time.Time {
	return t.due
}

// timerHeap orders timers by due time, then by arming order.
type timerHeap []*Timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].seq < h[j].seq
	}
	return h[i].due.Before(h[j].due)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*Timer)
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
