package hp

import (
	"time"

	"github.com/pthm/horsepower/lib/loop"
)

// StartLoop calls the component's Loop method after delay and then again
// after each duration it returns, until it returns zero or the component is
// removed. It returns nil if the component is not a Looper.
func (c *Component) StartLoop(delay time.Duration) *loop.Task {
	l, ok := c.self.(Looper)
	if !ok {
		return nil
	}
	return c.repeat(delay, l.Loop)
}

// RunTick is StartLoop for the Tick method.
func (c *Component) RunTick(delay time.Duration) *loop.Task {
	t, ok := c.self.(Ticker)
	if !ok {
		return nil
	}
	return c.repeat(delay, t.Tick)
}

func (c *Component) repeat(delay time.Duration, fn func() time.Duration) *loop.Task {
	task := c.rt.loop.Repeat(delay, func() time.Duration {
		if !c.live {
			return 0
		}
		return fn()
	})
	c.tasks = append(c.tasks, task)
	return task
}

// RunStaticTick calls tick with every live component of type T after delay,
// then again after each duration it returns, until it returns zero. The
// list is gathered afresh for every call.
func RunStaticTick[T Behavior](rt *Runtime, delay time.Duration, tick func([]T) time.Duration) *loop.Task {
	return rt.loop.Repeat(delay, func() time.Duration {
		return tick(FindComponents[T](rt))
	})
}
