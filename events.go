package hp

import (
	"time"

	"github.com/pthm/horsepower/lib/dom"
)

// HoldThreshold is how long a press must last before it is reported to
// HoldReceiver components.
const HoldThreshold = 500 * time.Millisecond

var (
	pressEvents   = []string{dom.TouchStart, dom.MouseDown}
	releaseEvents = []string{dom.TouchEnd, dom.TouchCancel, dom.MouseUp, dom.MouseOut}
)

// On adds a listener for typ on the component's node. It is removed when
// the component is unregistered.
func (c *Component) On(typ string, fn dom.Listener) {
	c.removers = append(c.removers, c.rt.doc.AddEventListener(c.node, typ, fn))
}

// wireEvents adds one listener per implemented input capability.
func (rt *Runtime) wireEvents(c *Component) {
	b := c.self

	if kd, ok := b.(KeyDowner); ok {
		c.On(dom.KeyDown, func(ev *dom.Event) {
			rt.keyboard.update(ev)
			kd.KeyDown(rt.keyboard)
		})
	}
	if ku, ok := b.(KeyUpper); ok {
		c.On(dom.KeyUp, func(ev *dom.Event) {
			rt.keyboard.update(ev)
			ku.KeyUp(rt.keyboard)
		})
	}
	if cl, ok := b.(Clicker); ok {
		c.On(dom.Click, func(ev *dom.Event) {
			ev.PreventDefault()
			rt.mouse.update(ev)
			cl.Clicked(rt.mouse)
		})
	}
	if dc, ok := b.(DoubleClicker); ok {
		c.On(dom.DblClick, func(ev *dom.Event) {
			ev.PreventDefault()
			rt.mouse.update(ev)
			dc.DoubleClicked(rt.mouse)
		})
	}
	if hr, ok := b.(HoldReceiver); ok {
		for _, typ := range pressEvents {
			c.On(typ, func(ev *dom.Event) {
				rt.mouse.update(ev)
				c.startHold(hr)
			})
		}
		for _, typ := range releaseEvents {
			c.On(typ, func(*dom.Event) {
				c.stopHold()
			})
		}
	}
}

// startHold arms the hold timer. A second press before release re-arms it,
// so one gesture reports at most one hold.
func (c *Component) startHold(hr HoldReceiver) {
	c.stopHold()
	c.hold = c.rt.loop.AfterFunc(HoldThreshold, func() {
		c.hold = nil
		hr.MouseHeldDown(c.rt.mouse)
	})
}

func (c *Component) stopHold() {
	if c.hold != nil {
		c.hold.Stop()
		c.hold = nil
	}
}

// Holding reports whether a press is waiting to become a hold.
func (c *Component) Holding() bool {
	return c.hold != nil
}
