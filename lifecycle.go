package hp

import (
	"fmt"
	"time"

	"golang.org/x/net/html"

	"github.com/pthm/horsepower/lib/dom"
	"github.com/pthm/horsepower/lib/loop"
)

// Destroy removes target, which is either a *html.Node or a component.
//
// A node is detached from the tree together with its descendants, and every
// component bound to any of those nodes is unregistered. A component is
// unregistered on its own; its node and co-located components are left
// alone. Destroying something already gone is a no-op.
//
// With a positive delay the work is scheduled and the returned timer can
// cancel it; target stays live until then. Otherwise Destroy completes
// before returning and the result is nil.
func (rt *Runtime) Destroy(target any, delay time.Duration) *loop.Timer {
	var run func()
	switch t := target.(type) {
	case *html.Node:
		if t == nil {
			return nil
		}
		run = func() { rt.destroyNode(t) }
	case Behavior:
		run = func() { rt.unregister(t) }
	default:
		rt.logger.Warn("destroy: unsupported target", "type", fmt.Sprintf("%T", target))
		return nil
	}
	if delay > 0 {
		return rt.loop.AfterFunc(delay, run)
	}
	run()
	return nil
}

// Destroy removes the component's node and everything bound beneath it.
func (c *Component) Destroy(delay time.Duration) *loop.Timer {
	return c.rt.Destroy(c.node, delay)
}

// DestroyTarget is Runtime.Destroy called from a component.
func (c *Component) DestroyTarget(target any, delay time.Duration) *loop.Timer {
	return c.rt.Destroy(target, delay)
}

func (rt *Runtime) destroyNode(n *html.Node) {
	nodes := append([]*html.Node{n}, dom.Descendants(n)...)
	doomed := make(map[*html.Node]bool, len(nodes))
	for _, d := range nodes {
		doomed[d] = true
	}
	for _, b := range rt.registry.All() {
		if doomed[b.component().node] {
			rt.unregister(b)
		}
	}

	for _, d := range nodes[1:] {
		rt.doc.Remove(d)
	}
	rt.doc.Remove(n)
	for _, d := range nodes {
		delete(rt.scopes, d)
	}
	rt.logger.Debug("node destroyed", "node", nodeName(n), "descendants", len(nodes)-1)
}

// unregister takes b out of the registry and releases its timers and
// listeners. Removed runs last, after b is no longer visible to queries.
func (rt *Runtime) unregister(b Behavior) {
	if !rt.registry.Unregister(b) {
		return
	}
	c := b.component()
	c.live = false
	c.stopHold()
	for _, t := range c.tasks {
		t.Stop()
	}
	c.tasks = nil
	for _, remove := range c.removers {
		remove()
	}
	c.removers = nil

	rt.logger.Debug("component removed", "type", fmt.Sprintf("%T", b), "id", c.id)
	if r, ok := b.(Remover); ok {
		r.Removed()
	}
}
