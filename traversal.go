package hp

import (
	"golang.org/x/net/html"

	"github.com/pthm/horsepower/lib/dom"
)

// Lookups scan the registry in construction order. When several
// components match, the one attached first wins. None of them fail: a
// missing match is reported with ok == false.

func first[T Behavior](rt *Runtime, match func(*Component) bool) (T, bool) {
	for _, b := range rt.registry.All() {
		if t, ok := b.(T); ok && match(b.component()) {
			return t, true
		}
	}
	var zero T
	return zero, false
}

func all[T Behavior](rt *Runtime, match func(*Component) bool) []T {
	var out []T
	for _, b := range rt.registry.All() {
		if t, ok := b.(T); ok && match(b.component()) {
			out = append(out, t)
		}
	}
	return out
}

// FindComponent returns the first live component of type T anywhere.
func FindComponent[T Behavior](rt *Runtime) (T, bool) {
	return first[T](rt, func(*Component) bool { return true })
}

// FindComponents returns every live component of type T.
func FindComponents[T Behavior](rt *Runtime) []T {
	return all[T](rt, func(*Component) bool { return true })
}

// ElementComponent returns the first component of type T bound to node.
func ElementComponent[T Behavior](rt *Runtime, node *html.Node) (T, bool) {
	return first[T](rt, func(c *Component) bool { return c.node == node })
}

// ElementComponents returns the components of type T bound to node.
func ElementComponents[T Behavior](rt *Runtime, node *html.Node) []T {
	return all[T](rt, func(c *Component) bool { return c.node == node })
}

// GetComponent returns the first component of type T on from's node,
// which may be from itself.
func GetComponent[T Behavior](from Behavior) (T, bool) {
	c := from.component()
	return ElementComponent[T](c.rt, c.node)
}

// GetComponents returns the components of type T on from's node.
func GetComponents[T Behavior](from Behavior) []T {
	c := from.component()
	return ElementComponents[T](c.rt, c.node)
}

// AddComponent attaches b to from's node.
func AddComponent[B Behavior](from Behavior, b B) B {
	c := from.component()
	return Attach(c.rt, c.node, b)
}

// RemoveComponent unregisters the first component of type T on from's
// node. It reports whether one was found.
func RemoveComponent[T Behavior](from Behavior) bool {
	t, ok := GetComponent[T](from)
	if ok {
		from.component().rt.unregister(t)
	}
	return ok
}

// RemoveComponents unregisters every component of type T on from's node
// and returns how many were removed.
func RemoveComponents[T Behavior](from Behavior) int {
	list := GetComponents[T](from)
	rt := from.component().rt
	for _, t := range list {
		rt.unregister(t)
	}
	return len(list)
}

// ParentComponent returns the first component of type T bound to the
// immediate parent of from's node.
func ParentComponent[T Behavior](from Behavior) (T, bool) {
	c := from.component()
	parent := c.node.Parent
	if parent == nil {
		var zero T
		return zero, false
	}
	return ElementComponent[T](c.rt, parent)
}

// ClosestComponent walks the ancestors of from's node outward, up to and
// including the document node, and returns the first component of type T
// found on the nearest one.
func ClosestComponent[T Behavior](from Behavior) (T, bool) {
	c := from.component()
	for n := c.node.Parent; n != nil; n = n.Parent {
		if t, ok := ElementComponent[T](c.rt, n); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// ChildComponent returns the first component of type T bound anywhere
// below from's node.
func ChildComponent[T Behavior](from Behavior) (T, bool) {
	c := from.component()
	below := descendantSet(c.node)
	return first[T](c.rt, func(o *Component) bool { return below[o.node] })
}

// ChildComponents returns every component of type T bound below from's
// node.
func ChildComponents[T Behavior](from Behavior) []T {
	c := from.component()
	below := descendantSet(c.node)
	return all[T](c.rt, func(o *Component) bool { return below[o.node] })
}

// SiblingComponent returns the first component of type T bound to a
// sibling of from's node. With inclusive, from's own node also counts.
func SiblingComponent[T Behavior](from Behavior, inclusive bool) (T, bool) {
	c := from.component()
	return first[T](c.rt, siblingOf(c.node, inclusive))
}

// SiblingComponents returns every component of type T bound to a sibling
// of from's node.
func SiblingComponents[T Behavior](from Behavior, inclusive bool) []T {
	c := from.component()
	return all[T](c.rt, siblingOf(c.node, inclusive))
}

// ClosestElement returns a component for the nearest element, starting at
// from's own node, that matches selector. If that element has no component
// yet an Element is attached to it. A bad selector is logged and treated
// as no match.
func ClosestElement(from Behavior, selector string) (Behavior, bool) {
	c := from.component()
	n, err := dom.Closest(c.node, selector)
	if err != nil {
		c.rt.logger.Warn("closest element: invalid selector", "selector", selector, "error", err)
		return nil, false
	}
	if n == nil {
		return nil, false
	}
	return c.rt.materialize(n), true
}

// SiblingElement returns a component for the first other child of the
// parent of from's node that matches selector, attaching an Element if it
// has none.
func SiblingElement(from Behavior, selector string) (Behavior, bool) {
	c := from.component()
	if c.node.Parent == nil {
		return nil, false
	}
	sel, err := dom.Compile(selector)
	if err != nil {
		c.rt.logger.Warn("sibling element: invalid selector", "selector", selector, "error", err)
		return nil, false
	}
	for _, n := range dom.Children(c.node.Parent) {
		if n != c.node && sel.Match(n) {
			return c.rt.materialize(n), true
		}
	}
	return nil, false
}

// materialize returns the first component on n, attaching an Element if
// there is none.
func (rt *Runtime) materialize(n *html.Node) Behavior {
	if list := rt.bound(n); len(list) > 0 {
		return list[0]
	}
	return Attach(rt, n, &Element{})
}

func descendantSet(n *html.Node) map[*html.Node]bool {
	set := make(map[*html.Node]bool)
	for _, d := range dom.Descendants(n) {
		set[d] = true
	}
	return set
}

func siblingOf(n *html.Node, inclusive bool) func(*Component) bool {
	return func(o *Component) bool {
		if n.Parent == nil || o.node.Parent != n.Parent {
			return false
		}
		return inclusive || o.node != n
	}
}
