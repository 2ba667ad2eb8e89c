package hp

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/pthm/horsepower/lib/dom"
	"github.com/pthm/horsepower/lib/scope"
)

// ModelAttr binds a form control's value into a scope. Its value is either
// "name" for the component's own scope or "root.name" for the root scope.
const ModelAttr = "hp-model"

const rootPrefix = "root."

// ScopeOf returns the scope of node, creating it on first use. Components
// bound to node that implement ScopeWatcher see every change.
func (rt *Runtime) ScopeOf(node *html.Node) *scope.Scope {
	if s, ok := rt.scopes[node]; ok {
		return s
	}
	s := scope.New(node)
	s.Watch(func(ch scope.Change) {
		for _, b := range rt.bound(node) {
			if w, ok := b.(ScopeWatcher); ok {
				w.OnScope(ch.Value, ch.OldValue, ch.Prop)
			}
		}
	})
	rt.scopes[node] = s
	return s
}

// RootScope returns the scope shared by every component, keyed to the
// document node.
func (rt *Runtime) RootScope() *scope.Scope {
	return rt.ScopeOf(rt.doc.Root())
}

// Scope returns the scope of the component's node.
func (c *Component) Scope() *scope.Scope {
	return c.rt.ScopeOf(c.node)
}

// ParentScope returns the scope of the parent's node, or the root scope
// when the component has no live parent.
func (c *Component) ParentScope() *scope.Scope {
	if p, ok := c.Parent(); ok {
		return c.rt.ScopeOf(p.component().node)
	}
	return c.rt.RootScope()
}

// RootScope returns the runtime's root scope.
func (c *Component) RootScope() *scope.Scope {
	return c.rt.RootScope()
}

// parseModel splits an hp-model value. It reports false for anything other
// than "name" or "root.name".
func parseModel(v string) (name string, root bool, ok bool) {
	if strings.HasPrefix(v, rootPrefix) {
		name = strings.TrimPrefix(v, rootPrefix)
		root = true
	} else {
		name = v
	}
	if name == "" || strings.ContainsAny(name, ". \t\n") {
		return "", false, false
	}
	return name, root, true
}

// bindModel wires the input listener for an hp-model form control.
func (rt *Runtime) bindModel(c *Component) {
	v, ok := dom.Attr(c.node, ModelAttr)
	if !ok || !dom.IsFormControl(c.node) {
		return
	}
	name, root, ok := parseModel(v)
	if !ok {
		rt.logger.Debug("ignoring hp-model", "value", v, "id", c.id)
		return
	}
	c.On(dom.Input, func(*dom.Event) {
		target := c.Scope()
		if root {
			target = rt.RootScope()
		}
		target.Set(name, rt.doc.Value(c.node))
	})
}
