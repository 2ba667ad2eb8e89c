package hp

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/pthm/horsepower/lib/dom"
	"github.com/pthm/horsepower/lib/loop"
)

// Component is the base type embedded by user components.
//
// Embed it by value and hand a pointer to the outer type to Attach:
//
//	type Slider struct {
//	    hp.Component
//	    value int
//	}
//
//	s := hp.Attach(rt, node, &Slider{})
//
// The embedding pattern promotes the traversal, scope, broadcast and
// scheduling methods directly onto the user's type. A Component's zero
// value is detached; every method except Live requires Attach to have run.
type Component struct {
	rt        *Runtime
	self      Behavior
	id        int64
	node      *html.Node
	parentID  int64
	transform Transformer

	hold     *loop.Timer
	tasks    []*loop.Task
	removers []func()
	live     bool
}

func (c *Component) component() *Component { return c }

// Attach binds b to node and registers it. A nil node binds b to a new
// detached div. Attaching the same instance twice panics.
//
// In order: the instance is registered, its parent and transform are
// resolved, listeners for its capabilities are added, an hp-model
// attribute on node is bound, then Init and Created run if implemented.
func Attach[B Behavior](rt *Runtime, node *html.Node, b B) B {
	c := b.component()
	if c.rt != nil {
		panic(fmt.Sprintf("hp: %T is already attached", b))
	}
	if node == nil {
		node = rt.doc.CreateElement("div")
	}
	c.rt = rt
	c.self = b
	c.node = node

	rt.registry.Register(b)
	c.live = true

	if p, ok := c.ResolveParent(); ok {
		c.parentID = p.component().id
	}
	c.transform = c.resolveTransform()

	rt.wireEvents(c)
	rt.bindModel(c)

	if i, ok := any(b).(Initializer); ok {
		i.Init()
	}
	rt.logger.Debug("component attached",
		"type", fmt.Sprintf("%T", b),
		"id", c.id,
		"node", nodeName(node))
	if cr, ok := any(b).(Creator); ok {
		cr.Created()
	}
	return b
}

// ID returns the identifier issued at attach time.
func (c *Component) ID() int64 { return c.id }

// Node returns the node the component is bound to.
func (c *Component) Node() *html.Node { return c.node }

// Runtime returns the runtime the component is attached to.
func (c *Component) Runtime() *Runtime { return c.rt }

// Self returns the outer value that embeds this Component.
func (c *Component) Self() Behavior { return c.self }

// Document is shorthand for Runtime().Document().
func (c *Component) Document() *dom.Document { return c.rt.doc }

// Keyboard returns the runtime's most recent keyboard snapshot.
func (c *Component) Keyboard() *Keyboard { return c.rt.keyboard }

// Mouse returns the runtime's most recent pointer snapshot.
func (c *Component) Mouse() *Mouse { return c.rt.mouse }

// Live reports whether the component is still registered.
func (c *Component) Live() bool { return c.live }

// Parent returns the component recorded as parent at attach time: the
// first Transformer on the nearest ancestor that had one. It is a lookup,
// not a reference, so it reports false once that component is removed.
func (c *Component) Parent() (Behavior, bool) {
	if c.parentID == 0 {
		return nil, false
	}
	return c.rt.registry.ByID(c.parentID)
}

// ResolveParent recomputes the parent against the current tree.
func (c *Component) ResolveParent() (Behavior, bool) {
	for n := c.node.Parent; n != nil; n = n.Parent {
		for _, b := range c.rt.bound(n) {
			if _, ok := b.(Transformer); ok {
				return b, true
			}
		}
	}
	return nil, false
}

// Transform returns the transform state of the component's node: its own
// if it is a Transformer, otherwise that of the first Transformer already
// attached to the same node. It returns nil if there is none.
func (c *Component) Transform() *Transform {
	if c.transform == nil {
		return nil
	}
	return c.transform.TransformState()
}

func (c *Component) resolveTransform() Transformer {
	if t, ok := c.self.(Transformer); ok {
		return t
	}
	for _, b := range c.rt.bound(c.node) {
		if t, ok := b.(Transformer); ok && b.component() != c {
			return t
		}
	}
	return nil
}

func nodeName(n *html.Node) string {
	switch n.Type {
	case html.DocumentNode:
		return "#document"
	case html.ElementNode:
		if id, ok := dom.Attr(n, "id"); ok {
			return n.Data + "#" + id
		}
		return n.Data
	default:
		return "#node"
	}
}
