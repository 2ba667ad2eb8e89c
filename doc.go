// Package hp attaches reusable behavior units ("components") to the nodes
// of a live DOM tree.
//
// A DOM node is an entity; any number of independently typed components may
// be bound to the same node, and the tree itself is the index used for
// hierarchical queries. Everything runs on one logical thread owned by a
// Runtime's event loop.
//
// # Components
//
// Components embed hp.Component by value and are attached to a node:
//
//	type Counter struct {
//	    hp.Component
//	    count int
//	}
//
//	func (c *Counter) Clicked(m *hp.Mouse) {
//	    c.count++
//	}
//
//	rt := hp.New(hp.WithDocument(doc))
//	counter := hp.Attach(rt, node, &Counter{})
//
// Attach registers the instance, resolves its parent and transform,
// wires event listeners and form binding, and issues a monotonically
// increasing identifier.
//
// # Capabilities
//
// Behavior is opt-in through small interfaces (Clicker, KeyDowner,
// HoldReceiver, Ticker, Looper, Remover, ...). A component that does not
// implement one simply does not get the corresponding listener; absence is
// never an error.
//
// # Queries
//
// Lookups are generic over the component type and scan the registry in
// construction order, correlating with the live DOM where needed:
//
//	menu, ok := hp.ClosestComponent[*Menu](c)
//	items := hp.ChildComponents[*Item](c)
//
// # Scopes and binding
//
// Each node may own an observable scope (see lib/scope). Form controls with
// an hp-model attribute write their value into the component's scope
// ("name") or the root scope ("root.name") on every input event.
//
// # Timers
//
// StartLoop, RunTick and RunStaticTick drive periodic work with
// self-rescheduling tasks: the callback returns the delay until the next
// run, or zero to stop. A press held for HoldThreshold is reported to
// HoldReceiver components instead of being treated as a click.
package hp
