package hp

import (
	"time"

	"golang.org/x/net/html"
)

// Behavior is implemented by every component. The only way to satisfy it
// is to embed Component (or a type that embeds it, such as Transform).
type Behavior interface {
	component() *Component
}

// Initializer runs once during Attach, after listeners and form binding
// are wired and before Created. Widgets use it to add their own listeners.
type Initializer interface {
	Init()
}

// Creator is notified once the component is fully attached.
type Creator interface {
	Created()
}

// Remover is notified when the component leaves the registry.
type Remover interface {
	Removed()
}

// Modifier is notified when an attribute of the component's node changes.
type Modifier interface {
	Modified(attr, value, oldValue string)
}

// ChildrenAdder is notified when nodes are inserted under the component's node.
type ChildrenAdder interface {
	ChildrenAdded(nodes []*html.Node)
}

// ChildrenRemover is notified when nodes are removed from the component's node.
type ChildrenRemover interface {
	ChildrenRemoved(nodes []*html.Node)
}

// KeyDowner receives keydown events on the component's node.
type KeyDowner interface {
	KeyDown(k *Keyboard)
}

// KeyUpper receives keyup events on the component's node.
type KeyUpper interface {
	KeyUp(k *Keyboard)
}

// Clicker receives click events. The default action is prevented.
type Clicker interface {
	Clicked(m *Mouse)
}

// DoubleClicker receives dblclick events. The default action is prevented.
type DoubleClicker interface {
	DoubleClicked(m *Mouse)
}

// HoldReceiver is notified when a press lasts at least HoldThreshold.
type HoldReceiver interface {
	MouseHeldDown(m *Mouse)
}

// Ticker is driven by RunTick. Returning a positive duration schedules the
// next tick; zero or negative stops.
type Ticker interface {
	Tick() time.Duration
}

// Looper is driven by StartLoop with the same contract as Ticker.
type Looper interface {
	Loop() time.Duration
}

// ScopeWatcher is notified of writes to the scope of the component's node.
type ScopeWatcher interface {
	OnScope(value, oldValue any, prop string)
}

// ResponseReceiver gets the decoded body of every Ajax request issued by a
// component bound to the same node.
type ResponseReceiver interface {
	AjaxResponse(data any)
}

// Transformer marks a component as the spatial anchor of its node. The
// nearest ancestor owning a Transformer becomes a new component's parent.
type Transformer interface {
	Behavior
	TransformState() *Transform
}
