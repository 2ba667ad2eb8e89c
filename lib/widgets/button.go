// Package widgets holds ready-made components built on the hp core.
package widgets

import (
	hp "github.com/pthm/horsepower"
	"github.com/pthm/horsepower/lib/dom"
)

// Accepter receives the button's value when it is clicked.
type Accepter interface {
	Accept(value string)
}

// Rejecter receives the button's value when it is clicked. It is only
// consulted when the component is not an Accepter.
type Rejecter interface {
	Reject(value string)
}

// Button wires clicks on a <button> or <input type=button|submit|reset> to
// the Accept or Reject method of the type embedding it:
//
//	type Save struct {
//	    widgets.Button
//	}
//
//	func (s *Save) Accept(value string) { ... }
//
// The default action of the click is prevented. On any other node Button
// does nothing.
type Button struct {
	hp.Component
}

// Init implements hp.Initializer.
func (b *Button) Init() {
	if !dom.IsButton(b.Node()) {
		return
	}
	switch h := b.Self().(type) {
	case Accepter:
		b.On(dom.Click, func(ev *dom.Event) {
			ev.PreventDefault()
			h.Accept(b.Value())
		})
	case Rejecter:
		b.On(dom.Click, func(ev *dom.Event) {
			ev.PreventDefault()
			h.Reject(b.Value())
		})
	}
}

// Value returns the current value of the button.
func (b *Button) Value() string {
	return b.Document().Value(b.Node())
}

// Disabled sets or clears the disabled attribute on input and button
// elements.
func (b *Button) Disabled(disabled bool) {
	n := b.Node()
	if n.Data != "input" && n.Data != "button" {
		return
	}
	if disabled {
		b.Document().SetAttr(n, "disabled", "")
	} else {
		b.Document().RemoveAttr(n, "disabled")
	}
}

// IsDisabled reports whether the disabled attribute is present.
func (b *Button) IsDisabled() bool {
	_, ok := dom.Attr(b.Node(), "disabled")
	return ok
}
