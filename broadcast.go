package hp

import (
	"fmt"
	"reflect"

	"golang.org/x/net/html"

	"github.com/pthm/horsepower/lib/dom"
)

// Broadcast calls the exported method named method on every component
// bound to this component's node, itself included. Components without the
// method, or whose method does not accept args, are skipped.
func (c *Component) Broadcast(method string, args ...any) {
	c.rt.invoke(c.rt.bound(c.node), method, args)
}

// BroadcastTo calls method on the components selected by target: a CSS
// selector string (components on every matching node), a *html.Node, or a
// component value standing for its dynamic type (a typed nil such as
// (*Menu)(nil) works).
func (c *Component) BroadcastTo(target any, method string, args ...any) error {
	return c.rt.BroadcastTo(target, method, args...)
}

// BroadcastAll calls method on every live component.
func (c *Component) BroadcastAll(method string, args ...any) {
	c.rt.BroadcastAll(method, args...)
}

// BroadcastAll calls method on every live component.
func (rt *Runtime) BroadcastAll(method string, args ...any) {
	rt.invoke(rt.registry.All(), method, args)
}

// BroadcastTo is Component.BroadcastTo without a calling component.
func (rt *Runtime) BroadcastTo(target any, method string, args ...any) error {
	switch t := target.(type) {
	case string:
		nodes, err := dom.QuerySelectorAll(rt.doc.Root(), t)
		if err != nil {
			rt.logger.Warn("broadcast: invalid selector", "selector", t, "error", err)
			return fmt.Errorf("%w: %q", ErrInvalidSelector, t)
		}
		for _, n := range nodes {
			rt.invoke(rt.bound(n), method, args)
		}
		return nil
	case *html.Node:
		rt.invoke(rt.bound(t), method, args)
		return nil
	case Behavior:
		want := reflect.TypeOf(t)
		var matched []Behavior
		for _, b := range rt.registry.All() {
			if reflect.TypeOf(b) == want {
				matched = append(matched, b)
			}
		}
		rt.invoke(matched, method, args)
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedTarget, target)
	}
}

// BroadcastToType calls method on every live component of type T.
func BroadcastToType[T Behavior](rt *Runtime, method string, args ...any) {
	var matched []Behavior
	for _, b := range rt.registry.All() {
		if _, ok := b.(T); ok {
			matched = append(matched, b)
		}
	}
	rt.invoke(matched, method, args)
}

// invoke calls method on each component that still is live when its turn
// comes, so a handler may remove later recipients.
func (rt *Runtime) invoke(targets []Behavior, method string, args []any) {
	for _, b := range targets {
		if !b.component().live {
			continue
		}
		m := reflect.ValueOf(b).MethodByName(method)
		if !m.IsValid() {
			continue
		}
		in, ok := callArgs(m.Type(), args)
		if !ok {
			rt.logger.Debug("broadcast: argument mismatch", "method", method, "type", fmt.Sprintf("%T", b))
			continue
		}
		m.Call(in)
	}
}

// callArgs converts args to the parameter types of fn. Nil becomes the
// zero value of the parameter.
func callArgs(fn reflect.Type, args []any) ([]reflect.Value, bool) {
	if fn.IsVariadic() {
		if len(args) < fn.NumIn()-1 {
			return nil, false
		}
	} else if len(args) != fn.NumIn() {
		return nil, false
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var pt reflect.Type
		if fn.IsVariadic() && i >= fn.NumIn()-1 {
			pt = fn.In(fn.NumIn() - 1).Elem()
		} else {
			pt = fn.In(i)
		}
		if arg == nil {
			in[i] = reflect.Zero(pt)
			continue
		}
		v := reflect.ValueOf(arg)
		switch {
		case v.Type().AssignableTo(pt):
		case v.Type().ConvertibleTo(pt) && v.Kind() != reflect.String && pt.Kind() != reflect.String:
			v = v.Convert(pt)
		default:
			return nil, false
		}
		in[i] = v
	}
	return in, true
}
