package dom

import (
	"golang.org/x/net/html"
)

// Event types the runtime listens for.
const (
	KeyDown     = "keydown"
	KeyUp       = "keyup"
	Click       = "click"
	DblClick    = "dblclick"
	TouchStart  = "touchstart"
	TouchEnd    = "touchend"
	TouchCancel = "touchcancel"
	MouseDown   = "mousedown"
	MouseUp     = "mouseup"
	MouseOut    = "mouseout"
	Input       = "input"
)

// Event is a synthetic DOM event. Keyboard and pointer fields are only
// meaningful for the matching event types.
type Event struct {
	Type          string
	Target        *html.Node
	CurrentTarget *html.Node

	// Keyboard
	Key    string
	Code   string
	Repeat bool

	// Pointer
	X, Y    float64
	Button  int
	Buttons int

	// Modifiers
	AltKey, CtrlKey, ShiftKey, MetaKey bool

	defaultPrevented bool
	stopped          bool
	stoppedNow       bool
}

// PreventDefault marks the default action as cancelled.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation prevents the event from reaching further ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// StopImmediatePropagation also skips remaining listeners on this node.
func (e *Event) StopImmediatePropagation() {
	e.stopped = true
	e.stoppedNow = true
}

// Listener handles an event.
type Listener func(*Event)

type listener struct {
	id int
	fn Listener
}

// AddEventListener attaches fn to n for the given event type and returns a
// function that detaches it.
func (d *Document) AddEventListener(n *html.Node, typ string, fn Listener) (remove func()) {
	byType, ok := d.listeners[n]
	if !ok {
		byType = make(map[string][]*listener)
		d.listeners[n] = byType
	}
	d.nextID++
	l := &listener{id: d.nextID, fn: fn}
	byType[typ] = append(byType[typ], l)

	return func() {
		list := d.listeners[n][typ]
		for i, cur := range list {
			if cur.id == l.id {
				d.listeners[n][typ] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns how many listeners of typ are attached to n.
func (d *Document) ListenerCount(n *html.Node, typ string) int {
	return len(d.listeners[n][typ])
}

// Dispatch delivers ev to target and then bubbles it through target's
// ancestors. It returns false if a listener prevented the default action.
func (d *Document) Dispatch(target *html.Node, ev *Event) bool {
	ev.Target = target

	var path []*html.Node
	for cur := target; cur != nil; cur = cur.Parent {
		path = append(path, cur)
	}

	for _, node := range path {
		list := d.listeners[node][ev.Type]
		if len(list) == 0 {
			continue
		}
		snapshot := make([]*listener, len(list))
		copy(snapshot, list)

		ev.CurrentTarget = node
		for _, l := range snapshot {
			l.fn(ev)
			if ev.stoppedNow {
				break
			}
		}
		if ev.stopped {
			break
		}
	}
	ev.CurrentTarget = nil
	return !ev.defaultPrevented
}
