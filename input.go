package hp

import (
	"golang.org/x/net/html"

	"github.com/pthm/horsepower/lib/dom"
)

// Keyboard is the most recent keyboard event seen by the runtime. One
// value per runtime is shared by every component and updated in place.
type Keyboard struct {
	Key    string
	Code   string
	Repeat bool

	Alt, Ctrl, Shift, Meta bool
}

func (k *Keyboard) update(ev *dom.Event) {
	*k = Keyboard{
		Key:    ev.Key,
		Code:   ev.Code,
		Repeat: ev.Repeat,
		Alt:    ev.AltKey,
		Ctrl:   ev.CtrlKey,
		Shift:  ev.ShiftKey,
		Meta:   ev.MetaKey,
	}
}

// Mouse is the most recent pointer event seen by the runtime.
type Mouse struct {
	X, Y    float64
	Button  int
	Buttons int
	Target  *html.Node

	Alt, Ctrl, Shift, Meta bool
}

func (m *Mouse) update(ev *dom.Event) {
	*m = Mouse{
		X:       ev.X,
		Y:       ev.Y,
		Button:  ev.Button,
		Buttons: ev.Buttons,
		Target:  ev.Target,
		Alt:     ev.AltKey,
		Ctrl:    ev.CtrlKey,
		Shift:   ev.ShiftKey,
		Meta:    ev.MetaKey,
	}
}
