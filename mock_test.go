package hp

import (
	"time"

	"golang.org/x/net/html"
)

// item is a component with no capabilities.
type item struct {
	Component
	name string
}

// panel anchors the components beneath it.
type panel struct {
	Transform
}

// counter records input callbacks.
type counter struct {
	Component
	clicks  int
	doubles int
	keys    []string
	ups     []string
}

func (c *counter) Clicked(*Mouse)       { c.clicks++ }
func (c *counter) DoubleClicked(*Mouse) { c.doubles++ }
func (c *counter) KeyDown(k *Keyboard)  { c.keys = append(c.keys, k.Key) }
func (c *counter) KeyUp(k *Keyboard)    { c.ups = append(c.ups, k.Key) }

// holder records long presses.
type holder struct {
	Component
	holds int
	at    []time.Time
}

func (h *holder) MouseHeldDown(*Mouse) {
	h.holds++
	h.at = append(h.at, h.Runtime().Loop().Now())
}

// ticker returns the scripted delays in order, then stops.
type ticker struct {
	Component
	script []time.Duration
	at     []time.Time
}

func (t *ticker) Tick() time.Duration {
	t.at = append(t.at, t.Runtime().Loop().Now())
	if len(t.script) == 0 {
		return 0
	}
	next := t.script[0]
	t.script = t.script[1:]
	return next
}

// looper loops forever at a fixed interval.
type looper struct {
	Component
	every time.Duration
	runs  int
}

func (l *looper) Loop() time.Duration {
	l.runs++
	return l.every
}

// tracker records lifecycle callbacks.
type tracker struct {
	Component
	created  int
	removed  int
	modified []string
	added    []*html.Node
	dropped  []*html.Node
}

func (t *tracker) Created() { t.created++ }
func (t *tracker) Removed() { t.removed++ }
func (t *tracker) Modified(attr, value, old string) {
	t.modified = append(t.modified, attr+"="+value+"<-"+old)
}
func (t *tracker) ChildrenAdded(nodes []*html.Node)   { t.added = append(t.added, nodes...) }
func (t *tracker) ChildrenRemoved(nodes []*html.Node) { t.dropped = append(t.dropped, nodes...) }

// greeter has an arbitrary exported method for broadcast.
type greeter struct {
	Component
	greeted []string
	pinged  int
}

func (g *greeter) Greet(name string) { g.greeted = append(g.greeted, name) }
func (g *greeter) Ping()             { g.pinged++ }

// watcher records scope changes on its node.
type watcher struct {
	Component
	changes []string
}

func (w *watcher) OnScope(value, old any, prop string) {
	s, _ := value.(string)
	w.changes = append(w.changes, prop+"="+s)
}

// receiver records ajax payloads.
type receiver struct {
	Component
	data []any
}

func (r *receiver) AjaxResponse(data any) { r.data = append(r.data, data) }
