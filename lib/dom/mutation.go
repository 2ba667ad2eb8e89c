package dom

import "golang.org/x/net/html"

// MutationType distinguishes attribute changes from child list changes.
type MutationType string

const (
	Attributes MutationType = "attributes"
	ChildList  MutationType = "childList"
)

// Mutation describes one change made through the Document.
type Mutation struct {
	Type     MutationType
	Target   *html.Node
	Attr     string
	Value    string
	OldValue string
	Added    []*html.Node
	Removed  []*html.Node
}

type observer struct {
	fn func(Mutation)
}

// Observe registers fn to receive every mutation made through d. The
// returned function unregisters it.
func (d *Document) Observe(fn func(Mutation)) (cancel func()) {
	o := &observer{fn: fn}
	d.observers = append(d.observers, o)
	return func() {
		for i, cur := range d.observers {
			if cur == o {
				d.observers = append(d.observers[:i:i], d.observers[i+1:]...)
				return
			}
		}
	}
}

func (d *Document) notify(m Mutation) {
	if len(d.observers) == 0 {
		return
	}
	observers := make([]*observer, len(d.observers))
	copy(observers, d.observers)
	for _, o := range observers {
		o.fn(m)
	}
}
