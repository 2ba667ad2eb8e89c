// Package scope implements the observable state objects that the runtime
// associates with DOM nodes.
//
// A Scope behaves like an ordinary map[string]any whose writes are visible
// to watchers. Writing a value equal (reflect.DeepEqual) to the current one
// is not a change and notifies no one.
package scope

import (
	"reflect"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/net/html"
)

// Change describes a single property write.
type Change struct {
	Prop     string
	Value    any
	OldValue any
	Deleted  bool
}

// WatchFunc receives changes after they are applied.
type WatchFunc func(Change)

type watcher struct {
	fn WatchFunc
}

// Scope is a mutable, observable mapping bound to a node.
type Scope struct {
	node     *html.Node
	values   map[string]any
	watchers mapset.Set[*watcher]
	order    []*watcher
}

// New creates an empty scope for node.
func New(node *html.Node) *Scope {
	return &Scope{
		node:     node,
		values:   make(map[string]any),
		watchers: mapset.NewThreadUnsafeSet[*watcher](),
	}
}

// Node returns the node the scope belongs to.
func (s *Scope) Node() *html.Node {
	return s.node
}

// Get returns the value stored under prop.
func (s *Scope) Get(prop string) (any, bool) {
	v, ok := s.values[prop]
	return v, ok
}

// String returns the value under prop if it is a string.
func (s *Scope) String(prop string) string {
	v, _ := s.values[prop].(string)
	return v
}

// Set writes prop and notifies watchers if the value changed.
func (s *Scope) Set(prop string, value any) {
	old, existed := s.values[prop]
	if existed && reflect.DeepEqual(old, value) {
		return
	}
	s.values[prop] = value
	s.emit(Change{Prop: prop, Value: value, OldValue: old})
}

// Delete removes prop and notifies watchers if it existed.
func (s *Scope) Delete(prop string) {
	old, existed := s.values[prop]
	if !existed {
		return
	}
	delete(s.values, prop)
	s.emit(Change{Prop: prop, OldValue: old, Deleted: true})
}

// Len returns the number of properties.
func (s *Scope) Len() int {
	return len(s.values)
}

// Keys returns the property names in sorted order.
func (s *Scope) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a shallow copy of the current values.
func (s *Scope) Snapshot() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Watch registers fn for every subsequent change. Watchers run in
// registration order. The returned function unregisters fn.
func (s *Scope) Watch(fn WatchFunc) (stop func()) {
	w := &watcher{fn: fn}
	s.watchers.Add(w)
	s.order = append(s.order, w)
	return func() {
		if !s.watchers.Contains(w) {
			return
		}
		s.watchers.Remove(w)
		for i, cur := range s.order {
			if cur == w {
				s.order = append(s.order[:i:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// Watchers returns the number of registered watchers.
func (s *Scope) Watchers() int {
	return s.watchers.Cardinality()
}

func (s *Scope) emit(c Change) {
	if s.watchers.Cardinality() == 0 {
		return
	}
	order := make([]*watcher, len(s.order))
	copy(order, s.order)
	for _, w := range order {
		// Skip watchers removed by an earlier watcher in this round.
		if !s.watchers.Contains(w) {
			continue
		}
		w.fn(c)
	}
}
