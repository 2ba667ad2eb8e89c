package hp

import "sync/atomic"

// Registry is the ordered collection of live components. Scan order is
// construction order; there are no secondary indices.
type Registry struct {
	entries []Behavior
	clock   atomic.Int64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends b and issues its identifier, strictly greater than
// every identifier issued before.
func (r *Registry) Register(b Behavior) int64 {
	id := r.clock.Add(1)
	b.component().id = id
	r.entries = append(r.entries, b)
	return id
}

// Unregister removes the first entry that is b. It reports whether an
// entry was removed.
func (r *Registry) Unregister(b Behavior) bool {
	c := b.component()
	for i, e := range r.entries {
		if e.component() == c {
			r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether b is registered.
func (r *Registry) Contains(b Behavior) bool {
	c := b.component()
	for _, e := range r.entries {
		if e.component() == c {
			return true
		}
	}
	return false
}

// ByID returns the live component with the given identifier.
func (r *Registry) ByID(id int64) (Behavior, bool) {
	for _, e := range r.entries {
		if e.component().id == id {
			return e, true
		}
	}
	return nil, false
}

// Len returns the number of live components.
func (r *Registry) Len() int {
	return len(r.entries)
}

// All returns a copy of the entries, so callers may unregister while
// iterating.
func (r *Registry) All() []Behavior {
	out := make([]Behavior, len(r.entries))
	copy(out, r.entries)
	return out
}

// LastID returns the most recently issued identifier.
func (r *Registry) LastID() int64 {
	return r.clock.Load()
}
