package hp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/a-h/templ"
	"golang.org/x/net/html"

	"github.com/pthm/horsepower/lib/ajax"
	"github.com/pthm/horsepower/lib/dom"
	"github.com/pthm/horsepower/lib/loop"
	"github.com/pthm/horsepower/lib/scope"
)

// Runtime owns everything the components of one document share: the
// registry, the keyboard and mouse snapshots, the scope table and the event
// loop. All of it is touched only from the loop thread.
type Runtime struct {
	doc      *dom.Document
	loop     *loop.Loop
	logger   *slog.Logger
	client   *ajax.Client
	registry *Registry

	keyboard *Keyboard
	mouse    *Mouse

	scopes  map[*html.Node]*scope.Scope
	running atomic.Bool
	cancel  func()
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithDocument binds the runtime to doc. The default is an empty document.
func WithDocument(doc *dom.Document) Option {
	return func(rt *Runtime) {
		rt.doc = doc
	}
}

// WithLoop sets the event loop. Tests pass a loop.NewManual loop.
func WithLoop(l *loop.Loop) Option {
	return func(rt *Runtime) {
		rt.loop = l
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(rt *Runtime) {
		rt.logger = logger
	}
}

// WithHTTPClient sets the client used by Component.Ajax.
func WithHTTPClient(hc *http.Client) Option {
	return func(rt *Runtime) {
		rt.client = ajax.New(ajax.WithHTTPClient(hc))
	}
}

// New creates a runtime.
func New(opts ...Option) *Runtime {
	rt := &Runtime{
		registry: NewRegistry(),
		keyboard: &Keyboard{},
		mouse:    &Mouse{},
		scopes:   make(map[*html.Node]*scope.Scope),
	}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.doc == nil {
		rt.doc = dom.New()
	}
	if rt.loop == nil {
		rt.loop = loop.New()
	}
	if rt.logger == nil {
		rt.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if rt.client == nil {
		rt.client = ajax.New()
	}
	rt.cancel = rt.doc.Observe(rt.onMutation)
	return rt
}

// Document returns the document the runtime is bound to.
func (rt *Runtime) Document() *dom.Document { return rt.doc }

// Loop returns the runtime's event loop.
func (rt *Runtime) Loop() *loop.Loop { return rt.loop }

// Logger returns the runtime's logger.
func (rt *Runtime) Logger() *slog.Logger { return rt.logger }

// Keyboard returns the most recent keyboard snapshot.
func (rt *Runtime) Keyboard() *Keyboard { return rt.keyboard }

// Mouse returns the most recent pointer snapshot.
func (rt *Runtime) Mouse() *Mouse { return rt.mouse }

// Registry returns the registry of live components.
func (rt *Runtime) Registry() *Registry { return rt.registry }

// Components returns the live components in construction order.
func (rt *Runtime) Components() []Behavior {
	return rt.registry.All()
}

// Run drives the event loop until ctx is cancelled.
func (rt *Runtime) Run(ctx context.Context) error {
	rt.running.Store(true)
	defer rt.running.Store(false)
	rt.logger.Debug("runtime started", "components", rt.registry.Len())
	err := rt.loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close stops delivering document mutations to components.
func (rt *Runtime) Close() {
	if rt.cancel != nil {
		rt.cancel()
		rt.cancel = nil
	}
}

// Call runs fn on the loop thread and waits for it to return. Goroutines
// other than the loop use it to read or mutate the document safely. On a
// manual loop fn runs inline, since the caller already owns the loop.
func (rt *Runtime) Call(ctx context.Context, fn func()) error {
	if rt.loop.Manual() {
		fn()
		return nil
	}
	if !rt.running.Load() {
		return ErrNotRunning
	}

	done := make(chan struct{})
	rt.loop.Post(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("hp: call: %w", ctx.Err())
	}
}

// Render returns node as a templ component. Rendering reads the tree, so
// callers outside the loop thread should render inside Call.
func (rt *Runtime) Render(node *html.Node) templ.Component {
	if node == nil {
		node = rt.doc.Root()
	}
	return dom.Component(node)
}

// bound returns the live components attached to node in registry order.
func (rt *Runtime) bound(node *html.Node) []Behavior {
	var out []Behavior
	for _, b := range rt.registry.All() {
		if b.component().node == node {
			out = append(out, b)
		}
	}
	return out
}

// onMutation forwards document mutations to the components bound to the
// mutated node.
func (rt *Runtime) onMutation(m dom.Mutation) {
	for _, b := range rt.bound(m.Target) {
		if !b.component().live {
			continue
		}
		switch m.Type {
		case dom.Attributes:
			if mod, ok := b.(Modifier); ok {
				mod.Modified(m.Attr, m.Value, m.OldValue)
			}
		case dom.ChildList:
			if add, ok := b.(ChildrenAdder); ok && len(m.Added) > 0 {
				add.ChildrenAdded(m.Added)
			}
			if rem, ok := b.(ChildrenRemover); ok && len(m.Removed) > 0 {
				rem.ChildrenRemoved(m.Removed)
			}
		}
	}
}
