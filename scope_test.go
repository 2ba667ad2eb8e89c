package hp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const form = `
<form id="form">
  <input id="user" hp-model="username">
  <input id="theme" hp-model="root.theme">
  <textarea id="bio" hp-model="bio"></textarea>
  <select id="size" hp-model="size"><option value="s">S</option><option value="l">L</option></select>
  <input id="bad" hp-model="a.b">
  <input id="empty" hp-model="root.">
  <div id="div" hp-model="name"></div>
</form>`

func TestModelBindsLocalScope(t *testing.T) {
	tr := NewTestRuntime(form)
	c := Attach(tr.Runtime, tr.Query("#user"), &item{})
	assert.Zero(t, c.Scope().Len())

	tr.Type(c.Node(), "abc")

	assert.Equal(t, "abc", c.Scope().String("username"))
	assert.Equal(t, map[string]any{"username": "abc"}, c.Scope().Snapshot())
	_, ok := c.RootScope().Get("username")
	assert.False(t, ok)
}

func TestModelBindsRootScope(t *testing.T) {
	tr := NewTestRuntime(form)
	c := Attach(tr.Runtime, tr.Query("#theme"), &item{})

	tr.Type(c.Node(), "dark")

	assert.Equal(t, "dark", tr.RootScope().String("theme"))
	assert.Zero(t, c.Scope().Len())
}

func TestModelReadsControlValue(t *testing.T) {
	tr := NewTestRuntime(form)
	bio := Attach(tr.Runtime, tr.Query("#bio"), &item{})
	size := Attach(tr.Runtime, tr.Query("#size"), &item{})

	tr.Type(bio.Node(), "hi")
	tr.Dispatch(size.Node(), "input")

	assert.Equal(t, "hi", bio.Scope().String("bio"))
	assert.Equal(t, "s", size.Scope().String("size"))
}

func TestModelIgnoresMalformed(t *testing.T) {
	for _, sel := range []string{"#bad", "#empty", "#div"} {
		t.Run(sel, func(t *testing.T) {
			tr := NewTestRuntime(form)
			c := Attach(tr.Runtime, tr.Query(sel), &item{})
			assert.Zero(t, tr.Document().ListenerCount(c.Node(), "input"))

			tr.Type(c.Node(), "x")
			assert.Zero(t, c.Scope().Len())
			assert.Zero(t, tr.RootScope().Len())
		})
	}
}

func TestParseModel(t *testing.T) {
	tests := []struct {
		in   string
		name string
		root bool
		ok   bool
	}{
		{"username", "username", false, true},
		{"root.theme", "theme", true, true},
		{"", "", false, false},
		{"root.", "", false, false},
		{"a.b", "", false, false},
		{"root.a.b", "", false, false},
		{"two words", "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			name, root, ok := parseModel(tt.in)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.root, root)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestScopePerNode(t *testing.T) {
	tr := NewTestRuntime(form)
	a := Attach(tr.Runtime, tr.Query("#user"), &item{})
	b := Attach(tr.Runtime, tr.Query("#user"), &item{})
	c := Attach(tr.Runtime, tr.Query("#theme"), &item{})

	assert.Same(t, a.Scope(), b.Scope())
	assert.NotSame(t, a.Scope(), c.Scope())
	assert.Same(t, a.RootScope(), c.RootScope())
	assert.Same(t, tr.Document().Root(), tr.RootScope().Node())
}

func TestParentScope(t *testing.T) {
	tr := NewTestRuntime(form)
	child := Attach(tr.Runtime, tr.Query("#user"), &item{})
	assert.Same(t, tr.RootScope(), child.ParentScope(), "no parent falls back to root")

	p := Attach(tr.Runtime, tr.Query("#form"), &panel{})
	nested := Attach(tr.Runtime, tr.Query("#theme"), &item{})
	assert.Same(t, p.Scope(), nested.ParentScope())
}

func TestScopeWatchers(t *testing.T) {
	tr := NewTestRuntime(form)
	w := Attach(tr.Runtime, tr.Query("#user"), &watcher{})
	other := Attach(tr.Runtime, tr.Query("#theme"), &watcher{})

	tr.Type(w.Node(), "ab")
	w.Scope().Set("username", "ab")

	require.Equal(t, []string{"username=a", "username=ab"}, w.changes)
	assert.Empty(t, other.changes)
}

func TestDestroyDropsScope(t *testing.T) {
	tr := NewTestRuntime(form)
	c := Attach(tr.Runtime, tr.Query("#user"), &item{})
	c.Scope().Set("k", "v")
	node := c.Node()

	tr.Destroy(node, 0)
	assert.Zero(t, tr.ScopeOf(node).Len())
}
