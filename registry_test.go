package hp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachIssuesIncreasingIDs(t *testing.T) {
	tr := NewTestRuntime(`<div id="a"></div><div id="b"></div>`)

	var last int64
	for i, sel := range []string{"#a", "#a", "#b", "body"} {
		before := tr.Registry().Len()
		c := Attach(tr.Runtime, tr.Query(sel), &item{})
		assert.Greater(t, c.ID(), last, "attach %d", i)
		assert.Equal(t, before+1, tr.Registry().Len())
		last = c.ID()
	}
	assert.Equal(t, last, tr.Registry().LastID())
}

func TestIDsAreNeverReused(t *testing.T) {
	tr := NewTestRuntime(``)
	a := Attach(tr.Runtime, nil, &item{})
	tr.Destroy(a, 0)
	b := Attach(tr.Runtime, nil, &item{})
	assert.Greater(t, b.ID(), a.ID())
}

func TestRegistryOrderAndRemoval(t *testing.T) {
	tr := NewTestRuntime(``)
	a := Attach(tr.Runtime, nil, &item{name: "a"})
	b := Attach(tr.Runtime, nil, &item{name: "b"})
	c := Attach(tr.Runtime, nil, &item{name: "c"})

	names := func() []string {
		var out []string
		for _, x := range tr.Components() {
			out = append(out, x.(*item).name)
		}
		return out
	}
	assert.Equal(t, []string{"a", "b", "c"}, names())

	reg := tr.Registry()
	assert.True(t, reg.Unregister(b))
	assert.False(t, reg.Unregister(b), "second removal is a no-op")
	assert.Equal(t, []string{"a", "c"}, names())
	assert.True(t, reg.Contains(a))
	assert.False(t, reg.Contains(b))

	got, ok := reg.ByID(c.ID())
	require.True(t, ok)
	assert.Same(t, c, got)
	_, ok = reg.ByID(b.ID())
	assert.False(t, ok)
}

func TestAttachNilNodeCreatesDetachedDiv(t *testing.T) {
	tr := NewTestRuntime(``)
	c := Attach(tr.Runtime, nil, &item{})
	require.NotNil(t, c.Node())
	assert.Equal(t, "div", c.Node().Data)
	assert.Nil(t, c.Node().Parent)
	assert.True(t, c.Live())
	assert.Same(t, tr.Runtime, c.Runtime())
	assert.Same(t, c, c.Self())
}

func TestAttachTwicePanics(t *testing.T) {
	tr := NewTestRuntime(``)
	c := Attach(tr.Runtime, nil, &item{})
	assert.Panics(t, func() { Attach(tr.Runtime, nil, c) })
}

func TestRuntimesAreIndependent(t *testing.T) {
	one := NewTestRuntime(``)
	two := NewTestRuntime(``)
	Attach(one.Runtime, nil, &item{})
	Attach(one.Runtime, nil, &item{})
	c := Attach(two.Runtime, nil, &item{})

	assert.Equal(t, 2, one.Registry().Len())
	assert.Equal(t, 1, two.Registry().Len())
	assert.Equal(t, int64(1), c.ID())
}
