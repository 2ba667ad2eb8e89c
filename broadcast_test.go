package hp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const board = `
<div id="one" class="cell"></div>
<div id="two" class="cell"></div>
<div id="three"></div>`

func TestBroadcastAllCreated(t *testing.T) {
	tr := NewTestRuntime(board)
	a := Attach(tr.Runtime, tr.Query("#one"), &tracker{})
	b := Attach(tr.Runtime, nil, &tracker{})
	plain := Attach(tr.Runtime, tr.Query("#two"), &counter{})

	a.BroadcastAll("Created")

	assert.Equal(t, 2, a.created)
	assert.Equal(t, 2, b.created)
	assert.Zero(t, plain.clicks)
}

func TestBroadcastSameNode(t *testing.T) {
	tr := NewTestRuntime(board)
	a := Attach(tr.Runtime, tr.Query("#one"), &greeter{})
	b := Attach(tr.Runtime, tr.Query("#one"), &greeter{})
	elsewhere := Attach(tr.Runtime, tr.Query("#two"), &greeter{})
	Attach(tr.Runtime, tr.Query("#one"), &item{})

	a.Broadcast("Greet", "bob")

	assert.Equal(t, []string{"bob"}, a.greeted)
	assert.Equal(t, []string{"bob"}, b.greeted)
	assert.Empty(t, elsewhere.greeted)
}

func TestBroadcastTo(t *testing.T) {
	tr := NewTestRuntime(board)
	one := Attach(tr.Runtime, tr.Query("#one"), &greeter{})
	two := Attach(tr.Runtime, tr.Query("#two"), &greeter{})
	three := Attach(tr.Runtime, tr.Query("#three"), &greeter{})
	detached := Attach(tr.Runtime, nil, &greeter{})

	require.NoError(t, one.BroadcastTo(".cell", "Ping"))
	assert.Equal(t, []int{1, 1, 0, 0}, []int{one.pinged, two.pinged, three.pinged, detached.pinged})

	require.NoError(t, one.BroadcastTo(tr.Query("#three"), "Ping"))
	assert.Equal(t, 1, three.pinged)

	require.NoError(t, one.BroadcastTo((*greeter)(nil), "Ping"))
	assert.Equal(t, []int{2, 2, 2, 1}, []int{one.pinged, two.pinged, three.pinged, detached.pinged})
}

func TestBroadcastToErrors(t *testing.T) {
	tr := NewTestRuntime(board)
	g := Attach(tr.Runtime, tr.Query("#one"), &greeter{})

	err := g.BroadcastTo("[[", "Ping")
	assert.True(t, IsInvalidSelector(err))

	err = g.BroadcastTo(42, "Ping")
	assert.True(t, IsUnsupportedTarget(err))
	assert.Zero(t, g.pinged)
}

func TestBroadcastToType(t *testing.T) {
	tr := NewTestRuntime(board)
	a := Attach(tr.Runtime, nil, &greeter{})
	b := Attach(tr.Runtime, nil, &greeter{})
	c := Attach(tr.Runtime, nil, &tracker{})

	BroadcastToType[*greeter](tr.Runtime, "Greet", "amy")
	BroadcastToType[*tracker](tr.Runtime, "Greet", "amy")

	assert.Equal(t, []string{"amy"}, a.greeted)
	assert.Equal(t, []string{"amy"}, b.greeted)
	assert.Equal(t, 1, c.created)
}

func TestBroadcastSkipsMismatchedArgs(t *testing.T) {
	tr := NewTestRuntime(board)
	g := Attach(tr.Runtime, nil, &greeter{})

	g.BroadcastAll("Greet")
	g.BroadcastAll("Greet", 1)
	g.BroadcastAll("Greet", "a", "b")
	g.BroadcastAll("Missing", "a")
	g.BroadcastAll("Greet", nil)

	assert.Equal(t, []string{""}, g.greeted)
}

func TestBroadcastSkipsUnregistered(t *testing.T) {
	tr := NewTestRuntime(board)
	first := Attach(tr.Runtime, nil, &tracker{})
	later := Attach(tr.Runtime, nil, &tracker{})

	tr.Destroy(later, 0)
	first.BroadcastAll("Removed")

	assert.Equal(t, 1, first.removed)
	assert.Equal(t, 1, later.removed, "only the unregister callback")
}
