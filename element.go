package hp

import (
	"strconv"
	"strings"
)

// Element is the plain component materialized by ClosestElement and
// SiblingElement for nodes that have no component yet.
type Element struct {
	Component
}

// Transform carries the spatial state of a node. Components attached below
// a node that owns a Transform record it as their parent, and components on
// the same node share it through Component.Transform.
type Transform struct {
	Component

	X, Y     float64
	Rotation float64
	ScaleX   float64
	ScaleY   float64
}

// TransformState implements Transformer.
func (t *Transform) TransformState() *Transform { return t }

// Translate moves the transform by dx, dy.
func (t *Transform) Translate(dx, dy float64) {
	t.X += dx
	t.Y += dy
}

// CSS formats the transform as a CSS transform value. Zero scales are
// treated as 1.
func (t *Transform) CSS() string {
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	var b strings.Builder
	b.WriteString("translate(")
	b.WriteString(formatFloat(t.X))
	b.WriteString("px, ")
	b.WriteString(formatFloat(t.Y))
	b.WriteString("px) rotate(")
	b.WriteString(formatFloat(t.Rotation))
	b.WriteString("deg) scale(")
	b.WriteString(formatFloat(sx))
	b.WriteString(", ")
	b.WriteString(formatFloat(sy))
	b.WriteString(")")
	return b.String()
}

// Apply writes the transform to the node's style attribute.
func (t *Transform) Apply() {
	t.Document().SetAttr(t.Node(), "style", "transform: "+t.CSS())
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
