package dom

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// IsFormControl reports whether n is an input, button, select or textarea.
func IsFormControl(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Input, atom.Button, atom.Select, atom.Textarea:
		return true
	}
	return false
}

// IsButton reports whether n is a <button> or an <input> of type button,
// submit or reset.
func IsButton(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if n.DataAtom == atom.Button {
		return true
	}
	if n.DataAtom != atom.Input {
		return false
	}
	typ, _ := Attr(n, "type")
	switch typ {
	case "button", "submit", "reset":
		return true
	}
	return false
}

// Value returns the current value of a form control. Until SetValue is
// called the value is derived from markup the way a browser would.
func (d *Document) Value(n *html.Node) string {
	if v, ok := d.values[n]; ok {
		return v
	}
	switch n.DataAtom {
	case atom.Textarea:
		return TextContent(n)
	case atom.Select:
		return selectValue(n)
	}
	v, _ := Attr(n, "value")
	return v
}

// SetValue sets the live value of a form control without touching markup.
func (d *Document) SetValue(n *html.Node, v string) {
	d.values[n] = v
}

func selectValue(n *html.Node) string {
	options, _ := QuerySelectorAll(n, "option")
	if len(options) == 0 {
		return ""
	}
	chosen := options[0]
	for _, o := range options {
		if _, ok := Attr(o, "selected"); ok {
			chosen = o
			break
		}
	}
	if v, ok := Attr(chosen, "value"); ok {
		return v
	}
	return TextContent(chosen)
}
