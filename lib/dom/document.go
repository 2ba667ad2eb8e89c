// Package dom is the in-memory document a horsepower runtime binds to.
//
// Nodes are plain *html.Node values from golang.org/x/net/html, so any
// parsed page can be used as-is. The Document adds what a parsed tree
// lacks: event listeners, form-control values and mutation records. Node
// identity is pointer identity; a Document only knows about listeners and
// values for nodes it has been handed.
//
// A Document is not safe for concurrent use. The runtime mutates it only
// from its loop thread.
package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document owns a node tree plus the per-node state the tree cannot hold.
type Document struct {
	root      *html.Node
	listeners map[*html.Node]map[string][]*listener
	values    map[*html.Node]string
	observers []*observer
	nextID    int
}

// New creates a document with empty head and body.
func New() *Document {
	doc, err := Parse(strings.NewReader(""))
	if err != nil {
		// The html parser only fails on reader errors.
		panic(err)
	}
	return doc
}

// Parse builds a document from HTML.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return FromNode(root), nil
}

// ParseString builds a document from an HTML string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// FromNode wraps an existing tree. root should be a DocumentNode.
func FromNode(root *html.Node) *Document {
	return &Document{
		root:      root,
		listeners: make(map[*html.Node]map[string][]*listener),
		values:    make(map[*html.Node]string),
	}
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// DocumentElement returns the <html> element.
func (d *Document) DocumentElement() *html.Node {
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// Body returns the <body> element, or nil.
func (d *Document) Body() *html.Node {
	return d.findTag(atom.Body)
}

// Head returns the <head> element, or nil.
func (d *Document) Head() *html.Node {
	return d.findTag(atom.Head)
}

func (d *Document) findTag(a atom.Atom) *html.Node {
	el := d.DocumentElement()
	if el == nil {
		return nil
	}
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			return c
		}
	}
	return nil
}

// CreateElement returns a new detached element.
func (d *Document) CreateElement(tag string) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// CreateText returns a new detached text node.
func (d *Document) CreateText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// AppendChild moves child to the end of parent's children.
func (d *Document) AppendChild(parent, child *html.Node) {
	d.detach(child)
	parent.AppendChild(child)
	d.notify(Mutation{Type: ChildList, Target: parent, Added: []*html.Node{child}})
}

// InsertBefore moves child before ref under parent. A nil ref appends.
func (d *Document) InsertBefore(parent, child, ref *html.Node) {
	d.detach(child)
	parent.InsertBefore(child, ref)
	d.notify(Mutation{Type: ChildList, Target: parent, Added: []*html.Node{child}})
}

// Remove detaches n from its parent. Removing a detached node is a no-op.
func (d *Document) Remove(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	parent.RemoveChild(n)
	d.notify(Mutation{Type: ChildList, Target: parent, Removed: []*html.Node{n}})
}

func (d *Document) detach(n *html.Node) {
	if n.Parent != nil {
		d.Remove(n)
	}
}

// Connected reports whether n is reachable from the document root.
func (d *Document) Connected(n *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == d.root {
			return true
		}
	}
	return false
}

// Attr returns the value of an attribute and whether it is present.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets an attribute, recording a mutation when the value changes.
func (d *Document) SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			if a.Val == val {
				return
			}
			old := a.Val
			n.Attr[i].Val = val
			d.notify(Mutation{Type: Attributes, Target: n, Attr: key, Value: val, OldValue: old})
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
	d.notify(Mutation{Type: Attributes, Target: n, Attr: key, Value: val})
}

// RemoveAttr deletes an attribute if present.
func (d *Document) RemoveAttr(n *html.Node, key string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			d.notify(Mutation{Type: Attributes, Target: n, Attr: key, OldValue: a.Val})
			return
		}
	}
}

// TextContent concatenates all descendant text.
func TextContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
