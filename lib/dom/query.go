package dom

import (
	"fmt"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Selector is a compiled CSS selector group.
type Selector = cascadia.SelectorGroup

// Compile parses a CSS selector group.
func Compile(selector string) (Selector, error) {
	sel, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, fmt.Errorf("dom: selector %q: %w", selector, err)
	}
	return sel, nil
}

// QuerySelectorAll returns descendants of n (excluding n) matching the
// selector, in document order.
func QuerySelectorAll(n *html.Node, selector string) ([]*html.Node, error) {
	sel, err := Compile(selector)
	if err != nil {
		return nil, err
	}
	return cascadia.QueryAll(n, sel), nil
}

// QuerySelector returns the first descendant of n matching the selector.
func QuerySelector(n *html.Node, selector string) (*html.Node, error) {
	sel, err := Compile(selector)
	if err != nil {
		return nil, err
	}
	return cascadia.Query(n, sel), nil
}

// QuerySelectorAll runs a selector against the whole document.
func (d *Document) QuerySelectorAll(selector string) ([]*html.Node, error) {
	return QuerySelectorAll(d.root, selector)
}

// QuerySelector returns the first element in the document matching selector.
func (d *Document) QuerySelector(selector string) (*html.Node, error) {
	return QuerySelector(d.root, selector)
}

// Matches reports whether the element n matches the selector.
func Matches(n *html.Node, selector string) (bool, error) {
	sel, err := Compile(selector)
	if err != nil {
		return false, err
	}
	return n.Type == html.ElementNode && sel.Match(n), nil
}

// Closest returns the nearest inclusive ancestor of n matching selector.
func Closest(n *html.Node, selector string) (*html.Node, error) {
	sel, err := Compile(selector)
	if err != nil {
		return nil, err
	}
	for cur := n; cur != nil && cur.Type == html.ElementNode; cur = cur.Parent {
		if sel.Match(cur) {
			return cur, nil
		}
	}
	return nil, nil
}

// ParentElement returns the parent of n if it is an element. Like the
// browser property, the <html> element has no parent element.
func ParentElement(n *html.Node) *html.Node {
	if n == nil || n.Parent == nil || n.Parent.Type != html.ElementNode {
		return nil
	}
	return n.Parent
}

// Descendants returns every element below n in document order, the
// equivalent of querySelectorAll('*').
func Descendants(n *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// Children returns the element children of n.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// Contains reports whether other is n or one of its descendants.
func Contains(n, other *html.Node) bool {
	for cur := other; cur != nil; cur = cur.Parent {
		if cur == n {
			return true
		}
	}
	return false
}
