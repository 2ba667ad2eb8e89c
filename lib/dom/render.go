package dom

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/net/html"
)

// Component renders n (and its subtree) as a templ component, so live
// document fragments can be embedded in templ layouts.
func Component(n *html.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if n == nil {
			return nil
		}
		return html.Render(w, n)
	})
}

// OuterHTML serializes n including its own tag.
func OuterHTML(n *html.Node) string {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return ""
	}
	return sb.String()
}
