package hp

import (
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/pthm/horsepower/lib/dom"
	"github.com/pthm/horsepower/lib/loop"
)

// TestEpoch is the virtual start time of runtimes built by NewTestRuntime.
var TestEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// TestRuntime wraps a Runtime on a manual loop and simulates user input.
//
// Time only moves when Advance is called, so timers and holds can be
// tested without sleeping:
//
//	tr := hp.NewTestRuntime(`<button id="go">Go</button>`)
//	btn := hp.Attach(tr.Runtime, tr.Query("#go"), &MyButton{})
//	tr.Press(btn.Node())
//	tr.Advance(hp.HoldThreshold)
type TestRuntime struct {
	*Runtime
}

// NewTestRuntime parses markup into a document and creates a runtime on a
// manual loop starting at TestEpoch. It panics on invalid input.
func NewTestRuntime(markup string, opts ...Option) *TestRuntime {
	doc, err := dom.ParseString(markup)
	if err != nil {
		panic("hp: test markup: " + err.Error())
	}
	opts = append([]Option{
		WithDocument(doc),
		WithLoop(loop.NewManual(TestEpoch)),
	}, opts...)
	return &TestRuntime{Runtime: New(opts...)}
}

// Query returns the first node matching selector. It panics if the
// selector is invalid or matches nothing.
func (tr *TestRuntime) Query(selector string) *html.Node {
	n, err := tr.doc.QuerySelector(selector)
	if err != nil {
		panic("hp: query: " + err.Error())
	}
	if n == nil {
		panic("hp: query: no match for " + selector)
	}
	return n
}

// Exists reports whether selector matches a node still in the document.
func (tr *TestRuntime) Exists(selector string) bool {
	n, err := tr.doc.QuerySelector(selector)
	return err == nil && n != nil
}

// Advance moves virtual time forward, firing due timers in order.
func (tr *TestRuntime) Advance(d time.Duration) {
	tr.loop.Advance(d)
}

// Flush runs posted tasks without moving time.
func (tr *TestRuntime) Flush() {
	tr.loop.Flush()
}

// Dispatch sends an event of type typ to n and reports whether the default
// action was left alone.
func (tr *TestRuntime) Dispatch(n *html.Node, typ string) bool {
	return tr.doc.Dispatch(n, &dom.Event{Type: typ})
}

// Click dispatches a click to n.
func (tr *TestRuntime) Click(n *html.Node) bool {
	return tr.doc.Dispatch(n, &dom.Event{Type: dom.Click, Button: 0, Buttons: 1})
}

// DoubleClick dispatches a dblclick to n.
func (tr *TestRuntime) DoubleClick(n *html.Node) bool {
	return tr.doc.Dispatch(n, &dom.Event{Type: dom.DblClick, Buttons: 1})
}

// Press dispatches a mousedown to n.
func (tr *TestRuntime) Press(n *html.Node) {
	tr.doc.Dispatch(n, &dom.Event{Type: dom.MouseDown, Buttons: 1})
}

// Release dispatches a mouseup to n.
func (tr *TestRuntime) Release(n *html.Node) {
	tr.doc.Dispatch(n, &dom.Event{Type: dom.MouseUp})
}

// Touch dispatches a touchstart to n.
func (tr *TestRuntime) Touch(n *html.Node) {
	tr.doc.Dispatch(n, &dom.Event{Type: dom.TouchStart})
}

// KeyDown dispatches a keydown for key to n.
func (tr *TestRuntime) KeyDown(n *html.Node, key string) {
	tr.doc.Dispatch(n, &dom.Event{Type: dom.KeyDown, Key: key, Code: keyCode(key)})
}

// KeyUp dispatches a keyup for key to n.
func (tr *TestRuntime) KeyUp(n *html.Node, key string) {
	tr.doc.Dispatch(n, &dom.Event{Type: dom.KeyUp, Key: key, Code: keyCode(key)})
}

// Type appends text to the value of form control n one character at a
// time, dispatching an input event after each.
func (tr *TestRuntime) Type(n *html.Node, text string) {
	value := tr.doc.Value(n)
	for _, r := range text {
		value += string(r)
		tr.doc.SetValue(n, value)
		tr.doc.Dispatch(n, &dom.Event{Type: dom.Input, Key: string(r)})
	}
}

// HTML renders the document.
func (tr *TestRuntime) HTML() string {
	return dom.OuterHTML(tr.doc.Root())
}

// HTMLContains checks if the rendered document contains substr.
func (tr *TestRuntime) HTMLContains(substr string) bool {
	return strings.Contains(tr.HTML(), substr)
}

func keyCode(key string) string {
	if len(key) == 1 {
		c := key[0]
		switch {
		case c >= 'a' && c <= 'z':
			return "Key" + strings.ToUpper(key)
		case c >= 'A' && c <= 'Z':
			return "Key" + key
		case c >= '0' && c <= '9':
			return "Digit" + key
		}
	}
	return key
}
