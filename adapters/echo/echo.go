// Package hpecho serves the horsepower demo endpoints on Echo.
//
// Mount the endpoints onto an Echo instance or group:
//
//	e := echo.New()
//	rt := hpecho.Mount(e, hpecho.WithStatic("./public"))
//	go rt.Run(ctx)
//
// Routes:
//
//	GET  /               index page linking the nav entries
//	GET  /nav            nav entries as JSON
//	ANY  /ajax/*         echo payload as JSON, or msgpack if accepted
//	GET  /_hp/document   live HTML of the runtime's document (?selector= for a subtree)
//	GET  /app/*          static files, when WithStatic is set
package hpecho

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	hp "github.com/pthm/horsepower"
	"github.com/pthm/horsepower/lib/encoding"
)

// Option configures Mount and MountGroup.
type Option func(*options)

type options struct {
	rt     *hp.Runtime
	static string
	nav    []NavEntry
}

// WithRuntime sets the runtime whose document /_hp/document serves.
// Without it a new runtime with an empty document is created.
func WithRuntime(rt *hp.Runtime) Option {
	return func(o *options) {
		o.rt = rt
	}
}

// WithStatic serves the files under dir at /app/.
func WithStatic(dir string) Option {
	return func(o *options) {
		o.static = dir
	}
}

// WithNav replaces the default nav entries.
func WithNav(entries ...NavEntry) Option {
	return func(o *options) {
		o.nav = entries
	}
}

// NavEntry is one example page.
type NavEntry struct {
	Name   string `json:"name" msgpack:"name"`
	File   string `json:"file" msgpack:"file"`
	Active bool   `json:"active,omitempty" msgpack:"active,omitempty"`
}

// DefaultNav lists the bundled example pages.
var DefaultNav = []NavEntry{
	{Name: "Ajax", File: "/app/ajax.html"},
	{Name: "Binding", File: "/app/bind.html"},
	{Name: "Calculator", File: "/app/calculator.html"},
	{Name: "Carousel", File: "/app/carousel.html"},
	{Name: "Checklist", File: "/app/checklist.html"},
	{Name: "Clock", File: "/app/clock.html"},
	{Name: "Creation", File: "/app/creation.html"},
	{Name: "Allow/Block Input", File: "/app/inputblock.html"},
	{Name: "Stopwatch", File: "/app/stopwatch.html"},
	{Name: "Shopping Cart", File: "/app/shoppingcart.html", Active: true},
}

// Payload is the body returned by /ajax/*.
type Payload struct {
	Method string `json:"method" msgpack:"method"`
	Path   string `json:"path" msgpack:"path"`
	Body   any    `json:"body,omitempty" msgpack:"body,omitempty"`
	Array  []int  `json:"array" msgpack:"array"`
	Object Object `json:"object" msgpack:"object"`
}

// Object is the nested part of Payload.
type Object struct {
	A bool     `json:"a" msgpack:"a"`
	B []string `json:"b" msgpack:"b"`
	C []Person `json:"c" msgpack:"c"`
}

// Person is a named record in Object.
type Person struct {
	Name string `json:"name" msgpack:"name"`
}

func newPayload(method, path string, body any) Payload {
	return Payload{
		Method: method,
		Path:   path,
		Body:   body,
		Array:  []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 0},
		Object: Object{
			A: true,
			B: []string{"a", "b", "c"},
			C: []Person{{Name: "Billy"}, {Name: "Bob"}, {Name: "Joe"}},
		},
	}
}

// router is satisfied by *echo.Echo and *echo.Group.
type router interface {
	Add(method, path string, handler echo.HandlerFunc, middleware ...echo.MiddlewareFunc) *echo.Route
}

var anyMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
	http.MethodPatch, http.MethodDelete, http.MethodOptions,
}

// Mount registers the demo routes on e and returns the runtime they serve.
func Mount(e *echo.Echo, opts ...Option) *hp.Runtime {
	return mount(e, opts)
}

// MountGroup registers the demo routes on g, so they share the group's
// prefix and middleware.
func MountGroup(g *echo.Group, opts ...Option) *hp.Runtime {
	return mount(g, opts)
}

type server struct {
	rt  *hp.Runtime
	nav []NavEntry
}

func mount(r router, opts []Option) *hp.Runtime {
	o := &options{nav: DefaultNav}
	for _, opt := range opts {
		opt(o)
	}
	if o.rt == nil {
		o.rt = hp.New()
	}
	s := &server{rt: o.rt, nav: o.nav}

	r.Add(http.MethodGet, "/", s.index)
	r.Add(http.MethodGet, "/nav", s.navList)
	r.Add(http.MethodGet, "/_hp/document", s.document)
	for _, m := range anyMethods {
		r.Add(m, "/ajax/*", s.ajax)
	}
	if o.static != "" {
		fs := http.StripPrefix("/app/", http.FileServer(http.Dir(o.static)))
		r.Add(http.MethodGet, "/app/*", func(c echo.Context) error {
			// Strip any group prefix so the file server sees /app/...
			req := c.Request().Clone(c.Request().Context())
			req.URL.Path = "/app/" + c.Param("*")
			fs.ServeHTTP(c.Response(), req)
			return nil
		})
	}
	return o.rt
}

func (s *server) index(c echo.Context) error {
	return Render(c, indexPage(s.nav))
}

func (s *server) navList(c echo.Context) error {
	return c.JSON(http.StatusOK, s.nav)
}

func (s *server) ajax(c echo.Context) error {
	req := c.Request()
	raw, err := io.ReadAll(req.Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	body, err := encoding.Decode(req.Header.Get(echo.HeaderContentType), raw)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	codec := encoding.Negotiate(req.Header.Get(echo.HeaderAccept))
	out, err := codec.Marshal(newPayload(req.Method, req.URL.Path, body))
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, codec.MediaType(), out)
}

func (s *server) document(c echo.Context) error {
	ctx := c.Request().Context()
	selector := c.QueryParam("selector")

	var (
		buf       bytes.Buffer
		renderErr error
		found     = true
	)
	err := s.rt.Call(ctx, func() {
		node := s.rt.Document().Root()
		if selector != "" {
			n, err := s.rt.Document().QuerySelector(selector)
			if err != nil {
				renderErr = echo.NewHTTPError(http.StatusBadRequest, err.Error())
				return
			}
			if n == nil {
				found = false
				return
			}
			node = n
		}
		renderErr = s.rt.Render(node).Render(ctx, &buf)
	})
	switch {
	case hp.IsNotRunning(err):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	case err != nil:
		return err
	case renderErr != nil:
		return renderErr
	case !found:
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("no element matches %q", selector))
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func indexPage(nav []NavEntry) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html><head><title>horsepower</title></head><body><ul class="nav">`); err != nil {
			return err
		}
		for _, entry := range nav {
			class := ""
			if entry.Active {
				class = ` class="active"`
			}
			_, err := fmt.Fprintf(w, `<li%s><a href="%s">%s</a></li>`,
				class, templ.EscapeString(entry.File), templ.EscapeString(entry.Name))
			if err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul></body></html>`)
		return err
	})
}

// Render writes a templ component to the Echo response.
//
//	func handler(c echo.Context) error {
//	    return hpecho.Render(c, page())
//	}
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	return component.Render(c.Request().Context(), c.Response())
}
