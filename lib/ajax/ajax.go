// Package ajax is a small HTTP client for fetching structured data.
//
// GET requests carry data as query parameters; POST requests carry it as a
// JSON body, or as a form body when data is url.Values. Responses are
// decoded by content type (JSON, msgpack, otherwise text). Non-2xx
// statuses are not errors; callers inspect Response.Status.
package ajax

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pthm/horsepower/lib/encoding"
)

// Response is a completed request.
type Response struct {
	Status int
	Header http.Header
	Raw    []byte
	// Data is the decoded body.
	Data any
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.header.Add(key, value)
	}
}

// Client performs requests.
type Client struct {
	http   *http.Client
	header http.Header
}

// New creates a client. Without options it uses http.DefaultClient and
// accepts JSON or msgpack.
func New(opts ...Option) *Client {
	c := &Client{
		http:   http.DefaultClient,
		header: http.Header{},
	}
	c.header.Set("Accept", encoding.MediaJSON+", "+encoding.MediaMsgpack)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get requests rawURL with data merged into its query string.
func (c *Client) Get(ctx context.Context, rawURL string, data map[string]any, header http.Header) (*Response, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("ajax: parse url: %w", err)
	}
	if len(data) > 0 {
		q := u.Query()
		for k, v := range data {
			q.Set(k, fmt.Sprint(v))
		}
		u.RawQuery = q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("ajax: new request: %w", err)
	}
	return c.do(req, header)
}

// Post sends data to rawURL. data may be url.Values (sent as a form), nil,
// or anything encoding/json can marshal.
func (c *Client) Post(ctx context.Context, rawURL string, data any, header http.Header) (*Response, error) {
	var body io.Reader
	var contentType string
	switch d := data.(type) {
	case nil:
	case url.Values:
		body = strings.NewReader(d.Encode())
		contentType = "application/x-www-form-urlencoded"
	default:
		b, err := encoding.JSON.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("ajax: encode body: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = encoding.MediaJSON
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("ajax: new request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return c.do(req, header)
}

func (c *Client) do(req *http.Request, header http.Header) (*Response, error) {
	for k, vs := range c.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	for k, vs := range header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ajax: %s %s: %w", req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ajax: read body: %w", err)
	}
	decoded, err := encoding.Decode(resp.Header.Get("Content-Type"), raw)
	if err != nil {
		return nil, fmt.Errorf("ajax: %s %s: %w", req.Method, req.URL, err)
	}
	return &Response{
		Status: resp.StatusCode,
		Header: resp.Header,
		Raw:    raw,
		Data:   decoded,
	}, nil
}
