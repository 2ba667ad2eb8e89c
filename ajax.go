package hp

import (
	"context"
	"net/http"

	"github.com/pthm/horsepower/lib/ajax"
)

// Ajax issues HTTP requests on behalf of a component. After a request
// completes, the decoded body is delivered on the loop thread to every
// ResponseReceiver bound to the component's node.
type Ajax struct {
	c *Component
}

// Ajax returns the request helper for the component.
func (c *Component) Ajax() Ajax {
	return Ajax{c: c}
}

// Get issues a GET request with data merged into the query string.
func (a Ajax) Get(ctx context.Context, url string, data map[string]any, header http.Header) (*ajax.Response, error) {
	resp, err := a.c.rt.client.Get(ctx, url, data, header)
	if err != nil {
		return nil, err
	}
	a.fanOut(resp)
	return resp, nil
}

// Post issues a POST request; see ajax.Client.Post for body encoding.
func (a Ajax) Post(ctx context.Context, url string, data any, header http.Header) (*ajax.Response, error) {
	resp, err := a.c.rt.client.Post(ctx, url, data, header)
	if err != nil {
		return nil, err
	}
	a.fanOut(resp)
	return resp, nil
}

func (a Ajax) fanOut(resp *ajax.Response) {
	rt, node := a.c.rt, a.c.node
	rt.loop.Post(func() {
		for _, b := range rt.bound(node) {
			if r, ok := b.(ResponseReceiver); ok {
				r.AjaxResponse(resp.Data)
			}
		}
	})
}
