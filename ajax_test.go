package hp

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAjaxFansOutToNode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"path":"`+r.URL.Path+`"}`)
	}))
	defer srv.Close()

	tr := NewTestRuntime(`<div id="a"></div><div id="b"></div>`, WithHTTPClient(srv.Client()))
	caller := Attach(tr.Runtime, tr.Query("#a"), &item{})
	same := Attach(tr.Runtime, tr.Query("#a"), &receiver{})
	other := Attach(tr.Runtime, tr.Query("#b"), &receiver{})

	resp, err := caller.Ajax().Get(context.Background(), srv.URL+"/users", nil, nil)
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Empty(t, same.data, "delivered on the loop thread")

	tr.Flush()
	require.Len(t, same.data, 1)
	assert.Equal(t, map[string]any{"path": "/users"}, same.data[0])
	assert.Empty(t, other.data)

	_, err = caller.Ajax().Post(context.Background(), srv.URL+"/save", map[string]any{"x": 1}, nil)
	require.NoError(t, err)
	tr.Flush()
	assert.Len(t, same.data, 2)
}

func TestAjaxErrorDoesNotFanOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{oops`)
	}))
	defer srv.Close()

	tr := NewTestRuntime(``, WithHTTPClient(srv.Client()))
	r := Attach(tr.Runtime, nil, &receiver{})

	_, err := r.Ajax().Get(context.Background(), srv.URL, nil, nil)
	require.Error(t, err)
	tr.Flush()
	assert.Empty(t, r.data)
}
