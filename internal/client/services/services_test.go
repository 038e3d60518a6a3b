package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dmitrijs2005/openmat/internal/client/client"
	"github.com/dmitrijs2005/openmat/internal/client/httpclient"
	"github.com/dmitrijs2005/openmat/internal/client/session"
	"github.com/dmitrijs2005/openmat/internal/client/tokenstore"
	"github.com/stretchr/testify/require"
)

type call struct {
	method string
	path   string
	query  string
	body   map[string]any
}

// backend is a programmable fake of the OpenMat API. Unknown routes get 404.
type backend struct {
	mu     sync.Mutex
	routes map[string]func() (int, string)
	calls  []call
}

func newBackend(t *testing.T) (*backend, client.Client, *httpclient.Client) {
	t.Helper()
	b := &backend{routes: map[string]func() (int, string){
		"POST /login":  func() (int, string) { return http.StatusOK, `{"token":"abc123"}` },
		"GET /profile": func() (int, string) { return http.StatusOK, `{"id":7,"username":"owner","role":"owner"}` },
	}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := call{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery}
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			_ = json.Unmarshal(raw, &c.body)
		}

		b.mu.Lock()
		b.calls = append(b.calls, c)
		h, ok := b.routes[r.Method+" "+r.URL.Path]
		b.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not found"}`))
			return
		}
		status, body := h()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	hc := httpclient.New(srv.URL, httpclient.WithHTTPClient(srv.Client()))
	return b, client.NewRESTClient(hc), hc
}

func (b *backend) on(route string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[route] = func() (int, string) { return status, body }
}

func (b *backend) called(method, path string) []call {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []call
	for _, c := range b.calls {
		if c.method == method && c.path == path {
			out = append(out, c)
		}
	}
	return out
}

// signedIn returns a context carrying a session validated against b.
func signedIn(t *testing.T, c client.Client, hc *httpclient.Client, token string) (context.Context, *session.Store) {
	t.Helper()
	s := session.New(c, hc, tokenstore.NewMemoryStore(token))
	s.Init(context.Background())
	t.Cleanup(s.Close)
	return session.WithSession(context.Background(), s), s
}

func mustLoggedIn(t *testing.T, s *session.Store) {
	t.Helper()
	require.True(t, s.Snapshot().IsLoggedIn, "session should be validated")
}
