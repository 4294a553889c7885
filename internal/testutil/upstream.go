package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// UpstreamServer is an httptest server standing in for a Yahoo Finance
// endpoint. It records how it was called so tests can assert on headers,
// paths, and call counts.
type UpstreamServer struct {
	*httptest.Server

	mu         sync.Mutex
	calls      int
	lastPath   string
	lastQuery  url.Values
	lastHeader http.Header
}

// NewUpstreamServer starts a fake upstream replying to every request with the
// given status and JSON body. The server is closed when the test finishes.
func NewUpstreamServer(t *testing.T, status int, body string) *UpstreamServer {
	t.Helper()

	u := &UpstreamServer{}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		u.calls++
		u.lastPath = r.URL.Path
		u.lastQuery = r.URL.Query()
		u.lastHeader = r.Header.Clone()
		u.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(u.Server.Close)

	return u
}

// Calls returns how many requests the server has received.
func (u *UpstreamServer) Calls() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls
}

// LastPath returns the path of the most recent request, or "".
func (u *UpstreamServer) LastPath() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.lastPath
}

// LastQuery returns the query parameters of the most recent request, or nil.
func (u *UpstreamServer) LastQuery() url.Values {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.lastQuery
}

// LastHeader returns the headers of the most recent request, or nil.
func (u *UpstreamServer) LastHeader() http.Header {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.lastHeader
}
