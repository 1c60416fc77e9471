// Package testutil provides shared helpers for tests: an in-memory
// credential store, a backend double built on the devserver, and wiring
// shortcuts for an authenticated session.
package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/impavitra/Financial-Portfolio-Tracker/internal/api"
	"github.com/impavitra/Financial-Portfolio-Tracker/internal/devserver"
	"github.com/impavitra/Financial-Portfolio-Tracker/internal/session"
)

// Backend is a devserver instance running on a local listener, with a
// counter of the requests it has served.
type Backend struct {
	Server   *devserver.Server
	BaseURL  string // includes the /api prefix
	requests atomic.Int64
}

// Requests returns the number of requests the backend has served.
func (b *Backend) Requests() int64 {
	return b.requests.Load()
}

// StartBackend starts an in-memory backend double. The listener is closed
// when the test completes.
func StartBackend(t *testing.T) *Backend {
	t.Helper()

	backend := &Backend{Server: devserver.New()}
	handler := backend.Server.Handler()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backend.requests.Add(1)
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)

	backend.BaseURL = ts.URL + "/api"
	return backend
}

// NewSession wires a manager and client against baseURL using the given
// store. The returned manager is still Uninitialized; call Initialize or
// Login as the test requires.
func NewSession(t *testing.T, baseURL string, store session.CredentialStore, opts ...session.Option) (*session.Manager, *api.Client) {
	t.Helper()

	mgr := session.NewManager(store, opts...)
	client := api.NewClient(baseURL, 5*time.Second, nil)
	mgr.SetClient(client)
	return mgr, client
}

// Login registers a fresh user on the backend and signs the manager in.
func Login(t *testing.T, mgr *session.Manager, username string) {
	t.Helper()

	if _, err := mgr.Register(context.Background(), username, "secret", username+"@example.com"); err != nil {
		t.Fatalf("Failed to register %s: %v", username, err)
	}
}
