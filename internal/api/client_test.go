package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/impavitra/Financial-Portfolio-Tracker/internal/api"
	"github.com/impavitra/Financial-Portfolio-Tracker/internal/apperrors"
)

// hooks is a minimal SessionHooks implementation for transport tests.
type hooks struct {
	credential string
	expired    int
}

func (h *hooks) Credential() (string, bool) {
	return h.credential, h.credential != ""
}

func (h *hooks) SessionExpired() {
	h.expired++
}

func newTestClient(t *testing.T, handler http.HandlerFunc, h *hooks) *api.Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return api.NewClient(ts.URL+"/api", 5*time.Second, h)
}

func TestClient_AttachesBearerCredential(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}, &hooks{credential: "token-123"})

	if err := client.Verify(context.Background()); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if gotAuth != "Bearer token-123" {
		t.Errorf("Expected 'Bearer token-123', got %q", gotAuth)
	}
}

func TestClient_OmitsAuthorizationWithoutCredential(t *testing.T) {
	var hasAuth bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusOK)
	}, &hooks{})

	if err := client.Verify(context.Background()); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if hasAuth {
		t.Error("Expected no Authorization header without a credential")
	}
}

func TestClient_SetsRequestID(t *testing.T) {
	var requestID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-ID")
		w.WriteHeader(http.StatusOK)
	}, &hooks{})

	if err := client.Verify(context.Background()); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if requestID == "" {
		t.Error("Expected X-Request-ID header to be set")
	}
}

func TestClient_UnauthorizedInvalidatesSession(t *testing.T) {
	h := &hooks{credential: "stale-token"}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Token expired or invalid"}`))
	}, h)

	_, err := client.ListPortfolios(context.Background())
	if !errors.Is(err, apperrors.ErrAuthorizationExpired) {
		t.Errorf("Expected ErrAuthorizationExpired, got %v", err)
	}
	if h.expired != 1 {
		t.Errorf("Expected SessionExpired to fire once, fired %d times", h.expired)
	}

	// The caller still observes an ordinary failure with the status and
	// message attached.
	var apiErr *apperrors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %T", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", apiErr.Status)
	}
	if apiErr.Message != "Token expired or invalid" {
		t.Errorf("Expected server message passthrough, got %q", apiErr.Message)
	}
}

func TestClient_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Portfolio not found"}`))
	}, &hooks{credential: "token"})

	_, err := client.GetPortfolio(context.Background(), 42)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestClient_ServerFaultMessagePassthrough(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"database unavailable"}`))
	}, &hooks{credential: "token"})

	_, err := client.ListPortfolios(context.Background())
	var apiErr *apperrors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %T", err)
	}
	if apiErr.Status != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", apiErr.Status)
	}
	if apiErr.Error() != "database unavailable" {
		t.Errorf("Expected verbatim server message, got %q", apiErr.Error())
	}
	if errors.Is(err, apperrors.ErrAuthorizationExpired) {
		t.Error("A 500 must not look like an authorization failure")
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	// Point at a closed listener.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	h := &hooks{credential: "token"}
	client := api.NewClient(ts.URL+"/api", time.Second, h)

	_, err := client.ListPortfolios(context.Background())
	var apiErr *apperrors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %T", err)
	}
	if apiErr.Status != 0 {
		t.Errorf("Expected no status for a network fault, got %d", apiErr.Status)
	}
	if h.expired != 0 {
		t.Error("A network fault must not invalidate the session")
	}
}

func TestClient_PlainTextErrorBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Quantity must be positive"))
	}, &hooks{credential: "token"})

	err := client.AddAsset(context.Background(), 1, "AAPL", 10)
	var apiErr *apperrors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %T", err)
	}
	if apiErr.Message != "Quantity must be positive" {
		t.Errorf("Expected plain-text message passthrough, got %q", apiErr.Message)
	}
}
