// Package session owns the authentication session lifecycle: who is logged
// in, the credential attached to outbound requests, and the forced
// invalidation applied when any request fails authorization. All readers
// and writers go through the Manager so the invalidation rule has a single
// enforcement point.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/impavitra/Financial-Portfolio-Tracker/internal/api"
	"github.com/impavitra/Financial-Portfolio-Tracker/internal/apperrors"
)

// Phase is the session lifecycle state.
type Phase int

const (
	// PhaseUninitialized is the state before Initialize has run.
	PhaseUninitialized Phase = iota
	// PhaseVerifying means a persisted credential was found and is being
	// checked against the server.
	PhaseVerifying
	// PhaseAuthenticated means the session holds a verified credential and
	// an identity.
	PhaseAuthenticated
	// PhaseUnauthenticated means there is no usable credential.
	PhaseUnauthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseVerifying:
		return "verifying"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// CredentialStore is the durable key-value store holding the session
// credential and identity between process runs.
type CredentialStore interface {
	Load() (credential, username string, err error)
	Save(credential, username string) error
	Clear() error
}

// Manager is the authoritative holder of the session state. It implements
// api.SessionHooks, so the transport consults it for the bearer credential
// and notifies it of authorization failures.
type Manager struct {
	mu         sync.RWMutex
	phase      Phase
	credential string
	username   string

	store     CredentialStore
	client    *api.Client
	onExpired func()
}

// Option configures a Manager.
type Option func(*Manager)

// WithExpiryHandler registers a callback invoked once per forced
// invalidation, after the credential has been cleared. The UI uses it to
// redirect to the login surface; it must not call back into the Manager.
func WithExpiryHandler(fn func()) Option {
	return func(m *Manager) {
		m.onExpired = fn
	}
}

// NewManager creates a Manager in the Uninitialized phase. SetClient must
// be called before any operation that reaches the network.
func NewManager(store CredentialStore, opts ...Option) *Manager {
	m := &Manager{
		phase: PhaseUninitialized,
		store: store,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetClient installs the API client. The client and the Manager reference
// each other, so the Manager is constructed first and wired here.
func (m *Manager) SetClient(client *api.Client) {
	m.client = client
	client.SetSession(m)
}

// Initialize restores the session from the credential store. A persisted
// credential moves the session through Verifying and is checked against the
// server; any verification failure discards it. Without a persisted
// credential the session goes straight to Unauthenticated.
func (m *Manager) Initialize(ctx context.Context) error {
	credential, username, err := m.store.Load()
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	if credential == "" {
		m.mu.Lock()
		m.phase = PhaseUnauthenticated
		m.mu.Unlock()
		return nil
	}

	// Identity stays unset until verification succeeds: it is only
	// present while Authenticated.
	m.mu.Lock()
	m.phase = PhaseVerifying
	m.credential = credential
	m.mu.Unlock()

	if err := m.client.Verify(ctx); err != nil {
		// A 401 already invalidated the session through SessionExpired;
		// any other failure clears it here.
		m.mu.Lock()
		stillVerifying := m.phase == PhaseVerifying
		if stillVerifying {
			m.credential = ""
			m.username = ""
			m.phase = PhaseUnauthenticated
		}
		m.mu.Unlock()
		if stillVerifying {
			_ = m.store.Clear()
		}
		return nil
	}

	m.mu.Lock()
	m.username = username
	m.phase = PhaseAuthenticated
	m.mu.Unlock()
	return nil
}

// Login exchanges credentials for a session. On success the credential and
// identity are persisted and the session becomes Authenticated; on failure
// the session is left untouched and the error distinguishes rejected
// credentials from transport faults.
func (m *Manager) Login(ctx context.Context, username, password string) (api.AuthResponse, error) {
	resp, err := m.client.Login(ctx, username, password)
	if err != nil {
		return api.AuthResponse{}, mapAuthError(err)
	}

	m.establish(resp)
	return resp, nil
}

// Register creates an account. A successful registration behaves exactly
// like a successful login: the user is implicitly signed in.
func (m *Manager) Register(ctx context.Context, username, password, email string) (api.AuthResponse, error) {
	resp, err := m.client.Register(ctx, username, password, email)
	if err != nil {
		return api.AuthResponse{}, mapAuthError(err)
	}

	m.establish(resp)
	return resp, nil
}

func (m *Manager) establish(resp api.AuthResponse) {
	if err := m.store.Save(resp.Token, resp.Username); err != nil {
		// The in-memory session still works for this process; the next
		// start simply begins unauthenticated.
		log.Printf("failed to persist session: %v", err)
	}

	m.mu.Lock()
	m.credential = resp.Token
	m.username = resp.Username
	m.phase = PhaseAuthenticated
	m.mu.Unlock()
}

// mapAuthError classifies a login/registration failure: a rejection status
// means the credentials were bad, anything else is a transport fault passed
// through verbatim.
func mapAuthError(err error) error {
	if errors.Is(err, apperrors.ErrAuthorizationExpired) ||
		apperrors.IsStatus(err, 400) ||
		apperrors.IsStatus(err, 403) ||
		apperrors.IsStatus(err, 409) {
		var apiErr *apperrors.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return fmt.Errorf("%w: %s", apperrors.ErrInvalidCredentials, apiErr.Message)
		}
		return apperrors.ErrInvalidCredentials
	}
	return err
}

// Logout clears the session locally and unconditionally. It requires no
// server round-trip and is idempotent.
func (m *Manager) Logout() error {
	m.mu.Lock()
	m.credential = ""
	m.username = ""
	m.phase = PhaseUnauthenticated
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear persisted session: %w", err)
	}
	return nil
}

// SessionExpired applies the forced invalidation rule: any authorization
// failure, on any request, ends the session. Repeated invalidations are a
// no-op, so the persisted credential is cleared and the expiry handler
// fired exactly once per session.
func (m *Manager) SessionExpired() {
	m.mu.Lock()
	alreadyInvalid := m.phase == PhaseUnauthenticated && m.credential == ""
	m.credential = ""
	m.username = ""
	m.phase = PhaseUnauthenticated
	m.mu.Unlock()

	if alreadyInvalid {
		return
	}

	_ = m.store.Clear()
	if m.onExpired != nil {
		m.onExpired()
	}
}

// Credential returns the bearer token to attach to outbound requests, and
// whether one is present. A credential exists only while Verifying or
// Authenticated.
func (m *Manager) Credential() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.credential, m.credential != ""
}

// Phase returns the current session phase.
func (m *Manager) Phase() Phase {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.phase
}

// Username returns the authenticated identity, empty unless Authenticated.
func (m *Manager) Username() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.username
}

// IsAuthenticated reports whether the session is in the Authenticated phase.
func (m *Manager) IsAuthenticated() bool {
	return m.Phase() == PhaseAuthenticated
}
