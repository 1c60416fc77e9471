// Package api provides the REST client used by the session manager and the
// portfolio store. It attaches the current session credential to every
// outbound request and reacts to authorization failures centrally, so
// callers only ever observe ordinary operation errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/impavitra/Financial-Portfolio-Tracker/internal/apperrors"
)

// SessionHooks is the narrow interface the client uses to consult and
// instrument the session. Credential supplies the bearer token for outbound
// requests; SessionExpired is invoked whenever any response reports an
// authorization failure, regardless of which operation issued the request.
type SessionHooks interface {
	Credential() (string, bool)
	SessionExpired()
}

// Client is a JSON REST client for the portfolio tracker backend.
// It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    SessionHooks
}

// NewClient creates a client for the API rooted at baseURL (including the
// /api prefix). The session hooks may be nil, in which case requests are
// sent without credentials and authorization failures are not intercepted.
func NewClient(baseURL string, timeout time.Duration, session SessionHooks) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		session:    session,
	}
}

// SetSession installs the session hooks after construction. The session
// manager and the client reference each other, so one of the two has to be
// wired late; this is that point.
func (c *Client) SetSession(session SessionHooks) {
	c.session = session
}

// errorBody is the shape of error payloads returned by the backend. The
// Spring backend uses "message"; some middleware uses "error".
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do executes a single request against the API. A non-nil body is encoded
// as JSON; a non-nil out receives the decoded success response. Responses
// with status 401 invalidate the session before the error is returned.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if c.session != nil {
		if credential, ok := c.session.Credential(); ok {
			req.Header.Set("Authorization", "Bearer "+credential)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &apperrors.APIError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apperrors.APIError{Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode >= 400 {
		return c.responseError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &apperrors.APIError{Status: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
		}
	}

	return nil
}

// responseError maps a failure response to an error kind. An authorization
// failure forcibly invalidates the session before it is surfaced to the
// caller; the caller still sees the failed operation, the session-wide
// consequence is handled here.
func (c *Client) responseError(status int, data []byte) error {
	message := serverMessage(data)

	switch status {
	case http.StatusUnauthorized:
		if c.session != nil {
			c.session.SessionExpired()
		}
		return &apperrors.APIError{Status: status, Message: message, Err: apperrors.ErrAuthorizationExpired}
	case http.StatusNotFound:
		return &apperrors.APIError{Status: status, Message: message, Err: apperrors.ErrNotFound}
	default:
		return &apperrors.APIError{Status: status, Message: message}
	}
}

// serverMessage extracts a human-readable message from an error payload,
// tolerating plain-text bodies.
func serverMessage(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return strings.TrimSpace(string(data))
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
