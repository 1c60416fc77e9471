// Package apperrors defines the error kinds surfaced by the session and
// portfolio layers. Callers classify failures with errors.Is/errors.As
// rather than string matching.
package apperrors

import (
	"errors"
	"fmt"
)

// Validation errors are raised locally, before any network request is made.
var (
	// ErrEmptyPortfolioName indicates a portfolio name that is empty after
	// trimming surrounding whitespace.
	ErrEmptyPortfolioName = errors.New("portfolio name cannot be empty")

	// ErrEmptyTicker indicates an asset ticker that is empty after trimming.
	ErrEmptyTicker = errors.New("ticker cannot be empty")

	// ErrInvalidQuantity indicates an asset quantity that is not a positive
	// finite number.
	ErrInvalidQuantity = errors.New("quantity must be a positive number")
)

// Session errors represent authentication and authorization failures.
var (
	// ErrInvalidCredentials indicates that the server rejected a login or
	// registration attempt because of a bad username/password combination.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAuthorizationExpired indicates that a request was rejected because
	// the session credential is no longer valid. The session manager has
	// already been invalidated by the time callers observe this error.
	ErrAuthorizationExpired = errors.New("authorization expired")

	// ErrNotAuthenticated indicates an operation that requires an active
	// session was attempted without one.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Domain entity errors represent missing resources on the server.
var (
	// ErrPortfolioNotFound indicates that a portfolio with the given ID does not exist.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrAssetNotFound indicates that a portfolio does not hold the given ticker.
	ErrAssetNotFound = errors.New("asset not found in portfolio")

	// ErrNotFound indicates a referenced resource is absent when the client
	// cannot tell which one.
	ErrNotFound = errors.New("not found")
)

// APIError is a transport-level failure: a network fault or a server
// response the client did not expect. Status is zero when the request never
// produced a response.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Status != 0:
		return fmt.Sprintf("server returned status %d", e.Status)
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "request failed"
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
