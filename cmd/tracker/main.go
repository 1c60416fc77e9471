package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/impavitra/Financial-Portfolio-Tracker/internal/apperrors"
	"github.com/impavitra/Financial-Portfolio-Tracker/internal/cli"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	cli.SetVersion(Version)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode distinguishes local input mistakes from server and transport
// failures for scripting.
func exitCode(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrEmptyPortfolioName),
		errors.Is(err, apperrors.ErrEmptyTicker),
		errors.Is(err, apperrors.ErrInvalidQuantity):
		return 2
	case errors.Is(err, apperrors.ErrNotAuthenticated),
		errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrAuthorizationExpired):
		return 3
	default:
		return 1
	}
}
