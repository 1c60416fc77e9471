// Package validation performs local input checks so that invalid operations
// are rejected before any network request is issued.
package validation

import (
	"math"
	"strings"

	"github.com/impavitra/Financial-Portfolio-Tracker/internal/apperrors"
)

// ValidatePortfolioName checks that a portfolio name is non-empty after
// trimming surrounding whitespace.
func ValidatePortfolioName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.ErrEmptyPortfolioName
	}
	return nil
}

// ValidateTicker checks that a ticker is a non-empty symbol.
func ValidateTicker(ticker string) error {
	if strings.TrimSpace(ticker) == "" {
		return apperrors.ErrEmptyTicker
	}
	return nil
}

// ValidateAsset checks an asset mutation's inputs: the ticker must be a
// non-empty symbol and the quantity a positive finite number.
func ValidateAsset(ticker string, quantity float64) error {
	if err := ValidateTicker(ticker); err != nil {
		return err
	}
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) || quantity <= 0 {
		return apperrors.ErrInvalidQuantity
	}
	return nil
}

// NormalizeTicker trims surrounding whitespace and upper-cases a ticker
// symbol. Tickers are unique within a portfolio in their upper-case form.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
