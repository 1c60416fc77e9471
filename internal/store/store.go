// Package store maintains a best-effort in-memory mirror of the server's
// portfolio collection. The server is the only source of truth: the
// collection is replaced wholesale on fetch, and every asset mutation is
// followed by a full re-fetch rather than a local patch, because only the
// server knows the derived totals and per-asset pricing.
package store

import (
	"context"
	"sync"

	"github.com/impavitra/Financial-Portfolio-Tracker/internal/api"
	"github.com/impavitra/Financial-Portfolio-Tracker/internal/model"
	"github.com/impavitra/Financial-Portfolio-Tracker/internal/validation"
)

// Store holds the last successfully fetched portfolio collection. It is
// safe for concurrent use, but provides no ordering across overlapping
// operations: when two fetches race, whichever response arrives last wins.
// Callers that need strict ordering must serialize their own calls.
type Store struct {
	mu         sync.RWMutex
	portfolios []model.Portfolio
	loading    bool
	lastErr    error

	client *api.Client
}

// New creates an empty store backed by the given API client.
func New(client *api.Client) *Store {
	return &Store{client: client}
}

// Fetch requests the full portfolio collection and replaces the local one
// atomically on success. On failure the previous collection is left
// untouched and the error is recorded for display. A fresh attempt always
// clears the previously recorded error.
func (s *Store) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.lastErr = nil
	s.mu.Unlock()

	portfolios, err := s.client.ListPortfolios(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err
		return err
	}
	s.portfolios = portfolios
	return nil
}

// Create creates a named portfolio. The name must be non-empty after
// trimming; validation failures are returned before any network call. On
// success the server-returned portfolio is appended to the local
// collection; on failure the collection is unchanged and the error is
// propagated for the caller to present.
func (s *Store) Create(ctx context.Context, name string) (model.Portfolio, error) {
	if err := validation.ValidatePortfolioName(name); err != nil {
		return model.Portfolio{}, err
	}

	portfolio, err := s.client.CreatePortfolio(ctx, name)
	if err != nil {
		return model.Portfolio{}, err
	}

	s.mu.Lock()
	s.portfolios = append(s.portfolios, portfolio)
	s.mu.Unlock()
	return portfolio, nil
}

// AddAsset attaches an asset to a portfolio and then re-fetches the full
// collection so callers observe up-to-date totals and pricing. If the
// mutation itself fails the re-fetch is skipped and the error propagates.
// If the mutation succeeds but the re-fetch fails, the mutation has still
// taken effect server-side: the local view is merely stale, the recorded
// fetch error says so, and no error is returned.
func (s *Store) AddAsset(ctx context.Context, portfolioID int64, ticker string, quantity float64) error {
	if err := validation.ValidateAsset(ticker, quantity); err != nil {
		return err
	}

	if err := s.client.AddAsset(ctx, portfolioID, validation.NormalizeTicker(ticker), quantity); err != nil {
		return err
	}

	_ = s.Fetch(ctx)
	return nil
}

// RemoveAsset detaches an asset from a portfolio with the same
// refetch-after-write contract as AddAsset.
func (s *Store) RemoveAsset(ctx context.Context, portfolioID int64, ticker string) error {
	if err := validation.ValidateTicker(ticker); err != nil {
		return err
	}

	if err := s.client.RemoveAsset(ctx, portfolioID, validation.NormalizeTicker(ticker)); err != nil {
		return err
	}

	_ = s.Fetch(ctx)
	return nil
}

// PortfolioByID looks a portfolio up in the last-fetched collection. It is
// purely local and never triggers network activity; the data may be stale.
func (s *Store) PortfolioByID(id int64) (model.Portfolio, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.portfolios {
		if p.ID == id {
			return p, true
		}
	}
	return model.Portfolio{}, false
}

// Portfolios returns a copy of the current collection in server order.
func (s *Store) Portfolios() []model.Portfolio {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Portfolio, len(s.portfolios))
	copy(out, s.portfolios)
	return out
}

// Loading reports whether a fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the error recorded by the most recent failed fetch, or nil.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}
