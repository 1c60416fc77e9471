package model

import "time"

// Portfolio represents a named collection of assets as last reported by the
// server. TotalValue is server-computed and never recalculated locally, so
// it can be transiently stale relative to locally-known mutations.
type Portfolio struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	UserID     int64     `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
	Assets     []Asset   `json:"assets"`
	TotalValue float64   `json:"totalValue"`
}

// Asset represents a priced holding within a portfolio. TotalValue is
// quantity times price as last reported by the server; it is not derived
// locally to avoid divergence from server-side rounding rules.
type Asset struct {
	ID           int64     `json:"id"`
	Ticker       string    `json:"ticker"`
	Quantity     float64   `json:"quantity"`
	CurrentPrice float64   `json:"currentPrice"`
	TotalValue   float64   `json:"totalValue"`
	AddedAt      time.Time `json:"addedAt"`
}
