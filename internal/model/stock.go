package model

// StockInfo holds the server's last known quote for a ticker. Name, Sector
// and Industry are only populated when the server has company data for the
// symbol.
type StockInfo struct {
	Ticker       string  `json:"ticker"`
	CurrentPrice float64 `json:"currentPrice"`
	Timestamp    int64   `json:"timestamp"` // Unix milliseconds
	Name         string  `json:"name,omitempty"`
	Sector       string  `json:"sector,omitempty"`
	Industry     string  `json:"industry,omitempty"`
}
