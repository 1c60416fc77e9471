// Package devserver is an in-memory implementation of the portfolio tracker
// API, faithful to the backend's request/response contract. It backs local
// development and serves as the backend double in tests; it is not the
// production service.
package devserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/impavitra/Financial-Portfolio-Tracker/internal/model"
)

// mockPrices mirrors the backend's fallback price table. Unknown tickers
// quote at defaultPrice.
var mockPrices = map[string]float64{
	"IBM":   288.37,
	"AAPL":  150.25,
	"MSFT":  300.75,
	"GOOGL": 2800.50,
	"TSLA":  250.00,
	"AMZN":  3200.00,
	"META":  350.75,
	"VTI":   220.50,
	"SPY":   450.25,
}

const defaultPrice = 100.0

type user struct {
	username string
	password string
	email    string
}

type asset struct {
	id       int64
	ticker   string
	quantity float64
	addedAt  time.Time
}

type portfolio struct {
	id        int64
	name      string
	owner     string
	createdAt time.Time
	assets    []*asset
}

// Server holds all state in memory. It is safe for concurrent use.
type Server struct {
	mu         sync.Mutex
	users      map[string]user   // keyed by username
	tokens     map[string]string // token -> username
	portfolios []*portfolio
	nextID     int64
}

// New creates an empty server.
func New() *Server {
	return &Server{
		users:  make(map[string]user),
		tokens: make(map[string]string),
		nextID: 1,
	}
}

// Handler builds the HTTP router for the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(Logger)
	r.Use(chimiddleware.Recoverer)

	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}).Handler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.handleLogin)
			r.Post("/register", s.handleRegister)
			r.With(s.requireAuth).Get("/verify", s.handleVerify)
		})

		r.Route("/portfolios", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListPortfolios)
			r.Post("/", s.handleCreatePortfolio)
			r.Get("/{portfolioID}", s.handleGetPortfolio)
			r.Post("/{portfolioID}/assets", s.handleAddAsset)
			r.Delete("/{portfolioID}/assets/{ticker}", s.handleRemoveAsset)
			r.Get("/{portfolioID}/insights", s.handleInsights)
		})

		r.Route("/stocks", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/{ticker}/price", s.handleStockPrice)
			r.Get("/{ticker}/info", s.handleStockInfo)
		})
	})

	return r
}

// currentPrice quotes a ticker from the mock table.
func currentPrice(ticker string) float64 {
	if price, ok := mockPrices[ticker]; ok {
		return price
	}
	return defaultPrice
}

// portfolioResponse renders a portfolio with fresh prices and
// server-computed totals, matching the backend DTO shape.
func (p *portfolio) response() model.Portfolio {
	assets := make([]model.Asset, len(p.assets))
	total := 0.0
	for i, a := range p.assets {
		price := currentPrice(a.ticker)
		value := a.quantity * price
		assets[i] = model.Asset{
			ID:           a.id,
			Ticker:       a.ticker,
			Quantity:     a.quantity,
			CurrentPrice: price,
			TotalValue:   value,
			AddedAt:      a.addedAt,
		}
		total += value
	}
	return model.Portfolio{
		ID:         p.id,
		Name:       p.name,
		CreatedAt:  p.createdAt,
		Assets:     assets,
		TotalValue: total,
	}
}

// findPortfolio returns the portfolio with the given id owned by owner.
// Callers must hold the mutex.
func (s *Server) findPortfolio(id int64, owner string) *portfolio {
	for _, p := range s.portfolios {
		if p.id == id && p.owner == owner {
			return p
		}
	}
	return nil
}
