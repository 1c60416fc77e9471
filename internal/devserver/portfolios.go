package devserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/impavitra/Financial-Portfolio-Tracker/internal/api"
	"github.com/impavitra/Financial-Portfolio-Tracker/internal/model"
)

func portfolioIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "portfolioID"), 10, 64)
	return id, err == nil
}

func (s *Server) handleListPortfolios(w http.ResponseWriter, r *http.Request) {
	owner := currentUser(r)

	s.mu.Lock()
	response := make([]model.Portfolio, 0)
	for _, p := range s.portfolios {
		if p.owner == owner {
			response = append(response, p.response())
		}
	}
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleCreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req api.CreatePortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "Portfolio name is required")
		return
	}

	s.mu.Lock()
	p := &portfolio{
		id:        s.nextID,
		name:      req.Name,
		owner:     currentUser(r),
		createdAt: time.Now().UTC(),
	}
	s.nextID++
	s.portfolios = append(s.portfolios, p)
	response := p.response()
	s.mu.Unlock()

	respondJSON(w, http.StatusCreated, response)
}

func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	id, ok := portfolioIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid portfolio id")
		return
	}

	s.mu.Lock()
	p := s.findPortfolio(id, currentUser(r))
	if p == nil {
		s.mu.Unlock()
		respondError(w, http.StatusNotFound, "Portfolio not found")
		return
	}
	response := p.response()
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleAddAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := portfolioIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid portfolio id")
		return
	}

	var req api.AddAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	if ticker == "" {
		respondError(w, http.StatusBadRequest, "Ticker is required")
		return
	}
	if req.Quantity <= 0 {
		respondError(w, http.StatusBadRequest, "Quantity must be positive")
		return
	}

	s.mu.Lock()
	p := s.findPortfolio(id, currentUser(r))
	if p == nil {
		s.mu.Unlock()
		respondError(w, http.StatusNotFound, "Portfolio not found")
		return
	}

	// Adding a ticker the portfolio already holds increases its quantity.
	for _, a := range p.assets {
		if a.ticker == ticker {
			a.quantity += req.Quantity
			s.mu.Unlock()
			respondJSON(w, http.StatusOK, map[string]string{"message": "Asset added successfully"})
			return
		}
	}

	p.assets = append(p.assets, &asset{
		id:       s.nextID,
		ticker:   ticker,
		quantity: req.Quantity,
		addedAt:  time.Now().UTC(),
	})
	s.nextID++
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, map[string]string{"message": "Asset added successfully"})
}

func (s *Server) handleRemoveAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := portfolioIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid portfolio id")
		return
	}
	ticker := strings.ToUpper(chi.URLParam(r, "ticker"))

	s.mu.Lock()
	p := s.findPortfolio(id, currentUser(r))
	if p == nil {
		s.mu.Unlock()
		respondError(w, http.StatusNotFound, "Portfolio not found")
		return
	}

	for i, a := range p.assets {
		if a.ticker == ticker {
			p.assets = append(p.assets[:i], p.assets[i+1:]...)
			s.mu.Unlock()
			respondJSON(w, http.StatusOK, map[string]string{"message": "Asset removed successfully"})
			return
		}
	}
	s.mu.Unlock()

	respondError(w, http.StatusNotFound, "Asset not found in portfolio")
}
