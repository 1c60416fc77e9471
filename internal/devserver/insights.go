package devserver

import (
	"fmt"
	"math"
	"net/http"

	"github.com/impavitra/Financial-Portfolio-Tracker/internal/model"
)

// mockSectors classifies a handful of well-known tickers; everything else
// counts as "Other".
var mockSectors = map[string]string{
	"AAPL": "Technology",
	"MSFT": "Technology",
	"JNJ":  "Healthcare",
	"PFE":  "Healthcare",
	"JPM":  "Financial",
	"BAC":  "Financial",
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
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
	view := p.response()
	s.mu.Unlock()

	score := diversificationScore(view)
	respondJSON(w, http.StatusOK, model.Insights{
		DiversificationScore: math.Round(score*100) / 100,
		RiskLevel:            riskLevel(view),
		TotalValue:           view.TotalValue,
		AssetCount:           len(view.Assets),
		Recommendations:      recommendations(view, score),
		Analysis:             analysis(view),
		SuggestedAssets:      suggestedAssets(view),
	})
}

// diversificationScore scores a portfolio from the asset count with a bonus
// per distinct sector, capped at 100.
func diversificationScore(p model.Portfolio) float64 {
	if len(p.Assets) == 0 {
		return 0
	}

	base := math.Min(100, float64(len(p.Assets))*15)

	sectors := make(map[string]struct{})
	for _, a := range p.Assets {
		sector, ok := mockSectors[a.Ticker]
		if !ok {
			sector = "Other"
		}
		sectors[sector] = struct{}{}
	}

	return math.Min(100, base+float64(len(sectors))*5)
}

func riskLevel(p model.Portfolio) string {
	if len(p.Assets) == 0 {
		return "Low"
	}
	switch {
	case len(p.Assets) >= 5 && p.TotalValue >= 10000:
		return "Low"
	case len(p.Assets) >= 3 && p.TotalValue >= 5000:
		return "Medium"
	default:
		return "High"
	}
}

func recommendations(p model.Portfolio, score float64) []string {
	var out []string

	if score < 50 {
		out = append(out,
			"Consider adding more diverse assets to improve portfolio diversification",
			"Look into ETFs for broad market exposure",
		)
	}
	if len(p.Assets) < 3 {
		out = append(out, "Add at least 3-5 different assets for better risk distribution")
	}
	if p.TotalValue < 1000 {
		out = append(out, "Consider increasing your investment amount for better impact")
	}
	if len(out) == 0 {
		out = append(out, "Portfolio shows good diversification. Consider rebalancing quarterly")
	}

	return out
}

func analysis(p model.Portfolio) model.InsightAnalysis {
	if len(p.Assets) == 0 {
		return model.InsightAnalysis{
			Summary:    "Empty portfolio - start by adding your first investment",
			Strengths:  []string{"Clean slate to build from"},
			Weaknesses: []string{"No diversification", "No returns potential"},
		}
	}
	return model.InsightAnalysis{
		Summary:    fmt.Sprintf("Portfolio with %d assets worth $%.2f", len(p.Assets), p.TotalValue),
		Strengths:  []string{"Multiple assets for diversification", "Real-time price tracking"},
		Weaknesses: []string{"Limited historical data", "No sector analysis"},
	}
}

func suggestedAssets(p model.Portfolio) []string {
	held := make(map[string]struct{}, len(p.Assets))
	for _, a := range p.Assets {
		held[a.Ticker] = struct{}{}
	}

	candidates := []struct{ ticker, label string }{
		{"AAPL", "AAPL - Apple Inc. (Technology)"},
		{"VTI", "VTI - Vanguard Total Stock Market ETF (Broad Market)"},
		{"JNJ", "JNJ - Johnson & Johnson (Healthcare)"},
		{"JPM", "JPM - JPMorgan Chase & Co. (Financial)"},
	}

	var out []string
	for _, c := range candidates {
		if _, ok := held[c.ticker]; !ok {
			out = append(out, c.label)
		}
		if len(out) == 3 {
			break
		}
	}
	return out
}
