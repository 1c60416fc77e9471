package devserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/impavitra/Financial-Portfolio-Tracker/internal/model"
)

// mockCompanies provides company data for the tickers the mock price table
// knows about.
var mockCompanies = map[string]struct{ name, sector, industry string }{
	"IBM":   {"International Business Machines", "Technology", "Information Technology Services"},
	"AAPL":  {"Apple Inc", "Technology", "Consumer Electronics"},
	"MSFT":  {"Microsoft Corporation", "Technology", "Software"},
	"GOOGL": {"Alphabet Inc", "Communication Services", "Internet Content"},
	"TSLA":  {"Tesla Inc", "Consumer Cyclical", "Auto Manufacturers"},
	"AMZN":  {"Amazon.com Inc", "Consumer Cyclical", "Internet Retail"},
	"META":  {"Meta Platforms Inc", "Communication Services", "Internet Content"},
	"VTI":   {"Vanguard Total Stock Market ETF", "Financial", "Exchange Traded Fund"},
	"SPY":   {"SPDR S&P 500 ETF Trust", "Financial", "Exchange Traded Fund"},
}

func stockInfo(ticker string, includeCompany bool) model.StockInfo {
	upper := strings.ToUpper(ticker)
	info := model.StockInfo{
		Ticker:       upper,
		CurrentPrice: currentPrice(upper),
		Timestamp:    time.Now().UnixMilli(),
	}
	if includeCompany {
		if company, ok := mockCompanies[upper]; ok {
			info.Name = company.name
			info.Sector = company.sector
			info.Industry = company.industry
		}
	}
	return info
}

func (s *Server) handleStockPrice(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, stockInfo(chi.URLParam(r, "ticker"), false))
}

func (s *Server) handleStockInfo(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, stockInfo(chi.URLParam(r, "ticker"), true))
}
