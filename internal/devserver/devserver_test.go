package devserver_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/impavitra/Financial-Portfolio-Tracker/internal/api"
	"github.com/impavitra/Financial-Portfolio-Tracker/internal/devserver"
	"github.com/impavitra/Financial-Portfolio-Tracker/internal/model"
)

type testClient struct {
	t       *testing.T
	baseURL string
	token   string
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()
	ts := httptest.NewServer(devserver.New().Handler())
	t.Cleanup(ts.Close)
	return &testClient{t: t, baseURL: ts.URL}
}

// do issues a request and decodes the response body into out when non-nil.
func (c *testClient) do(method, path string, body interface{}, out interface{}) int {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatalf("Failed to encode request body: %v", err)
		}
	}
	req, err := http.NewRequest(method, c.baseURL+path, &buf)
	if err != nil {
		c.t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.t.Fatalf("Failed to decode response body: %v", err)
		}
	}
	return resp.StatusCode
}

func (c *testClient) register(username string) {
	c.t.Helper()
	var auth api.AuthResponse
	status := c.do(http.MethodPost, "/api/auth/register", api.RegisterRequest{
		Username: username,
		Password: "secret123",
		Email:    username + "@example.com",
	}, &auth)
	if status != http.StatusCreated {
		c.t.Fatalf("Expected status 201, got %d", status)
	}
	c.token = auth.Token
}

func (c *testClient) createPortfolio(name string) model.Portfolio {
	c.t.Helper()
	var p model.Portfolio
	status := c.do(http.MethodPost, "/api/portfolios", api.CreatePortfolioRequest{Name: name}, &p)
	if status != http.StatusCreated {
		c.t.Fatalf("Expected status 201, got %d", status)
	}
	return p
}

func (c *testClient) addAsset(portfolioID int64, ticker string, quantity float64) int {
	c.t.Helper()
	return c.do(http.MethodPost, fmt.Sprintf("/api/portfolios/%d/assets", portfolioID),
		api.AddAssetRequest{Ticker: ticker, Quantity: quantity}, nil)
}

func TestRegisterAndLogin(t *testing.T) {
	c := newTestClient(t)

	var registered api.AuthResponse
	status := c.do(http.MethodPost, "/api/auth/register", api.RegisterRequest{
		Username: "alice", Password: "secret123",
	}, &registered)
	if status != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", status)
	}
	if registered.Token == "" {
		t.Error("Expected a token in the register response")
	}
	if registered.Username != "alice" {
		t.Errorf("Expected username 'alice', got %q", registered.Username)
	}

	// Duplicate registration.
	status = c.do(http.MethodPost, "/api/auth/register", api.RegisterRequest{
		Username: "alice", Password: "other",
	}, nil)
	if status != http.StatusConflict {
		t.Errorf("Expected status 409 for duplicate username, got %d", status)
	}

	var loggedIn api.AuthResponse
	status = c.do(http.MethodPost, "/api/auth/login", api.LoginRequest{
		Username: "alice", Password: "secret123",
	}, &loggedIn)
	if status != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", status)
	}
	if loggedIn.Token == "" || loggedIn.Token == registered.Token {
		t.Error("Expected login to issue a fresh token")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	c := newTestClient(t)
	c.register("alice")

	var errBody struct {
		Message string `json:"message"`
	}
	status := c.do(http.MethodPost, "/api/auth/login", api.LoginRequest{
		Username: "alice", Password: "wrong",
	}, &errBody)
	if status != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", status)
	}
	if errBody.Message != "Invalid credentials" {
		t.Errorf("Expected message 'Invalid credentials', got %q", errBody.Message)
	}

	status = c.do(http.MethodPost, "/api/auth/login", api.LoginRequest{
		Username: "nobody", Password: "secret123",
	}, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("Expected status 401 for unknown user, got %d", status)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	c := newTestClient(t)

	status := c.do(http.MethodGet, "/api/portfolios", nil, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without a token, got %d", status)
	}

	c.token = "not-a-real-token"
	status = c.do(http.MethodGet, "/api/portfolios", nil, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("Expected status 401 for an unknown token, got %d", status)
	}
}

func TestPortfoliosAreScopedToOwner(t *testing.T) {
	c := newTestClient(t)
	c.register("alice")
	created := c.createPortfolio("Tech")

	other := &testClient{t: t, baseURL: c.baseURL}
	other.register("bob")

	var bobsList []model.Portfolio
	status := other.do(http.MethodGet, "/api/portfolios", nil, &bobsList)
	if status != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", status)
	}
	if len(bobsList) != 0 {
		t.Errorf("Expected bob to see no portfolios, got %d", len(bobsList))
	}

	status = other.do(http.MethodGet, fmt.Sprintf("/api/portfolios/%d", created.ID), nil, nil)
	if status != http.StatusNotFound {
		t.Errorf("Expected status 404 for another user's portfolio, got %d", status)
	}
}

func TestListPortfoliosReturnsEmptyArray(t *testing.T) {
	c := newTestClient(t)
	c.register("alice")

	req, _ := http.NewRequest(http.MethodGet, c.baseURL+"/api/portfolios", nil)
	req.Header.Set("Authorization", "Bearer "+c.token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if string(raw) != "[]" {
		t.Errorf("Expected an empty JSON array, got %s", raw)
	}
}

func TestAddAssetUpsertsQuantity(t *testing.T) {
	c := newTestClient(t)
	c.register("alice")
	created := c.createPortfolio("Tech")

	if status := c.addAsset(created.ID, "AAPL", 10); status != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", status)
	}
	// Adding the same ticker again increases the position.
	if status := c.addAsset(created.ID, "AAPL", 5); status != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", status)
	}

	var p model.Portfolio
	status := c.do(http.MethodGet, fmt.Sprintf("/api/portfolios/%d", created.ID), nil, &p)
	if status != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", status)
	}
	if len(p.Assets) != 1 {
		t.Fatalf("Expected 1 asset after upsert, got %d", len(p.Assets))
	}
	if p.Assets[0].Quantity != 15 {
		t.Errorf("Expected quantity 15, got %v", p.Assets[0].Quantity)
	}
	if p.Assets[0].CurrentPrice != 150.25 {
		t.Errorf("Expected mock price 150.25, got %v", p.Assets[0].CurrentPrice)
	}
	want := 15 * 150.25
	if p.TotalValue != want {
		t.Errorf("Expected total value %v, got %v", want, p.TotalValue)
	}
}

func TestAddAssetValidation(t *testing.T) {
	c := newTestClient(t)
	c.register("alice")
	created := c.createPortfolio("Tech")

	tests := []struct {
		name     string
		ticker   string
		quantity float64
		want     int
	}{
		{"empty ticker", "", 10, http.StatusBadRequest},
		{"zero quantity", "AAPL", 0, http.StatusBadRequest},
		{"negative quantity", "AAPL", -3, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if status := c.addAsset(created.ID, tt.ticker, tt.quantity); status != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, status)
			}
		})
	}

	if status := c.addAsset(9999, "AAPL", 10); status != http.StatusNotFound {
		t.Errorf("Expected status 404 for unknown portfolio, got %d", status)
	}
}

func TestRemoveAsset(t *testing.T) {
	c := newTestClient(t)
	c.register("alice")
	created := c.createPortfolio("Tech")
	c.addAsset(created.ID, "AAPL", 10)

	path := fmt.Sprintf("/api/portfolios/%d/assets/AAPL", created.ID)
	if status := c.do(http.MethodDelete, path, nil, nil); status != http.StatusOK {
		t.Errorf("Expected status 200, got %d", status)
	}
	// The asset is gone now.
	if status := c.do(http.MethodDelete, path, nil, nil); status != http.StatusNotFound {
		t.Errorf("Expected status 404 for a missing asset, got %d", status)
	}

	var p model.Portfolio
	c.do(http.MethodGet, fmt.Sprintf("/api/portfolios/%d", created.ID), nil, &p)
	if len(p.Assets) != 0 {
		t.Errorf("Expected no assets after removal, got %d", len(p.Assets))
	}
}

func TestInsights(t *testing.T) {
	c := newTestClient(t)
	c.register("alice")

	t.Run("empty portfolio", func(t *testing.T) {
		created := c.createPortfolio("Fresh")
		var insights model.Insights
		status := c.do(http.MethodGet, fmt.Sprintf("/api/portfolios/%d/insights", created.ID), nil, &insights)
		if status != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", status)
		}
		if insights.DiversificationScore != 0 {
			t.Errorf("Expected score 0, got %v", insights.DiversificationScore)
		}
		if insights.RiskLevel != "Low" {
			t.Errorf("Expected risk level 'Low', got %q", insights.RiskLevel)
		}
		if insights.AssetCount != 0 {
			t.Errorf("Expected asset count 0, got %d", insights.AssetCount)
		}
		if len(insights.SuggestedAssets) != 3 {
			t.Errorf("Expected 3 suggestions, got %d", len(insights.SuggestedAssets))
		}
	})

	t.Run("single holding", func(t *testing.T) {
		created := c.createPortfolio("Solo")
		c.addAsset(created.ID, "AAPL", 2)

		var insights model.Insights
		c.do(http.MethodGet, fmt.Sprintf("/api/portfolios/%d/insights", created.ID), nil, &insights)

		// One asset in one sector: 1*15 + 1*5.
		if insights.DiversificationScore != 20 {
			t.Errorf("Expected score 20, got %v", insights.DiversificationScore)
		}
		if insights.RiskLevel != "High" {
			t.Errorf("Expected risk level 'High', got %q", insights.RiskLevel)
		}
		// Held tickers are excluded from suggestions.
		for _, s := range insights.SuggestedAssets {
			if s == "AAPL - Apple Inc. (Technology)" {
				t.Error("Expected held tickers to be excluded from suggestions")
			}
		}
		if len(insights.Recommendations) == 0 {
			t.Error("Expected recommendations for a poorly diversified portfolio")
		}
	})

	t.Run("large diversified portfolio", func(t *testing.T) {
		created := c.createPortfolio("Broad")
		for _, ticker := range []string{"AAPL", "JNJ", "JPM", "VTI", "GOOGL"} {
			c.addAsset(created.ID, ticker, 20)
		}

		var insights model.Insights
		c.do(http.MethodGet, fmt.Sprintf("/api/portfolios/%d/insights", created.ID), nil, &insights)

		if insights.RiskLevel != "Low" {
			t.Errorf("Expected risk level 'Low', got %q", insights.RiskLevel)
		}
		if insights.AssetCount != 5 {
			t.Errorf("Expected asset count 5, got %d", insights.AssetCount)
		}
		if insights.Analysis.Summary == "" {
			t.Error("Expected a non-empty analysis summary")
		}
	})
}

func TestStockEndpoints(t *testing.T) {
	c := newTestClient(t)
	c.register("alice")

	var price model.StockInfo
	status := c.do(http.MethodGet, "/api/stocks/ibm/price", nil, &price)
	if status != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", status)
	}
	if price.Ticker != "IBM" {
		t.Errorf("Expected normalized ticker 'IBM', got %q", price.Ticker)
	}
	if price.CurrentPrice != 288.37 {
		t.Errorf("Expected price 288.37, got %v", price.CurrentPrice)
	}
	if price.Timestamp == 0 {
		t.Error("Expected a timestamp")
	}
	if price.Name != "" {
		t.Errorf("Expected the price endpoint to omit company data, got %q", price.Name)
	}

	var info model.StockInfo
	c.do(http.MethodGet, "/api/stocks/IBM/info", nil, &info)
	if info.Name != "International Business Machines" {
		t.Errorf("Expected company name, got %q", info.Name)
	}
	if info.Sector != "Technology" {
		t.Errorf("Expected sector 'Technology', got %q", info.Sector)
	}

	// Unknown tickers fall back to a fixed price.
	var unknown model.StockInfo
	c.do(http.MethodGet, "/api/stocks/ZZZZ/price", nil, &unknown)
	if unknown.CurrentPrice != 100.0 {
		t.Errorf("Expected default price 100.0, got %v", unknown.CurrentPrice)
	}
}
