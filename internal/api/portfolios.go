package api

import (
	"context"
	"fmt"

	"github.com/impavitra/Financial-Portfolio-Tracker/internal/model"
)

// CreatePortfolioRequest is the payload for POST /portfolios.
type CreatePortfolioRequest struct {
	Name string `json:"name"`
}

// AddAssetRequest is the payload for POST /portfolios/{id}/assets.
type AddAssetRequest struct {
	Ticker   string  `json:"ticker"`
	Quantity float64 `json:"quantity"`
}

// ListPortfolios fetches the full portfolio collection in server order.
func (c *Client) ListPortfolios(ctx context.Context) ([]model.Portfolio, error) {
	var portfolios []model.Portfolio
	if err := c.get(ctx, "/portfolios", &portfolios); err != nil {
		return nil, err
	}
	return portfolios, nil
}

// CreatePortfolio creates a named portfolio and returns the server's view
// of it, including the assigned ID and creation timestamp.
func (c *Client) CreatePortfolio(ctx context.Context, name string) (model.Portfolio, error) {
	var portfolio model.Portfolio
	err := c.post(ctx, "/portfolios", CreatePortfolioRequest{Name: name}, &portfolio)
	return portfolio, err
}

// GetPortfolio fetches a single portfolio by ID.
func (c *Client) GetPortfolio(ctx context.Context, id int64) (model.Portfolio, error) {
	var portfolio model.Portfolio
	err := c.get(ctx, fmt.Sprintf("/portfolios/%d", id), &portfolio)
	return portfolio, err
}

// AddAsset attaches a priced asset to a portfolio. The response body is an
// acknowledgement the client does not depend on; callers observe the effect
// through a subsequent ListPortfolios.
func (c *Client) AddAsset(ctx context.Context, portfolioID int64, ticker string, quantity float64) error {
	return c.post(ctx, fmt.Sprintf("/portfolios/%d/assets", portfolioID), AddAssetRequest{Ticker: ticker, Quantity: quantity}, nil)
}

// RemoveAsset detaches an asset from a portfolio by ticker.
func (c *Client) RemoveAsset(ctx context.Context, portfolioID int64, ticker string) error {
	return c.delete(ctx, fmt.Sprintf("/portfolios/%d/assets/%s", portfolioID, ticker))
}

// PortfolioInsights fetches the server-computed analysis for a portfolio.
func (c *Client) PortfolioInsights(ctx context.Context, portfolioID int64) (model.Insights, error) {
	var insights model.Insights
	err := c.get(ctx, fmt.Sprintf("/portfolios/%d/insights", portfolioID), &insights)
	return insights, err
}
