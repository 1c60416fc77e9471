package api

import (
	"context"
	"fmt"

	"github.com/impavitra/Financial-Portfolio-Tracker/internal/model"
)

// StockPrice fetches the server's current quote for a ticker.
func (c *Client) StockPrice(ctx context.Context, ticker string) (model.StockInfo, error) {
	var info model.StockInfo
	err := c.get(ctx, fmt.Sprintf("/stocks/%s/price", ticker), &info)
	return info, err
}

// StockInfo fetches the quote plus whatever company data the server holds
// for a ticker.
func (c *Client) StockInfo(ctx context.Context, ticker string) (model.StockInfo, error) {
	var info model.StockInfo
	err := c.get(ctx, fmt.Sprintf("/stocks/%s/info", ticker), &info)
	return info, err
}
