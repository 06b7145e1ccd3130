package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rickgao/kalshi-bot/internal/model"
)

// GetBalance fetches the account balance.
func (c *Client) GetBalance(ctx context.Context) (*BalanceResponse, error) {
	var resp BalanceResponse
	if err := c.get(ctx, "/portfolio/balance", nil, &resp); err != nil {
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &resp, nil
}

// GetPositions fetches position entries, optionally filtered by ticker.
func (c *Client) GetPositions(ctx context.Context, ticker string, limit int) (*PositionsResponse, error) {
	query := url.Values{}
	if ticker != "" {
		query.Set("ticker", ticker)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var resp PositionsResponse
	if err := c.get(ctx, "/portfolio/positions", query, &resp); err != nil {
		return nil, fmt.Errorf("get positions: %w", err)
	}

	return &resp, nil
}

// GetOrders fetches orders, optionally filtered by status.
func (c *Client) GetOrders(ctx context.Context, status string, limit int) (*OrdersResponse, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var resp OrdersResponse
	if err := c.get(ctx, "/portfolio/orders", query, &resp); err != nil {
		return nil, fmt.Errorf("get orders: %w", err)
	}

	return &resp, nil
}

// createOrderBody is the wire shape of POST /portfolio/orders. The limit
// price is keyed by side: yes_price or no_price, never both.
type createOrderBody struct {
	Ticker        string `json:"ticker"`
	Side          string `json:"side"`
	Action        string `json:"action"`
	Count         int    `json:"count"`
	Type          string `json:"type"`
	PostOnly      bool   `json:"post_only"`
	ReduceOnly    bool   `json:"reduce_only"`
	ClientOrderID string `json:"client_order_id,omitempty"`
	YesPrice      *int   `json:"yes_price,omitempty"`
	NoPrice       *int   `json:"no_price,omitempty"`
}

// CreateLimitOrder submits a limit order built from an intent and its
// idempotency key.
func (c *Client) CreateLimitOrder(ctx context.Context, intent model.OrderIntent, clientOrderID string) (*CreateOrderResponse, error) {
	if !intent.Side.Valid() {
		return nil, fmt.Errorf("create order: invalid side %q", intent.Side)
	}

	body := createOrderBody{
		Ticker:        intent.Ticker,
		Side:          string(intent.Side),
		Action:        string(intent.Action),
		Count:         intent.Count,
		Type:          "limit",
		PostOnly:      intent.PostOnly,
		ReduceOnly:    intent.ReduceOnly,
		ClientOrderID: clientOrderID,
	}

	price := intent.PriceCents
	if intent.Side == model.SideYes {
		body.YesPrice = &price
	} else {
		body.NoPrice = &price
	}

	var resp CreateOrderResponse
	if err := c.post(ctx, "/portfolio/orders", body, &resp); err != nil {
		return nil, fmt.Errorf("create order %s: %w", intent.Ticker, err)
	}

	return &resp, nil
}

// CancelOrder cancels a resting order by exchange order id.
func (c *Client) CancelOrder(ctx context.Context, orderID string) (*CancelOrderResponse, error) {
	var resp CancelOrderResponse
	if err := c.del(ctx, "/portfolio/orders/"+orderID, &resp); err != nil {
		return nil, fmt.Errorf("cancel order %s: %w", orderID, err)
	}
	return &resp, nil
}
