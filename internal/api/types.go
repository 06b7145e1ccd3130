package api

// MarketsResponse from GET /markets
type MarketsResponse struct {
	Markets []APIMarket `json:"markets"`
	Cursor  string      `json:"cursor"`
}

// APIMarket represents a market from the Kalshi API.
type APIMarket struct {
	Ticker      string `json:"ticker"`
	EventTicker string `json:"event_ticker"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	YesSubTitle string `json:"yes_sub_title"`
	NoSubTitle  string `json:"no_sub_title"`
	Status      string `json:"status"`
	MarketType  string `json:"market_type"`
	Result      string `json:"result"`

	// Prices in cents
	YesBid    int `json:"yes_bid"`
	YesAsk    int `json:"yes_ask"`
	NoBid     int `json:"no_bid"`
	NoAsk     int `json:"no_ask"`
	LastPrice int `json:"last_price"`

	// Volume
	Volume       int64 `json:"volume"`
	Volume24h    int64 `json:"volume_24h"`
	OpenInterest int64 `json:"open_interest"`

	// Timestamps (ISO 8601)
	OpenTime       string `json:"open_time"`
	CloseTime      string `json:"close_time"`
	ExpirationTime string `json:"expiration_time"`
}

// SingleMarketResponse from GET /markets/{ticker}
type SingleMarketResponse struct {
	Market APIMarket `json:"market"`
}

// OrderbookResponse from GET /markets/{ticker}/orderbook
type OrderbookResponse struct {
	Orderbook APIOrderbook `json:"orderbook"`
}

// APIOrderbook represents the orderbook from the Kalshi API.
// Levels are [price_cents, quantity] pairs sorted ascending by price.
type APIOrderbook struct {
	Yes [][]int `json:"yes"`
	No  [][]int `json:"no"`
}

// MilestonesResponse from GET /milestones
type MilestonesResponse struct {
	Milestones []APIMilestone `json:"milestones"`
	Cursor     string         `json:"cursor"`
}

// APIMilestone represents an event milestone with an associated live-data feed.
type APIMilestone struct {
	ID                  string   `json:"id"`
	Type                string   `json:"type"`
	Category            string   `json:"category"`
	Title               string   `json:"title"`
	PrimaryEventTickers []string `json:"primary_event_tickers"`
}

// SingleMilestoneResponse from GET /milestones/{id}
type SingleMilestoneResponse struct {
	Milestone APIMilestone `json:"milestone"`
}

// LiveDataResponse from GET /live_data/{type}/milestone/{id}.
// Details is deliberately loose: the schema varies by sport and provider.
type LiveDataResponse struct {
	LiveData LiveData `json:"live_data"`
}

// LiveData carries the provider payload for one milestone.
type LiveData struct {
	MilestoneID string         `json:"milestone_id"`
	Type        string         `json:"type"`
	Details     map[string]any `json:"details"`
}

// BalanceResponse from GET /portfolio/balance (cents).
type BalanceResponse struct {
	Balance int64 `json:"balance"`
}

// PositionsResponse from GET /portfolio/positions
type PositionsResponse struct {
	Positions []APIPosition `json:"market_positions"`
	Cursor    string        `json:"cursor"`
}

// APIPosition represents one position entry for a market. Depending on API
// version the exposure lives in either "position" or "count"; pointers let
// callers tell absent from zero.
type APIPosition struct {
	Ticker   string `json:"ticker"`
	Position *int   `json:"position"`
	Count    *int   `json:"count"`
}

// OrdersResponse from GET /portfolio/orders
type OrdersResponse struct {
	Orders []APIOrder `json:"orders"`
	Cursor string     `json:"cursor"`
}

// APIOrder represents an order from the Kalshi API.
type APIOrder struct {
	OrderID       string `json:"order_id"`
	ClientOrderID string `json:"client_order_id"`
	Ticker        string `json:"ticker"`
	Side          string `json:"side"`
	Action        string `json:"action"`
	Count         int    `json:"count"`
	YesPrice      int    `json:"yes_price"`
	NoPrice       int    `json:"no_price"`
	Status        string `json:"status"`
	FilledCount   int    `json:"filled_count"`
	CreatedTime   string `json:"created_time"`
}

// CreateOrderResponse from POST /portfolio/orders
type CreateOrderResponse struct {
	Order APIOrder `json:"order"`
}

// CancelOrderResponse from DELETE /portfolio/orders/{order_id}
type CancelOrderResponse struct {
	Order APIOrder `json:"order"`
}

// GetMarketsOptions configures a GetMarkets request.
type GetMarketsOptions struct {
	Limit  int
	Status string
	Cursor string
}

// GetMilestonesOptions configures a GetMilestones request.
type GetMilestonesOptions struct {
	Limit              int
	Category           string
	Type               string
	RelatedEventTicker string
	Cursor             string
}
