package model

// Side identifies which claim on a binary market an order trades.
type Side string

// Action identifies the direction of an order.
type Action string

const (
	SideYes Side = "yes"
	SideNo  Side = "no"

	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
)

// Valid reports whether the side is one of the two contract sides.
func (s Side) Valid() bool { return s == SideYes || s == SideNo }

// Valid reports whether the action is one of the two order directions.
func (a Action) Valid() bool { return a == ActionBuy || a == ActionSell }

// BestPrices holds the best bid and ask for both sides of a binary market,
// in cents (1-99). A nil field means that side of the book is empty.
//
// Only the two bid values are ever observed directly; the asks are derived
// from the Kalshi reciprocity rule:
//
//	yes_ask = 100 - no_bid
//	no_ask  = 100 - yes_bid
type BestPrices struct {
	YesBid *int
	YesAsk *int
	NoBid  *int
	NoAsk  *int
}

// MidYes returns the YES midpoint as a probability, or false when either
// side of the YES book is empty.
func (b BestPrices) MidYes() (float64, bool) {
	if b.YesBid == nil || b.YesAsk == nil {
		return 0, false
	}
	return float64(*b.YesBid+*b.YesAsk) / 2.0 / 100.0, true
}

// MarketSnapshot is a market's best prices at one instant. Snapshots are
// built fresh each cycle and never mutated.
type MarketSnapshot struct {
	Ticker string
	Best   BestPrices
}

// OrderIntent is a proposed limit order produced by the decision engine.
// It is consumed once by the risk gate and then the executor.
type OrderIntent struct {
	Ticker     string
	Side       Side
	Action     Action
	Count      int
	PriceCents int

	// Reason is a human-readable justification for the order.
	Reason string

	// ClientOrderID is the idempotency key. When empty the executor
	// generates one before submitting.
	ClientOrderID string

	// PostOnly marks the order as maker-only: it must not cross the book.
	PostOnly bool

	// ReduceOnly restricts the order to reducing an existing position.
	ReduceOnly bool
}

// RiskLimits bounds what the risk gate will approve. Read-only during a run.
type RiskLimits struct {
	MaxOrderCount        int
	MaxPositionPerTicker int
}

// ExecutionResult records the terminal outcome of one intent.
type ExecutionResult struct {
	Intent OrderIntent
	OK     bool

	// Detail classifies the outcome: RISK_REJECT, PAPER_OK, ORDER_SENT
	// or EXEC_ERROR, with context appended.
	Detail string
}
