// Package execution routes approved intents to the exchange, or journals
// them without sending when running in paper mode.
package execution

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rickgao/kalshi-bot/internal/api"
	"github.com/rickgao/kalshi-bot/internal/model"
)

// OrderPlacer submits limit orders. *api.Client satisfies it.
type OrderPlacer interface {
	CreateLimitOrder(ctx context.Context, intent model.OrderIntent, clientOrderID string) (*api.CreateOrderResponse, error)
}

// Approver runs pre-trade checks. A non-empty reason is a rejection.
type Approver interface {
	Approve(ctx context.Context, intent model.OrderIntent) (string, error)
}

// Recorder persists execution outcomes. May be nil.
type Recorder interface {
	RecordOutcome(ctx context.Context, res model.ExecutionResult) error
}

// Executor applies the risk gate and then either sends the order or, in
// paper mode, stops short of the exchange.
type Executor struct {
	placer   OrderPlacer
	gate     Approver
	recorder Recorder
	paper    bool
	logger   *slog.Logger
}

func NewExecutor(placer OrderPlacer, gate Approver, recorder Recorder, paper bool, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{placer: placer, gate: gate, recorder: recorder, paper: paper, logger: logger}
}

// Execute runs one intent through the gate and, when approved, submits it.
// The result is always recorded and never returned as an error: failures
// are captured in the Detail string.
func (e *Executor) Execute(ctx context.Context, intent model.OrderIntent) model.ExecutionResult {
	res := e.execute(ctx, intent)

	level := slog.LevelInfo
	if !res.OK {
		level = slog.LevelWarn
	}
	e.logger.Log(ctx, level, "execution outcome",
		"ticker", intent.Ticker,
		"side", intent.Side,
		"price_cents", intent.PriceCents,
		"count", intent.Count,
		"detail", res.Detail,
	)

	if e.recorder != nil {
		if err := e.recorder.RecordOutcome(ctx, res); err != nil {
			e.logger.Warn("record outcome failed", "ticker", intent.Ticker, "error", err)
		}
	}
	return res
}

func (e *Executor) execute(ctx context.Context, intent model.OrderIntent) model.ExecutionResult {
	reason, err := e.gate.Approve(ctx, intent)
	if err != nil {
		return model.ExecutionResult{Intent: intent, Detail: fmt.Sprintf("EXEC_ERROR: %v", err)}
	}
	if reason != "" {
		return model.ExecutionResult{Intent: intent, Detail: "RISK_REJECT: " + reason}
	}

	if intent.ClientOrderID == "" {
		intent.ClientOrderID = newClientOrderID()
	}

	if e.paper {
		return model.ExecutionResult{Intent: intent, OK: true, Detail: "PAPER_OK (no order sent)"}
	}

	resp, err := e.placer.CreateLimitOrder(ctx, intent, intent.ClientOrderID)
	if err != nil {
		return model.ExecutionResult{Intent: intent, Detail: fmt.Sprintf("EXEC_ERROR: %v", err)}
	}
	return model.ExecutionResult{
		Intent: intent,
		OK:     true,
		Detail: "ORDER_SENT order_id=" + resp.Order.OrderID,
	}
}

// ExecuteAll processes intents in order and returns one result per intent.
func (e *Executor) ExecuteAll(ctx context.Context, intents []model.OrderIntent) []model.ExecutionResult {
	results := make([]model.ExecutionResult, 0, len(intents))
	for _, intent := range intents {
		results = append(results, e.Execute(ctx, intent))
	}
	return results
}

// newClientOrderID builds the idempotency key sent with every order.
func newClientOrderID() string {
	u := uuid.New()
	return "bot-" + hex.EncodeToString(u[:])[:16]
}
