// Package risk gates order intents against hard position and price limits
// before anything touches the exchange.
package risk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rickgao/kalshi-bot/internal/api"
	"github.com/rickgao/kalshi-bot/internal/model"
)

// PositionSource supplies the current position entries for a ticker.
// *api.Client satisfies it.
type PositionSource interface {
	GetPositions(ctx context.Context, ticker string, limit int) (*api.PositionsResponse, error)
}

// Gate approves or rejects intents. A rejection is reported as a reason
// string, not an error; errors mean the check itself could not run.
type Gate struct {
	limits model.RiskLimits
	src    PositionSource
	logger *slog.Logger
}

func NewGate(limits model.RiskLimits, src PositionSource, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{limits: limits, src: src, logger: logger}
}

// Approve runs the checks in a fixed order and returns the first failing
// reason. An empty reason with a nil error means the intent passed.
func (g *Gate) Approve(ctx context.Context, intent model.OrderIntent) (string, error) {
	if intent.Count <= 0 {
		return "count must be positive", nil
	}
	if intent.Count > g.limits.MaxOrderCount {
		return fmt.Sprintf("count %d exceeds max order count %d", intent.Count, g.limits.MaxOrderCount), nil
	}
	pos, err := g.position(ctx, intent.Ticker)
	if err != nil {
		return "", err
	}
	if abs(pos)+intent.Count > g.limits.MaxPositionPerTicker {
		return fmt.Sprintf("position %d + count %d exceeds max position %d",
			pos, intent.Count, g.limits.MaxPositionPerTicker), nil
	}

	if intent.PriceCents < 1 || intent.PriceCents > 99 {
		return fmt.Sprintf("price %dc outside 1..99", intent.PriceCents), nil
	}
	if !intent.Side.Valid() {
		return fmt.Sprintf("invalid side %q", intent.Side), nil
	}
	if !intent.Action.Valid() {
		return fmt.Sprintf("invalid action %q", intent.Action), nil
	}
	return "", nil
}

// position sums the live exposure for a ticker. Auth failures and a missing
// portfolio both read as flat: the exchange reports no position either way.
func (g *Gate) position(ctx context.Context, ticker string) (int, error) {
	resp, err := g.src.GetPositions(ctx, ticker, 0)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.StatusCode {
			case 401, 403, 404:
				g.logger.Debug("positions unavailable, assuming flat",
					"ticker", ticker, "status", apiErr.StatusCode)
				return 0, nil
			}
		}
		return 0, fmt.Errorf("fetch positions: %w", err)
	}

	total := 0
	for _, p := range resp.Positions {
		if p.Ticker != ticker {
			continue
		}
		switch {
		case p.Position != nil:
			total += *p.Position
		case p.Count != nil:
			total += *p.Count
		}
	}
	return total, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
