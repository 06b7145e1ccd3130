// Package strategy turns market snapshots and fair-probability estimates
// into order intents.
package strategy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rickgao/kalshi-bot/internal/fairprob"
	"github.com/rickgao/kalshi-bot/internal/fees"
	"github.com/rickgao/kalshi-bot/internal/model"
)

// Config holds decision-engine parameters.
type Config struct {
	// EdgeThreshold is the minimum edge (fair probability minus proposed
	// price, in probability points) required to trade.
	EdgeThreshold float64

	// FeeKind selects which fee schedule the EV calculation assumes.
	FeeKind  fees.Kind
	FeeSched fees.Schedule

	// MinNetEV is the minimum fee-adjusted expected value per contract
	// in dollars.
	MinNetEV float64

	// PostOnly improves the proposed price by one cent so the order
	// rests instead of crossing the book. When false the raw ask is
	// proposed, effectively a marketable order.
	PostOnly bool

	// OrderCount is the contract count on every intent.
	OrderCount int
}

// Engine is the fee-aware fair-value decision engine. It emits at most one
// intent per market per cycle.
type Engine struct {
	cfg      Config
	provider fairprob.Provider
	logger   *slog.Logger
}

// New creates a decision engine over the given fair-probability provider.
func New(cfg Config, provider fairprob.Provider, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{cfg: cfg, provider: provider, logger: logger}
}

// Generate evaluates every snapshot and returns the resulting intents.
// Markets with no fair estimate or no usable ask are skipped silently.
func (e *Engine) Generate(ctx context.Context, snaps []model.MarketSnapshot) []model.OrderIntent {
	var intents []model.OrderIntent

	for _, snap := range snaps {
		intent, ok := e.evaluate(ctx, snap)
		if !ok {
			continue
		}
		intents = append(intents, intent)
	}

	return intents
}

// evaluate checks the two candidates for one market in fixed order:
// buy YES at the YES ask, then buy NO at the derived NO ask. The first
// qualifying candidate wins; the ordering is a deliberate tie-break and
// must not change.
func (e *Engine) evaluate(ctx context.Context, snap model.MarketSnapshot) (model.OrderIntent, bool) {
	pFair, ok := e.provider.FairProbYes(ctx, snap.Ticker)
	if !ok {
		return model.OrderIntent{}, false
	}

	if intent, ok := e.candidate(snap.Ticker, model.SideYes, pFair, snap.Best.YesAsk); ok {
		return intent, true
	}
	return e.candidate(snap.Ticker, model.SideNo, 1.0-pFair, snap.Best.NoAsk)
}

// candidate qualifies a buy of one side against its ask. fair is the
// probability of the side being bought paying out.
func (e *Engine) candidate(ticker string, side model.Side, fair float64, ask *int) (model.OrderIntent, bool) {
	if ask == nil {
		return model.OrderIntent{}, false
	}

	price := *ask
	if e.cfg.PostOnly && price > 1 {
		price--
	}
	if price < 1 || price > 99 {
		return model.OrderIntent{}, false
	}

	// The epsilon keeps an edge exactly at threshold tradable: 0.50-0.45
	// lands a hair under 0.05 in float64.
	const eps = 1e-9

	edge := fair - float64(price)/100.0
	if edge < e.cfg.EdgeThreshold-eps {
		return model.OrderIntent{}, false
	}

	netEV := fees.NetEVPerContract(fair, price, e.cfg.FeeKind, e.cfg.FeeSched)
	if netEV < e.cfg.MinNetEV-eps {
		e.logger.Debug("edge without EV, skipping",
			"ticker", ticker,
			"side", side,
			"edge", edge,
			"net_ev", netEV,
		)
		return model.OrderIntent{}, false
	}

	return model.OrderIntent{
		Ticker:     ticker,
		Side:       side,
		Action:     model.ActionBuy,
		Count:      e.cfg.OrderCount,
		PriceCents: price,
		PostOnly:   e.cfg.PostOnly,
		Reason: fmt.Sprintf("fair(%.2f) vs %s@%dc: edge=%.3f net_ev=$%.4f",
			fair, side, price, edge, netEV),
	}, true
}

// Deduplicate merges intents that target the same (ticker, side, action,
// price) by summing their counts, preserving first-seen order.
func Deduplicate(intents []model.OrderIntent) []model.OrderIntent {
	type key struct {
		ticker string
		side   model.Side
		action model.Action
		price  int
	}

	index := make(map[key]int)
	var unique []model.OrderIntent

	for _, it := range intents {
		k := key{it.Ticker, it.Side, it.Action, it.PriceCents}
		if i, seen := index[k]; seen {
			unique[i].Count += it.Count
			continue
		}
		index[k] = len(unique)
		unique = append(unique, it)
	}

	return unique
}
