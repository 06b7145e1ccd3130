// Package fairprob sources fair YES-probability estimates for markets.
//
// Two providers exist: a static table lookup for pregame estimates, and a
// live in-play provider that blends the pregame prior with real-time
// score/clock signals from Kalshi's milestone live data.
package fairprob

import (
	"context"
	"math"
)

// Provider yields a fair probability that the YES outcome occurs.
// The boolean is false when no estimate exists for the ticker.
type Provider interface {
	FairProbYes(ctx context.Context, ticker string) (float64, bool)
}

// Static returns configured per-market probabilities, clamped to [0,1].
type Static struct {
	probs map[string]float64
}

// NewStatic creates a static provider from a ticker -> probability table.
func NewStatic(probs map[string]float64) *Static {
	return &Static{probs: probs}
}

// FairProbYes implements Provider.
func (s *Static) FairProbYes(_ context.Context, ticker string) (float64, bool) {
	p, ok := s.probs[ticker]
	if !ok {
		return 0, false
	}
	return clamp01(p), true
}

func clamp01(p float64) float64 {
	return math.Max(0, math.Min(1, p))
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// logit clamps its input away from 0 and 1 to avoid infinities.
func logit(p float64) float64 {
	p = math.Max(1e-6, math.Min(1-1e-6, p))
	return math.Log(p / (1.0 - p))
}
