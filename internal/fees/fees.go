// Package fees models Kalshi trading fees and fee-adjusted expected value.
package fees

import "math"

// Kind selects which fee schedule applies to a fill.
type Kind string

const (
	KindTaker Kind = "taker"
	KindMaker Kind = "maker"
	KindNone  Kind = "none"
)

// Valid reports whether k is a recognized fee kind.
func (k Kind) Valid() bool {
	return k == KindTaker || k == KindMaker || k == KindNone
}

// Default rates from the published Kalshi fee schedule.
const (
	DefaultTakerRate = 0.07
	DefaultMakerRate = 0.0175
)

// Schedule holds the configured per-kind fee rates.
type Schedule struct {
	TakerRate float64
	MakerRate float64
}

// DefaultSchedule returns the published general rates.
func DefaultSchedule() Schedule {
	return Schedule{TakerRate: DefaultTakerRate, MakerRate: DefaultMakerRate}
}

// rate returns the rate for a kind; unknown kinds charge nothing.
func (s Schedule) rate(kind Kind) float64 {
	switch kind {
	case KindTaker:
		return s.TakerRate
	case KindMaker:
		return s.MakerRate
	default:
		return 0
	}
}

// roundUpToCent rounds dollars up to the next $0.01. The fee schedule says
// "round up"; the epsilon keeps float artifacts like 0.01000000002 from
// landing on the next cent.
func roundUpToCent(dollars float64) float64 {
	return math.Ceil((dollars-1e-12)*100.0) / 100.0
}

// Fee estimates the trading fee in dollars for a single fill:
//
//	fee = round_up(rate * count * P * (1-P))
//
// where P is the contract price in dollars, clamped to [0, 0.99].
// A non-positive count is free.
func Fee(priceCents, count int, kind Kind, sched Schedule) float64 {
	if count <= 0 {
		return 0
	}
	p := math.Max(0, math.Min(0.99, float64(priceCents)/100.0))
	return roundUpToCent(sched.rate(kind) * float64(count) * p * (1.0 - p))
}

// NetEVPerContract is the expected value in dollars of buying one YES
// contract at priceCents and holding to settlement, net of fees.
func NetEVPerContract(fairProbYes float64, priceCents int, kind Kind, sched Schedule) float64 {
	gross := fairProbYes - float64(priceCents)/100.0
	return gross - Fee(priceCents, 1, kind, sched)
}
