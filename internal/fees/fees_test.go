package fees

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFee_NonNegativeAndZeroCount(t *testing.T) {
	sched := DefaultSchedule()

	for _, kind := range []Kind{KindTaker, KindMaker, KindNone} {
		for price := 1; price <= 99; price++ {
			assert.GreaterOrEqual(t, Fee(price, 1, kind, sched), 0.0,
				"fee must be non-negative at price %d kind %s", price, kind)
			assert.Equal(t, 0.0, Fee(price, 0, kind, sched),
				"zero count must be free at price %d", price)
			assert.Equal(t, 0.0, Fee(price, -3, kind, sched),
				"negative count must be free at price %d", price)
		}
	}
}

func TestFee_RoundsUpToWholeCents(t *testing.T) {
	sched := DefaultSchedule()

	for price := 1; price <= 99; price++ {
		for _, count := range []int{1, 5, 100} {
			fee := Fee(price, count, KindTaker, sched)

			// Output is a whole number of cents.
			cents := fee * 100.0
			assert.InDelta(t, math.Round(cents), cents, 1e-9,
				"fee %v at price %d count %d is not whole cents", fee, price, count)

			// Never less than the raw unrounded value.
			p := math.Min(0.99, float64(price)/100.0)
			raw := sched.TakerRate * float64(count) * p * (1.0 - p)
			assert.GreaterOrEqual(t, fee+1e-9, raw,
				"fee %v rounded below raw %v at price %d count %d", fee, raw, price, count)
		}
	}
}

func TestFee_EpsilonGuard(t *testing.T) {
	// rate * count * P * (1-P) = 0.01 exactly in real arithmetic; float
	// overshoot must not push the rounded fee to 0.02.
	sched := Schedule{TakerRate: 0.04}
	assert.Equal(t, 0.01, Fee(50, 1, KindTaker, sched))
}

func TestFee_KnownValues(t *testing.T) {
	sched := DefaultSchedule()

	// taker: 0.07 * 1 * 0.5 * 0.5 = 0.0175 -> 0.02
	assert.Equal(t, 0.02, Fee(50, 1, KindTaker, sched))
	// maker: 0.0175 * 1 * 0.5 * 0.5 = 0.004375 -> 0.01
	assert.Equal(t, 0.01, Fee(50, 1, KindMaker, sched))
	// none is always free
	assert.Equal(t, 0.0, Fee(50, 100, KindNone, sched))
	// price clamps at 0.99: 0.07 * 1 * 0.99 * 0.01 = 0.000693 -> 0.01
	assert.Equal(t, 0.01, Fee(120, 1, KindTaker, sched))
}

func TestNetEVPerContract(t *testing.T) {
	sched := DefaultSchedule()

	// No fees: EV is just fair minus price.
	assert.InDelta(t, 0.16, NetEVPerContract(0.60, 44, KindNone, sched), 1e-9)

	// Taker fees reduce EV by the single-contract fee.
	fee := Fee(44, 1, KindTaker, sched)
	assert.InDelta(t, 0.16-fee, NetEVPerContract(0.60, 44, KindTaker, sched), 1e-9)

	// Negative edge stays negative.
	assert.Less(t, NetEVPerContract(0.40, 44, KindTaker, sched), 0.0)
}

func TestKind_Valid(t *testing.T) {
	assert.True(t, KindTaker.Valid())
	assert.True(t, KindMaker.Valid())
	assert.True(t, KindNone.Valid())
	assert.False(t, Kind("rebate").Valid())
}
