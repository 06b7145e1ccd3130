package fairprob

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickgao/kalshi-bot/internal/api"
)

// fakeAPI implements MarketDataAPI with function hooks and call counters.
type fakeAPI struct {
	market    func(ticker string) (*api.APIMarket, error)
	milestone func(opts api.GetMilestonesOptions) (*api.MilestonesResponse, error)
	liveData  func(liveType, id string) (*api.LiveDataResponse, error)

	marketCalls    int
	milestoneCalls int
}

func (f *fakeAPI) GetMarket(_ context.Context, ticker string) (*api.APIMarket, error) {
	f.marketCalls++
	return f.market(ticker)
}

func (f *fakeAPI) GetMilestones(_ context.Context, opts api.GetMilestonesOptions) (*api.MilestonesResponse, error) {
	f.milestoneCalls++
	return f.milestone(opts)
}

func (f *fakeAPI) GetLiveData(_ context.Context, liveType, id string) (*api.LiveDataResponse, error) {
	return f.liveData(liveType, id)
}

func newFakeAPI(details map[string]any) *fakeAPI {
	return &fakeAPI{
		market: func(ticker string) (*api.APIMarket, error) {
			return &api.APIMarket{
				Ticker:      ticker,
				EventTicker: "EVT-1",
				YesSubTitle: "Wolves",
				NoSubTitle:  "Hawks",
			}, nil
		},
		milestone: func(opts api.GetMilestonesOptions) (*api.MilestonesResponse, error) {
			return &api.MilestonesResponse{
				Milestones: []api.APIMilestone{
					{ID: "ms-1", Type: "basketball", PrimaryEventTickers: []string{"EVT-1"}},
				},
			}, nil
		},
		liveData: func(liveType, id string) (*api.LiveDataResponse, error) {
			return &api.LiveDataResponse{
				LiveData: api.LiveData{MilestoneID: id, Type: liveType, Details: details},
			}, nil
		},
	}
}

func TestStatic(t *testing.T) {
	s := NewStatic(map[string]float64{"A": 0.62, "B": 1.7, "C": -0.4})

	p, ok := s.FairProbYes(context.Background(), "A")
	require.True(t, ok)
	assert.Equal(t, 0.62, p)

	// Clamped to [0,1].
	p, ok = s.FairProbYes(context.Background(), "B")
	require.True(t, ok)
	assert.Equal(t, 1.0, p)

	p, ok = s.FairProbYes(context.Background(), "C")
	require.True(t, ok)
	assert.Equal(t, 0.0, p)

	_, ok = s.FairProbYes(context.Background(), "missing")
	assert.False(t, ok)
}

func TestLive_BlendsScoreAndClock(t *testing.T) {
	f := newFakeAPI(map[string]any{
		"yes_score":      float64(70),
		"no_score":       float64(64),
		"time_remaining": "10:00",
	})

	coefs := DefaultCoefficients()
	l := NewLive(f, map[string]float64{"MKT": 0.55}, coefs, nil)

	got, ok := l.FairProbYes(context.Background(), "MKT")
	require.True(t, ok)

	want := sigmoid(coefs.Prior*logit(0.55) + coefs.ScoreDiff*6 + coefs.TimeLeftMin*10)
	assert.InDelta(t, want, got, 1e-12)
	assert.Greater(t, got, 0.55, "a six point lead should raise the prior")
}

func TestLive_FallsBackOnMalformedPayload(t *testing.T) {
	// Score fields missing entirely.
	f := newFakeAPI(map[string]any{"status": "in_progress"})
	l := NewLive(f, map[string]float64{"MKT": 1.3}, DefaultCoefficients(), nil)

	got, ok := l.FairProbYes(context.Background(), "MKT")
	require.True(t, ok)
	assert.Equal(t, 1.0, got, "fallback must be the clamped static prior")
}

func TestLive_FallsBackOnLiveDataError(t *testing.T) {
	f := newFakeAPI(nil)
	f.liveData = func(liveType, id string) (*api.LiveDataResponse, error) {
		return nil, errors.New("boom")
	}
	l := NewLive(f, map[string]float64{"MKT": 0.42}, DefaultCoefficients(), nil)

	got, ok := l.FairProbYes(context.Background(), "MKT")
	require.True(t, ok)
	assert.Equal(t, 0.42, got)
}

func TestLive_FallsBackWhenMetadataUnavailable(t *testing.T) {
	f := newFakeAPI(nil)
	f.market = func(ticker string) (*api.APIMarket, error) {
		return nil, errors.New("not found")
	}
	l := NewLive(f, map[string]float64{"MKT": 0.42}, DefaultCoefficients(), nil)

	got, ok := l.FairProbYes(context.Background(), "MKT")
	require.True(t, ok)
	assert.Equal(t, 0.42, got)

	// Failed resolutions are retried, and a later success is cached.
	f.market = newFakeAPI(nil).market
	_, _ = l.FairProbYes(context.Background(), "MKT")
	_, _ = l.FairProbYes(context.Background(), "MKT")
	assert.Equal(t, 2, f.marketCalls)
	assert.Equal(t, 1, f.milestoneCalls)
}

func TestLive_PicksFirstPrimaryMilestone(t *testing.T) {
	f := newFakeAPI(map[string]any{
		"yes_score": float64(1),
		"no_score":  float64(0),
	})
	f.milestone = func(opts api.GetMilestonesOptions) (*api.MilestonesResponse, error) {
		return &api.MilestonesResponse{
			Milestones: []api.APIMilestone{
				{ID: "ms-other", Type: "basketball", PrimaryEventTickers: []string{"EVT-9"}},
				{ID: "ms-first", Type: "basketball", PrimaryEventTickers: []string{"EVT-1"}},
				{ID: "ms-second", Type: "basketball", PrimaryEventTickers: []string{"EVT-1"}},
			},
		}, nil
	}
	var gotID string
	inner := f.liveData
	f.liveData = func(liveType, id string) (*api.LiveDataResponse, error) {
		gotID = id
		return inner(liveType, id)
	}
	l := NewLive(f, map[string]float64{"MKT": 0.5}, DefaultCoefficients(), nil)

	_, ok := l.FairProbYes(context.Background(), "MKT")
	require.True(t, ok)
	assert.Equal(t, "ms-first", gotID)
}

func TestLive_CachesMilestoneResolution(t *testing.T) {
	f := newFakeAPI(map[string]any{
		"yes_score": float64(1),
		"no_score":  float64(0),
	})
	l := NewLive(f, map[string]float64{"MKT": 0.5}, DefaultCoefficients(), nil)

	for i := 0; i < 4; i++ {
		_, ok := l.FairProbYes(context.Background(), "MKT")
		require.True(t, ok)
	}

	assert.Equal(t, 1, f.marketCalls, "market metadata should be fetched once")
	assert.Equal(t, 1, f.milestoneCalls, "milestones should be fetched once")
}

func TestLive_NoPriorNoEstimate(t *testing.T) {
	f := newFakeAPI(nil)
	l := NewLive(f, map[string]float64{}, DefaultCoefficients(), nil)

	_, ok := l.FairProbYes(context.Background(), "MKT")
	assert.False(t, ok)
	assert.Zero(t, f.marketCalls, "no prior means no metadata lookup")
}

func TestLive_HomeAwayMappingViaHints(t *testing.T) {
	// Scores only under home/away keys; YES team is the away side.
	f := newFakeAPI(map[string]any{
		"home_score": float64(3),
		"away_score": float64(1),
		"home_team":  "Hawks",
		"away_team":  "Wolves",
	})

	coefs := Coefficients{Prior: 1.0, ScoreDiff: 0.12}
	l := NewLive(f, map[string]float64{"MKT": 0.5}, coefs, nil)

	got, ok := l.FairProbYes(context.Background(), "MKT")
	require.True(t, ok)

	// YES (Wolves) trail 1-3: diff = -2.
	want := sigmoid(logit(0.5) + 0.12*(-2))
	assert.InDelta(t, want, got, 1e-12)
	assert.Less(t, got, 0.5)
}

func TestLogit_ClampsAwayFromBounds(t *testing.T) {
	assert.False(t, math.IsInf(logit(0), 0))
	assert.False(t, math.IsInf(logit(1), 0))
	assert.InDelta(t, 0, logit(0.5), 1e-12)
}
