package fairprob

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rickgao/kalshi-bot/internal/api"
)

// MarketDataAPI is the slice of the exchange client the live provider needs.
type MarketDataAPI interface {
	GetMarket(ctx context.Context, ticker string) (*api.APIMarket, error)
	GetMilestones(ctx context.Context, opts api.GetMilestonesOptions) (*api.MilestonesResponse, error)
	GetLiveData(ctx context.Context, liveType, milestoneID string) (*api.LiveDataResponse, error)
}

// Coefficients tune the in-play logit blend.
type Coefficients struct {
	Prior       float64 // weight on logit(pregame prior)
	ScoreDiff   float64 // per point of (yes score - no score)
	TimeLeftMin float64 // per minute remaining
}

// DefaultCoefficients are starting values meant to be tuned on historical data.
func DefaultCoefficients() Coefficients {
	return Coefficients{Prior: 1.0, ScoreDiff: 0.12, TimeLeftMin: -0.03}
}

// milestoneRef is the cached resolution of a ticker to its live-data feed.
type milestoneRef struct {
	id       string
	liveType string
}

// nameHints carry the market's YES/NO subtitles for home/away score mapping.
type nameHints struct {
	yes string
	no  string
}

// Live is an in-play fair-probability provider. It adjusts a pregame prior
// with live score and clock signals:
//
//	p = sigmoid(c_prior*logit(prior) + c_score*(score_yes-score_no) + c_time*minutes_left)
//
// Milestone metadata is cached per ticker once resolved; until then the
// lookup is retried each call. Any failure along the way degrades to the
// clamped static prior; this provider never returns an error.
type Live struct {
	api    MarketDataAPI
	priors map[string]float64
	coefs  Coefficients
	logger *slog.Logger

	mu    sync.Mutex
	cache map[string]milestoneRef
	hints map[string]nameHints
}

// NewLive creates a live provider over the given priors table.
func NewLive(apiClient MarketDataAPI, priors map[string]float64, coefs Coefficients, logger *slog.Logger) *Live {
	if logger == nil {
		logger = slog.Default()
	}
	return &Live{
		api:    apiClient,
		priors: priors,
		coefs:  coefs,
		logger: logger,
		cache:  make(map[string]milestoneRef),
		hints:  make(map[string]nameHints),
	}
}

// FairProbYes implements Provider.
func (l *Live) FairProbYes(ctx context.Context, ticker string) (float64, bool) {
	prior, ok := l.priors[ticker]
	if !ok {
		return 0, false
	}
	fallback := clamp01(prior)

	ref, ok := l.resolveMilestone(ctx, ticker)
	if !ok {
		return fallback, true
	}

	live, err := l.api.GetLiveData(ctx, ref.liveType, ref.id)
	if err != nil {
		l.logger.Debug("live data fetch failed, using prior", "ticker", ticker, "err", err)
		return fallback, true
	}

	details := live.LiveData.Details
	if details == nil {
		return fallback, true
	}

	hints := l.hintsFor(ticker)
	scoreYes, scoreNo, ok := extractScores(details, hints.yes, hints.no)
	if !ok {
		l.logger.Debug("no parsable score in live data, using prior", "ticker", ticker)
		return fallback, true
	}

	var minutesLeft float64
	if secs, ok := extractClockSeconds(details); ok {
		minutesLeft = float64(secs) / 60.0
	}

	x := l.coefs.Prior*logit(fallback) +
		l.coefs.ScoreDiff*float64(scoreYes-scoreNo) +
		l.coefs.TimeLeftMin*minutesLeft

	return clamp01(sigmoid(x)), true
}

// resolveMilestone maps a ticker to its milestone, caching successful
// resolutions. Failures are not cached: a milestone that does not exist yet
// (pregame) or a transient metadata error gets retried on the next cycle.
func (l *Live) resolveMilestone(ctx context.Context, ticker string) (milestoneRef, bool) {
	l.mu.Lock()
	if ref, ok := l.cache[ticker]; ok {
		l.mu.Unlock()
		return ref, true
	}
	l.mu.Unlock()

	ref, hints, ok := l.lookupMilestone(ctx, ticker)
	if !ok {
		return milestoneRef{}, false
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache[ticker] = ref
	l.hints[ticker] = hints
	return ref, true
}

// lookupMilestone fetches market metadata and searches related milestones.
func (l *Live) lookupMilestone(ctx context.Context, ticker string) (milestoneRef, nameHints, bool) {
	mkt, err := l.api.GetMarket(ctx, ticker)
	if err != nil {
		l.logger.Debug("market lookup failed", "ticker", ticker, "err", err)
		return milestoneRef{}, nameHints{}, false
	}

	hints := nameHints{yes: mkt.YesSubTitle, no: mkt.NoSubTitle}
	if hints.yes == "" {
		hints.yes = mkt.Subtitle
	}
	if hints.yes == "" {
		hints.yes = mkt.Title
	}
	if hints.no == "" {
		hints.no = mkt.Subtitle
	}

	if mkt.EventTicker == "" {
		return milestoneRef{}, nameHints{}, false
	}

	resp, err := l.api.GetMilestones(ctx, api.GetMilestonesOptions{
		Limit:              50,
		RelatedEventTicker: mkt.EventTicker,
	})
	if err != nil {
		l.logger.Debug("milestone lookup failed", "ticker", ticker, "err", err)
		return milestoneRef{}, nameHints{}, false
	}
	if len(resp.Milestones) == 0 {
		return milestoneRef{}, nameHints{}, false
	}

	// Prefer the first milestone where this event is primary, else the first
	// milestone overall.
	chosen := resp.Milestones[0]
scan:
	for _, ms := range resp.Milestones {
		for _, et := range ms.PrimaryEventTickers {
			if et == mkt.EventTicker {
				chosen = ms
				break scan
			}
		}
	}

	if chosen.ID == "" {
		return milestoneRef{}, nameHints{}, false
	}

	liveType := chosen.Type
	if liveType == "" {
		liveType = chosen.Category
	}
	if liveType == "" {
		liveType = "sports"
	}

	return milestoneRef{id: chosen.ID, liveType: liveType}, hints, true
}

func (l *Live) hintsFor(ticker string) nameHints {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hints[ticker]
}
