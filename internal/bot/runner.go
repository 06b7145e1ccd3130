// Package bot runs the periodic decision cycle: fetch quotes, generate
// intents, execute them, report and journal the results.
package bot

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rickgao/kalshi-bot/internal/api"
	"github.com/rickgao/kalshi-bot/internal/execution"
	"github.com/rickgao/kalshi-bot/internal/feed"
	"github.com/rickgao/kalshi-bot/internal/model"
	"github.com/rickgao/kalshi-bot/internal/report"
	"github.com/rickgao/kalshi-bot/internal/strategy"
)

// OrderbookSource fetches a market's orderbook over REST. *api.Client
// satisfies it.
type OrderbookSource interface {
	GetOrderbook(ctx context.Context, ticker string, depth int) (*api.OrderbookResponse, error)
}

// SnapshotJournal persists per-cycle snapshots. May be nil.
type SnapshotJournal interface {
	RecordSnapshots(ctx context.Context, observedAt time.Time, snaps []model.MarketSnapshot) error
}

// Config holds cycle-loop settings.
type Config struct {
	Tickers        []string
	PollInterval   time.Duration
	OrderbookDepth int
	FeedMaxAge     time.Duration // quotes older than this fall back to REST
	RequestTimeout time.Duration
}

// Runner drives one decision cycle per tick for the configured markets.
type Runner struct {
	cfg      Config
	books    OrderbookSource
	quotes   *feed.Cache // optional
	engine   *strategy.Engine
	executor *execution.Executor
	journal  SnapshotJournal
	reporter *report.Reporter
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(
	cfg Config,
	books OrderbookSource,
	quotes *feed.Cache,
	engine *strategy.Engine,
	executor *execution.Executor,
	journal SnapshotJournal,
	reporter *report.Reporter,
	logger *slog.Logger,
) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if cfg.FeedMaxAge == 0 {
		cfg.FeedMaxAge = time.Minute
	}
	return &Runner{
		cfg:      cfg,
		books:    books,
		quotes:   quotes,
		engine:   engine,
		executor: executor,
		journal:  journal,
		reporter: reporter,
		logger:   logger,
	}
}

// Start begins the cycle loop.
func (r *Runner) Start(ctx context.Context) error {
	r.ctx, r.cancel = context.WithCancel(ctx)

	r.wg.Add(1)
	go r.run()

	r.logger.Info("bot started",
		"tickers", len(r.cfg.Tickers),
		"interval", r.cfg.PollInterval,
	)
	return nil
}

// Stop gracefully shuts down the runner.
func (r *Runner) Stop(ctx context.Context) error {
	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("bot stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the main cycle loop.
func (r *Runner) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	// Run a cycle immediately on start.
	r.RunCycle(r.ctx)

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.RunCycle(r.ctx)
		}
	}
}

// RunCycle executes one full decision cycle and returns its results.
func (r *Runner) RunCycle(ctx context.Context) []model.ExecutionResult {
	start := time.Now()

	snaps := r.collectSnapshots(ctx)

	intents := r.engine.Generate(ctx, snaps)
	intents = strategy.Deduplicate(intents)

	results := r.executor.ExecuteAll(ctx, intents)

	if r.reporter != nil {
		r.reporter.PrintCycle(start, len(snaps), results)
	}
	if r.journal != nil {
		if err := r.journal.RecordSnapshots(ctx, start, snaps); err != nil {
			r.logger.Warn("journal snapshots failed", "error", err)
		}
	}

	r.logger.Info("cycle complete",
		"markets", len(snaps),
		"intents", len(intents),
		"duration", time.Since(start),
	)
	return results
}

// collectSnapshots builds one snapshot per tracked ticker, preferring a
// fresh feed quote and falling back to REST. A market that cannot be
// fetched is skipped this cycle.
func (r *Runner) collectSnapshots(ctx context.Context) []model.MarketSnapshot {
	snaps := make([]model.MarketSnapshot, 0, len(r.cfg.Tickers))

	for _, ticker := range r.cfg.Tickers {
		if r.quotes != nil {
			if snap, ok := r.quotes.Snapshot(ticker, r.cfg.FeedMaxAge); ok {
				snaps = append(snaps, snap)
				continue
			}
		}

		snap, err := r.fetchSnapshot(ctx, ticker)
		if err != nil {
			r.logger.Warn("orderbook fetch failed, skipping market",
				"ticker", ticker, "error", err)
			continue
		}
		snaps = append(snaps, snap)
	}
	return snaps
}

func (r *Runner) fetchSnapshot(ctx context.Context, ticker string) (model.MarketSnapshot, error) {
	reqCtx, cancel := context.WithTimeout(ctx, r.cfg.RequestTimeout)
	defer cancel()

	ob, err := r.books.GetOrderbook(reqCtx, ticker, r.cfg.OrderbookDepth)
	if err != nil {
		return model.MarketSnapshot{}, err
	}
	return ob.Snapshot(ticker), nil
}
