package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rickgao/kalshi-bot/internal/api"
	"github.com/rickgao/kalshi-bot/internal/auth"
	"github.com/rickgao/kalshi-bot/internal/bot"
	"github.com/rickgao/kalshi-bot/internal/config"
	"github.com/rickgao/kalshi-bot/internal/database"
	"github.com/rickgao/kalshi-bot/internal/execution"
	"github.com/rickgao/kalshi-bot/internal/fairprob"
	"github.com/rickgao/kalshi-bot/internal/feed"
	"github.com/rickgao/kalshi-bot/internal/fees"
	"github.com/rickgao/kalshi-bot/internal/journal"
	"github.com/rickgao/kalshi-bot/internal/model"
	"github.com/rickgao/kalshi-bot/internal/report"
	"github.com/rickgao/kalshi-bot/internal/risk"
	"github.com/rickgao/kalshi-bot/internal/strategy"
	"github.com/rickgao/kalshi-bot/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/bot.local.yaml", "path to config file")
	paper := flag.Bool("paper", false, "force paper mode regardless of config")
	once := flag.Bool("once", false, "run a single cycle and exit")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	// Set up structured logging
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	logger.Info("starting bot",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	paperMode := cfg.PaperMode() || *paper
	logger.Info("configuration loaded",
		"tickers", len(cfg.Markets.Tickers),
		"api_url", cfg.API.RestURL,
		"paper", paperMode,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Load credentials when configured; paper mode runs fine without them.
	var creds *auth.Credentials
	if cfg.API.APIKey != "" && cfg.API.PrivateKeyPath != "" {
		creds, err = auth.Load(cfg.API.APIKey, cfg.API.PrivateKeyPath)
		if err != nil {
			logger.Error("failed to load credentials", "error", err)
			os.Exit(1)
		}
		logger.Info("credentials loaded", "key_id", cfg.API.APIKey)
	} else {
		logger.Info("no credentials configured, running unauthenticated")
	}

	// Create API client
	client := api.NewClient(
		cfg.API.RestURL,
		creds,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRateLimits(cfg.API.ReadRate, cfg.API.WriteRate),
	)

	reporter := report.New(os.Stdout)

	if creds != nil {
		if balance, err := client.GetBalance(ctx); err != nil {
			logger.Warn("could not fetch balance", "error", err)
		} else {
			reporter.PrintBalance(balance.Balance)
		}
	}

	// Fair-probability provider
	var provider fairprob.Provider
	if cfg.FairProb.Live {
		provider = fairprob.NewLive(client, cfg.FairProb.Priors, fairprob.Coefficients{
			Prior:       cfg.FairProb.Coefs.Prior,
			ScoreDiff:   cfg.FairProb.Coefs.ScoreDiff,
			TimeLeftMin: cfg.FairProb.Coefs.TimeLeftMin,
		}, logger)
	} else {
		provider = fairprob.NewStatic(cfg.FairProb.Priors)
	}

	engine := strategy.New(strategy.Config{
		EdgeThreshold: cfg.Strategy.EdgeThreshold,
		FeeKind:       fees.Kind(cfg.Strategy.FeeKind),
		FeeSched: fees.Schedule{
			TakerRate: cfg.Strategy.TakerRate,
			MakerRate: cfg.Strategy.MakerRate,
		},
		MinNetEV:   cfg.Strategy.MinNetEV,
		PostOnly:   cfg.PostOnly(),
		OrderCount: cfg.Strategy.OrderCount,
	}, provider, logger)

	gate := risk.NewGate(model.RiskLimits{
		MaxOrderCount:        cfg.Risk.MaxOrderCount,
		MaxPositionPerTicker: cfg.Risk.MaxPositionPerTicker,
	}, client, logger)

	// Optional journal
	var (
		rec         execution.Recorder
		snapJournal bot.SnapshotJournal
	)
	if cfg.JournalEnabled() {
		pool, err := database.Connect(ctx, cfg.Journal.Database)
		if err != nil {
			logger.Error("failed to connect journal database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		j := journal.New(pool, logger)
		if err := j.EnsureSchema(ctx); err != nil {
			logger.Error("failed to ensure journal schema", "error", err)
			os.Exit(1)
		}
		rec = j
		snapJournal = j
		logger.Info("journal connected", "host", cfg.Journal.Database.Host)
	}

	executor := execution.NewExecutor(client, gate, rec, paperMode, logger)

	// Optional ticker feed
	var quotes *feed.Cache
	if cfg.Feed.Enabled {
		quotes = feed.NewCache()
		f := feed.New(feed.Config{
			URL:                cfg.API.WSURL,
			Tickers:            cfg.Markets.Tickers,
			ReconnectBaseDelay: cfg.Feed.ReconnectBaseDelay,
			ReconnectMaxDelay:  cfg.Feed.ReconnectMaxDelay,
			PingInterval:       cfg.Feed.PingInterval,
			ReadTimeout:        cfg.Feed.ReadTimeout,
		}, creds, quotes, logger)
		f.Start(ctx)
		defer f.Stop()
	}

	runner := bot.New(
		bot.Config{
			Tickers:        cfg.Markets.Tickers,
			PollInterval:   cfg.Bot.PollInterval,
			OrderbookDepth: cfg.Markets.OrderbookDepth,
		},
		client,
		quotes,
		engine,
		executor,
		snapJournal,
		reporter,
		logger,
	)

	if *once {
		runner.RunCycle(ctx)
		return
	}

	if err := runner.Start(ctx); err != nil {
		logger.Error("failed to start bot", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	if err := runner.Stop(stopCtx); err != nil {
		logger.Warn("shutdown incomplete", "error", err)
	}
}
