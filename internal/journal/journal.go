// Package journal persists order outcomes and market snapshots to Postgres.
// It is optional infrastructure: the bot runs fine without a database.
package journal

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rickgao/kalshi-bot/internal/model"
)

// DB is the subset of *pgxpool.Pool the journal uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Journal records decision-cycle output. All writes are best-effort from the
// caller's perspective: a failed insert is an error for the caller to log,
// never a reason to stop trading.
type Journal struct {
	db     DB
	logger *slog.Logger
}

func New(db DB, logger *slog.Logger) *Journal {
	if logger == nil {
		logger = slog.Default()
	}
	return &Journal{db: db, logger: logger}
}

// EnsureSchema creates the journal tables when they do not exist.
func (j *Journal) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := j.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// RecordOutcome inserts one execution outcome. The client order id keys the
// insert so a retried cycle cannot double-journal the same order. Rejected
// intents never get a client order id, so those rows get a synthetic key to
// keep the unique constraint from swallowing them.
func (j *Journal) RecordOutcome(ctx context.Context, res model.ExecutionResult) error {
	i := res.Intent
	key := i.ClientOrderID
	if key == "" {
		u := uuid.New()
		key = "rec-" + hex.EncodeToString(u[:])[:16]
	}
	_, err := j.db.Exec(ctx, `
		INSERT INTO order_outcomes
			(recorded_at, ticker, side, action, count, price_cents, post_only, client_order_id, ok, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (client_order_id) DO NOTHING
	`, time.Now().UTC(), i.Ticker, string(i.Side), string(i.Action), i.Count,
		i.PriceCents, i.PostOnly, key, res.OK, res.Detail)
	if err != nil {
		return fmt.Errorf("record outcome %s: %w", i.Ticker, err)
	}
	return nil
}

// RecordSnapshots batch-inserts the cycle's market snapshots.
func (j *Journal) RecordSnapshots(ctx context.Context, observedAt time.Time, snaps []model.MarketSnapshot) error {
	if len(snaps) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, s := range snaps {
		batch.Queue(`
			INSERT INTO market_snapshots (ticker, observed_at, yes_bid, yes_ask, no_bid, no_ask)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (ticker, observed_at) DO NOTHING
		`, s.Ticker, observedAt.UTC(), s.Best.YesBid, s.Best.YesAsk, s.Best.NoBid, s.Best.NoAsk)
	}

	results := j.db.SendBatch(ctx, batch)
	defer results.Close()

	for range snaps {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("record snapshots: %w", err)
		}
	}

	j.logger.Debug("journaled snapshots", "count", len(snaps))
	return nil
}
