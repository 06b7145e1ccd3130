package journal

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS order_outcomes (
		id               BIGSERIAL PRIMARY KEY,
		recorded_at      TIMESTAMPTZ NOT NULL,
		ticker           TEXT NOT NULL,
		side             TEXT NOT NULL,
		action           TEXT NOT NULL,
		count            INTEGER NOT NULL,
		price_cents      INTEGER NOT NULL,
		post_only        BOOLEAN NOT NULL,
		client_order_id  TEXT NOT NULL UNIQUE,
		ok               BOOLEAN NOT NULL,
		detail           TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_order_outcomes_ticker ON order_outcomes (ticker, recorded_at)`,
	`CREATE TABLE IF NOT EXISTS market_snapshots (
		ticker       TEXT NOT NULL,
		observed_at  TIMESTAMPTZ NOT NULL,
		yes_bid      INTEGER,
		yes_ask      INTEGER,
		no_bid       INTEGER,
		no_ask       INTEGER,
		PRIMARY KEY (ticker, observed_at)
	)`,
}
