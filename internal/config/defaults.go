package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultRestURL            = "https://api.elections.kalshi.com/trade-api/v2"
	DefaultWSURL              = "wss://api.elections.kalshi.com"
	DefaultAPITimeout         = 30 * time.Second
	DefaultReadRate           = 10.0
	DefaultWriteRate          = 5.0
	DefaultOrderbookDepth     = 10
	DefaultEdgeThreshold      = 0.05
	DefaultFeeKind            = "taker"
	DefaultTakerRate          = 0.07
	DefaultMakerRate          = 0.0175
	DefaultOrderCount         = 5
	DefaultMaxOrderCount      = 10
	DefaultMaxPosition        = 50
	DefaultPollInterval       = 15 * time.Second
	DefaultCoefPrior          = 1.0
	DefaultCoefScoreDiff      = 0.12
	DefaultCoefTimeLeftMin    = -0.03
	DefaultDBPort             = 5432
	DefaultDBSSLMode          = "prefer"
	DefaultMaxConns           = 4
	DefaultMinConns           = 1
	DefaultReconnectBaseDelay = 1 * time.Second
	DefaultReconnectMaxDelay  = 60 * time.Second
	DefaultPingInterval       = 15 * time.Second
	DefaultReadTimeout        = 30 * time.Second
)

func (c *BotConfig) applyDefaults() {
	// API defaults
	if c.API.RestURL == "" {
		c.API.RestURL = DefaultRestURL
	}
	if c.API.WSURL == "" {
		c.API.WSURL = DefaultWSURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.ReadRate == 0 {
		c.API.ReadRate = DefaultReadRate
	}
	if c.API.WriteRate == 0 {
		c.API.WriteRate = DefaultWriteRate
	}

	// Markets defaults
	if c.Markets.OrderbookDepth == 0 {
		c.Markets.OrderbookDepth = DefaultOrderbookDepth
	}

	// Strategy defaults
	if c.Strategy.EdgeThreshold == 0 {
		c.Strategy.EdgeThreshold = DefaultEdgeThreshold
	}
	if c.Strategy.FeeKind == "" {
		c.Strategy.FeeKind = DefaultFeeKind
	}
	if c.Strategy.TakerRate == 0 {
		c.Strategy.TakerRate = DefaultTakerRate
	}
	if c.Strategy.MakerRate == 0 {
		c.Strategy.MakerRate = DefaultMakerRate
	}
	if c.Strategy.OrderCount == 0 {
		c.Strategy.OrderCount = DefaultOrderCount
	}

	// Fair-prob defaults
	if c.FairProb.Coefs == (CoefsConfig{}) {
		c.FairProb.Coefs = CoefsConfig{
			Prior:       DefaultCoefPrior,
			ScoreDiff:   DefaultCoefScoreDiff,
			TimeLeftMin: DefaultCoefTimeLeftMin,
		}
	}

	// Risk defaults
	if c.Risk.MaxOrderCount == 0 {
		c.Risk.MaxOrderCount = DefaultMaxOrderCount
	}
	if c.Risk.MaxPositionPerTicker == 0 {
		c.Risk.MaxPositionPerTicker = DefaultMaxPosition
	}

	// Run-loop defaults
	if c.Bot.PollInterval == 0 {
		c.Bot.PollInterval = DefaultPollInterval
	}

	// Journal defaults apply only when a journal host is configured.
	if c.Journal.Database.Host != "" {
		applyDBDefaults(&c.Journal.Database)
	}

	// Feed defaults
	if c.Feed.ReconnectBaseDelay == 0 {
		c.Feed.ReconnectBaseDelay = DefaultReconnectBaseDelay
	}
	if c.Feed.ReconnectMaxDelay == 0 {
		c.Feed.ReconnectMaxDelay = DefaultReconnectMaxDelay
	}
	if c.Feed.PingInterval == 0 {
		c.Feed.PingInterval = DefaultPingInterval
	}
	if c.Feed.ReadTimeout == 0 {
		c.Feed.ReadTimeout = DefaultReadTimeout
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
