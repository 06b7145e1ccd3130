package config

import "time"

// BotConfig is the root configuration for a bot instance.
type BotConfig struct {
	API      APIConfig      `yaml:"api"`
	Markets  MarketsConfig  `yaml:"markets"`
	Strategy StrategyConfig `yaml:"strategy"`
	FairProb FairProbConfig `yaml:"fair_prob"`
	Risk     RiskConfig     `yaml:"risk"`
	Bot      RunConfig      `yaml:"bot"`
	Journal  JournalConfig  `yaml:"journal"`
	Feed     FeedConfig     `yaml:"feed"`
}

// APIConfig holds Kalshi API settings.
type APIConfig struct {
	RestURL        string        `yaml:"rest_url"`
	WSURL          string        `yaml:"ws_url"`
	APIKey         string        `yaml:"api_key"`          // API key ID (for KALSHI-ACCESS-KEY header)
	PrivateKeyPath string        `yaml:"private_key_path"` // Path to RSA private key PEM file
	Timeout        time.Duration `yaml:"timeout"`
	ReadRate       float64       `yaml:"read_rate"`  // read requests per second
	WriteRate      float64       `yaml:"write_rate"` // write requests per second
}

// MarketsConfig selects which markets the bot tracks.
type MarketsConfig struct {
	Tickers        []string `yaml:"tickers"`
	OrderbookDepth int      `yaml:"orderbook_depth"`
}

// StrategyConfig holds decision-engine settings.
type StrategyConfig struct {
	EdgeThreshold float64 `yaml:"edge_threshold"`
	MinNetEV      float64 `yaml:"min_net_ev_per_contract"`
	FeeKind       string  `yaml:"fee_kind"` // taker | maker | none
	TakerRate     float64 `yaml:"taker_rate"`
	MakerRate     float64 `yaml:"maker_rate"`
	PostOnly      *bool   `yaml:"post_only"` // pointer: absent defaults true
	OrderCount    int     `yaml:"order_count"`
}

// FairProbConfig holds the fair-probability source settings.
type FairProbConfig struct {
	Priors map[string]float64 `yaml:"priors"`
	Live   bool               `yaml:"live"`
	Coefs  CoefsConfig        `yaml:"coefficients"`
}

// CoefsConfig holds the live blend coefficients.
type CoefsConfig struct {
	Prior       float64 `yaml:"prior"`
	ScoreDiff   float64 `yaml:"score_diff"`
	TimeLeftMin float64 `yaml:"time_left_min"`
}

// RiskConfig holds hard trading limits.
type RiskConfig struct {
	MaxOrderCount        int `yaml:"max_order_count"`
	MaxPositionPerTicker int `yaml:"max_position_per_ticker"`
}

// RunConfig holds cycle-loop settings.
type RunConfig struct {
	Paper        *bool         `yaml:"paper"` // pointer: absent defaults true
	PollInterval time.Duration `yaml:"poll_interval"`
}

// JournalConfig holds the Postgres outcome journal settings. The journal is
// disabled when the host is empty.
type JournalConfig struct {
	Database DBConfig `yaml:"database"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// FeedConfig holds WebSocket ticker feed settings.
type FeedConfig struct {
	Enabled            bool          `yaml:"enabled"`
	ReconnectBaseDelay time.Duration `yaml:"reconnect_base_delay"`
	ReconnectMaxDelay  time.Duration `yaml:"reconnect_max_delay"`
	PingInterval       time.Duration `yaml:"ping_interval"`
	ReadTimeout        time.Duration `yaml:"read_timeout"`
}

// JournalEnabled reports whether a journal database is configured.
func (c *BotConfig) JournalEnabled() bool {
	return c.Journal.Database.Host != ""
}

// PaperMode reports the effective paper flag. Paper is the default: live
// trading has to be switched on explicitly.
func (c *BotConfig) PaperMode() bool {
	return c.Bot.Paper == nil || *c.Bot.Paper
}

// PostOnly reports the effective maker-only flag, defaulting to true.
func (c *BotConfig) PostOnly() bool {
	return c.Strategy.PostOnly == nil || *c.Strategy.PostOnly
}
