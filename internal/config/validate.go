package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
func (c *BotConfig) Validate() error {
	if len(c.Markets.Tickers) == 0 {
		return errors.New("markets.tickers is required")
	}

	if c.Strategy.EdgeThreshold < 0 || c.Strategy.EdgeThreshold > 1 {
		return fmt.Errorf("strategy.edge_threshold must be in [0,1], got %g", c.Strategy.EdgeThreshold)
	}
	switch c.Strategy.FeeKind {
	case "taker", "maker", "none":
	default:
		return fmt.Errorf("strategy.fee_kind must be taker, maker or none, got %q", c.Strategy.FeeKind)
	}
	if c.Strategy.TakerRate < 0 || c.Strategy.MakerRate < 0 {
		return errors.New("strategy fee rates must be >= 0")
	}
	if c.Strategy.OrderCount < 1 {
		return errors.New("strategy.order_count must be >= 1")
	}

	for ticker, p := range c.FairProb.Priors {
		if p < 0 || p > 1 {
			return fmt.Errorf("fair_prob.priors[%s] must be in [0,1], got %g", ticker, p)
		}
	}

	if c.Risk.MaxOrderCount < 1 {
		return errors.New("risk.max_order_count must be >= 1")
	}
	if c.Risk.MaxPositionPerTicker < 1 {
		return errors.New("risk.max_position_per_ticker must be >= 1")
	}
	if c.Strategy.OrderCount > c.Risk.MaxOrderCount {
		return fmt.Errorf("strategy.order_count (%d) cannot exceed risk.max_order_count (%d)",
			c.Strategy.OrderCount, c.Risk.MaxOrderCount)
	}

	if c.API.ReadRate <= 0 || c.API.WriteRate <= 0 {
		return errors.New("api.read_rate and api.write_rate must be > 0")
	}

	// Live trading additionally requires credentials.
	if !c.PaperMode() {
		if c.API.APIKey == "" {
			return errors.New("api.api_key is required for live trading")
		}
		if c.API.PrivateKeyPath == "" {
			return errors.New("api.private_key_path is required for live trading")
		}
	}

	if c.JournalEnabled() {
		if err := c.Journal.Database.validate("journal.database"); err != nil {
			return err
		}
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
