package database

import (
	"fmt"
	"net/url"

	"github.com/rickgao/kalshi-bot/internal/config"
)

// ConnString renders the journal database config as a pgx connection URL.
// The password is query-escaped; config load fills in the sslmode default.
func ConnString(cfg config.DBConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, url.QueryEscape(cfg.Password), cfg.Host, cfg.Port, cfg.Name, cfg.SSLMode)
}
