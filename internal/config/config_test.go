package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalYAML = `
markets:
  tickers: [KXNBA-25-LAL]
fair_prob:
  priors:
    KXNBA-25-LAL: 0.58
`

func TestLoad_Minimal(t *testing.T) {
	cfg, err := LoadAndValidate(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatalf("LoadAndValidate failed: %v", err)
	}

	if got := cfg.Markets.Tickers; len(got) != 1 || got[0] != "KXNBA-25-LAL" {
		t.Errorf("Tickers = %v", got)
	}
	if p := cfg.FairProb.Priors["KXNBA-25-LAL"]; p != 0.58 {
		t.Errorf("prior = %g, want 0.58", p)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadAndValidate(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatalf("LoadAndValidate failed: %v", err)
	}

	if cfg.API.RestURL != DefaultRestURL {
		t.Errorf("RestURL = %q", cfg.API.RestURL)
	}
	if cfg.API.Timeout != DefaultAPITimeout {
		t.Errorf("Timeout = %v", cfg.API.Timeout)
	}
	if cfg.API.ReadRate != DefaultReadRate || cfg.API.WriteRate != DefaultWriteRate {
		t.Errorf("rates = %g/%g", cfg.API.ReadRate, cfg.API.WriteRate)
	}
	if cfg.Strategy.EdgeThreshold != DefaultEdgeThreshold {
		t.Errorf("EdgeThreshold = %g", cfg.Strategy.EdgeThreshold)
	}
	if cfg.Strategy.FeeKind != "taker" {
		t.Errorf("FeeKind = %q", cfg.Strategy.FeeKind)
	}
	if cfg.Risk.MaxOrderCount != DefaultMaxOrderCount {
		t.Errorf("MaxOrderCount = %d", cfg.Risk.MaxOrderCount)
	}
	if cfg.Bot.PollInterval != DefaultPollInterval {
		t.Errorf("PollInterval = %v", cfg.Bot.PollInterval)
	}
	if !cfg.PaperMode() {
		t.Error("paper mode should default to true")
	}
	if !cfg.PostOnly() {
		t.Error("post_only should default to true")
	}
	if cfg.JournalEnabled() {
		t.Error("journal should be disabled without a host")
	}
	if cfg.FairProb.Coefs.ScoreDiff != DefaultCoefScoreDiff {
		t.Errorf("Coefs.ScoreDiff = %g", cfg.FairProb.Coefs.ScoreDiff)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_KALSHI_KEY", "key-from-env")

	yaml := minimalYAML + `
api:
  api_key: ${TEST_KALSHI_KEY}
`
	cfg, err := LoadWithDefaults(writeConfig(t, yaml))
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}
	if cfg.API.APIKey != "key-from-env" {
		t.Errorf("APIKey = %q, want %q", cfg.API.APIKey, "key-from-env")
	}
}

func TestLoad_ExplicitOverrides(t *testing.T) {
	yaml := `
markets:
  tickers: [A, B]
strategy:
  edge_threshold: 0.03
  fee_kind: none
  post_only: false
  order_count: 2
fair_prob:
  priors:
    A: 0.5
risk:
  max_order_count: 4
  max_position_per_ticker: 8
bot:
  paper: false
  poll_interval: 5s
api:
  api_key: k
  private_key_path: /tmp/key.pem
`
	cfg, err := LoadAndValidate(writeConfig(t, yaml))
	if err != nil {
		t.Fatalf("LoadAndValidate failed: %v", err)
	}
	if cfg.PostOnly() {
		t.Error("post_only: false not honored")
	}
	if cfg.PaperMode() {
		t.Error("paper: false not honored")
	}
	if cfg.Bot.PollInterval != 5*time.Second {
		t.Errorf("PollInterval = %v", cfg.Bot.PollInterval)
	}
	if cfg.Strategy.FeeKind != "none" {
		t.Errorf("FeeKind = %q", cfg.Strategy.FeeKind)
	}
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"no tickers", `
fair_prob:
  priors: {A: 0.5}
`, "markets.tickers"},
		{"bad fee kind", minimalYAML + `
strategy:
  fee_kind: rebate
`, "fee_kind"},
		{"prior out of range", `
markets:
  tickers: [A]
fair_prob:
  priors: {A: 1.5}
`, "priors"},
		{"order count over risk max", minimalYAML + `
strategy:
  order_count: 20
risk:
  max_order_count: 10
`, "order_count"},
		{"live without credentials", minimalYAML + `
bot:
  paper: false
`, "api_key"},
		{"journal missing user", minimalYAML + `
journal:
  database:
    host: localhost
    name: bot
    password: pw
`, "journal.database.user"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadAndValidate(writeConfig(t, tc.yaml))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error = %v, want mention of %q", err, tc.want)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
