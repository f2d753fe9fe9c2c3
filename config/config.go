// Package config holds the immutable runtime configuration. It is
// resolved once at startup (file, then environment, then flags); the
// core performs no live reconfiguration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the complete bot configuration for one asset pair.
type Config struct {
	Exchange    string  `json:"exchange" yaml:"exchange"`
	Pair        string  `json:"pair" yaml:"pair"`
	BudgetUSD   float64 `json:"budget" yaml:"budget"`
	GridLevels  int     `json:"grids" yaml:"grids"`
	Spacing     float64 `json:"spacing" yaml:"spacing"`
	MinNet      float64 `json:"min_net" yaml:"min_net"`
	TickSeconds int     `json:"tick" yaml:"tick"`
	Simulated   bool    `json:"simulated" yaml:"simulated"`

	// PaperBalanceUSD is the quote balance reported by the
	// unauthenticated exchange client; real balances come from an
	// external trading-account provider.
	PaperBalanceUSD float64 `json:"paper_balance" yaml:"paper_balance"`

	// Fees, when set, overrides exchange fees for the process lifetime
	// and suppresses the per-cycle refresh.
	Fees *FeeOverride `json:"fees,omitempty" yaml:"fees,omitempty"`

	Journal JournalConfig `json:"journal" yaml:"journal"`

	// MetricsAddr, when non-empty, serves Prometheus metrics at /metrics.
	MetricsAddr string `json:"metrics_addr,omitempty" yaml:"metrics_addr,omitempty"`
}

// FeeOverride is a sticky manual fee schedule.
type FeeOverride struct {
	Maker float64 `json:"maker" yaml:"maker"`
	Taker float64 `json:"taker" yaml:"taker"`
}

// JournalConfig selects the ledger sink.
type JournalConfig struct {
	Type string `json:"type" yaml:"type"` // "csv" or "sqlite"
	Path string `json:"path" yaml:"path"`
}

// QuoteAsset returns the quote side of the configured pair, e.g. "USD"
// for "BTC/USD".
func (c *Config) QuoteAsset() string {
	if _, quote, ok := strings.Cut(c.Pair, "/"); ok {
		return quote
	}
	return ""
}

// LoadFromFile loads configuration from a file (YAML or JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	if err = yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Exchange == "" {
		return fmt.Errorf("exchange is required")
	}
	if !strings.Contains(c.Pair, "/") {
		return fmt.Errorf("pair must be BASE/QUOTE, got %q", c.Pair)
	}
	if c.BudgetUSD < 0 {
		return fmt.Errorf("budget must not be negative")
	}
	if c.GridLevels < 0 {
		return fmt.Errorf("grids must not be negative")
	}
	if c.Spacing <= 0 {
		return fmt.Errorf("spacing must be positive")
	}
	if c.MinNet < 0 {
		return fmt.Errorf("min_net must not be negative")
	}
	if c.TickSeconds < 5 {
		return fmt.Errorf("tick must be at least 5 seconds")
	}
	if c.PaperBalanceUSD < 0 {
		return fmt.Errorf("paper_balance must not be negative")
	}
	if c.Fees != nil {
		if c.Fees.Maker < 0 || c.Fees.Maker >= 1 {
			return fmt.Errorf("fees.maker must be a fraction in [0, 1)")
		}
		if c.Fees.Taker < 0 || c.Fees.Taker >= 1 {
			return fmt.Errorf("fees.taker must be a fraction in [0, 1)")
		}
	}
	if c.Journal.Type != "csv" && c.Journal.Type != "sqlite" {
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if c.Journal.Path == "" {
		return fmt.Errorf("journal.path is required")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Exchange:        "kraken",
		Pair:            "BTC/USD",
		BudgetUSD:       50,
		GridLevels:      8,
		Spacing:         0.005,
		MinNet:          0.002,
		TickSeconds:     15,
		Simulated:       true,
		PaperBalanceUSD: 100,
		Journal: JournalConfig{
			Type: "csv",
			Path: "family_trades.csv",
		},
	}
}
