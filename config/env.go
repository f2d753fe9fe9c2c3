package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env carries the MIDAS_* environment overlay applied on top of file
// and flag configuration.
type Env struct {
	LedgerPath  string `env:"MIDAS_LOG"`
	MetricsAddr string `env:"MIDAS_METRICS_ADDR"`
	LogLevel    string `env:"MIDAS_LOG_LEVEL" envDefault:"info"`
}

// LoadEnv parses the environment overlay.
func LoadEnv() (*Env, error) {
	e := &Env{}
	if err := env.Parse(e); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return e, nil
}

// Apply overlays the non-empty environment values onto cfg.
func (e *Env) Apply(cfg *Config) {
	if e.LedgerPath != "" {
		cfg.Journal.Path = e.LedgerPath
	}
	if e.MetricsAddr != "" {
		cfg.MetricsAddr = e.MetricsAddr
	}
}
