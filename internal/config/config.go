// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is everything tunable from outside the binary.
type Config struct {
	// DataDir is where the state slot lives. Empty means ~/.mlcheck.
	DataDir string `env:"MLCHECK_DATA_DIR"`
	// Backend picks the storage slot implementation: file, bolt, or none.
	Backend string `env:"MLCHECK_BACKEND" envDefault:"file"`
	// Debounce is the persistence quiet period.
	Debounce time.Duration `env:"MLCHECK_DEBOUNCE" envDefault:"150ms"`
}

// Load parses the MLCHECK_* environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.Backend {
	case "file", "bolt", "none":
	default:
		return Config{}, fmt.Errorf("unknown backend %q (want file, bolt, or none)", cfg.Backend)
	}
	return cfg, nil
}
