package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if GRADELENS_CONFIG is set
//  3. env (prefix GRADELENS_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("GRADELENS_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: GRADELENS_BASE_URL, GRADELENS_GRADES_PATH, ...
	// Map env keys like GRADELENS_MAX_WAIT_SECONDS -> max_wait_seconds.
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("GRADELENS_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "gradelens_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	// Basic validation
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base_url must not be empty", ErrInvalidConfig)
	}
	if cfg.GradesPath == "" {
		return nil, fmt.Errorf("%w: grades_path must not be empty", ErrInvalidConfig)
	}
	if cfg.GradesDriver != DriverCSV && cfg.GradesDriver != DriverSQLite {
		return nil, fmt.Errorf("%w: unknown grades_driver %q", ErrInvalidConfig, cfg.GradesDriver)
	}
	if cfg.MaxWaitSeconds <= 0 || cfg.StableForSeconds <= 0 || cfg.PollIntervalMS <= 0 {
		return nil, fmt.Errorf("%w: poller durations must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
