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
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if AIFASHION_CONFIG is set
//  3. env (prefix AIFASHION_)
//
// Validation failures are fatal by design: a malformed tone scale or weight
// profile means no valid computation is possible.
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("AIFASHION_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: AIFASHION_LOG_LEVEL, AIFASHION_RANKING.DEFAULT_PROFILE, ...
	// Keys are lowercased with the prefix stripped; underscores are preserved
	// to match the koanf tags on the struct.
	envProvider := env.Provider("AIFASHION_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "aifashion_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
