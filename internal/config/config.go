// Package config defines the static, versioned configuration the analysis
// core runs on: the tone scale, ranking profiles and compatibility tables,
// plus process settings. Everything here is loaded once at startup and
// validated fatally; per-request code never sees a malformed table.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - External errors are wrapped via this package's sentinel errors.
package config

import (
	"fmt"

	"github.com/TaddsTechnology/Ai-Fashion/internal/domain/ranking"
	"github.com/TaddsTechnology/Ai-Fashion/internal/domain/tone"
	"github.com/TaddsTechnology/Ai-Fashion/pkg/colorspace"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Sampler settings.
	Sampler SamplerConfig `koanf:"sampler"`

	// ToneScale overrides the built-in Monk scale when non-empty. Entries
	// must be listed lightest first with contiguous ordinals.
	ToneScale []ToneEntry `koanf:"tone_scale"`

	// Ranking holds the weight profiles and compatibility tables.
	Ranking RankingConfig `koanf:"ranking"`
}

// SamplerConfig controls skin sampling.
type SamplerConfig struct {
	// WhiteBalance enables gray-world correction of face pixels before
	// filtering.
	WhiteBalance bool `koanf:"white_balance"`
}

// ToneEntry is one configured tone category.
type ToneEntry struct {
	Ordinal int    `koanf:"ordinal"`
	Name    string `koanf:"name"`
	Hex     string `koanf:"hex"`
	Band    string `koanf:"band"`
}

// RankingConfig holds the ranking policy tables.
type RankingConfig struct {
	DefaultProfile string                        `koanf:"default_profile"`
	Profiles       map[string]ProfileWeights     `koanf:"profiles"`
	Occasions      map[string]map[string]float64 `koanf:"occasions"`
	Contrast       map[string]map[string]float64 `koanf:"contrast"`
}

// ProfileWeights is one configurable weight vector.
type ProfileWeights struct {
	Color    float64 `koanf:"color"`
	Context  float64 `koanf:"context"`
	Price    float64 `koanf:"price"`
	Contrast float64 `koanf:"contrast"`
}

// New creates a Config with the built-in defaults.
func New() *Config {
	return &Config{
		LogLevel: "info",
		Sampler:  SamplerConfig{WhiteBalance: true},
		Ranking: RankingConfig{
			DefaultProfile: ranking.DefaultProfileName,
		},
	}
}

// Scale builds and validates the tone scale. An empty tone_scale section
// yields the built-in Monk scale.
func (c *Config) Scale() (tone.Scale, error) {
	if len(c.ToneScale) == 0 {
		return tone.DefaultScale(), nil
	}
	scale := make(tone.Scale, 0, len(c.ToneScale))
	for _, e := range c.ToneScale {
		ref, err := colorspace.ParseHex(e.Hex)
		if err != nil {
			return nil, fmt.Errorf("%w: tone %q: %v", ErrInvalidConfig, e.Name, err)
		}
		scale = append(scale, tone.Category{
			Ordinal:   e.Ordinal,
			Name:      e.Name,
			Reference: ref,
			Band:      tone.BrightnessBand(e.Band),
		})
	}
	if err := scale.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return scale, nil
}

// Profiles builds and validates the ranking weight profiles. An empty
// profiles section yields the built-in defaults.
func (c *Config) Profiles() (map[string]ranking.Profile, string, error) {
	name := c.Ranking.DefaultProfile
	if name == "" {
		name = ranking.DefaultProfileName
	}
	profiles := ranking.DefaultProfiles()
	if len(c.Ranking.Profiles) > 0 {
		profiles = make(map[string]ranking.Profile, len(c.Ranking.Profiles))
		for pname, w := range c.Ranking.Profiles {
			profiles[pname] = ranking.Profile{
				Color:    w.Color,
				Context:  w.Context,
				Price:    w.Price,
				Contrast: w.Contrast,
			}
		}
	}
	if err := ranking.ValidateProfiles(profiles, name); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return profiles, name, nil
}

// Tables returns the validated compatibility tables, defaulting each that
// is absent.
func (c *Config) Tables() (occasions, contrast map[string]map[string]float64, err error) {
	occasions = c.Ranking.Occasions
	if len(occasions) == 0 {
		occasions = ranking.DefaultOccasionTable()
	}
	contrast = c.Ranking.Contrast
	if len(contrast) == 0 {
		contrast = ranking.DefaultContrastTable()
	}
	if err := ranking.ValidateTables(occasions, contrast); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return occasions, contrast, nil
}

// Validate runs every load-time check. Any failure here is fatal: no valid
// computation is possible on malformed static tables.
func (c *Config) Validate() error {
	if _, err := c.Scale(); err != nil {
		return err
	}
	if _, _, err := c.Profiles(); err != nil {
		return err
	}
	if _, _, err := c.Tables(); err != nil {
		return err
	}
	return nil
}
