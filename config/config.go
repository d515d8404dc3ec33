// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the root-level settings struct, populated from an optional
// limpet.yaml and the defaults registered in SetDefaults.
type Config struct {
	// fixed column width for wrapped FASTA output
	LineWidth int `mapstructure:"line-width"`

	// longest run of ambiguous 'N' bases tolerated in a sampled fragment
	MaxNRun int `mapstructure:"max-n-run"`

	// attempts per output fragment before the interval sampler gives up
	// on a reference
	FragmentRetries int `mapstructure:"fragment-retries"`

	// gzip compression level for .gz outputs
	GzipLevel int `mapstructure:"gzip-level"`
}

// SetDefaults registers fallback values with viper. Called once before any
// command runs.
func SetDefaults() {
	viper.SetDefault("line-width", 80)
	viper.SetDefault("max-n-run", 2)
	viper.SetDefault("fragment-retries", 1000)
	viper.SetDefault("gzip-level", 6)
}

// New returns a Config populated by viper settings (either from the local
// limpet.yaml or the defaults).
func New() (Config, error) {
	SetDefaults()

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode settings: %w", err)
	}
	if c.LineWidth <= 0 {
		return Config{}, fmt.Errorf("line-width must be positive, got %d", c.LineWidth)
	}
	if c.FragmentRetries <= 0 {
		return Config{}, fmt.Errorf("fragment-retries must be positive, got %d", c.FragmentRetries)
	}
	return c, nil
}
