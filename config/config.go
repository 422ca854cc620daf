// Package config carries the knobs spec'd as host-tunable: result page
// sizing, the default spatial radius for near-filters, and the embedding
// cache's capacity. The core never reads a config file itself — the host
// loads one (or uses Default()) and passes the resolved values in when it
// constructs a store.Database.
package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable defaults for a Database instance.
type Config struct {
	// DefaultLimit is the page size used when a query omits "limit".
	DefaultLimit int `yaml:"default_limit"`

	// DefaultNearRadius is the near-filter radius used when a query omits
	// "radius".
	DefaultNearRadius float64 `yaml:"default_near_radius"`

	// EmbeddingCacheCapacity bounds the number of fingerprint→vector
	// entries the embedding cache retains.
	EmbeddingCacheCapacity int `yaml:"embedding_cache_capacity"`
}

// Default returns the spec's stated defaults.
func Default() Config {
	return Config{
		DefaultLimit:           10,
		DefaultNearRadius:      200.0,
		EmbeddingCacheCapacity: 10000,
	}
}

// Load reads a YAML document from r and overlays it onto Default(). Fields
// absent from the document keep their default value.
func Load(r io.Reader) (Config, error) {
	cfg := Default()

	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("config: read: %w", err)
	}
	if len(data) == 0 {
		return cfg, nil
	}

	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return Config{}, fmt.Errorf("config: parse yaml: %w", err)
	}

	if overlay.DefaultLimit != 0 {
		cfg.DefaultLimit = overlay.DefaultLimit
	}
	if overlay.DefaultNearRadius != 0 {
		cfg.DefaultNearRadius = overlay.DefaultNearRadius
	}
	if overlay.EmbeddingCacheCapacity != 0 {
		cfg.EmbeddingCacheCapacity = overlay.EmbeddingCacheCapacity
	}

	return cfg, nil
}

// Validate reports whether the configuration describes a usable database.
func (c Config) Validate() error {
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("config: default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.DefaultNearRadius < 0 {
		return fmt.Errorf("config: default_near_radius must be non-negative, got %f", c.DefaultNearRadius)
	}
	if c.EmbeddingCacheCapacity < 1 {
		return fmt.Errorf("config: embedding_cache_capacity must be >= 1, got %d", c.EmbeddingCacheCapacity)
	}
	return nil
}
