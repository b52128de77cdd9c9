package config

import "time"

// CacheConfig configures the in-memory cache service
type CacheConfig struct {
	// DefaultExpiration is the expiration applied when a Set passes no TTL
	DefaultExpiration time.Duration `yaml:"default_expiration"`

	// CleanupInterval is the cadence of the expired-entry sweep.
	// It must not be finer than the longest TTL the sweep protects,
	// route entries in particular.
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		DefaultExpiration: 5 * time.Minute,
		CleanupInterval:   5 * time.Minute,
	}
}

func (c *CacheConfig) applyDefaults() {
	if c.DefaultExpiration == 0 {
		c.DefaultExpiration = 5 * time.Minute
	}
	if c.CleanupInterval == 0 {
		c.CleanupInterval = 5 * time.Minute
	}
}
