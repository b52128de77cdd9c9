package config

import "time"

// SwapConfig configures route quoting and transaction building
type SwapConfig struct {
	// RouteTTL is how long a quoted route stays buildable
	RouteTTL time.Duration `yaml:"route_ttl"`

	// MaxRetries is the number of route-fetch attempts per quote
	MaxRetries int `yaml:"max_retries"`

	// RetryDelay is the fixed wait between route-fetch attempts
	RetryDelay time.Duration `yaml:"retry_delay"`
}

func DefaultSwapConfig() SwapConfig {
	return SwapConfig{
		RouteTTL:   5 * time.Minute,
		MaxRetries: 3,
		RetryDelay: time.Second,
	}
}

func (c *SwapConfig) applyDefaults() {
	if c.RouteTTL == 0 {
		c.RouteTTL = 5 * time.Minute
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = time.Second
	}
}
