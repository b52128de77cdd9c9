package config

import "time"

// PricesConfig configures the USD price service
type PricesConfig struct {
	// UpdateInterval is the cadence of the background refresh of known coins
	UpdateInterval time.Duration `yaml:"update_interval"`

	// TTL is the per-coin price cache lifetime
	TTL time.Duration `yaml:"ttl"`
}

func DefaultPricesConfig() PricesConfig {
	return PricesConfig{
		UpdateInterval: 5 * time.Minute,
		TTL:            5 * time.Minute,
	}
}

func (c *PricesConfig) applyDefaults() {
	if c.UpdateInterval == 0 {
		c.UpdateInterval = 5 * time.Minute
	}
	if c.TTL == 0 {
		c.TTL = 5 * time.Minute
	}
}
