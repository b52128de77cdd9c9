package config

import "time"

// PoolsConfig configures the pool volume aggregator
type PoolsConfig struct {
	// UpdateInterval is the cadence of batch volume updates
	UpdateInterval time.Duration `yaml:"update_interval"`

	// BatchSize is the number of pools whose volume is refreshed per cycle
	BatchSize int `yaml:"batch_size"`

	// TopPoolsCount is the number of top-by-volume pools whose coin types
	// feed the topPoolCoins set
	TopPoolsCount int `yaml:"top_pools_count"`
}

func DefaultPoolsConfig() PoolsConfig {
	return PoolsConfig{
		UpdateInterval: 10 * time.Second,
		BatchSize:      100,
		TopPoolsCount:  100,
	}
}

func (c *PoolsConfig) applyDefaults() {
	if c.UpdateInterval == 0 {
		c.UpdateInterval = 10 * time.Second
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 100
	}
	if c.TopPoolsCount <= 0 {
		c.TopPoolsCount = 100
	}
}
