package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the full service configuration loaded from YAML,
// with a few environment overrides applied on top.
type Config struct {
	// Network selects the chain environment (MAINNET or TESTNET)
	Network string `yaml:"network"`

	// FrontendOrigin is the origin allowed by CORS
	FrontendOrigin string `yaml:"frontend_origin"`

	OverrideAftermathURL string `yaml:"override_aftermath_url"`
	OverrideSuiRPCURL    string `yaml:"override_sui_rpc_url"`

	Cache    CacheConfig    `yaml:"cache"`
	Pools    PoolsConfig    `yaml:"pools"`
	Swap     SwapConfig     `yaml:"swap"`
	Prices   PricesConfig   `yaml:"prices"`
	Balances BalancesConfig `yaml:"balances"`
}

// LoadConfig reads configuration from the given path. A missing file is not
// an error: defaults are used so the service can run without any config.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Config: %s not readable (%v), using defaults", path, err)
	} else {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, err
		}
	}

	// Environment overrides
	if network := os.Getenv("NETWORK"); network != "" {
		config.Network = network
	}

	config.applyDefaults()
	return config, nil
}

// DefaultConfig returns a configuration with all defaults applied
func DefaultConfig() *Config {
	config := &Config{
		Network:        "MAINNET",
		FrontendOrigin: "http://localhost:3000",
		Cache:          DefaultCacheConfig(),
		Pools:          DefaultPoolsConfig(),
		Swap:           DefaultSwapConfig(),
		Prices:         DefaultPricesConfig(),
		Balances:       DefaultBalancesConfig(),
	}
	return config
}

// applyDefaults fills in zero values left by a partial YAML file
func (c *Config) applyDefaults() {
	if c.Network == "" {
		c.Network = "MAINNET"
	}
	c.Cache.applyDefaults()
	c.Pools.applyDefaults()
	c.Swap.applyDefaults()
	c.Prices.applyDefaults()
	c.Balances.applyDefaults()
}
