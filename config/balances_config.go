package config

import "time"

// KnownCoin describes display metadata for a coin type seen in wallets
type KnownCoin struct {
	CoinType string `yaml:"coin_type"`
	Symbol   string `yaml:"symbol"`
	Name     string `yaml:"name"`
	Decimals int    `yaml:"decimals"`
}

// FallbackCoin is a development-only coin record substituted when a wallet
// read returns nothing
type FallbackCoin struct {
	CoinType string `yaml:"coin_type"`
	Balance  string `yaml:"balance"`
}

// BalancesConfig configures the wallet balance aggregator
type BalancesConfig struct {
	// PortfolioTTL is how long an aggregated portfolio is served from cache
	PortfolioTTL time.Duration `yaml:"portfolio_ttl"`

	// KnownCoins carries metadata for commonly held coin types; coins
	// outside this set get a derived symbol and DefaultDecimals
	KnownCoins []KnownCoin `yaml:"known_coins"`

	// FallbackCoins replaces an empty wallet read during development
	FallbackCoins []FallbackCoin `yaml:"fallback_coins"`

	DefaultDecimals int `yaml:"default_decimals"`
}

const suiCoinType = "0x2::sui::SUI"
const usdcCoinType = "0x5d4b302506645c37ff133b98c4b50a5ae14841659738d6d733d59d0d217a93bf::coin::COIN"
const usdtCoinType = "0x027792d9fed7f9844eb4839566001bb6f6cb4804f66aa2da6fe1ee242d896881::coin::COIN"
const wethCoinType = "0xaf8cd5edc19c4512f4259f0bee101a40d41ebed738ade5874359610ef8eeced5::coin::COIN"
const wbtcCoinType = "0xc060006111016b8a020ad5b33834984a437aaa7d3c74c18e09a95d48aceab08c::coin::COIN"

func DefaultBalancesConfig() BalancesConfig {
	return BalancesConfig{
		PortfolioTTL: 60 * time.Second,
		KnownCoins: []KnownCoin{
			{CoinType: suiCoinType, Symbol: "SUI", Name: "Sui", Decimals: 9},
			{CoinType: usdcCoinType, Symbol: "USDC", Name: "USD Coin", Decimals: 6},
			{CoinType: usdtCoinType, Symbol: "USDT", Name: "Tether USD", Decimals: 6},
			{CoinType: wethCoinType, Symbol: "WETH", Name: "Wrapped ETH", Decimals: 8},
			{CoinType: wbtcCoinType, Symbol: "WBTC", Name: "Wrapped BTC", Decimals: 8},
		},
		FallbackCoins: []FallbackCoin{
			{CoinType: suiCoinType, Balance: "1000000000"}, // 1 SUI
			{CoinType: usdcCoinType, Balance: "5000000"},   // 5 USDC
		},
		DefaultDecimals: 9,
	}
}

func (c *BalancesConfig) applyDefaults() {
	defaults := DefaultBalancesConfig()
	if c.PortfolioTTL == 0 {
		c.PortfolioTTL = defaults.PortfolioTTL
	}
	if len(c.KnownCoins) == 0 {
		c.KnownCoins = defaults.KnownCoins
	}
	if len(c.FallbackCoins) == 0 {
		c.FallbackCoins = defaults.FallbackCoins
	}
	if c.DefaultDecimals <= 0 {
		c.DefaultDecimals = defaults.DefaultDecimals
	}
}

// KnownCoinTypes returns the coin types carried in KnownCoins, used as the
// periodically priced set
func (c *BalancesConfig) KnownCoinTypes() []string {
	types := make([]string, 0, len(c.KnownCoins))
	for _, coin := range c.KnownCoins {
		types = append(types, coin.CoinType)
	}
	return types
}
