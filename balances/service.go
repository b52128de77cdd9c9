// Package balances aggregates a wallet's raw coin objects into per-type
// balances with metadata and USD valuation.
package balances

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/big"
	"sort"
	"strings"

	"github.com/jake1318/afternew/cache"
	"github.com/jake1318/afternew/config"
	"github.com/jake1318/afternew/metrics"
	"github.com/jake1318/afternew/suirpc"
)

const portfolioCacheKeyPrefix = "portfolio:"

// PriceSource is the slice of the price service this package depends on
type PriceSource interface {
	GetPrices(ctx context.Context, coinTypes []string) (map[string]float64, error)
	LatestPrices() map[string]float64
}

// CoinBalance is one aggregated per-type balance. Balance is base units as
// a decimal string; arithmetic behind it is arbitrary precision.
type CoinBalance struct {
	CoinType string  `json:"coinType"`
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	Balance  string  `json:"balance"`
	Decimals int     `json:"decimals"`
	UsdValue float64 `json:"usdValue"`
}

// Portfolio is the aggregated wallet state
type Portfolio struct {
	Balances      []CoinBalance `json:"balances"`
	TotalUsdValue float64       `json:"totalUsdValue"`
}

// Service is the wallet balance aggregator
type Service struct {
	cfg           *config.Config
	wallet        suirpc.WalletReader
	prices        PriceSource
	cache         cache.Cache
	metricsWriter *metrics.MetricsWriter
	knownCoins    map[string]config.KnownCoin
}

// NewService creates a new balance aggregator
func NewService(cfg *config.Config, wallet suirpc.WalletReader, prices PriceSource, portfolioCache cache.Cache) *Service {
	knownCoins := make(map[string]config.KnownCoin, len(cfg.Balances.KnownCoins))
	for _, coin := range cfg.Balances.KnownCoins {
		knownCoins[coin.CoinType] = coin
	}

	return &Service{
		cfg:           cfg,
		wallet:        wallet,
		prices:        prices,
		cache:         portfolioCache,
		metricsWriter: metrics.NewMetricsWriter(metrics.ServiceBalances),
		knownCoins:    knownCoins,
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.wallet == nil || s.prices == nil {
		return fmt.Errorf("wallet and price dependencies not provided")
	}
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {}

// GetBalances returns the aggregated, valued and sorted portfolio of an
// address. Portfolios are cached briefly so dashboard polling does not
// hammer the fullnode.
func (s *Service) GetBalances(ctx context.Context, address string) (*Portfolio, error) {
	if address == "" {
		return nil, fmt.Errorf("address is required")
	}

	key := portfolioCacheKeyPrefix + address
	loader := func(missingKeys []string) (map[string][]byte, error) {
		portfolio, err := s.buildPortfolio(ctx, address)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(portfolio)
		if err != nil {
			return nil, fmt.Errorf("encoding portfolio: %w", err)
		}
		return map[string][]byte{key: data}, nil
	}

	cached, err := s.cache.GetOrLoad([]string{key}, loader, s.cfg.Balances.PortfolioTTL)
	if err != nil {
		return nil, err
	}

	var portfolio Portfolio
	if err := json.Unmarshal(cached[key], &portfolio); err != nil {
		return nil, fmt.Errorf("decoding cached portfolio: %w", err)
	}
	return &portfolio, nil
}

// Healthy reports whether the service is wired
func (s *Service) Healthy() bool {
	return s.wallet != nil && s.prices != nil
}

// buildPortfolio reads the wallet, aggregates and values it
func (s *Service) buildPortfolio(ctx context.Context, address string) (*Portfolio, error) {
	records, err := s.wallet.GetAllCoins(ctx, address)
	if err != nil {
		log.Printf("Balances: error reading wallet %s: %v", address, err)
		records = nil
	}
	if len(records) == 0 {
		records = s.fallbackRecords()
	}

	balances := s.aggregate(records)

	coinTypes := make([]string, len(balances))
	for i, balance := range balances {
		coinTypes[i] = balance.CoinType
	}
	prices := s.lookupPrices(ctx, coinTypes)

	total := 0.0
	for i := range balances {
		balances[i].UsdValue = usdValue(balances[i], prices[balances[i].CoinType])
		total += balances[i].UsdValue
	}

	sort.SliceStable(balances, func(a, b int) bool {
		return balances[a].UsdValue > balances[b].UsdValue
	})

	return &Portfolio{Balances: balances, TotalUsdValue: total}, nil
}

// aggregate groups records by coin type, summing balances with big.Int and
// attaching metadata. Zero aggregates are dropped. Output preserves first-
// seen order of coin types.
func (s *Service) aggregate(records []suirpc.CoinRecord) []CoinBalance {
	sums := make(map[string]*big.Int)
	order := make([]string, 0)

	for _, record := range records {
		if record.CoinType == "" {
			continue
		}
		amount, ok := new(big.Int).SetString(record.Balance, 10)
		if !ok {
			log.Printf("Balances: skipping unparseable balance %q for %s", record.Balance, record.CoinType)
			continue
		}

		sum, exists := sums[record.CoinType]
		if !exists {
			sum = new(big.Int)
			sums[record.CoinType] = sum
			order = append(order, record.CoinType)
		}
		sum.Add(sum, amount)
	}

	balances := make([]CoinBalance, 0, len(order))
	for _, coinType := range order {
		sum := sums[coinType]
		if sum.Sign() == 0 {
			continue
		}

		metadata := s.metadataFor(coinType)
		balances = append(balances, CoinBalance{
			CoinType: coinType,
			Symbol:   metadata.Symbol,
			Name:     metadata.Name,
			Balance:  sum.String(),
			Decimals: metadata.Decimals,
		})
	}
	return balances
}

// metadataFor returns known metadata for a coin type, deriving a symbol
// from the type's last segment when unknown
func (s *Service) metadataFor(coinType string) config.KnownCoin {
	if metadata, ok := s.knownCoins[coinType]; ok {
		return metadata
	}
	return config.KnownCoin{
		CoinType: coinType,
		Symbol:   deriveSymbol(coinType),
		Name:     "Unknown Coin",
		Decimals: s.cfg.Balances.DefaultDecimals,
	}
}

// lookupPrices reuses the latest known price set when populated, fetching
// synchronously only when the feed has never answered
func (s *Service) lookupPrices(ctx context.Context, coinTypes []string) map[string]float64 {
	prices := s.prices.LatestPrices()
	if len(prices) > 0 {
		return prices
	}

	fetched, err := s.prices.GetPrices(ctx, coinTypes)
	if err != nil {
		log.Printf("Balances: error fetching prices: %v", err)
		return make(map[string]float64)
	}
	return fetched
}

// fallbackRecords returns the configured development substitute set
func (s *Service) fallbackRecords() []suirpc.CoinRecord {
	records := make([]suirpc.CoinRecord, 0, len(s.cfg.Balances.FallbackCoins))
	for _, coin := range s.cfg.Balances.FallbackCoins {
		records = append(records, suirpc.CoinRecord{
			CoinType: coin.CoinType,
			Balance:  coin.Balance,
		})
	}
	return records
}

// usdValue converts a base-unit balance to display precision and applies
// the price (0 when unknown)
func usdValue(balance CoinBalance, price float64) float64 {
	if price == 0 {
		return 0
	}
	scaled, ok := new(big.Float).SetString(balance.Balance)
	if !ok {
		return 0
	}
	value, _ := scaled.Float64()
	return value / math.Pow10(balance.Decimals) * price
}

// deriveSymbol takes the last :: segment of a coin type
func deriveSymbol(coinType string) string {
	if idx := strings.LastIndex(coinType, "::"); idx >= 0 && idx+2 < len(coinType) {
		return coinType[idx+2:]
	}
	if coinType == "" {
		return "UNKNOWN"
	}
	return coinType
}
