// Package prices serves USD prices per coin type, refreshing the known
// coin set in the background and fetching unknown coins on demand.
package prices

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"

	"github.com/jake1318/afternew/cache"
	"github.com/jake1318/afternew/config"
	"github.com/jake1318/afternew/events"
	"github.com/jake1318/afternew/metrics"
	"github.com/jake1318/afternew/scheduler"
)

const priceCacheKeyPrefix = "price:usd:"

// PricesAPI is the slice of the upstream client this service depends on
type PricesAPI interface {
	GetCoinsToPrice(ctx context.Context, coins []string) (map[string]float64, error)
}

// Service is the coin price service
type Service struct {
	cfg                 *config.Config
	client              PricesAPI
	cache               cache.Cache
	metricsWriter       *metrics.MetricsWriter
	subscriptionManager *events.SubscriptionManager
	scheduler           *scheduler.Scheduler

	latest struct {
		sync.RWMutex
		prices map[string]float64
	}
}

// NewService creates a new price service
func NewService(cfg *config.Config, client PricesAPI, priceCache cache.Cache) *Service {
	service := &Service{
		cfg:                 cfg,
		client:              client,
		cache:               priceCache,
		metricsWriter:       metrics.NewMetricsWriter(metrics.ServicePrices),
		subscriptionManager: events.NewSubscriptionManager(),
	}
	service.latest.prices = make(map[string]float64)
	return service
}

// Start implements core.Interface; kicks off the periodic refresh of the
// known coin set
func (s *Service) Start(ctx context.Context) error {
	if s.cache == nil {
		return fmt.Errorf("cache dependency not provided")
	}

	s.scheduler = scheduler.New(s.cfg.Prices.UpdateInterval, s.refreshKnownCoins)
	s.scheduler.Start(ctx, true)
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// GetPrices returns the USD price per requested coin type. Prices come
// from the cache when fresh; anything missing is fetched upstream. Coins
// the feed does not know are absent from the result.
func (s *Service) GetPrices(ctx context.Context, coinTypes []string) (map[string]float64, error) {
	if len(coinTypes) == 0 {
		return make(map[string]float64), nil
	}

	keys := make([]string, len(coinTypes))
	for i, coinType := range coinTypes {
		keys[i] = priceCacheKeyPrefix + coinType
	}

	loader := func(missingKeys []string) (map[string][]byte, error) {
		missing := make([]string, len(missingKeys))
		for i, key := range missingKeys {
			missing[i] = key[len(priceCacheKeyPrefix):]
		}
		fetched, err := s.client.GetCoinsToPrice(ctx, missing)
		if err != nil {
			return nil, err
		}
		s.rememberLatest(fetched)

		result := make(map[string][]byte, len(fetched))
		for coinType, price := range fetched {
			result[priceCacheKeyPrefix+coinType] = encodePrice(price)
		}
		return result, nil
	}

	cached, err := s.cache.GetOrLoad(keys, loader, s.cfg.Prices.TTL)
	if err != nil {
		return nil, fmt.Errorf("failed to get prices: %w", err)
	}

	prices := make(map[string]float64, len(cached))
	for i, coinType := range coinTypes {
		data, ok := cached[keys[i]]
		if !ok {
			continue
		}
		price, err := decodePrice(data)
		if err != nil {
			log.Printf("Prices: dropping bad cache entry for %s: %v", coinType, err)
			continue
		}
		prices[coinType] = price
	}
	return prices, nil
}

// LatestPrices returns a copy of the most recently fetched price set,
// without touching upstream. Empty until the first successful fetch.
func (s *Service) LatestPrices() map[string]float64 {
	s.latest.RLock()
	defer s.latest.RUnlock()

	prices := make(map[string]float64, len(s.latest.prices))
	for coinType, price := range s.latest.prices {
		prices[coinType] = price
	}
	return prices
}

// Healthy reports whether at least one price set has been fetched
func (s *Service) Healthy() bool {
	s.latest.RLock()
	defer s.latest.RUnlock()
	return len(s.latest.prices) > 0
}

// SubscribeOnUpdate subscribes to price refresh notifications
func (s *Service) SubscribeOnUpdate() chan struct{} {
	return s.subscriptionManager.Subscribe()
}

// Unsubscribe removes an update subscription
func (s *Service) Unsubscribe(ch chan struct{}) {
	s.subscriptionManager.Unsubscribe(ch)
}

// refreshKnownCoins force-fetches the configured known coin set, updating
// both cache and the latest snapshot
func (s *Service) refreshKnownCoins(ctx context.Context) {
	defer s.metricsWriter.TrackDataFetchCycle()()

	coinTypes := s.cfg.Balances.KnownCoinTypes()
	if len(coinTypes) == 0 {
		return
	}

	fetched, err := s.client.GetCoinsToPrice(ctx, coinTypes)
	if err != nil {
		log.Printf("Prices: error refreshing known coins: %v", err)
		return
	}

	entries := make(map[string][]byte, len(fetched))
	for coinType, price := range fetched {
		entries[priceCacheKeyPrefix+coinType] = encodePrice(price)
	}
	s.cache.Set(entries, s.cfg.Prices.TTL)
	s.rememberLatest(fetched)
	s.metricsWriter.RecordCacheSize(len(fetched))

	s.subscriptionManager.Emit(ctx)
}

// rememberLatest merges fetched prices into the latest snapshot
func (s *Service) rememberLatest(fetched map[string]float64) {
	if len(fetched) == 0 {
		return
	}
	s.latest.Lock()
	for coinType, price := range fetched {
		s.latest.prices[coinType] = price
	}
	s.latest.Unlock()
}

func encodePrice(price float64) []byte {
	return []byte(strconv.FormatFloat(price, 'g', -1, 64))
}

func decodePrice(data []byte) (float64, error) {
	return strconv.ParseFloat(string(data), 64)
}
