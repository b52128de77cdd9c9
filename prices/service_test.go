package prices

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jake1318/afternew/cache"
	"github.com/jake1318/afternew/config"
)

type stubPricesClient struct {
	mu     sync.Mutex
	prices map[string]float64
	err    error
	calls  int
}

func (c *stubPricesClient) GetCoinsToPrice(ctx context.Context, coins []string) (map[string]float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++

	if c.err != nil {
		return nil, c.err
	}

	result := make(map[string]float64)
	for _, coin := range coins {
		if price, ok := c.prices[coin]; ok {
			result[coin] = price
		}
	}
	return result, nil
}

func (c *stubPricesClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func newTestService(client *stubPricesClient) *Service {
	cfg := config.DefaultConfig()
	return NewService(cfg, client, cache.NewService(cfg.Cache))
}

func TestGetPricesFetchesAndCaches(t *testing.T) {
	client := &stubPricesClient{prices: map[string]float64{
		"0x2::sui::SUI": 1.23,
	}}
	service := newTestService(client)

	prices, err := service.GetPrices(context.Background(), []string{"0x2::sui::SUI"})
	require.NoError(t, err)
	assert.Equal(t, 1.23, prices["0x2::sui::SUI"])
	assert.Equal(t, 1, client.callCount())

	// Second call is served from cache
	prices, err = service.GetPrices(context.Background(), []string{"0x2::sui::SUI"})
	require.NoError(t, err)
	assert.Equal(t, 1.23, prices["0x2::sui::SUI"])
	assert.Equal(t, 1, client.callCount())
}

func TestGetPricesFetchesOnlyMissing(t *testing.T) {
	client := &stubPricesClient{prices: map[string]float64{
		"coin-a": 1,
		"coin-b": 2,
	}}
	service := newTestService(client)

	_, err := service.GetPrices(context.Background(), []string{"coin-a"})
	require.NoError(t, err)

	prices, err := service.GetPrices(context.Background(), []string{"coin-a", "coin-b"})
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"coin-a": 1, "coin-b": 2}, prices)
	assert.Equal(t, 2, client.callCount())
}

func TestGetPricesUnknownCoinAbsent(t *testing.T) {
	client := &stubPricesClient{prices: map[string]float64{"coin-a": 1}}
	service := newTestService(client)

	prices, err := service.GetPrices(context.Background(), []string{"coin-a", "coin-unknown"})
	require.NoError(t, err)

	assert.Equal(t, 1.0, prices["coin-a"])
	_, ok := prices["coin-unknown"]
	assert.False(t, ok)
}

func TestGetPricesUpstreamError(t *testing.T) {
	client := &stubPricesClient{err: errors.New("feed down")}
	service := newTestService(client)

	_, err := service.GetPrices(context.Background(), []string{"coin-a"})
	assert.Error(t, err)
}

func TestGetPricesEmptyRequest(t *testing.T) {
	client := &stubPricesClient{}
	service := newTestService(client)

	prices, err := service.GetPrices(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, prices)
	assert.Equal(t, 0, client.callCount())
}

func TestLatestPricesTracksFetches(t *testing.T) {
	client := &stubPricesClient{prices: map[string]float64{"coin-a": 7}}
	service := newTestService(client)

	assert.Empty(t, service.LatestPrices())
	assert.False(t, service.Healthy())

	_, err := service.GetPrices(context.Background(), []string{"coin-a"})
	require.NoError(t, err)

	latest := service.LatestPrices()
	assert.Equal(t, 7.0, latest["coin-a"])
	assert.True(t, service.Healthy())

	// Mutating the copy must not leak back into the snapshot
	latest["coin-a"] = 0
	assert.Equal(t, 7.0, service.LatestPrices()["coin-a"])
}

func TestRefreshKnownCoins(t *testing.T) {
	cfg := config.DefaultConfig()
	client := &stubPricesClient{prices: map[string]float64{}}
	for _, coinType := range cfg.Balances.KnownCoinTypes() {
		client.prices[coinType] = 2.5
	}
	service := NewService(cfg, client, cache.NewService(cfg.Cache))

	updates := service.SubscribeOnUpdate()
	defer service.Unsubscribe(updates)

	service.refreshKnownCoins(context.Background())

	assert.True(t, service.Healthy())
	assert.Len(t, updates, 1)

	// Refreshed entries land in the cache: a follow-up request does not
	// go upstream again
	fetches := client.callCount()
	_, err := service.GetPrices(context.Background(), cfg.Balances.KnownCoinTypes())
	require.NoError(t, err)
	assert.Equal(t, fetches, client.callCount())
}

func TestRefreshKnownCoinsUpstreamErrorKeepsSnapshot(t *testing.T) {
	client := &stubPricesClient{prices: map[string]float64{"0x2::sui::SUI": 3}}
	service := newTestService(client)

	_, err := service.GetPrices(context.Background(), []string{"0x2::sui::SUI"})
	require.NoError(t, err)

	client.mu.Lock()
	client.err = errors.New("feed down")
	client.mu.Unlock()

	service.refreshKnownCoins(context.Background())

	assert.Equal(t, 3.0, service.LatestPrices()["0x2::sui::SUI"])
}

func TestStartRequiresCache(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Prices.UpdateInterval = time.Hour
	service := NewService(cfg, &stubPricesClient{}, nil)

	assert.Error(t, service.Start(context.Background()))
}
