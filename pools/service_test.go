package pools

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jake1318/afternew/aftermath"
	"github.com/jake1318/afternew/config"
)

type stubPoolsClient struct {
	mu          sync.Mutex
	pools       []aftermath.Pool
	poolsErr    error
	volumes     map[string]float64
	volumeErrs  map[string]error
	volumeCalls []string
}

func (c *stubPoolsClient) GetAllPools(ctx context.Context) ([]aftermath.Pool, error) {
	if c.poolsErr != nil {
		return nil, c.poolsErr
	}
	return c.pools, nil
}

func (c *stubPoolsClient) GetPoolVolume24h(ctx context.Context, poolID string) (float64, error) {
	c.mu.Lock()
	c.volumeCalls = append(c.volumeCalls, poolID)
	c.mu.Unlock()

	if err, ok := c.volumeErrs[poolID]; ok {
		return 0, err
	}
	return c.volumes[poolID], nil
}

func (c *stubPoolsClient) calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	calls := make([]string, len(c.volumeCalls))
	copy(calls, c.volumeCalls)
	return calls
}

func makePools(count int) []aftermath.Pool {
	pools := make([]aftermath.Pool, count)
	for i := range pools {
		coinType := fmt.Sprintf("0x%d::coin::C%d", i, i)
		pools[i] = aftermath.Pool{
			ObjectID: fmt.Sprintf("pool-%d", i),
			Name:     fmt.Sprintf("Pool %d", i),
			Coins:    map[string]aftermath.PoolCoin{coinType: {}},
		}
	}
	return pools
}

func testConfig(batchSize, topCount int) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Pools.BatchSize = batchSize
	cfg.Pools.TopPoolsCount = topCount
	return cfg
}

func TestRunCycleInitializesPoolList(t *testing.T) {
	client := &stubPoolsClient{
		pools:   makePools(3),
		volumes: map[string]float64{"pool-0": 10, "pool-1": 20, "pool-2": 30},
	}
	service := NewService(testConfig(100, 100), client)

	service.runCycle(context.Background())

	assert.True(t, service.Initialized())
	assert.True(t, service.Healthy())
	assert.Len(t, service.PoolList(), 3)
}

func TestRunCycleListFailureDeferredToNextTick(t *testing.T) {
	client := &stubPoolsClient{poolsErr: errors.New("router down")}
	service := NewService(testConfig(100, 100), client)

	service.runCycle(context.Background())
	assert.False(t, service.Initialized())
	assert.Empty(t, client.calls(), "no volume fetches without a pool list")

	client.poolsErr = nil
	client.pools = makePools(2)
	client.volumes = map[string]float64{"pool-0": 1, "pool-1": 2}

	service.runCycle(context.Background())
	assert.True(t, service.Initialized())
}

func TestBatchIndexAdvancesAndWraps(t *testing.T) {
	client := &stubPoolsClient{
		pools:   makePools(5),
		volumes: map[string]float64{},
	}
	service := NewService(testConfig(2, 100), client)

	ctx := context.Background()

	service.runCycle(ctx)
	assert.Equal(t, 2, service.LastBatchIndex())

	service.runCycle(ctx)
	assert.Equal(t, 4, service.LastBatchIndex())

	// Final short batch of one pool, then wrap back to the start
	service.runCycle(ctx)
	assert.Equal(t, 0, service.LastBatchIndex())

	service.runCycle(ctx)
	assert.Equal(t, 2, service.LastBatchIndex())
}

func TestBatchCoversEachPoolExactlyOncePerSweep(t *testing.T) {
	client := &stubPoolsClient{
		pools:   makePools(5),
		volumes: map[string]float64{},
	}
	service := NewService(testConfig(2, 100), client)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		service.runCycle(ctx)
	}

	counts := make(map[string]int)
	for _, poolID := range client.calls() {
		counts[poolID]++
	}
	require.Len(t, counts, 5)
	for poolID, count := range counts {
		assert.Equalf(t, 1, count, "pool %s fetched more than once in a sweep", poolID)
	}
}

func TestVolumeFetchFailureLeavesOldValue(t *testing.T) {
	client := &stubPoolsClient{
		pools:   makePools(2),
		volumes: map[string]float64{"pool-0": 100, "pool-1": 50},
	}
	service := NewService(testConfig(2, 100), client)
	ctx := context.Background()

	service.runCycle(ctx)

	for _, pool := range service.PoolList() {
		if pool.ID == "pool-0" {
			assert.Equal(t, 100.0, pool.Volume24h)
		}
	}

	// Next sweep: pool-0 fetch fails, its previous volume must survive
	client.volumeErrs = map[string]error{"pool-0": errors.New("timeout")}
	client.volumes["pool-1"] = 75
	service.runCycle(ctx)

	volumes := make(map[string]float64)
	for _, pool := range service.PoolList() {
		volumes[pool.ID] = pool.Volume24h
	}
	assert.Equal(t, 100.0, volumes["pool-0"])
	assert.Equal(t, 75.0, volumes["pool-1"])
}

func TestTopPoolCoinsUnionOfTopPools(t *testing.T) {
	pools := makePools(4)
	// pool-3 shares a coin type with pool-2; the union must dedupe it
	pools[3].Coins = map[string]aftermath.PoolCoin{
		"0x2::coin::C2": {},
		"0x9::coin::C9": {},
	}

	client := &stubPoolsClient{
		pools: pools,
		volumes: map[string]float64{
			"pool-0": 5,
			"pool-1": 1,
			"pool-2": 100,
			"pool-3": 50,
		},
	}
	service := NewService(testConfig(4, 2), client)

	service.runCycle(context.Background())

	// Top 2 by volume are pool-2 and pool-3
	assert.Equal(t, []string{"0x2::coin::C2", "0x9::coin::C9"}, service.TopPoolCoins())
}

func TestTopPoolCoinsRecomputedAsVolumesShift(t *testing.T) {
	client := &stubPoolsClient{
		pools:   makePools(2),
		volumes: map[string]float64{"pool-0": 10, "pool-1": 1},
	}
	service := NewService(testConfig(2, 1), client)
	ctx := context.Background()

	service.runCycle(ctx)
	assert.Equal(t, []string{"0x0::coin::C0"}, service.TopPoolCoins())

	client.volumes["pool-1"] = 500
	service.runCycle(ctx)
	assert.Equal(t, []string{"0x1::coin::C1"}, service.TopPoolCoins())
}

func TestTopPoolCoinsReturnsCopy(t *testing.T) {
	client := &stubPoolsClient{
		pools:   makePools(1),
		volumes: map[string]float64{"pool-0": 1},
	}
	service := NewService(testConfig(1, 1), client)

	service.runCycle(context.Background())

	coins := service.TopPoolCoins()
	require.Len(t, coins, 1)
	coins[0] = "mutated"

	assert.Equal(t, []string{"0x0::coin::C0"}, service.TopPoolCoins())
}

func TestSubscribersNotifiedPerCycle(t *testing.T) {
	client := &stubPoolsClient{
		pools:   makePools(1),
		volumes: map[string]float64{"pool-0": 1},
	}
	service := NewService(testConfig(1, 1), client)

	updates := service.SubscribeOnUpdate()
	defer service.Unsubscribe(updates)

	service.runCycle(context.Background())
	assert.Len(t, updates, 1)
}
