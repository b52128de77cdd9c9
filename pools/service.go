// Package pools maintains the pool list, a rolling 24h volume map and the
// derived set of coin types held by the top pools by volume.
package pools

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/jake1318/afternew/config"
	"github.com/jake1318/afternew/events"
	"github.com/jake1318/afternew/metrics"
	"github.com/jake1318/afternew/scheduler"

	"github.com/jake1318/afternew/aftermath"
)

// PoolsAPI is the slice of the upstream client this service depends on
type PoolsAPI interface {
	GetAllPools(ctx context.Context) ([]aftermath.Pool, error)
	GetPoolVolume24h(ctx context.Context, poolID string) (float64, error)
}

// PoolInfo is a pool snapshot with its most recently observed volume
// merged in, as served by the dashboard endpoint
type PoolInfo struct {
	ID         string                        `json:"id"`
	Name       string                        `json:"name"`
	LpCoinType string                        `json:"lpCoinType"`
	TVL        float64                       `json:"tvl"`
	APR        float64                       `json:"apr"`
	Volume24h  float64                       `json:"volume24h"`
	Coins      map[string]aftermath.PoolCoin `json:"coins"`
}

// Service is the pool volume aggregator
type Service struct {
	cfg                 *config.Config
	client              PoolsAPI
	metricsWriter       *metrics.MetricsWriter
	subscriptionManager *events.SubscriptionManager
	scheduler           *scheduler.Scheduler

	mu             sync.RWMutex
	pools          []aftermath.Pool
	volumes        map[string]float64
	topPoolCoins   []string
	lastBatchIndex int
	initialized    bool
}

// NewService creates a new pool volume aggregator
func NewService(cfg *config.Config, client PoolsAPI) *Service {
	return &Service{
		cfg:                 cfg,
		client:              client,
		metricsWriter:       metrics.NewMetricsWriter(metrics.ServicePools),
		subscriptionManager: events.NewSubscriptionManager(),
		volumes:             make(map[string]float64),
		topPoolCoins:        make([]string, 0),
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	s.scheduler = scheduler.New(s.cfg.Pools.UpdateInterval, s.runCycle)
	s.scheduler.Start(ctx, true)
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// runCycle ensures the pool list is populated and then updates the next
// volume batch. A failed pool listing leaves the cycle with nothing to do;
// it is retried on the next tick rather than treated as fatal.
func (s *Service) runCycle(ctx context.Context) {
	defer s.metricsWriter.TrackDataFetchCycle()()

	if !s.ensurePools(ctx) {
		return
	}
	s.updateNextBatch(ctx)
	s.subscriptionManager.Emit(ctx)
}

// ensurePools fetches the full pool list once, seeding the volume map
func (s *Service) ensurePools(ctx context.Context) bool {
	s.mu.RLock()
	initialized := s.initialized
	s.mu.RUnlock()
	if initialized {
		return true
	}

	pools, err := s.client.GetAllPools(ctx)
	if err != nil {
		log.Printf("Pools: error listing pools: %v", err)
		return false
	}

	s.mu.Lock()
	s.pools = pools
	s.volumes = make(map[string]float64, len(pools))
	for _, pool := range pools {
		s.volumes[pool.ObjectID] = 0
	}
	s.lastBatchIndex = 0
	s.initialized = true
	s.mu.Unlock()

	metrics.PoolsTrackedGauge.Set(float64(len(pools)))
	log.Printf("Pools: fetched %d pools", len(pools))
	return true
}

type volumeResult struct {
	poolID string
	volume float64
	ok     bool
}

// updateNextBatch refreshes the volume of the next slice of pools and
// recomputes the top-pool coin set. Per-pool failures are logged and leave
// that pool's volume unchanged for this cycle.
func (s *Service) updateNextBatch(ctx context.Context) {
	s.mu.RLock()
	start := s.lastBatchIndex
	end := start + s.cfg.Pools.BatchSize
	if end > len(s.pools) {
		end = len(s.pools)
	}
	batch := make([]aftermath.Pool, end-start)
	copy(batch, s.pools[start:end])
	s.mu.RUnlock()

	if len(batch) == 0 {
		return
	}
	log.Printf("Pools: updating volumes for batch indexes %d - %d", start, end)

	// Fire all fetches, wait for all of them; one slow or failing pool
	// must not hold up the others' results
	results := make([]volumeResult, len(batch))
	var wg sync.WaitGroup
	for i, pool := range batch {
		wg.Add(1)
		go func(i int, poolID string) {
			defer wg.Done()
			volume, err := s.client.GetPoolVolume24h(ctx, poolID)
			if err != nil {
				log.Printf("Pools: error getting volume for pool %s: %v", poolID, err)
				results[i] = volumeResult{poolID: poolID}
				return
			}
			results[i] = volumeResult{poolID: poolID, volume: volume, ok: true}
		}(i, pool.ObjectID)
	}
	wg.Wait()

	s.mu.Lock()
	for _, result := range results {
		if result.ok {
			s.volumes[result.poolID] = result.volume
		}
	}
	s.lastBatchIndex += s.cfg.Pools.BatchSize
	if s.lastBatchIndex >= len(s.pools) {
		s.lastBatchIndex = 0
	}
	s.topPoolCoins = s.computeTopPoolCoinsLocked()
	s.mu.Unlock()
}

// computeTopPoolCoinsLocked ranks pools by known volume descending (ties
// keep original pool order) and unions the coin types of the top slice.
// Callers must hold s.mu.
func (s *Service) computeTopPoolCoinsLocked() []string {
	indexes := make([]int, len(s.pools))
	for i := range indexes {
		indexes[i] = i
	}
	sort.SliceStable(indexes, func(a, b int) bool {
		return s.volumes[s.pools[indexes[a]].ObjectID] > s.volumes[s.pools[indexes[b]].ObjectID]
	})

	topCount := s.cfg.Pools.TopPoolsCount
	if topCount > len(indexes) {
		topCount = len(indexes)
	}

	seen := make(map[string]struct{})
	coins := make([]string, 0)
	for _, idx := range indexes[:topCount] {
		for coinType := range s.pools[idx].Coins {
			if _, ok := seen[coinType]; !ok {
				seen[coinType] = struct{}{}
				coins = append(coins, coinType)
			}
		}
	}
	sort.Strings(coins)
	return coins
}

// TopPoolCoins returns a copy of the current top-pool coin set
func (s *Service) TopPoolCoins() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coins := make([]string, len(s.topPoolCoins))
	copy(coins, s.topPoolCoins)
	return coins
}

// PoolList returns a snapshot of all pools with their known volumes
func (s *Service) PoolList() []PoolInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]PoolInfo, 0, len(s.pools))
	for _, pool := range s.pools {
		list = append(list, PoolInfo{
			ID:         pool.ObjectID,
			Name:       pool.Name,
			LpCoinType: pool.LpCoinType,
			TVL:        pool.TVL,
			APR:        pool.APR,
			Volume24h:  s.volumes[pool.ObjectID],
			Coins:      pool.Coins,
		})
	}
	return list
}

// LastBatchIndex returns the index the next cycle will start from
func (s *Service) LastBatchIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastBatchIndex
}

// Initialized reports whether the pool list has been fetched
func (s *Service) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// Healthy reports whether the aggregator has a pool list to work on
func (s *Service) Healthy() bool {
	return s.Initialized()
}

// SubscribeOnUpdate subscribes to batch-update notifications
func (s *Service) SubscribeOnUpdate() chan struct{} {
	return s.subscriptionManager.Subscribe()
}

// Unsubscribe removes an update subscription
func (s *Service) Unsubscribe(ch chan struct{}) {
	s.subscriptionManager.Unsubscribe(ch)
}
