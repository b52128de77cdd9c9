package cache

import (
	"context"
	"fmt"

	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jake1318/afternew/config"
)

// Service implements Cache on top of go-cache. Expired entries are removed
// by go-cache's own cleanup goroutine on the configured interval.
type Service struct {
	store  *gocache.Cache
	config config.CacheConfig
}

// NewService creates a new cache service with the given configuration
func NewService(cfg config.CacheConfig) *Service {
	return &Service{
		store:  gocache.New(cfg.DefaultExpiration, cfg.CleanupInterval),
		config: cfg,
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.store == nil {
		return fmt.Errorf("cache service not properly initialized")
	}
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	if s.store != nil {
		s.store.Flush()
	}
}

// Get retrieves data for the given keys
func (s *Service) Get(keys []string) (map[string][]byte, []string) {
	found := make(map[string][]byte)
	missing := make([]string, 0)

	for _, key := range keys {
		value, ok := s.store.Get(key)
		if !ok {
			missing = append(missing, key)
			continue
		}
		data, ok := value.([]byte)
		if !ok {
			missing = append(missing, key)
			continue
		}
		found[key] = data
	}

	return found, missing
}

// GetOrLoad retrieves data for the given keys, loading and caching any
// missing entries
func (s *Service) GetOrLoad(keys []string, loader LoaderFunc, ttl time.Duration) (map[string][]byte, error) {
	if len(keys) == 0 {
		return make(map[string][]byte), nil
	}

	result, missing := s.Get(keys)
	if len(missing) == 0 {
		return result, nil
	}

	loaded, err := loader(missing)
	if err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}

	if len(loaded) > 0 {
		s.Set(loaded, ttl)
	}
	for key, value := range loaded {
		result[key] = value
	}

	return result, nil
}

// Set stores entries with the given TTL
func (s *Service) Set(data map[string][]byte, ttl time.Duration) {
	for key, value := range data {
		s.store.Set(key, value, ttl)
	}
}

// Delete removes entries by key
func (s *Service) Delete(keys []string) {
	for _, key := range keys {
		s.store.Delete(key)
	}
}

// ItemCount returns the number of entries, including not yet swept
// expired ones
func (s *Service) ItemCount() int {
	return s.store.ItemCount()
}
