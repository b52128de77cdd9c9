package cache

import "time"

// LoaderFunc loads data for keys that were missing from the cache and
// returns a key->data map for those keys. Keys absent from the returned
// map are treated as unavailable, not as errors.
type LoaderFunc func(missingKeys []string) (map[string][]byte, error)

// Cache is the read/write contract services depend on
type Cache interface {
	// Get retrieves data for the given keys, returning found entries and
	// the list of keys not present (or expired)
	Get(keys []string) (map[string][]byte, []string)

	// GetOrLoad retrieves data for the given keys, invoking loader for
	// any missing ones and caching the loaded entries with the given TTL.
	// A ttl of 0 uses the cache default.
	GetOrLoad(keys []string, loader LoaderFunc, ttl time.Duration) (map[string][]byte, error)

	// Set stores entries with the given TTL; 0 uses the cache default
	Set(data map[string][]byte, ttl time.Duration)

	// Delete removes entries by key
	Delete(keys []string)
}
