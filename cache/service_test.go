package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jake1318/afternew/config"
)

func newTestService() *Service {
	return NewService(config.CacheConfig{
		DefaultExpiration: time.Minute,
		CleanupInterval:   time.Minute,
	})
}

func TestSetAndGet(t *testing.T) {
	s := newTestService()

	s.Set(map[string][]byte{
		"a": []byte("1"),
		"b": []byte("2"),
	}, 0)

	found, missing := s.Get([]string{"a", "b", "c"})

	assert.Equal(t, []byte("1"), found["a"])
	assert.Equal(t, []byte("2"), found["b"])
	assert.Equal(t, []string{"c"}, missing)
}

func TestGetExpiredEntry(t *testing.T) {
	s := newTestService()

	s.Set(map[string][]byte{"a": []byte("1")}, 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	found, missing := s.Get([]string{"a"})
	assert.Empty(t, found)
	assert.Equal(t, []string{"a"}, missing)
}

func TestDelete(t *testing.T) {
	s := newTestService()

	s.Set(map[string][]byte{"a": []byte("1")}, 0)
	s.Delete([]string{"a"})

	found, missing := s.Get([]string{"a"})
	assert.Empty(t, found)
	assert.Equal(t, []string{"a"}, missing)
}

func TestGetOrLoadAllCached(t *testing.T) {
	s := newTestService()
	s.Set(map[string][]byte{"a": []byte("1")}, 0)

	loaderCalled := false
	result, err := s.GetOrLoad([]string{"a"}, func(missing []string) (map[string][]byte, error) {
		loaderCalled = true
		return nil, nil
	}, 0)

	assert.NoError(t, err)
	assert.False(t, loaderCalled, "loader must not run when everything is cached")
	assert.Equal(t, []byte("1"), result["a"])
}

func TestGetOrLoadLoadsMissing(t *testing.T) {
	s := newTestService()
	s.Set(map[string][]byte{"a": []byte("1")}, 0)

	result, err := s.GetOrLoad([]string{"a", "b"}, func(missing []string) (map[string][]byte, error) {
		assert.Equal(t, []string{"b"}, missing)
		return map[string][]byte{"b": []byte("2")}, nil
	}, 0)

	assert.NoError(t, err)
	assert.Equal(t, []byte("1"), result["a"])
	assert.Equal(t, []byte("2"), result["b"])

	// Loaded entries are cached for the next call
	found, _ := s.Get([]string{"b"})
	assert.Equal(t, []byte("2"), found["b"])
}

func TestGetOrLoadLoaderError(t *testing.T) {
	s := newTestService()

	_, err := s.GetOrLoad([]string{"a"}, func(missing []string) (map[string][]byte, error) {
		return nil, errors.New("upstream down")
	}, 0)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "upstream down")
}

func TestGetOrLoadPartialLoad(t *testing.T) {
	s := newTestService()

	// Loader may legitimately not know some keys; those stay missing
	// without being an error
	result, err := s.GetOrLoad([]string{"a", "b"}, func(missing []string) (map[string][]byte, error) {
		return map[string][]byte{"a": []byte("1")}, nil
	}, 0)

	assert.NoError(t, err)
	assert.Equal(t, []byte("1"), result["a"])
	_, ok := result["b"]
	assert.False(t, ok)
}

func TestGetOrLoadEmptyKeys(t *testing.T) {
	s := newTestService()

	result, err := s.GetOrLoad(nil, func(missing []string) (map[string][]byte, error) {
		t.Fatal("loader must not be called")
		return nil, nil
	}, 0)

	assert.NoError(t, err)
	assert.Empty(t, result)
}

func TestStartStop(t *testing.T) {
	s := newTestService()

	assert.NoError(t, s.Start(context.Background()))

	s.Set(map[string][]byte{"a": []byte("1")}, 0)
	assert.Equal(t, 1, s.ItemCount())

	s.Stop()
	assert.Equal(t, 0, s.ItemCount())
}
