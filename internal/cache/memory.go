package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is the in-process TTL backend. A zero ttl on Set uses the
// default expiration, which the layered backend relies on for promotion.
type MemoryCache struct {
	entries *gocache.Cache
}

// NewMemoryCache creates a memory cache with the given default TTL.
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	if cleanupInterval <= 0 {
		cleanupInterval = 10 * time.Minute
	}
	return &MemoryCache{
		entries: gocache.New(defaultTTL, cleanupInterval),
	}
}

func (m *MemoryCache) Get(key string) ([]byte, bool) {
	val, found := m.entries.Get(key)
	if !found {
		return nil, false
	}
	return val.([]byte), true
}

func (m *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	m.entries.Set(key, value, ttl)
	return nil
}

func (m *MemoryCache) Delete(key string) error {
	m.entries.Delete(key)
	return nil
}

func (m *MemoryCache) Clear() error {
	m.entries.Flush()
	return nil
}
