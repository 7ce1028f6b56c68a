package cache

import "time"

// LayeredCache combines a fast memory layer with a persistent layer
// (disk or redis). Reads promote persistent hits into memory.
type LayeredCache struct {
	memory     Cache
	persistent Cache
}

// NewLayeredCache creates a layered cache over the given persistent layer.
func NewLayeredCache(memoryTTL time.Duration, persistent Cache) *LayeredCache {
	return &LayeredCache{
		memory:     NewMemoryCache(memoryTTL, 10*time.Minute),
		persistent: persistent,
	}
}

// Get checks memory first, then the persistent layer.
func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		return val, true
	}

	if val, found := c.persistent.Get(key); found {
		_ = c.memory.Set(key, val, 0) // promote with default TTL
		return val, true
	}

	return nil, false
}

// Set stores a value in both layers
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return c.persistent.Set(key, value, ttl)
}

// Delete removes a value from both layers
func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	return c.persistent.Delete(key)
}

// Clear removes all values from both layers
func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	return c.persistent.Clear()
}
