// Package cache provides the TTL key-value store shared by the verifier
// and the source adapters, with memory, disk, redis, and layered backends.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the cache key for a normalized citation string.
func Key(normalized string) string {
	hash := sha256.Sum256([]byte(normalized))
	return "citecheck:v1:" + hex.EncodeToString(hash[:])
}

// URLKey derives the cache key for a URL-reachability entry. It lives in a
// separate keyspace from citation resolutions.
func URLKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "citecheck:v1:url:" + hex.EncodeToString(hash[:])
}
