// internal/app/system/cache/cache.go

// Package cache provides the process-wide read-through cache used in
// front of store queries. Entries expire on a TTL only; there is no
// size-pressure eviction policy beyond the capacity bound of the
// underlying client.
//
// The cache is an injected capability rather than a package-level
// global so stores can be tested against a fake (see testutil).
package cache

import (
	"time"

	"github.com/viccon/sturdyc"
)

// Cache is the contract stores depend on: get, set, remove by string
// key. Expiry is time-based and fixed per cache instance, so callers
// pick the instance with the TTL class they need (suggestion lists use
// a short TTL, lookup data a long one).
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Remove(key string)
}

// TTLCache backs Cache with a sturdyc in-memory client.
type TTLCache[T any] struct {
	client *sturdyc.Client[T]
}

const (
	numShards          = 64
	evictionPercentage = 10
)

// New creates a TTLCache holding up to capacity entries, each expiring
// ttl after it was set.
func New[T any](capacity int, ttl time.Duration) *TTLCache[T] {
	return &TTLCache[T]{
		client: sturdyc.New[T](capacity, numShards, ttl, evictionPercentage),
	}
}

// Get returns the value for key, or ok=false when absent or expired.
func (c *TTLCache[T]) Get(key string) (T, bool) {
	return c.client.Get(key)
}

// Set stores value under key with the cache's TTL.
func (c *TTLCache[T]) Set(key string, value T) {
	c.client.Set(key, value)
}

// Remove drops key so the next read repopulates from the store.
func (c *TTLCache[T]) Remove(key string) {
	c.client.Delete(key)
}
