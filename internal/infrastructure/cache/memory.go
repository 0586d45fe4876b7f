package cache

import (
	"time"

	"catalog-backend/pkg/cache"

	gocache "github.com/patrickmn/go-cache"
)

type memoryCache[V any] struct {
	store *gocache.Cache
}

// NewMemoryCache creates a new in-memory cache service
// defaultExpiration: default TTL for items
// cleanupInterval: how often to scan for expired items
func NewMemoryCache[V any](defaultExpiration, cleanupInterval time.Duration) cache.Cache[V] {
	return &memoryCache[V]{
		store: gocache.New(defaultExpiration, cleanupInterval),
	}
}

func (c *memoryCache[V]) Get(key string) (V, bool) {
	var zero V
	raw, ok := c.store.Get(key)
	if !ok {
		return zero, false
	}
	v, ok := raw.(V)
	if !ok {
		return zero, false
	}
	return v, true
}

func (c *memoryCache[V]) Set(key string, value V, ttl time.Duration) {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	c.store.Set(key, value, ttl)
}

func (c *memoryCache[V]) Delete(key string) {
	c.store.Delete(key)
}

func (c *memoryCache[V]) Flush() {
	c.store.Flush()
}
