package cache

import "time"

// Cache is a typed key/value cache with per-entry TTL.
type Cache[V any] interface {
	// Get returns the value and true when the key is present and unexpired.
	Get(key string) (V, bool)

	// Set stores value for ttl. A zero ttl uses the cache default.
	Set(key string, value V, ttl time.Duration)

	Delete(key string)

	// Flush removes all items
	Flush()
}
