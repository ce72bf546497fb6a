package tmdb

import (
	"encoding/json"
	"sync"
	"time"
)

type cacheEntry struct {
	data    json.RawMessage
	expires time.Time
}

// ttlCache is a small time-bounded cache keyed by request signature. It is
// an explicit object passed into the client at construction, not a process
// global.
type ttlCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

func newTTLCache(ttl time.Duration) *ttlCache {
	return &ttlCache{ttl: ttl, entries: make(map[string]cacheEntry)}
}

func (c *ttlCache) get(key string) (json.RawMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.data, true
}

func (c *ttlCache) set(key string, data json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{data: data, expires: time.Now().Add(c.ttl)}
}
