package discovery

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache memoizes scan results per kind and source fingerprint. The
// fingerprint is part of the key, so adding a discovery source can never hide
// previously discovered plugins behind a stale entry.
type Cache struct {
	entries *lru.LRU[string, []string]
}

// NewCache returns a scan cache holding up to maxEntries results for ttl.
// A zero ttl disables expiry.
func NewCache(maxEntries int, ttl time.Duration) *Cache {
	if maxEntries < 1 {
		maxEntries = 16
	}
	return &Cache{entries: lru.NewLRU[string, []string](maxEntries, nil, ttl)}
}

// Get returns the cached type IDs for key.
func (c *Cache) Get(key string) ([]string, bool) {
	if c == nil {
		return nil, false
	}
	return c.entries.Get(key)
}

// Put stores the type IDs found by a scan.
func (c *Cache) Put(key string, typeIDs []string) {
	if c == nil {
		return
	}
	c.entries.Add(key, append([]string(nil), typeIDs...))
}

// Purge drops all cached scans, forcing the next discovery pass to rescan.
func (c *Cache) Purge() {
	if c == nil {
		return
	}
	c.entries.Purge()
}
