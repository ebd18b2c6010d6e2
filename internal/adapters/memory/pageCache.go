// Package memory holds in-process adapters.
package memory

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	page      []byte
	expiresAt time.Time
}

// PageCache is a time-boxed page cache. Expired entries are never returned;
// they are dropped lazily on Get or in bulk by Sweep.
type PageCache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewPageCache uses now as its clock; nil means time.Now.
func NewPageCache(now func() time.Time) *PageCache {
	if now == nil {
		now = time.Now
	}
	return &PageCache{
		entries: make(map[string]entry),
		now:     now,
	}
}

func (c *PageCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return e.page, true, nil
}

func (c *PageCache) Set(_ context.Context, key string, page []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	stored := make([]byte, len(page))
	copy(stored, page)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{page: stored, expiresAt: c.now().Add(ttl)}
	return nil
}

func (c *PageCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
	return nil
}

// Sweep removes expired entries and reports how many were removed.
func (c *PageCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

func (c *PageCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
