package cache

import (
	"sync"
	"time"
)

type entry struct {
	text      string
	fetchedAt time.Time
}

// Cache keeps extracted page text for the lifetime of a pipeline run so the
// same URL returned by several queries is downloaded once.
type Cache struct {
	mu        sync.RWMutex
	pages     map[string]entry
	retention time.Duration
	hits      int
	misses    int
	now       func() time.Time
}

func New(retention time.Duration) *Cache {
	return &Cache{
		pages:     make(map[string]entry),
		retention: retention,
		now:       time.Now,
	}
}

func (c *Cache) Put(url, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pages[url] = entry{text: text, fetchedAt: c.now()}
}

// Get returns the cached text for url. Entries older than the retention are
// dropped on access.
func (c *Cache) Get(url string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, exists := c.pages[url]
	if exists && c.retention > 0 && c.now().Sub(e.fetchedAt) > c.retention {
		delete(c.pages, url)
		exists = false
	}
	if !exists {
		c.misses++
		return "", false
	}
	c.hits++
	return e.text, true
}

func (c *Cache) Stats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return map[string]interface{}{
		"pages":     len(c.pages),
		"hits":      c.hits,
		"misses":    c.misses,
		"retention": c.retention.String(),
	}
}
