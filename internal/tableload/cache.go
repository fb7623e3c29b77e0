package tableload

import (
	"os"
	"sync"
	"time"
)

// CacheKey identifies one version of a file. A file whose size or
// modification time changes produces a different key.
type CacheKey struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// keyFor stats path and builds its cache key.
func keyFor(path string) (CacheKey, error) {
	info, err := os.Stat(path)
	if err != nil {
		return CacheKey{}, err
	}
	return CacheKey{Path: path, Size: info.Size(), ModTime: info.ModTime()}, nil
}

// DimensionCache memoizes measured shapes so repeated loads of an unchanged
// file can skip the measuring pass.
type DimensionCache interface {
	Get(key CacheKey) (Shape, bool)
	Put(key CacheKey, shape Shape)
	Clear()
}

// CacheStats counts lookups against a MemoryCache.
type CacheStats struct {
	Hits    int `json:"hits"`
	Misses  int `json:"misses"`
	Entries int `json:"entries"`
}

// MemoryCache is a process-wide DimensionCache. Safe for concurrent use.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[CacheKey]Shape
	hits    int
	misses  int
}

// NewMemoryCache returns an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[CacheKey]Shape)}
}

// Get returns the cached shape for key.
func (c *MemoryCache) Get(key CacheKey) (Shape, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	shape, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return shape, ok
}

// Put stores shape under key, replacing entries for older versions of
// the same path.
func (c *MemoryCache) Put(key CacheKey, shape Shape) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k := range c.entries {
		if k.Path == key.Path && k != key {
			delete(c.entries, k)
		}
	}
	c.entries[key] = shape
}

// Clear drops every entry. Counters are kept.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[CacheKey]Shape)
}

// Stats returns a snapshot of the hit/miss counters.
func (c *MemoryCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{Hits: c.hits, Misses: c.misses, Entries: len(c.entries)}
}

// NopCache never stores anything, so every load measures the file.
type NopCache struct{}

func (NopCache) Get(CacheKey) (Shape, bool) { return Shape{}, false }
func (NopCache) Put(CacheKey, Shape)        {}
func (NopCache) Clear()                     {}
