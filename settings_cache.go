package globalstyles

import (
	"strings"
	"sync"
)

// ProgramCache stores compiled expression programs keyed by expression strings.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// SettingsCache memoises aggregated settings objects. Every Editor keys its
// entries under a private prefix and drops them with DeletePrefix whenever
// its tiers change, so one cache can serve several editors and double as a
// ProgramCache.
type SettingsCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	DeletePrefix(prefix string)
}

// MemoryCache is a map-backed cache safe for concurrent use. It satisfies
// both ProgramCache and SettingsCache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]any
}

// NewMemoryCache constructs an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]any)}
}

// NewProgramCache constructs an in-memory ProgramCache.
func NewProgramCache() ProgramCache {
	return NewMemoryCache()
}

// Get implements ProgramCache and SettingsCache.
func (c *MemoryCache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.entries[key]
	return value, ok
}

// Set implements ProgramCache and SettingsCache.
func (c *MemoryCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[string]any)
	}
	c.entries[key] = value
}

// DeletePrefix implements SettingsCache.
func (c *MemoryCache) DeletePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// Purge drops every entry.
func (c *MemoryCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]any)
}

// Len reports the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// WithProgramCache registers a program cache used by the default evaluator.
func WithProgramCache(cache ProgramCache) Option {
	return func(cfg *config) {
		cfg.programCache = cache
	}
}

// WithSettingsCache replaces the cache holding aggregated settings.
func WithSettingsCache(cache SettingsCache) Option {
	return func(cfg *config) {
		cfg.cache = cache
	}
}
