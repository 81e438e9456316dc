// internal/platform/cache/cache.go
// Responsibility: プロセススコープのクエリキャッシュ（明示的に受け渡す; global singleton 禁止）。
package cache

import "sync"

// Key for the full product listing. Mutations invalidate (not patch)
// this key; the next read re-fetches.
const ProductsListKey = "products:list"

// Cache is a small process-scoped key/value cache with explicit
// invalidation. It is passed to the components that need it rather
// than accessed as ambient global state.
type Cache struct {
	mu sync.RWMutex
	m  map[string]any
}

func New() *Cache {
	return &Cache{m: make(map[string]any)}
}

func (c *Cache) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[key]
	return v, ok
}

func (c *Cache) Set(key string, v any) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = v
}

// Invalidate drops the given keys entirely.
func (c *Cache) Invalidate(keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.m, k)
	}
}
