package pattern

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog/log"
)

type cacheKey struct {
	expr    string
	dialect Dialect
}

// Cache keeps recently compiled patterns. It is safe for concurrent use.
type Cache struct {
	cache *lru.Cache
	mu    sync.RWMutex
}

// NewCache creates a Cache holding at most size patterns.
func NewCache(size int) (*Cache, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("create pattern cache: %w", err)
	}

	return &Cache{cache: cache}, nil
}

// Get returns the compiled pattern for expr, compiling it on a miss.
// Compile errors are returned and never cached.
func (c *Cache) Get(expr string, d Dialect) (Pattern, error) {
	key := cacheKey{expr: expr, dialect: d}

	c.mu.RLock()
	if cached, found := c.cache.Get(key); found {
		c.mu.RUnlock()
		return cached.(Pattern), nil
	}
	c.mu.RUnlock()

	p, err := Compile(expr, d)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache.Add(key, p)
	c.mu.Unlock()

	log.Trace().
		Str("pattern", expr).
		Stringer("dialect", d).
		Msg("pattern compiled")

	return p, nil
}

// Len returns the number of cached patterns.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.cache.Len()
}
