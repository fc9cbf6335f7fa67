package reconcile

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// BaselineCache holds recently loaded baselines keyed by relationship kind.
// Cached values are shared between callers and must be treated as read-only.
type BaselineCache struct {
	ttl   time.Duration
	items *cache.Cache
	sf    singleflight.Group

	// mu guards the generation counters. A load only stores its result when the
	// generation of its key is unchanged since the load started.
	mu      sync.Mutex
	gens    map[string]uint64
	flushes uint64
}

// NewBaselineCache creates a cache with the given TTL. A zero TTL disables caching.
func NewBaselineCache(ttl time.Duration) *BaselineCache {
	return &BaselineCache{
		ttl:   ttl,
		items: cache.New(ttl, 2*ttl),
		gens:  make(map[string]uint64),
	}
}

// Invalidate drops the cached value for key. Writers call it after every reconciliation.
// Loads already in flight for key will not store their result.
func (c *BaselineCache) Invalidate(key string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.gens[key]++
	c.items.Delete(key)
	c.mu.Unlock()
	c.sf.Forget(key)
}

// Flush drops every cached value.
func (c *BaselineCache) Flush() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.flushes++
	c.items.Flush()
	c.mu.Unlock()
}

func (c *BaselineCache) generation(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flushes + c.gens[key]
}

// store caches v unless key was invalidated since gen was taken.
func (c *BaselineCache) store(key string, gen uint64, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.flushes+c.gens[key] != gen {
		return
	}
	c.items.Set(key, v, c.ttl)
}

// Load returns the cached value for key, or calls load and caches its result.
// Concurrent loads of the same key share one call to load. The shared call is not
// cancelled with any single caller; each caller stops waiting when its own ctx ends.
func Load[T any](ctx context.Context, c *BaselineCache, key string, load func(context.Context) (T, error)) (T, error) {
	var zero T
	if c == nil || c.ttl <= 0 {
		return load(ctx)
	}

	// Fast path
	if v, ok := c.items.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	// Slow path: one loader per key
	flightCtx := context.WithoutCancel(ctx)
	ch := c.sf.DoChan(key, func() (interface{}, error) {
		if v, ok := c.items.Get(key); ok {
			if typed, ok := v.(T); ok {
				return typed, nil
			}
		}

		gen := c.generation(key)
		v, err := load(flightCtx)
		if err != nil {
			return nil, err
		}
		c.store(key, gen, v)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}
