// ABOUTME: In-memory render cache keyed by sha256 of the DOT text plus output format, with TTL expiry.
// ABOUTME: Tracks hit and miss counts so the HTTP layer can export them as metrics.
package render

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// RenderFunc is the signature for a DOT rendering function that the cache wraps.
type RenderFunc func(ctx context.Context, dotText string, format string) ([]byte, error)

type cacheEntry struct {
	data      []byte
	createdAt time.Time
}

// CacheStats is a snapshot of cache effectiveness.
type CacheStats struct {
	Hits    int64
	Misses  int64
	Entries int
}

// RenderCache memoizes a RenderFunc. Errors are never cached.
type RenderCache struct {
	renderFn RenderFunc
	ttl      time.Duration
	now      func() time.Time
	group    singleflight.Group

	mu      sync.RWMutex
	entries map[string]*cacheEntry
	hits    int64
	misses  int64
}

// NewRenderCache wraps renderFn; entries expire after ttl.
func NewRenderCache(renderFn RenderFunc, ttl time.Duration) *RenderCache {
	return &RenderCache{
		renderFn: renderFn,
		ttl:      ttl,
		now:      time.Now,
		entries:  make(map[string]*cacheEntry),
	}
}

// RenderDOTSource renders dotText, serving unexpired cached output when present.
// Concurrent misses for the same key share one renderer call. The shared
// render is detached from any single caller's cancellation; each caller
// stops waiting when its own ctx is done.
func (c *RenderCache) RenderDOTSource(ctx context.Context, dotText string, format string) ([]byte, error) {
	key := cacheKey(dotText, format)
	if data, ok := c.lookup(key); ok {
		c.record(false)
		return data, nil
	}

	rendered := false
	ch := c.group.DoChan(key, func() (any, error) {
		if data, ok := c.lookup(key); ok {
			return data, nil
		}
		rendered = true
		c.record(true)
		data, err := c.renderFn(context.WithoutCancel(ctx), dotText, format)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = &cacheEntry{data: data, createdAt: c.now()}
		c.mu.Unlock()
		return data, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if !rendered {
			c.record(false)
		}
		return res.Val.([]byte), nil
	}
}

func (c *RenderCache) lookup(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok || c.now().Sub(entry.createdAt) >= c.ttl {
		return nil, false
	}
	return entry.data, true
}

func (c *RenderCache) record(miss bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if miss {
		c.misses++
	} else {
		c.hits++
	}
}

// Stats returns hit/miss counters and the current entry count (expired included).
func (c *RenderCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CacheStats{Hits: c.hits, Misses: c.misses, Entries: len(c.entries)}
}

// Clear removes all entries. Counters are kept.
func (c *RenderCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

func cacheKey(dotText string, format string) string {
	return fmt.Sprintf("%x:%s", sha256.Sum256([]byte(dotText)), format)
}
