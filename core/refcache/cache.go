package refcache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// FetchFunc loads the complete reference set from the external system in one call.
type FetchFunc[V any] func(ctx context.Context) ([]V, error)

// KeyFunc extracts a lookup key from a cached value.
type KeyFunc[V any] func(V) string

// Cache is a TTL-bound reference data cache indexed both by business code
// and by external identifier. The entry set is replaced wholesale on every
// refresh and never partially mutated. On refresh failure the previous
// contents and timestamp are kept (fail-open: stale-but-available beats
// unavailable).
type Cache[V any] struct {
	name   string
	ttl    time.Duration
	fetch  FetchFunc[V]
	idOf   KeyFunc[V]
	codeOf KeyFunc[V]
	log    *zap.Logger

	mu          sync.RWMutex
	byID        map[string]V
	byCode      map[string]V
	refreshedAt time.Time

	sf singleflight.Group
}

// New creates a reference cache. The name is used only for logging.
func New[V any](name string, ttl time.Duration, fetch FetchFunc[V], idOf, codeOf KeyFunc[V], log *zap.Logger) *Cache[V] {
	return &Cache[V]{
		name:   name,
		ttl:    ttl,
		fetch:  fetch,
		idOf:   idOf,
		codeOf: codeOf,
		log:    log,
		byID:   make(map[string]V),
		byCode: make(map[string]V),
	}
}

// Valid reports whether the last refresh is still within the validity window.
func (c *Cache[V]) Valid() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.refreshedAt.IsZero() {
		return false
	}
	return time.Since(c.refreshedAt) < c.ttl
}

// Refresh fetches the complete reference set and atomically replaces both
// index maps and the refresh timestamp. Concurrent callers share one fetch.
// A fetch failure leaves the previous contents untouched.
func (c *Cache[V]) Refresh(ctx context.Context) error {
	_, err, _ := c.sf.Do("refresh", func() (any, error) {
		entries, err := c.fetch(ctx)
		if err != nil {
			return nil, err
		}

		byID := make(map[string]V, len(entries))
		byCode := make(map[string]V, len(entries))
		for _, e := range entries {
			byID[c.idOf(e)] = e
			byCode[c.codeOf(e)] = e
		}

		c.mu.Lock()
		c.byID = byID
		c.byCode = byCode
		c.refreshedAt = time.Now()
		c.mu.Unlock()

		return nil, nil
	})
	return err
}

// LookupByCode returns the entry for the given business code. An invalid
// cache is refreshed first; a failed opportunistic refresh is logged, not
// raised, and the lookup answers from the last-known-good contents.
func (c *Cache[V]) LookupByCode(ctx context.Context, code string) (V, bool) {
	c.ensureValid(ctx)
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.byCode[code]
	return v, ok
}

// LookupByID returns the entry for the given external identifier, refreshing
// first when the cache is invalid.
func (c *Cache[V]) LookupByID(ctx context.Context, id string) (V, bool) {
	c.ensureValid(ctx)
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.byID[id]
	return v, ok
}

func (c *Cache[V]) ensureValid(ctx context.Context) {
	if c.Valid() {
		return
	}
	if err := c.Refresh(ctx); err != nil {
		c.log.Warn("Reference cache refresh failed, serving last-known-good contents",
			zap.String("cache", c.name),
			zap.Error(err),
		)
	}
}
