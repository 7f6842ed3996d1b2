package search

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Build24-Tech/discovery-engine/internal/domain/search/filter"
	"github.com/Build24-Tech/discovery-engine/internal/domain/search/result"
)

// DefaultTTL bounds how long a search result set may be served from cache.
const DefaultTTL = 10 * time.Minute

type cacheEntry struct {
	results    []result.Result
	insertedAt time.Time
}

// CachedService memoizes Search by the filter's canonical cache key.
// Expiry is lazy: entries are checked against the TTL only when read, there
// is no background sweep. Concurrent misses on the same key are not
// deduplicated; both callers recompute and the later write wins, which
// duplicates work but never corrupts a result.
type CachedService struct {
	inner      Searcher
	ttl        time.Duration
	mu         sync.RWMutex
	entries    map[string]cacheEntry
	cacheTotal *prometheus.CounterVec
}

// NewCached creates a caching decorator over a search service.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), may be nil.
func NewCached(inner Searcher, ttl time.Duration, cacheTotal *prometheus.CounterVec) *CachedService {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedService{
		inner:      inner,
		ttl:        ttl,
		entries:    make(map[string]cacheEntry),
		cacheTotal: cacheTotal,
	}
}

// Search returns the cached result set for an equivalent filter when it is
// younger than the TTL, otherwise delegates to the inner service and caches
// the outcome. Failed computations are not cached.
func (c *CachedService) Search(ctx context.Context, f filter.Filter) ([]result.Result, error) {
	key := f.CacheKey()

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && time.Since(entry.insertedAt) < c.ttl {
		c.incCache("hit")
		return entry.results, nil
	}
	c.incCache("miss")

	results, err := c.inner.Search(ctx, f)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{results: results, insertedAt: time.Now()}
	c.mu.Unlock()

	return results, nil
}

// ClearCache drops all entries unconditionally.
func (c *CachedService) ClearCache() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Len returns the number of live entries, expired or not.
func (c *CachedService) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *CachedService) incCache(outcome string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(outcome).Inc()
	}
}
