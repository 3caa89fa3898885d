package cache

import (
	"sync"
	"time"

	"showtime-booking/internal/domain/availability"
	"showtime-booking/internal/domain/booking"
	"showtime-booking/internal/pkg/clock"
	"showtime-booking/internal/pkg/metrics"
)

type entry[V any] struct {
	key      availability.CacheKey
	value    V
	storedAt time.Time
	expires  time.Time
}

// invalidation is one Invalidate call, numbered by the generation it produced.
type invalidation struct {
	gen uint64
	rng booking.DateRange
}

// maxInvalidationLog bounds the history Put consults. A refill older than
// the retained history is discarded.
const maxInvalidationLog = 256

// Cache holds computed availability keyed by (date range, service set).
// Readers share the lock; Put and Invalidate serialize.
type Cache[V any] struct {
	mu         sync.RWMutex
	entries    map[string]*entry[V]
	maxEntries int
	clock      clock.Clock
	metrics    *metrics.Metrics

	gen     uint64
	log     []invalidation
	horizon uint64 // generations <= horizon are no longer in log
}

// New builds a cache. maxEntries <= 0 leaves it unbounded; m may be nil.
func New[V any](clk clock.Clock, maxEntries int, m *metrics.Metrics) *Cache[V] {
	return &Cache[V]{
		entries:    make(map[string]*entry[V]),
		maxEntries: maxEntries,
		clock:      clk,
		metrics:    m,
	}
}

// Get never returns an entry older than its TTL. Expired entries are
// dropped on the way out.
func (c *Cache[V]) Get(key availability.CacheKey) (V, bool) {
	k := key.String()
	now := c.clock.Now()

	c.mu.RLock()
	e, ok := c.entries[k]
	c.mu.RUnlock()

	if ok && now.Before(e.expires) {
		c.hit()
		return e.value, true
	}

	if ok {
		c.mu.Lock()
		if cur, still := c.entries[k]; still && !now.Before(cur.expires) {
			delete(c.entries, k)
		}
		c.gauge()
		c.mu.Unlock()
	}

	c.miss()
	var zero V
	return zero, false
}

// Generation is taken before a refill reads the store and handed back to Put.
func (c *Cache[V]) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// Put stores value for ttl and reports whether it was kept. A non-positive
// ttl stores nothing. The value is discarded when an invalidation touching
// key's range happened after gen was taken, since it may predate that write.
func (c *Cache[V]) Put(key availability.CacheKey, value V, ttl time.Duration, gen uint64) bool {
	if ttl <= 0 {
		return false
	}
	k := key.String()
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.staleLocked(key.Range, gen) {
		if c.metrics != nil {
			c.metrics.CacheStalePuts.Inc()
		}
		return false
	}

	if _, exists := c.entries[k]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictLocked(now)
	}
	c.entries[k] = &entry[V]{
		key:      key,
		value:    value,
		storedAt: now,
		expires:  now.Add(ttl),
	}
	c.gauge()
	return true
}

func (c *Cache[V]) staleLocked(r booking.DateRange, gen uint64) bool {
	if gen == c.gen {
		return false
	}
	if gen < c.horizon {
		return true
	}
	for _, inv := range c.log {
		if inv.gen > gen && inv.rng.Intersects(r) {
			return true
		}
	}
	return false
}

// evictLocked drops expired entries, then the oldest one if still full.
func (c *Cache[V]) evictLocked(now time.Time) {
	for k, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, k)
		}
	}
	if len(c.entries) < c.maxEntries {
		return
	}

	var oldestKey string
	var oldest time.Time
	for k, e := range c.entries {
		if oldestKey == "" || e.storedAt.Before(oldest) {
			oldestKey, oldest = k, e.storedAt
		}
	}
	delete(c.entries, oldestKey)
}

// Invalidate removes every entry whose range intersects r and reports how
// many were removed.
func (c *Cache[V]) Invalidate(r booking.DateRange) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	c.log = append(c.log, invalidation{gen: c.gen, rng: r})
	if len(c.log) > maxInvalidationLog {
		drop := len(c.log) - maxInvalidationLog
		c.horizon = c.log[drop-1].gen
		c.log = append(c.log[:0:0], c.log[drop:]...)
	}

	n := 0
	for k, e := range c.entries {
		if e.key.Range.Intersects(r) {
			delete(c.entries, k)
			n++
		}
	}
	if c.metrics != nil {
		c.metrics.CacheInvalidations.Add(float64(n))
	}
	c.gauge()
	return n
}

func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache[V]) hit() {
	if c.metrics != nil {
		c.metrics.CacheHits.Inc()
	}
}

func (c *Cache[V]) miss() {
	if c.metrics != nil {
		c.metrics.CacheMisses.Inc()
	}
}

// gauge must be called with mu held.
func (c *Cache[V]) gauge() {
	if c.metrics != nil {
		c.metrics.CacheEntries.Set(float64(len(c.entries)))
	}
}

// NopCache is used when caching is disabled: every Get misses.
type NopCache[V any] struct{}

func (NopCache[V]) Get(availability.CacheKey) (V, bool) {
	var zero V
	return zero, false
}

func (NopCache[V]) Generation() uint64 { return 0 }

func (NopCache[V]) Put(availability.CacheKey, V, time.Duration, uint64) bool { return false }

func (NopCache[V]) Invalidate(booking.DateRange) int { return 0 }

func (NopCache[V]) Len() int { return 0 }
