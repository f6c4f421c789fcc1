// Package cache provides an in-memory TTL cache for computed lookup responses.
//
// The cache is constructor-scoped rather than package-level so tests can
// create isolated instances with their own sweep lifecycle.
package cache

import (
	"sync"
	"time"
)

const (
	// DefaultTTL is how long an entry stays valid after being written.
	DefaultTTL = 15 * time.Minute

	// DefaultSweepInterval is how often the background sweep evicts expired entries.
	DefaultSweepInterval = 5 * time.Minute
)

// Option is a functional option for configuring a Cache
type Option func(*settings)

// settings holds the configuration applied by options
type settings struct {
	ttl           time.Duration
	sweepInterval time.Duration
	now           func() time.Time
}

// WithTTL sets the entry time-to-live. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(s *settings) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithSweepInterval sets the background eviction interval. Non-positive
// values disable the background sweep; expired entries are then only
// evicted logically on read.
func WithSweepInterval(interval time.Duration) Option {
	return func(s *settings) {
		s.sweepInterval = interval
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Cache is a concurrency-safe map of keys to values with a fixed TTL and a
// periodic background sweep. A value read after its TTL has elapsed is
// treated as absent even if the sweep has not yet removed it.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]

	ttl time.Duration
	now func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// New creates a Cache and starts its background sweep. The caller must call
// Close when the cache is no longer needed to stop the sweep goroutine.
func New[V any](opts ...Option) *Cache[V] {
	s := &settings{
		ttl:           DefaultTTL,
		sweepInterval: DefaultSweepInterval,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	c := &Cache[V]{
		entries: make(map[string]entry[V]),
		ttl:     s.ttl,
		now:     s.now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	if s.sweepInterval > 0 {
		go c.sweepLoop(s.sweepInterval)
	} else {
		close(c.done)
	}

	return c
}

// Get returns the live value for key. Entries older than the TTL are
// reported as absent even if the background sweep has not removed them yet.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.expired(e, c.now()) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, time-stamped now. An existing entry for the
// same key is replaced (last write wins).
func (c *Cache[V]) Set(key string, value V) {
	stamped := entry[V]{value: value, storedAt: c.now()}

	c.mu.Lock()
	c.entries[key] = stamped
	c.mu.Unlock()
}

// Clear removes all entries.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry[V])
	c.mu.Unlock()
}

// Len returns the number of stored entries, including any expired entries
// not yet removed by the sweep.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the background sweep. It is safe to call multiple times.
func (c *Cache[V]) Close() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
	<-c.done
}

func (c *Cache[V]) expired(e entry[V], at time.Time) bool {
	return at.Sub(e.storedAt) > c.ttl
}

func (c *Cache[V]) sweepLoop(interval time.Duration) {
	defer close(c.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stop:
			return
		}
	}
}

// sweep removes entries whose age exceeds the TTL.
func (c *Cache[V]) sweep() {
	now := c.now()

	c.mu.Lock()
	for key, e := range c.entries {
		if c.expired(e, now) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}
