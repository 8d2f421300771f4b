// Package listcache is a TTL read-through cache for list query results.
// Each (list kind, owner, filter scope) combination caches independently and
// a write to any entity of a kind invalidates every key of that kind.
package listcache

import (
	"context"
	"sync"
	"time"
)

// Kind names one cached list type.
type Kind string

const (
	KindApplications Kind = "applications"
	KindJobs         Kind = "jobs"
	KindMatches      Kind = "matches"
	KindTalents      Kind = "talents"
	KindAnalytics    Kind = "analytics"
)

// DefaultStaleTimes holds the per-kind freshness windows. They are tuning
// parameters, not correctness-critical, and can be overridden per cache.
var DefaultStaleTimes = map[Kind]time.Duration{
	KindApplications: 3 * time.Minute,
	KindJobs:         5 * time.Minute,
	KindMatches:      5 * time.Minute,
	KindTalents:      5 * time.Minute,
	KindAnalytics:    10 * time.Minute,
}

const (
	defaultRetries   = 3
	defaultBaseDelay = 100 * time.Millisecond
	defaultMaxDelay  = 2 * time.Second
)

// Key identifies one cached list result.
type Key struct {
	Kind  Kind
	Owner string
	Scope string
}

// Loader fetches rows from the store when the cache cannot serve a read.
type Loader func(ctx context.Context) (interface{}, error)

type entry struct {
	rows      interface{}
	fetchedAt time.Time
}

// Cache is safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	entries    map[Key]entry
	staleTimes map[Kind]time.Duration

	retries   int
	baseDelay time.Duration
	maxDelay  time.Duration

	now   func() time.Time
	sleep func(time.Duration)
}

// Option configures a Cache.
type Option func(*Cache)

// WithStaleTime overrides the freshness window for one kind.
func WithStaleTime(kind Kind, d time.Duration) Option {
	return func(c *Cache) { c.staleTimes[kind] = d }
}

// WithClock replaces the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithRetry sets the bounded retry policy applied to loader failures.
func WithRetry(attempts int, base, max time.Duration) Option {
	return func(c *Cache) {
		c.retries = attempts
		c.baseDelay = base
		c.maxDelay = max
	}
}

// WithSleep replaces the backoff sleeper, for tests.
func WithSleep(sleep func(time.Duration)) Option {
	return func(c *Cache) { c.sleep = sleep }
}

// New creates a cache with the default stale times and retry policy.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries:    make(map[Key]entry),
		staleTimes: make(map[Kind]time.Duration, len(DefaultStaleTimes)),
		retries:    defaultRetries,
		baseDelay:  defaultBaseDelay,
		maxDelay:   defaultMaxDelay,
		now:        time.Now,
		sleep:      time.Sleep,
	}
	for k, d := range DefaultStaleTimes {
		c.staleTimes[k] = d
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached rows for key while they are fresh; otherwise it
// calls load, replaces the cached rows and resets the fetch timestamp.
// Loader failures are retried with a doubling, capped delay; the stale entry
// is left in place so a later read can try again.
func (c *Cache) Get(ctx context.Context, key Key, load Loader) (interface{}, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	fresh := ok && c.now().Sub(e.fetchedAt) < c.staleTime(key.Kind)
	c.mu.RUnlock()

	if fresh {
		return e.rows, nil
	}

	rows, err := c.loadWithRetry(ctx, load)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = entry{rows: rows, fetchedAt: c.now()}
	c.mu.Unlock()

	return rows, nil
}

// Invalidate drops a single key.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// InvalidateKind drops every key of the given kind. Called after any write
// that could change rows of that list type.
func (c *Cache) InvalidateKind(kind Kind) {
	c.mu.Lock()
	for k := range c.entries {
		if k.Kind == kind {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
}

// Reset drops everything.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.entries = make(map[Key]entry)
	c.mu.Unlock()
}

func (c *Cache) staleTime(kind Kind) time.Duration {
	if d, ok := c.staleTimes[kind]; ok {
		return d
	}
	return DefaultStaleTimes[KindJobs]
}

func (c *Cache) loadWithRetry(ctx context.Context, load Loader) (interface{}, error) {
	attempts := c.retries
	if attempts < 1 {
		// A zero retry config would skip the loop and cache a nil result.
		attempts = 1
	}
	delay := c.baseDelay
	var rows interface{}
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			c.sleep(delay)
			delay *= 2
			if delay > c.maxDelay {
				delay = c.maxDelay
			}
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		rows, err = load(ctx)
		if err == nil {
			return rows, nil
		}
	}
	return nil, err
}
