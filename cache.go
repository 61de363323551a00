package tempuscache

import (
	"container/list"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

/*
Cache implements a thread-safe, in-memory key-value store with:

- A single, uniform per-entry TTL
- LRU (Least Recently Used) eviction once capacity is reached
- Active (background sweeper) + lazy (on-Get) expiration
- A bounded capacity
- Runtime statistics tracking
- An optional on-miss value loader

================================================================================
ARCHITECTURAL OVERVIEW
================================================================================

Cache combines two data structures:

1. Hash Map (map[K]*list.Element)
   - Provides O(1) key lookup.
   - Maps keys to their corresponding recency-list elements.

2. Doubly Linked List (*list.List)
   - Maintains LRU ordering.
   - Most recently used items sit at the front.
   - Least recently used items sit at the back, ready for eviction.

================================================================================
CONCURRENCY MODEL
================================================================================

- sync.RWMutex protects all shared state.
- Read-only lookups (ContainsKey, Size, Keys) use RLock.
- Any mutation of list links or of the index's key set requires Lock.
- Get takes a brief RLock to rule out the common-miss case cheaply,
  then always re-verifies under Lock before promoting or evicting —
  the simpler single-path re-verification, chosen because every hit
  needs to move an element anyway.

================================================================================
EXPIRATION STRATEGY
================================================================================

1. Lazy Expiration — expired keys are removed during Get.
2. Active Expiration — a background sweeper (janitor.go) periodically
   scans and removes expired entries via double-checked locking.
*/
type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	index map[K]*list.Element
	lru   *list.List

	capacity        int
	ttl             time.Duration
	cleanupInterval time.Duration
	loader          Loader[K, V]
	logger          *zap.Logger

	stats *Stats

	stopOnce    sync.Once
	stopCh      chan struct{}
	sweeperDone chan struct{}
}

// Loader is the single-method on-miss value producer. It may return
// ErrLoaderNoValue to report "no value for this key" without that
// being treated as a failure; any other non-nil error is a load
// exception, absorbed at the engine boundary.
type Loader[K comparable, V any] func(key K) (V, error)

// New builds a Cache from the given options, validating the resulting
// Config before allocating anything. On success the background
// sweeper is already running.
func New[K comparable, V any](opts ...Option[K, V]) (*Cache[K, V], error) {
	cfg := Config[K, V]{RecordStats: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Cache[K, V]{
		index:           make(map[K]*list.Element),
		lru:             list.New(),
		capacity:        cfg.Capacity,
		ttl:             cfg.TTL,
		cleanupInterval: cfg.CleanupInterval,
		loader:          cfg.Loader,
		logger:          logger,
		stats:           newStats(cfg.RecordStats),
		stopCh:          make(chan struct{}),
		sweeperDone:     make(chan struct{}),
	}
	c.startSweeper()
	return c, nil
}

// Get retrieves the value for key. A hit promotes the entry to
// most-recently-used; a miss (including an expired entry) falls
// through to the configured loader, if any.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	if isNilArg(key) {
		panic(&NilArgumentError{Op: "Get", Arg: "key"})
	}

	c.mu.RLock()
	_, found := c.index[key]
	c.mu.RUnlock()
	if !found {
		return c.onMiss(key)
	}

	c.mu.Lock()
	el, found := c.index[key]
	if !found {
		c.mu.Unlock()
		return c.onMiss(key)
	}
	ent := el.Value.(*entry[K, V])
	if ent.expired(c.ttl, time.Now().UnixNano()) {
		c.removeElement(el)
		c.stats.recordExpiration()
		c.mu.Unlock()
		return c.onMiss(key)
	}
	c.moveToHead(el)
	c.stats.recordHit()
	value := ent.value
	c.mu.Unlock()
	return value, true
}

// onMiss records the miss and, if a loader is configured, invokes it
// outside of any cache lock. It must never be called while holding mu.
func (c *Cache[K, V]) onMiss(key K) (V, bool) {
	c.stats.recordMiss()
	return c.invokeLoader(key)
}

func (c *Cache[K, V]) invokeLoader(key K) (V, bool) {
	var zero V
	if c.loader == nil {
		return zero, false
	}

	value, err := c.loader(key)
	switch {
	case errors.Is(err, ErrLoaderNoValue):
		c.stats.recordLoad()
		return zero, false
	case err != nil:
		c.stats.recordLoadFailure()
		c.logger.Warn("tempuscache: loader failed", zap.Any("key", key), zap.Error(err))
		return zero, false
	default:
		c.stats.recordLoad()
		c.Put(key, value)
		return value, true
	}
}

// Put inserts or overwrites key's value. An overwrite refreshes the
// entry's age and promotes it, but never evicts — even at capacity.
// A fresh key at capacity evicts the current least-recently-used
// entry first.
func (c *Cache[K, V]) Put(key K, value V) {
	if isNilArg(key) {
		panic(&NilArgumentError{Op: "Put", Arg: "key"})
	}
	if isNilArg(value) {
		panic(&NilArgumentError{Op: "Put", Arg: "value"})
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.recordPut()
	now := time.Now().UnixNano()

	if el, found := c.index[key]; found {
		ent := el.Value.(*entry[K, V])
		ent.value = value
		ent.createdAt = now
		c.moveToHead(el)
		return
	}

	if len(c.index) >= c.capacity {
		c.evictOldest()
	}

	ent := &entry[K, V]{key: key, value: value, createdAt: now}
	c.index[key] = c.linkAtHead(ent)
}

// Remove deletes key if present and reports whether it was.
func (c *Cache[K, V]) Remove(key K) bool {
	if isNilArg(key) {
		panic(&NilArgumentError{Op: "Remove", Arg: "key"})
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	el, found := c.index[key]
	if !found {
		return false
	}
	c.removeElement(el)
	return true
}

// ContainsKey reports whether key is indexed and not expired. It is a
// read-through predicate only: it never promotes the entry in the
// recency order and never triggers removal of an expired entry — that
// stays the job of Get and the sweeper.
func (c *Cache[K, V]) ContainsKey(key K) bool {
	if isNilArg(key) {
		panic(&NilArgumentError{Op: "ContainsKey", Arg: "key"})
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	el, found := c.index[key]
	if !found {
		return false
	}
	ent := el.Value.(*entry[K, V])
	return !ent.expired(c.ttl, time.Now().UnixNano())
}

// Size returns the current number of live entries.
func (c *Cache[K, V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.index)
}

// IsEmpty reports whether Size() == 0.
func (c *Cache[K, V]) IsEmpty() bool {
	return c.Size() == 0
}

// Clear removes every entry and resets the recency list, without
// touching the statistics counters.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = make(map[K]*list.Element)
	c.lru.Init()
}

// Keys returns a weakly-consistent snapshot of the currently indexed
// keys. It does not filter out entries that are expired but not yet
// swept or lazily evicted.
func (c *Cache[K, V]) Keys() []K {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]K, 0, len(c.index))
	for k := range c.index {
		keys = append(keys, k)
	}
	return keys
}

// Stats returns the live statistics handle.
func (c *Cache[K, V]) Stats() *Stats {
	return c.stats
}

// Shutdown stops the background sweeper and releases its goroutine.
// Safe to call more than once; subsequent calls are no-ops. Further
// cache operations remain usable — only the sweeper stops — but
// callers should treat the cache as retired once this returns.
func (c *Cache[K, V]) Shutdown() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
		<-c.sweeperDone
	})
}
