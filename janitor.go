package tempuscache

import (
	"time"

	"go.uber.org/zap"
)

/*
startSweeper launches the background expiration worker.

================================================================================
ROLE IN CACHE LIFECYCLE
================================================================================

The engine implements a dual-expiration strategy:

1. Lazy Expiration — expired keys are removed during Get.
2. Active Expiration (sweeper) — periodically scans and removes
   expired entries, even if they are never accessed again.

The sweeper always runs: cleanupInterval is a positive, validated
field of every Config, so there's no "disabled" state to special-case.

================================================================================
DOUBLE-CHECKED LOCKING
================================================================================

Each wake cycle collects candidate keys under the read lock, releases
it, then re-verifies each candidate under the write lock before
removing it. The re-verify is load-bearing: between the two passes
another goroutine may have overwritten the entry (refreshing its
createdAt), and that refreshed entry must survive the sweep.
*/
func (c *Cache[K, V]) startSweeper() {
	go c.sweepLoop()
}

func (c *Cache[K, V]) sweepLoop() {
	defer close(c.sweeperDone)

	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweepOnce()
		case <-c.stopCh:
			return
		}
	}
}

// sweepOnce performs a single eager-expiry cycle over the index.
func (c *Cache[K, V]) sweepOnce() {
	now := time.Now().UnixNano()

	c.mu.RLock()
	candidates := make([]K, 0)
	for key, el := range c.index {
		ent := el.Value.(*entry[K, V])
		if ent.expired(c.ttl, now) {
			candidates = append(candidates, key)
		}
	}
	c.mu.RUnlock()

	if len(candidates) == 0 {
		return
	}

	c.mu.Lock()
	removed := 0
	for _, key := range candidates {
		el, found := c.index[key]
		if !found {
			continue // removed by another goroutine between passes
		}
		ent := el.Value.(*entry[K, V])
		if !ent.expired(c.ttl, time.Now().UnixNano()) {
			continue // overwritten between passes: must not be deleted
		}
		c.removeElement(el)
		c.stats.recordExpiration()
		removed++
	}
	c.mu.Unlock()

	if removed > 0 {
		c.logger.Debug("tempuscache: sweep removed expired entries", zap.Int("count", removed))
	}
}
