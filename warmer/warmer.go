// Package warmer implements the cache engine's external bulk-loading
// collaborator. It is deliberately decoupled from the tempuscache
// package: it only needs something it can Put into, so any Target
// implementation — not just *tempuscache.Cache — works.
package warmer

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// ErrNoLoader is returned by New when no loader function is supplied.
var ErrNoLoader = errors.New("warmer: loader must not be nil")

// ErrInvalidConcurrency is returned by New when concurrency is not
// positive.
var ErrInvalidConcurrency = errors.New("warmer: concurrency must be > 0")

// Loader produces a value for a key during warming. It mirrors the
// engine's own Loader type so the same function value can back both.
type Loader[K comparable, V any] func(key K) (V, error)

// Target is the subset of the engine's contract the warmer needs: the
// ability to insert a successfully loaded value. Any Cache[K, V]
// satisfies this automatically.
type Target[K comparable, V any] interface {
	Put(key K, value V)
}

// Result reports the outcome of a Warm call.
type Result struct {
	SuccessCount int
	FailCount    int
	TotalCount   int
	ElapsedMs    int64
}

// Warmer runs a Loader over a batch of keys on a bounded-concurrency
// worker pool and inserts every success into a Target.
type Warmer[K comparable, V any] struct {
	loader      Loader[K, V]
	concurrency int
}

// New validates its arguments at construction — a missing loader or a
// non-positive concurrency both fail immediately rather than during
// the first Warm call.
func New[K comparable, V any](loader Loader[K, V], concurrency int) (*Warmer[K, V], error) {
	if loader == nil {
		return nil, ErrNoLoader
	}
	if concurrency <= 0 {
		return nil, ErrInvalidConcurrency
	}
	return &Warmer[K, V]{loader: loader, concurrency: concurrency}, nil
}

// Warm invokes the loader for every key in keys, one errgroup goroutine
// per key with at most w.concurrency in flight (a semaphore bounds
// them), and puts every
// successful load into target. A failed load is counted but does not
// abort the batch or the other in-flight loads. An empty key list
// returns an all-zero Result with zero elapsed time, without starting
// any goroutine.
func (w *Warmer[K, V]) Warm(ctx context.Context, target Target[K, V], keys []K) Result {
	if len(keys) == 0 {
		return Result{}
	}

	start := time.Now()
	sem := semaphore.NewWeighted(int64(w.concurrency))
	group, gctx := errgroup.WithContext(ctx)

	var success, fail atomic.Int64
	for _, key := range keys {
		key := key
		if err := sem.Acquire(gctx, 1); err != nil {
			// Context cancelled: stop launching new work, but still
			// wait for in-flight loads below.
			break
		}
		group.Go(func() error {
			defer sem.Release(1)
			value, err := w.loader(key)
			if err != nil {
				fail.Add(1)
				return nil
			}
			target.Put(key, value)
			success.Add(1)
			return nil
		})
	}
	_ = group.Wait()

	return Result{
		SuccessCount: int(success.Load()),
		FailCount:    int(fail.Load()),
		TotalCount:   len(keys),
		ElapsedMs:    time.Since(start).Milliseconds(),
	}
}
