package warmer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTarget is a minimal Target for tests, recording every Put under
// a mutex so concurrent loads can be asserted on afterward.
type fakeTarget struct {
	mu   sync.Mutex
	seen map[int]string
}

func newFakeTarget() *fakeTarget {
	return &fakeTarget{seen: make(map[int]string)}
}

func (f *fakeTarget) Put(key int, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen[key] = value
}

func (f *fakeTarget) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.seen)
}

func TestNewValidation(t *testing.T) {
	_, err := New[int, string](nil, 4)
	assert.ErrorIs(t, err, ErrNoLoader)

	loader := func(k int) (string, error) { return "", nil }
	_, err = New[int, string](loader, 0)
	assert.ErrorIs(t, err, ErrInvalidConcurrency)

	_, err = New[int, string](loader, -1)
	assert.ErrorIs(t, err, ErrInvalidConcurrency)

	w, err := New[int, string](loader, 4)
	require.NoError(t, err)
	require.NotNil(t, w)
}

func TestWarmEmptyKeysIsNoop(t *testing.T) {
	loader := func(k int) (string, error) { return "v", nil }
	w, err := New[int, string](loader, 4)
	require.NoError(t, err)

	result := w.Warm(context.Background(), newFakeTarget(), nil)
	assert.Equal(t, Result{}, result)
}

func TestWarmAllSuccess(t *testing.T) {
	loader := func(k int) (string, error) { return "value", nil }
	w, err := New[int, string](loader, 4)
	require.NoError(t, err)

	target := newFakeTarget()
	keys := make([]int, 50)
	for i := range keys {
		keys[i] = i
	}

	result := w.Warm(context.Background(), target, keys)
	assert.Equal(t, 50, result.SuccessCount)
	assert.Equal(t, 0, result.FailCount)
	assert.Equal(t, 50, result.TotalCount)
	assert.Equal(t, 50, target.len())
}

func TestWarmPartialFailureDoesNotAbortBatch(t *testing.T) {
	loader := func(k int) (string, error) {
		if k%2 == 0 {
			return "", errors.New("boom")
		}
		return "value", nil
	}
	w, err := New[int, string](loader, 8)
	require.NoError(t, err)

	target := newFakeTarget()
	keys := make([]int, 20)
	for i := range keys {
		keys[i] = i
	}

	result := w.Warm(context.Background(), target, keys)
	assert.Equal(t, 10, result.SuccessCount)
	assert.Equal(t, 10, result.FailCount)
	assert.Equal(t, 20, result.TotalCount)
	assert.Equal(t, 10, target.len())
}

// TestWarmRespectsConcurrencyBound verifies that no more than the
// configured number of loader invocations run at once.
func TestWarmRespectsConcurrencyBound(t *testing.T) {
	const bound = 3
	var current, peak atomic.Int64

	loader := func(k int) (string, error) {
		n := current.Add(1)
		defer current.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		return "v", nil
	}

	w, err := New[int, string](loader, bound)
	require.NoError(t, err)

	keys := make([]int, 30)
	for i := range keys {
		keys[i] = i
	}

	result := w.Warm(context.Background(), newFakeTarget(), keys)
	assert.Equal(t, 30, result.SuccessCount)
	assert.LessOrEqual(t, peak.Load(), int64(bound))
}

func TestWarmContextCancellationStopsNewWork(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var started atomic.Int64
	loader := func(k int) (string, error) {
		started.Add(1)
		if k == 0 {
			cancel()
		}
		time.Sleep(5 * time.Millisecond)
		return "v", nil
	}

	w, err := New[int, string](loader, 1)
	require.NoError(t, err)

	keys := make([]int, 50)
	for i := range keys {
		keys[i] = i
	}

	result := w.Warm(ctx, newFakeTarget(), keys)
	assert.Less(t, result.SuccessCount+result.FailCount, 50)
	assert.Equal(t, 50, result.TotalCount)
}
