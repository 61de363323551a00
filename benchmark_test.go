package tempuscache

import (
	"testing"
	"time"
)

/*
BenchmarkPut measures the performance of Put's overwrite path: the
same key written repeatedly, so the map never grows and the benchmark
isolates lock overhead, entry field assignment, and moveToHead cost.
*/
func BenchmarkPut(b *testing.B) {
	c, err := New[string, string](
		WithCapacity[string, string](1024),
		WithTTL[string, string](5*time.Second),
		WithCleanupInterval[string, string](time.Hour),
	)
	if err != nil {
		b.Fatal(err)
	}
	defer c.Shutdown()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Put("key", "value")
	}
}

// BenchmarkGetHit measures the promote-on-hit path.
func BenchmarkGetHit(b *testing.B) {
	c, err := New[string, string](
		WithCapacity[string, string](1024),
		WithTTL[string, string](time.Minute),
		WithCleanupInterval[string, string](time.Hour),
	)
	if err != nil {
		b.Fatal(err)
	}
	defer c.Shutdown()
	c.Put("key", "value")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get("key")
	}
}

// BenchmarkPutUniqueKeys measures write-path cost under map growth and
// steady-state eviction once capacity is reached.
func BenchmarkPutUniqueKeys(b *testing.B) {
	c, err := New[int, string](
		WithCapacity[int, string](1024),
		WithTTL[int, string](5*time.Second),
		WithCleanupInterval[int, string](time.Hour),
	)
	if err != nil {
		b.Fatal(err)
	}
	defer c.Shutdown()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Put(i, "value")
	}
}
