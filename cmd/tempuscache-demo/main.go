// Command tempuscache-demo exercises the engine end to end: a loader-
// backed cache, a bulk warmer run over a key batch, a Prometheus
// scrape endpoint, and a printed statistics snapshot.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"

	tempuscache "github.com/coldtier/tempuscache"
	"github.com/coldtier/tempuscache/metrics"
	"github.com/coldtier/tempuscache/warmer"
)

func main() {
	var (
		capacity    = flag.Int("capacity", 128, "maximum number of live entries")
		ttl         = flag.Duration("ttl", 30*time.Second, "per-entry time-to-live")
		cleanup     = flag.Duration("cleanup-interval", 5*time.Second, "background sweeper interval")
		warmKeys    = flag.Int("warm-keys", 50, "number of keys to warm at startup")
		concurrency = flag.Int("warm-concurrency", 8, "warmer worker pool size")
		addr        = flag.String("addr", ":9090", "address to serve /metrics on")
	)
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("tempuscache-demo: building logger: %v", err)
	}
	defer logger.Sync()

	loader := func(key string) (string, error) {
		if key == "" {
			return "", tempuscache.ErrLoaderNoValue
		}
		return "loaded:" + key, nil
	}

	cache, err := tempuscache.New[string, string](
		tempuscache.WithCapacity[string, string](*capacity),
		tempuscache.WithTTL[string, string](*ttl),
		tempuscache.WithCleanupInterval[string, string](*cleanup),
		tempuscache.WithLoader[string, string](loader),
		tempuscache.WithLogger[string, string](logger),
	)
	if err != nil {
		log.Fatalf("tempuscache-demo: constructing cache: %v", err)
	}
	defer cache.Shutdown()

	w, err := warmer.New[string, string](
		func(key string) (string, error) { return "warm:" + key, nil },
		*concurrency,
	)
	if err != nil {
		log.Fatalf("tempuscache-demo: constructing warmer: %v", err)
	}

	keys := make([]string, *warmKeys)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", i)
	}

	result := w.Warm(context.Background(), cache, keys)
	logger.Info("warm complete",
		zap.Int("success", result.SuccessCount),
		zap.Int("fail", result.FailCount),
		zap.Int64("elapsed_ms", result.ElapsedMs),
	)

	// A handful of reads exercise both the hit path (warmed keys) and
	// the loader path (a key never warmed).
	for i := 0; i < 5; i++ {
		cache.Get(fmt.Sprintf("key-%d", i))
	}
	cache.Get("never-warmed")

	recorder := metrics.New("tempuscache_demo", func() metrics.Snapshot {
		snap := cache.Stats().Snapshot()
		return metrics.Snapshot{
			Hits:         snap.Hits,
			Misses:       snap.Misses,
			Evictions:    snap.Evictions,
			Loads:        snap.Loads,
			LoadFailures: snap.LoadFailures,
			Expirations:  snap.Expirations,
			Puts:         snap.Puts,
		}
	})

	snap := cache.Stats().Snapshot()
	fmt.Printf("hits=%d misses=%d puts=%d evictions=%d loads=%d loadFailures=%d expirations=%d hitRate=%.2f\n",
		snap.Hits, snap.Misses, snap.Puts, snap.Evictions, snap.Loads, snap.LoadFailures, snap.Expirations, snap.HitRate())

	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())
	logger.Info("serving metrics", zap.String("addr", *addr))
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatalf("tempuscache-demo: serving metrics: %v", err)
	}
}
