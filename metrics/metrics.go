// Package metrics mirrors a cache's live statistics as Prometheus
// metrics, the same way platform-agent's internal/metrics package and
// arena-cache export their own counters: a small wrapper around a
// dedicated prometheus.Registry with a Handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Snapshot is the subset of tempuscache.StatsSnapshot the recorder
// needs. Defined locally (rather than importing the root package) so
// metrics stays usable against any counter source shaped this way,
// and so the root package never has to import its own subpackage.
type Snapshot struct {
	Hits         uint64
	Misses       uint64
	Evictions    uint64
	Loads        uint64
	LoadFailures uint64
	Expirations  uint64
	Puts         uint64
}

// Recorder implements prometheus.Collector by pulling a fresh
// Snapshot on every scrape rather than keeping its own counters, so
// the exported series can never drift from the cache's own
// statistics handle.
type Recorder struct {
	snapshot func() Snapshot
	registry *prometheus.Registry

	hits, misses, evictions, loads, loadFailures, expirations, puts *prometheus.Desc
}

// New builds a Recorder that scrapes snapshot on demand and registers
// itself with a fresh Registry under namespace.
func New(namespace string, snapshot func() Snapshot) *Recorder {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, nil, nil)
	}

	r := &Recorder{
		snapshot:     snapshot,
		hits:         desc("cache_hits_total", "Total cache hits."),
		misses:       desc("cache_misses_total", "Total cache misses."),
		evictions:    desc("cache_evictions_total", "Total entries evicted due to capacity."),
		loads:        desc("cache_loads_total", "Total successful loader invocations."),
		loadFailures: desc("cache_load_failures_total", "Total failed loader invocations."),
		expirations:  desc("cache_expirations_total", "Total entries removed due to TTL expiry."),
		puts:         desc("cache_puts_total", "Total insertions or overwrites."),
	}

	r.registry = prometheus.NewRegistry()
	r.registry.MustRegister(r)
	return r
}

// Describe implements prometheus.Collector.
func (r *Recorder) Describe(ch chan<- *prometheus.Desc) {
	ch <- r.hits
	ch <- r.misses
	ch <- r.evictions
	ch <- r.loads
	ch <- r.loadFailures
	ch <- r.expirations
	ch <- r.puts
}

// Collect implements prometheus.Collector.
func (r *Recorder) Collect(ch chan<- prometheus.Metric) {
	snap := r.snapshot()
	ch <- prometheus.MustNewConstMetric(r.hits, prometheus.CounterValue, float64(snap.Hits))
	ch <- prometheus.MustNewConstMetric(r.misses, prometheus.CounterValue, float64(snap.Misses))
	ch <- prometheus.MustNewConstMetric(r.evictions, prometheus.CounterValue, float64(snap.Evictions))
	ch <- prometheus.MustNewConstMetric(r.loads, prometheus.CounterValue, float64(snap.Loads))
	ch <- prometheus.MustNewConstMetric(r.loadFailures, prometheus.CounterValue, float64(snap.LoadFailures))
	ch <- prometheus.MustNewConstMetric(r.expirations, prometheus.CounterValue, float64(snap.Expirations))
	ch <- prometheus.MustNewConstMetric(r.puts, prometheus.CounterValue, float64(snap.Puts))
}

// Handler serves the recorder's registry at the conventional
// /metrics path.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
