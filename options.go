package tempuscache

import (
	"time"

	"go.uber.org/zap"
)

/*
Config is the immutable configuration a Cache is built from. New
validates it once at construction; a Config value mutated after that
point has no effect on the running engine — there is no live
reference back to it.

Option follows the functional-options pattern, covering every field
the validation below enforces.

	cache, err := New[string, int](
	    WithCapacity[string, int](1000),
	    WithTTL[string, int](time.Minute),
	    WithCleanupInterval[string, int](10*time.Second),
	)
*/
type Config[K comparable, V any] struct {
	Capacity        int
	TTL             time.Duration
	CleanupInterval time.Duration
	RecordStats     bool
	Loader          Loader[K, V]
	Logger          *zap.Logger
}

// validate enforces that capacity, TTL, and the cleanup interval are
// each at least one (millisecond, for the two durations). Any
// violation is a config error returned from New before any resource
// is allocated.
func (cfg Config[K, V]) validate() error {
	if cfg.Capacity < 1 {
		return &ConfigError{Field: "Capacity", Value: cfg.Capacity}
	}
	if cfg.TTL < time.Millisecond {
		return &ConfigError{Field: "TTL", Value: cfg.TTL}
	}
	if cfg.CleanupInterval < time.Millisecond {
		return &ConfigError{Field: "CleanupInterval", Value: cfg.CleanupInterval}
	}
	return nil
}

// Option configures a Cache at construction time.
type Option[K comparable, V any] func(*Config[K, V])

// WithCapacity sets the maximum number of live entries (required).
func WithCapacity[K comparable, V any](capacity int) Option[K, V] {
	return func(cfg *Config[K, V]) { cfg.Capacity = capacity }
}

// WithTTL sets the single uniform per-entry time-to-live (required).
func WithTTL[K comparable, V any](ttl time.Duration) Option[K, V] {
	return func(cfg *Config[K, V]) { cfg.TTL = ttl }
}

// WithCleanupInterval sets the background sweeper's wake period
// (required).
func WithCleanupInterval[K comparable, V any](d time.Duration) Option[K, V] {
	return func(cfg *Config[K, V]) { cfg.CleanupInterval = d }
}

// WithRecordStats toggles statistics collection. When disabled, every
// counter increment becomes a no-op.
func WithRecordStats[K comparable, V any](enabled bool) Option[K, V] {
	return func(cfg *Config[K, V]) { cfg.RecordStats = enabled }
}

// WithLoader installs the on-miss value loader. Omit it to leave the
// engine loader-less: misses simply return no value.
func WithLoader[K comparable, V any](loader Loader[K, V]) Option[K, V] {
	return func(cfg *Config[K, V]) { cfg.Loader = loader }
}

// WithLogger installs a structured logger for sweeper and loader
// diagnostics. Omitted, the engine logs nothing (zap.NewNop).
func WithLogger[K comparable, V any](logger *zap.Logger) Option[K, V] {
	return func(cfg *Config[K, V]) { cfg.Logger = logger }
}
