package tempuscache

import "sync/atomic"

/*
Stats tracks seven monotonic counters: hits, misses, evictions,
successful loads, load failures, TTL expirations, and puts.

Each counter is an atomic.Uint64 so it can be read and incremented
from any goroutine without touching the cache lock at all — counters
are independent of each other and may briefly disagree under
concurrent activity.
*/
type Stats struct {
	enabled bool

	hits         atomic.Uint64
	misses       atomic.Uint64
	evictions    atomic.Uint64
	loads        atomic.Uint64
	loadFailures atomic.Uint64
	expirations  atomic.Uint64
	puts         atomic.Uint64
}

func newStats(enabled bool) *Stats {
	return &Stats{enabled: enabled}
}

func (s *Stats) recordHit() {
	if s.enabled {
		s.hits.Add(1)
	}
}

func (s *Stats) recordMiss() {
	if s.enabled {
		s.misses.Add(1)
	}
}

func (s *Stats) recordEviction() {
	if s.enabled {
		s.evictions.Add(1)
	}
}

func (s *Stats) recordLoad() {
	if s.enabled {
		s.loads.Add(1)
	}
}

func (s *Stats) recordLoadFailure() {
	if s.enabled {
		s.loadFailures.Add(1)
	}
}

func (s *Stats) recordExpiration() {
	if s.enabled {
		s.expirations.Add(1)
	}
}

func (s *Stats) recordPut() {
	if s.enabled {
		s.puts.Add(1)
	}
}

// Reset returns every counter to zero. Each counter resets
// independently of the others and of any concurrent increment racing
// the reset itself.
func (s *Stats) Reset() {
	s.hits.Store(0)
	s.misses.Store(0)
	s.evictions.Store(0)
	s.loads.Store(0)
	s.loadFailures.Store(0)
	s.expirations.Store(0)
	s.puts.Store(0)
}

func (s *Stats) Hits() uint64         { return s.hits.Load() }
func (s *Stats) Misses() uint64       { return s.misses.Load() }
func (s *Stats) Evictions() uint64    { return s.evictions.Load() }
func (s *Stats) Loads() uint64        { return s.loads.Load() }
func (s *Stats) LoadFailures() uint64 { return s.loadFailures.Load() }
func (s *Stats) Expirations() uint64  { return s.expirations.Load() }
func (s *Stats) Puts() uint64         { return s.puts.Load() }

// HitRate returns hits/(hits+misses), 0 when both are zero.
func (s *Stats) HitRate() float64 {
	return rate(s.hits.Load(), s.misses.Load(), true)
}

// MissRate returns misses/(hits+misses), 0 when both are zero.
func (s *Stats) MissRate() float64 {
	return rate(s.hits.Load(), s.misses.Load(), false)
}

// TotalRequestCount returns hits+misses.
func (s *Stats) TotalRequestCount() uint64 {
	return s.hits.Load() + s.misses.Load()
}

// StatsSnapshot is an immutable, point-in-time copy of Stats. Once
// taken it is a plain value: nothing about further counter activity
// on the live Stats can change it.
type StatsSnapshot struct {
	Hits         uint64
	Misses       uint64
	Evictions    uint64
	Loads        uint64
	LoadFailures uint64
	Expirations  uint64
	Puts         uint64
}

// Snapshot copies every counter's current value into a StatsSnapshot.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Hits:         s.hits.Load(),
		Misses:       s.misses.Load(),
		Evictions:    s.evictions.Load(),
		Loads:        s.loads.Load(),
		LoadFailures: s.loadFailures.Load(),
		Expirations:  s.expirations.Load(),
		Puts:         s.puts.Load(),
	}
}

func (ss StatsSnapshot) HitRate() float64          { return rate(ss.Hits, ss.Misses, true) }
func (ss StatsSnapshot) MissRate() float64         { return rate(ss.Hits, ss.Misses, false) }
func (ss StatsSnapshot) TotalRequestCount() uint64 { return ss.Hits + ss.Misses }

func rate(hits, misses uint64, wantHitRate bool) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	if wantHitRate {
		return float64(hits) / float64(total)
	}
	return float64(misses) / float64(total)
}
