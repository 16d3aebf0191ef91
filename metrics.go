package neodb

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordLink is called once after the database has been linked.
	RecordLink(stats Stats, duration time.Duration)

	// RecordLookup is called after each point lookup.
	// kind is "designation" or "name".
	RecordLookup(kind string, found bool)

	// RecordQuery is called when a query scan finishes or is stopped by the
	// consumer. scanned is the number of approaches tested.
	RecordQuery(scanned, matched int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLink(Stats, time.Duration)     {}
func (NoopMetricsCollector) RecordLookup(string, bool)           {}
func (NoopMetricsCollector) RecordQuery(int, int, time.Duration) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LinkNanos       atomic.Int64
	Orphans         atomic.Int64
	LookupCount     atomic.Int64
	LookupMisses    atomic.Int64
	QueryCount      atomic.Int64
	QueryScanned    atomic.Int64
	QueryMatched    atomic.Int64
	QueryTotalNanos atomic.Int64
}

// RecordLink implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLink(stats Stats, duration time.Duration) {
	b.LinkNanos.Store(duration.Nanoseconds())
	b.Orphans.Store(int64(stats.Orphans))
}

// RecordLookup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLookup(_ string, found bool) {
	b.LookupCount.Add(1)
	if !found {
		b.LookupMisses.Add(1)
	}
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(scanned, matched int, duration time.Duration) {
	b.QueryCount.Add(1)
	b.QueryScanned.Add(int64(scanned))
	b.QueryMatched.Add(int64(matched))
	b.QueryTotalNanos.Add(duration.Nanoseconds())
}

// MetricsStats is a snapshot of BasicMetricsCollector.
type MetricsStats struct {
	LinkNanos     int64
	Orphans       int64
	LookupCount   int64
	LookupMisses  int64
	QueryCount    int64
	QueryScanned  int64
	QueryMatched  int64
	QueryAvgNanos int64
}

// GetStats returns a snapshot of the collected metrics.
func (b *BasicMetricsCollector) GetStats() MetricsStats {
	s := MetricsStats{
		LinkNanos:    b.LinkNanos.Load(),
		Orphans:      b.Orphans.Load(),
		LookupCount:  b.LookupCount.Load(),
		LookupMisses: b.LookupMisses.Load(),
		QueryCount:   b.QueryCount.Load(),
		QueryScanned: b.QueryScanned.Load(),
		QueryMatched: b.QueryMatched.Load(),
	}
	if s.QueryCount > 0 {
		s.QueryAvgNanos = b.QueryTotalNanos.Load() / s.QueryCount
	}
	return s
}
