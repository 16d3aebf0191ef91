package server

import (
	"time"

	"github.com/hupe1980/neodb"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements neodb.MetricsCollector.
type PrometheusCollector struct {
	linkDuration prometheus.Gauge
	records      *prometheus.GaugeVec
	lookups      *prometheus.CounterVec
	queryLatency prometheus.Histogram
	queryRows    *prometheus.CounterVec
}

var _ neodb.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheusCollector creates the collectors and registers them with reg.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		linkDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "neodb_link_duration_seconds",
			Help: "Time spent linking and indexing the database",
		}),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "neodb_records",
			Help: "Records in the database by kind",
		}, []string{"kind"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "neodb_lookups_total",
			Help: "Point lookups by key kind and result",
		}, []string{"kind", "result"}),
		queryLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "neodb_query_duration_seconds",
			Help:    "Latency of query scans",
			Buckets: prometheus.DefBuckets,
		}),
		queryRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "neodb_query_rows_total",
			Help: "Approaches scanned and matched by queries",
		}, []string{"stage"}),
	}

	reg.MustRegister(c.linkDuration, c.records, c.lookups, c.queryLatency, c.queryRows)
	return c
}

func (c *PrometheusCollector) RecordLink(stats neodb.Stats, d time.Duration) {
	c.linkDuration.Set(d.Seconds())
	c.records.WithLabelValues("neos").Set(float64(stats.NEOs))
	c.records.WithLabelValues("approaches").Set(float64(stats.Approaches))
	c.records.WithLabelValues("orphans").Set(float64(stats.Orphans))
	c.records.WithLabelValues("duplicates").Set(float64(stats.Duplicates))
}

func (c *PrometheusCollector) RecordLookup(kind string, found bool) {
	result := "hit"
	if !found {
		result = "miss"
	}
	c.lookups.WithLabelValues(kind, result).Inc()
}

func (c *PrometheusCollector) RecordQuery(scanned, matched int, d time.Duration) {
	c.queryLatency.Observe(d.Seconds())
	c.queryRows.WithLabelValues("scanned").Add(float64(scanned))
	c.queryRows.WithLabelValues("matched").Add(float64(matched))
}
