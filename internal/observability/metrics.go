// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SaiAdithya3/midgaurdapi/internal/domain"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Ingestion metrics
	PagesIngested    *prometheus.CounterVec
	SamplesStored    *prometheus.CounterVec
	SamplesDropped   *prometheus.CounterVec
	FieldParseErrors *prometheus.CounterVec
	StoreWriteErrors *prometheus.CounterVec
	WalkFailures     *prometheus.CounterVec
	WalkDuration     *prometheus.HistogramVec

	// Scheduler metrics
	TicksTotal         prometheus.Counter
	LastTickTimestamp  prometheus.Gauge
	WatermarkTimestamp prometheus.Gauge

	// Query metrics
	QueryRequests *prometheus.CounterVec
	QueryDuration *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "midgard_mirror"
	}

	m := &Metrics{
		PagesIngested: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "pages_ingested_total",
			Help:      "Total number of upstream pages ingested by family",
		}, []string{"family"}),
		SamplesStored: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "samples_stored_total",
			Help:      "Total number of samples stored by family",
		}, []string{"family"}),
		SamplesDropped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "samples_dropped_total",
			Help:      "Total number of records dropped for unparsable start/end time",
		}, []string{"family"}),
		FieldParseErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "field_parse_errors_total",
			Help:      "Total number of numeric fields coerced to zero",
		}, []string{"family"}),
		StoreWriteErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "store_write_errors_total",
			Help:      "Total number of per-record insert failures",
		}, []string{"family"}),
		WalkFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "walk_failures_total",
			Help:      "Total number of failed family walks",
		}, []string{"family"}),
		WalkDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "walk_duration_seconds",
			Help:      "Family walk duration in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600, 1800},
		}, []string{"family"}),

		TicksTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "ticks_total",
			Help:      "Total number of scheduler ticks",
		}),
		LastTickTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "last_tick_timestamp",
			Help:      "Unix timestamp of the last completed tick",
		}),
		WatermarkTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "watermark_timestamp",
			Help:      "Unix timestamp of the persisted ingestion watermark",
		}),

		QueryRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "query_requests_total",
			Help:      "Total number of history queries by family and status",
		}, []string{"family", "status"}),
		QueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "query_duration_seconds",
			Help:      "History query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"family"}),
	}

	// Expose every family's ingestion series at zero before the first walk.
	for _, f := range domain.Families {
		m.PagesIngested.WithLabelValues(f.String())
		m.SamplesStored.WithLabelValues(f.String())
		m.SamplesDropped.WithLabelValues(f.String())
		m.FieldParseErrors.WithLabelValues(f.String())
		m.StoreWriteErrors.WithLabelValues(f.String())
		m.WalkFailures.WithLabelValues(f.String())
	}

	return m
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
