package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Upstream (clinic platform) metrics
	UpstreamRequests *prometheus.CounterVec
	UpstreamLatency  *prometheus.HistogramVec
	UpstreamFailures *prometheus.CounterVec

	// Reference-data cache metrics
	RefdataRefreshes   *prometheus.CounterVec
	RefdataEntities    *prometheus.GaugeVec
	RefdataLastRefresh prometheus.Gauge
	DroppedEvents      prometheus.Counter
	UnrecognizedEnums  *prometheus.CounterVec

	// Session metrics
	SessionsCreated prometheus.Counter
	SessionsActive  prometheus.Gauge
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace, subsystem string) *Metrics {
	return &Metrics{
		UpstreamRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "upstream_requests_total",
			Help:      "Total number of requests to the clinic platform",
		}, []string{"resource", "status"}),
		UpstreamLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of clinic platform requests",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"resource"}),
		UpstreamFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "upstream_failures_total",
			Help:      "Total number of failed clinic platform requests",
		}, []string{"resource"}),
		RefdataRefreshes: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "refdata_refreshes_total",
			Help:      "Reference-data refresh attempts",
		}, []string{"status"}),
		RefdataEntities: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "refdata_entities",
			Help:      "Number of cached reference entities per kind",
		}, []string{"kind"}),
		RefdataLastRefresh: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "refdata_last_refresh_timestamp_seconds",
			Help:      "Unix time of the last successful reference-data refresh",
		}),
		DroppedEvents: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "events_dropped_total",
			Help:      "Events dropped during normalization (invalid range or ids)",
		}),
		UnrecognizedEnums: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "events_unrecognized_enum_total",
			Help:      "Events observed with a status or type outside the closed sets",
		}, []string{"field"}),
		SessionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "sessions_created_total",
			Help:      "Console sessions created",
		}),
		SessionsActive: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "sessions_active",
			Help:      "Console sessions currently tracked in the local store",
		}),
	}
}
