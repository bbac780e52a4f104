// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_http_request_duration_seconds",
			Help:    "Duration of HTTP request handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "inventory_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_validation_failures_total",
			Help: "Total number of rejected request payloads",
		},
		[]string{"request", "kind"},
	)

	IdentityLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_identity_lookups_total",
			Help: "Total number of identity service lookups by outcome",
		},
		[]string{"outcome"},
	)

	SchemaVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "inventory_schema_version",
			Help: "Database migration version the service started with",
		},
	)
)
