// Package metrics provides Prometheus metrics for the Fern service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransferRunsTotal tracks transfer runs by terminal status
	TransferRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fern",
			Subsystem: "transfer",
			Name:      "runs_total",
			Help:      "Total number of transfer runs by terminal status",
		},
		[]string{"status"},
	)

	// TransferRunDuration tracks transfer run duration in seconds
	TransferRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fern",
			Subsystem: "transfer",
			Name:      "run_duration_seconds",
			Help:      "Duration of transfer runs in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		},
		[]string{"dry_run"},
	)

	// RecordsProcessedTotal tracks per-record outcomes within transfer runs
	RecordsProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fern",
			Subsystem: "transfer",
			Name:      "records_processed_total",
			Help:      "Total number of records processed by outcome",
		},
		[]string{"outcome"},
	)

	// EndpointRequestsTotal tracks outbound requests to workflow endpoints
	EndpointRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fern",
			Subsystem: "endpoint",
			Name:      "requests_total",
			Help:      "Total number of outbound endpoint requests",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// EndpointRequestDuration tracks outbound endpoint request duration
	EndpointRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fern",
			Subsystem: "endpoint",
			Name:      "request_duration_seconds",
			Help:      "Duration of outbound endpoint requests in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint", "method"},
	)

	// ValidationRunsTotal tracks validation runs by outcome
	ValidationRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fern",
			Subsystem: "validation",
			Name:      "runs_total",
			Help:      "Total number of validation runs by outcome",
		},
		[]string{"valid"},
	)
)

// RecordEndpointRequest records an outbound endpoint request metric
func RecordEndpointRequest(endpoint, method, statusCode string, durationSeconds float64) {
	EndpointRequestsTotal.WithLabelValues(endpoint, method, statusCode).Inc()
	EndpointRequestDuration.WithLabelValues(endpoint, method).Observe(durationSeconds)
}

// RecordTransferRun records a finished transfer run
func RecordTransferRun(status string, dryRun bool, durationSeconds float64) {
	TransferRunsTotal.WithLabelValues(status).Inc()
	if dryRun {
		TransferRunDuration.WithLabelValues("true").Observe(durationSeconds)
	} else {
		TransferRunDuration.WithLabelValues("false").Observe(durationSeconds)
	}
}

// RecordRecordOutcome records a single record outcome within a run
func RecordRecordOutcome(outcome string) {
	RecordsProcessedTotal.WithLabelValues(outcome).Inc()
}
