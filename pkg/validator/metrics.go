package validator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	findingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleetcheck_validation_findings_total",
			Help: "Total number of validation findings produced",
		},
		[]string{"severity", "category"},
	)

	unregisteredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fleetcheck_validation_unregistered_fields_total",
			Help: "Total number of report readings with no registered range",
		},
	)

	reportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fleetcheck_report_validation_duration_seconds",
			Help:    "Duration of service report validation in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)
)
