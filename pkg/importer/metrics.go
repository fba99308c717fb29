package importer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	importTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleetcheck_import_total",
			Help: "Total number of CSV imports",
		},
		[]string{"status"}, // success or cancelled
	)

	importRowsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fleetcheck_import_rows_total",
			Help: "Total number of CSV rows validated",
		},
	)

	importDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fleetcheck_import_duration_seconds",
			Help:    "Duration of CSV imports in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
	)
)
