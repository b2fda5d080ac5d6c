package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus collectors for the dashboard. Registered once on the default
// registry via promauto; served by the /metrics endpoint.
var (
	// HTTPRequestsTotal counts HTTP requests by method, route and status class
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deliverypulse_http_requests_total",
		Help: "Total number of HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration observes request latency by route
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "deliverypulse_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// DatasetRows tracks the number of delivery records loaded for the session
	DatasetRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "deliverypulse_dataset_rows",
		Help: "Number of delivery records loaded for the current session.",
	})

	// ReportsGenerated counts generated reports by format and outcome
	ReportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deliverypulse_reports_generated_total",
		Help: "Total number of report generation attempts.",
	}, []string{"format", "outcome"})

	// ReportDuration observes end-to-end report generation latency
	ReportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "deliverypulse_report_duration_seconds",
		Help:    "Report generation latency in seconds.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"format"})

	// ChartsRendered counts chart rasterizations by chart name and outcome
	ChartsRendered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deliverypulse_charts_rendered_total",
		Help: "Total number of chart rasterizations.",
	}, []string{"chart", "outcome"})
)
