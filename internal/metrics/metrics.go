package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served by the dashboard",
		},
		[]string{"route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	DashboardRenders = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dashboard_renders_total",
			Help: "Total number of dashboard view recomputations",
		},
	)

	DashboardFilteredRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dashboard_filtered_rows",
			Help: "Row count of the most recent filtered view",
		},
	)

	DatasetRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_records",
			Help: "Number of employee records loaded at startup",
		},
	)
)

// ObserveRender records one recomputation of the dashboard view.
func ObserveRender(filteredRows int) {
	DashboardRenders.Inc()
	DashboardFilteredRows.Set(float64(filteredRows))
}
