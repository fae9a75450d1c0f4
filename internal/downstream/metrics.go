package downstream

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "admin_console",
			Name:      "downstream_requests_total",
			Help:      "Backend API calls by method and outcome (status code or transport error kind)",
		},
		[]string{"method", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "admin_console",
			Name:      "downstream_request_duration_seconds",
			Help:      "Backend API call duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method"},
	)

	forcedLogouts = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "admin_console",
			Name:      "forced_logouts_total",
			Help:      "Sessions invalidated because the backend answered 401",
		},
	)
)
