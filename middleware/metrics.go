package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "admin_console",
		Name:      "http_requests_total",
		Help:      "Console requests by route and status.",
	}, []string{"method", "route", "status"})

	// upper buckets cover the 10s backend timeout
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "admin_console",
		Name:      "http_request_duration_seconds",
		Help:      "Console request latency.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 12},
	}, []string{"method", "route"})

	httpRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "admin_console",
		Name:      "http_requests_in_flight",
		Help:      "Console requests currently being served.",
	})

	loginRedirects = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "admin_console",
		Name:      "login_redirects_total",
		Help:      "Responses that sent the operator to the login page.",
	})
)

// LoginPath is the redirect target counted by loginRedirects.
const LoginPath = "/login"

// Metrics records HTTP RED metrics per chi route pattern.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())

		if status == http.StatusFound && ww.Header().Get("Location") == LoginPath {
			loginRedirects.Inc()
		}
	})
}
