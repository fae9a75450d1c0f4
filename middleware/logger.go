package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// probePaths are logged at debug so orchestrator polling does not drown
// operator traffic.
var probePaths = map[string]bool{
	"/api/healthz": true,
	"/api/readyz":  true,
	"/metrics":     true,
}

// RequestLogger logs every console request on completion. Redirects carry
// their target so forced logouts show up as "location=/login".
func RequestLogger(l zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			var event *zerolog.Event
			switch {
			case status >= 500:
				event = l.Error()
			case status >= 400:
				event = l.Warn()
			case probePaths[r.URL.Path]:
				event = l.Debug()
			default:
				event = l.Info()
			}

			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				event = event.Str("route", rctx.RoutePattern())
			}
			if status >= 300 && status < 400 {
				event = event.Str("location", ww.Header().Get("Location"))
			}

			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("latency", time.Since(start)).
				Str("request_id", GetRequestID(r.Context())).
				Str("ip", r.RemoteAddr).
				Msg("http_request")
		})
	}
}
