package middleware

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "admin-console"

// Tracing instruments console requests with OpenTelemetry server spans.
func Tracing(serviceName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, serviceName,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	}
}

// TracingTransport starts a client span for every backend API call and
// injects the trace context into the outgoing headers.
type TracingTransport struct {
	Base http.RoundTripper
	// Provider defaults to the global tracer provider.
	Provider trace.TracerProvider
}

func (t *TracingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	provider := t.Provider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}

	ctx, span := provider.Tracer(tracerName).Start(req.Context(), "backend "+req.Method+" "+req.URL.Path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.HTTPRequestMethodKey.String(req.Method),
			semconv.URLFull(req.URL.Redacted()),
			semconv.ServerAddress(req.URL.Hostname()),
		),
	)
	defer span.End()

	// RoundTrippers must not mutate the caller's request
	req = req.Clone(ctx)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return resp, err
	}

	span.SetAttributes(semconv.HTTPResponseStatusCode(resp.StatusCode))
	// 4xx is the backend answering; a 401 here is the session expiring
	if resp.StatusCode >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, resp.Status)
	}
	return resp, nil
}
