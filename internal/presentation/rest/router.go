package rest

import (
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewRouter assembles the HTTP surface: prediction and health routes, an
// optional /metrics handler, and the logging, recovery and tracing
// middleware.
func NewRouter(service string, predictions *PredictionHandler, health *HealthHandler, metrics http.Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	predictions.RegisterRoutes(mux)
	health.RegisterRoutes(mux)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}

	var h http.Handler = mux
	h = RecoveryMiddleware(logger)(h)
	h = LoggingMiddleware(logger)(h)

	return otelhttp.NewHandler(h, service,
		otelhttp.WithFilter(traced),
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + route(r.URL.Path)
		}),
	)
}

// route collapses path parameters so span names stay low-cardinality.
func route(path string) string {
	if strings.HasPrefix(path, "/predictions/") {
		return "/predictions/{id}"
	}
	return path
}

// traced excludes probe and scrape traffic from tracing.
func traced(r *http.Request) bool {
	switch r.URL.Path {
	case "/healthz", "/readyz", "/metrics":
		return false
	}
	return true
}
