package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests.",
	}, []string{"method", "path", "status_code"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status_code"})
)

const publicFormPrefix = "/public/forms/"

// routePattern labels by chi pattern so tokens and ids never become label values.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func loggedPath(r *http.Request) string {
	if strings.HasPrefix(r.URL.Path, publicFormPrefix) {
		return routePattern(r)
	}
	return r.URL.Path
}

func MetricsMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				duration := time.Since(start)
				statusCode := ww.Status()
				pattern := routePattern(r)

				httpRequestsTotal.WithLabelValues(r.Method, pattern, http.StatusText(statusCode)).Inc()
				httpRequestDuration.WithLabelValues(r.Method, pattern, http.StatusText(statusCode)).Observe(duration.Seconds())
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
