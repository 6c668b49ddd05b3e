package middleware

import (
	"lending-api/internal/infrastructure/monitoring"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// unmatchedRoute labels requests no route claimed, so scanners probing random
// paths cannot grow the series count.
const unmatchedRoute = "unmatched"

// MetricsMiddleware records lending API traffic by chi route template, so every
// /loans/{loanID}/accept call lands in one series regardless of loan id.
func MetricsMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			monitoring.HTTP.InFlight.Inc()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				monitoring.HTTP.InFlight.Dec()
				monitoring.RecordHTTPRequest(r.Method, metricsRoute(r), strconv.Itoa(ww.Status()), time.Since(start))
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

func metricsRoute(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
		return rctx.RoutePattern()
	}
	return unmatchedRoute
}
