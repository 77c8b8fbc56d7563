package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/daybookhq/daybook-backend/internal/metrics"
)

// Metrics returns middleware that records request counts and latency per
// route. It must wrap the mux directly: the route label comes from
// r.Pattern, which the mux fills in on the request it was handed, so any
// middleware between this one and the mux that clones the request would
// hide it.
func Metrics(m *metrics.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			m.ObserveHTTPRequest(r.Method, route, strconv.Itoa(sw.status), time.Since(start))
		})
	}
}
