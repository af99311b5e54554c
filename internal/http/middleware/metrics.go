package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"ivarberg/internal/metrics"
)

// Metrics records request counts and latencies labelled by route template.
// It must run inside the router so the matched route is known.
func Metrics(m *metrics.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := wrap(w)

			next.ServeHTTP(rw, r)

			m.HTTPRequest(r.Method, routeName(r), rw.statusCode, time.Since(start))
		})
	}
}

func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}
