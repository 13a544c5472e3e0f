package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Requester label values.
const (
	RequesterAnonymous = "anonymous"
	RequesterUser      = "user"
)

// routeUnmatched labels requests no route matched, so probes of random paths
// collapse into one series.
const routeUnmatched = "unmatched"

var (
	// Feed requests rank a few hundred candidates in memory; most of the
	// latency is the collaborator round trips, bounded by the request timeout.
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "petfeed",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.2, 0.3, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "route", "status", "requester"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "petfeed",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status", "requester"},
	)

	httpRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "petfeed",
			Name:      "http_requests_in_flight",
			Help:      "HTTP requests currently being served",
		},
	)
)

func init() {
	prometheus.MustRegister(httpRequestDuration, httpRequestsTotal, httpRequestsInFlight)
}

// Middleware records duration and count per chi route pattern.
// requester classifies the caller as RequesterAnonymous or RequesterUser; nil
// labels every request anonymous. Scrapes of /metrics are not recorded.
func Middleware(requester func(*http.Request) string) func(next http.Handler) http.Handler {
	if requester == nil {
		requester = func(*http.Request) string { return RequesterAnonymous }
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			httpRequestsInFlight.Inc()
			defer httpRequestsInFlight.Dec()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := routeLabel(chi.RouteContext(r.Context()))
			if route == "/metrics" {
				return
			}
			labels := prometheus.Labels{
				"method":    r.Method,
				"route":     route,
				"status":    statusLabel(ww.Status()),
				"requester": requester(r),
			}
			httpRequestDuration.With(labels).Observe(time.Since(start).Seconds())
			httpRequestsTotal.With(labels).Inc()
		})
	}
}

func routeLabel(rctx *chi.Context) string {
	if rctx == nil {
		return routeUnmatched
	}
	if p := rctx.RoutePattern(); p != "" {
		return p
	}
	return routeUnmatched
}

// statusLabel treats a handler that never wrote a header as 200.
func statusLabel(status int) string {
	if status == 0 {
		status = http.StatusOK
	}
	return strconv.Itoa(status)
}
