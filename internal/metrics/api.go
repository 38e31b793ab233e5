package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// UnknownRoute labels requests that matched no API route.
const UnknownRoute = "unknown"

// Outcome classes of an API response, derived from its status code.
const (
	OutcomeOK            = "ok"
	OutcomeBadRequest    = "bad_request"
	OutcomeNotFound      = "not_found"
	OutcomeNotConfigured = "not_configured"
	OutcomeUpstream      = "upstream_error"
	OutcomeRateLimited   = "rate_limited"
	OutcomeInternal      = "internal_error"
)

// API request metrics, labelled by chi route pattern.
var (
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wikibot",
			Name:      "api_requests_total",
			Help:      "API requests by route, status code and outcome",
		},
		[]string{"route", "status", "outcome"},
	)

	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wikibot",
			Name:      "api_request_duration_seconds",
			Help:      "API request duration in seconds, search and answer included",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"route", "outcome"},
	)
)

// Middleware records every API request under its route pattern and outcome.
// Must be mounted on the chi router so the route pattern is known after routing.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := Route(r)
			outcome := Outcome(status)

			APIRequestsTotal.WithLabelValues(route, strconv.Itoa(status), outcome).Inc()
			APIRequestDuration.WithLabelValues(route, outcome).Observe(time.Since(start).Seconds())
		})
	}
}

// Route returns "METHOD pattern" for a routed request, or UnknownRoute.
// Raw paths are never used so that label cardinality stays bounded.
func Route(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return UnknownRoute
	}
	pattern := rctx.RoutePattern()
	// a bare mount wildcard means no route under the mount matched
	if pattern == "" || strings.HasSuffix(pattern, "/*") {
		return UnknownRoute
	}
	return r.Method + " " + pattern
}

// Outcome maps a response status code to its outcome class.
func Outcome(status int) string {
	switch {
	case status == http.StatusTooManyRequests:
		return OutcomeRateLimited
	case status == http.StatusServiceUnavailable:
		return OutcomeNotConfigured
	case status == http.StatusBadGateway:
		return OutcomeUpstream
	case status == http.StatusNotFound || status == http.StatusMethodNotAllowed:
		return OutcomeNotFound
	case status >= 500:
		return OutcomeInternal
	case status >= 400:
		return OutcomeBadRequest
	default:
		return OutcomeOK
	}
}
