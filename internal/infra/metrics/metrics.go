// File: internal/infra/metrics/metrics.go
package metrics

import (
	"strconv"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	paymentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_total",
			Help: "Payments by status (pending/completed/failed).",
		},
		[]string{"status"},
	)

	paymentCallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_callbacks_total",
			Help: "Gateway callbacks by result (completed/failed/duplicate/unknown_ref).",
		},
		[]string{"result"},
	)

	gatewayLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_request_duration_seconds",
			Help:    "Outbound payment gateway call latency.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"provider", "success"},
	)

	cacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "Cache lookups by entity and result (hit/miss).",
		},
		[]string{"entity", "result"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status code.",
		},
		[]string{"route", "status"},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			paymentsTotal, paymentCallbacks, gatewayLatency,
			cacheRequests, httpRequests,
		)
	})
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func IncPayment(status string) {
	paymentsTotal.WithLabelValues(norm(status)).Inc()
}

func IncCallback(result string) {
	paymentCallbacks.WithLabelValues(norm(result)).Inc()
}

func ObserveGatewayCall(provider string, seconds float64, success bool) {
	gatewayLatency.WithLabelValues(norm(provider), strconv.FormatBool(success)).Observe(seconds)
}

func IncCacheRequest(entity, result string) {
	cacheRequests.WithLabelValues(norm(entity), norm(result)).Inc()
}

func IncHTTPRequest(route string, status int) {
	httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}
