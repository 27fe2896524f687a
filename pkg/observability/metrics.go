package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Processor call metrics
	remoteCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stripe_gateway_remote_calls_total",
			Help: "Total number of calls to the payment processor",
		},
		[]string{"operation", "outcome"}, // outcome: success, invalid_request, card, authentication, api
	)

	remoteCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stripe_gateway_remote_call_duration_seconds",
			Help:    "Duration of calls to the payment processor in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 80},
		},
		[]string{"operation"},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stripe_gateway_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"route", "code"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stripe_gateway_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// RecordRemoteCall records one processor call and its outcome
func RecordRemoteCall(operation, outcome string, duration time.Duration) {
	remoteCallsTotal.WithLabelValues(operation, outcome).Inc()
	remoteCallDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordHTTPRequest records a completed HTTP request
func RecordHTTPRequest(route string, code int) {
	httpRequestsTotal.WithLabelValues(route, statusLabel(code)).Inc()
}

// TrackInFlight increments the in-flight gauge and returns its decrement
func TrackInFlight() func() {
	httpRequestsInFlight.Inc()
	return httpRequestsInFlight.Dec
}

func statusLabel(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
