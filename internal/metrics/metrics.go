// Package metrics expone contadores Prometheus del oraculo y de las rutas HTTP.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess     = "success"
	OutcomeUnavailable = "unavailable"
)

var (
	OracleCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oracle_calls_total",
			Help: "Total number of oracle calls by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	OracleDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "oracle_call_duration_seconds",
			Help:    "Duration of oracle calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 6, 8, 10},
		},
		[]string{"mode"},
	)

	FallbacksServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fallbacks_served_total",
			Help: "Total number of deterministic fallbacks served",
		},
		[]string{"component"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"route", "status"},
	)
)

// ObserveOracle registra el resultado y la latencia de una llamada al oraculo.
func ObserveOracle(mode string, ok bool, elapsed time.Duration) {
	outcome := OutcomeSuccess
	if !ok {
		outcome = OutcomeUnavailable
	}
	OracleCalls.WithLabelValues(mode, outcome).Inc()
	OracleDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
}

// ObserveFallback cuenta un resultado deterministico servido por component.
func ObserveFallback(component string) {
	FallbacksServed.WithLabelValues(component).Inc()
}
