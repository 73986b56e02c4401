package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dispatch",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status class.",
		},
		[]string{"method", "status"},
	)

	claimOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dispatch",
			Name:      "claim_outcomes_total",
			Help:      "Accept/decline/cancel outcomes.",
		},
		[]string{"operation", "outcome"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, claimOutcomes)
	})
}

// IncHTTP increments the request counter.
func IncHTTP(method, status string) {
	httpRequests.WithLabelValues(method, status).Inc()
}

// ObserveClaim increments the outcome counter for a dispatch operation.
func ObserveClaim(operation, outcome string) {
	claimOutcomes.WithLabelValues(operation, outcome).Inc()
}
