package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopql_http_requests_total",
			Help: "HTTP requests served, by method, normalized route, and status class.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "shopql_http_request_duration_seconds",
			Help: "HTTP request latency by normalized route. Upper buckets cover requests that wait on SQL synthesis.",
			Buckets: []float64{
				0.005, 0.02, 0.1, 0.5, 1, 2.5, 5, 10, 20,
			},
		},
		[]string{"method", "route"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDurationSeconds)
}
