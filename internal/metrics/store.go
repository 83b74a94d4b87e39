package metrics

import "github.com/prometheus/client_golang/prometheus"

// Record store metrics.
var (
	StoreQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "store_queries_total",
			Help:      "Total number of record store calls",
		},
		[]string{"engine", "op", "status"},
	)

	StoreQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "store_query_duration_seconds",
			Help:      "Record store call duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"engine", "op"},
	)

	StoreErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "store_errors_total",
			Help:      "Record store errors by kind",
		},
		[]string{"engine", "op", "kind"},
	)
)

var storeMetricsRegistered bool

// RegisterStoreMetrics registers the record store metrics. Must be called once from main.
func RegisterStoreMetrics() {
	if storeMetricsRegistered {
		return
	}
	prometheus.MustRegister(StoreQueriesTotal)
	prometheus.MustRegister(StoreQueryDuration)
	prometheus.MustRegister(StoreErrorsTotal)
	storeMetricsRegistered = true
}
