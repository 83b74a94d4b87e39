package metrics

import "github.com/prometheus/client_golang/prometheus"

// Engine metrics, labelled by engine: search, nearby, suggest.
var (
	EngineResultsReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "engine_results_returned",
			Help:      "Rows returned per engine call",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
		[]string{"engine"},
	)

	EngineEmptyResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "engine_empty_results_total",
			Help:      "Engine calls that returned no rows",
		},
		[]string{"engine"},
	)
)

var engineMetricsRegistered bool

// RegisterEngineMetrics registers the engine metrics. Must be called once from main.
func RegisterEngineMetrics() {
	if engineMetricsRegistered {
		return
	}
	prometheus.MustRegister(EngineResultsReturned)
	prometheus.MustRegister(EngineEmptyResultsTotal)
	engineMetricsRegistered = true
}

// ObserveResults records the row count of one engine call.
func ObserveResults(engine string, n int) {
	EngineResultsReturned.WithLabelValues(engine).Observe(float64(n))
	if n == 0 {
		EngineEmptyResultsTotal.WithLabelValues(engine).Inc()
	}
}
