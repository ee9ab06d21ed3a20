package render

import (
	"github.com/prometheus/client_golang/prometheus"
)

var recomputeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
	Namespace: "render",
	Name:      "batch_recompute_duration_seconds",
	Help:      "Длительность полного пересчета батчей видимости.",
	Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
})

func init() {
	prometheus.MustRegister(recomputeDuration)
}

func startRecomputeTimer() *prometheus.Timer {
	return prometheus.NewTimer(recomputeDuration)
}
