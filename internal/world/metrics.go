package world

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus-метрики генерации мира.
var (
	generationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "world",
		Name:      "generation_duration_seconds",
		Help:      "Длительность полной генерации ландшафта.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})
	generatedVoxels = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "world",
		Name:      "generated_voxels",
		Help:      "Количество вокселей после генерации.",
	})
)

func init() {
	prometheus.MustRegister(generationDuration, generatedVoxels)
}
