package game

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	frameDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "game_frame_duration_seconds",
		Help:    "Длительность логического шага кадра",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
	})

	blocksPlaced = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "game_blocks_placed_total",
		Help: "Количество успешно установленных блоков",
	})

	blocksBroken = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "game_blocks_broken_total",
		Help: "Количество успешно разрушенных блоков",
	})

	voxelCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "game_world_voxels",
		Help: "Текущее количество вокселей в хранилище",
	})
)

func init() {
	prometheus.MustRegister(frameDuration, blocksPlaced, blocksBroken, voxelCount)
}
