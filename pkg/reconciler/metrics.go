package reconciler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	targetTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oom_deploy_target_total",
			Help: "Total number of reconciled release targets",
		},
		[]string{"action", "outcome"}, // apply/remove, succeeded/failed
	)

	targetDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "oom_deploy_target_duration_seconds",
			Help:    "Duration of individual release transitions in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
		[]string{"action"},
	)
)
