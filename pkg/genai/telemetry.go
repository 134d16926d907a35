package genai

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	generateDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ovgenai",
			Subsystem: "pipeline",
			Name:      "generate_duration_seconds",
			Help:      "Wall time of native generate calls",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 14),
		},
		[]string{"pipeline"},
	)

	generateErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ovgenai",
			Subsystem: "pipeline",
			Name:      "generate_errors_total",
			Help:      "Native generate calls that returned a non-OK status",
		},
		[]string{"pipeline"},
	)
)

func init() {
	prometheus.MustRegister(generateDuration, generateErrors)
}
