package native

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	handlesOpen = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "ovgenai",
			Subsystem: "native",
			Name:      "handles_open",
			Help:      "Live native handles by resource kind",
		},
		[]string{"kind"},
	)

	nativeFrees = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ovgenai",
			Subsystem: "native",
			Name:      "frees_total",
			Help:      "Native free invocations by resource kind",
		},
		[]string{"kind"},
	)

	finalizerReclaims = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ovgenai",
			Subsystem: "native",
			Name:      "finalizer_reclaims_total",
			Help:      "Handles freed by the GC finalizer instead of an explicit Close",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(handlesOpen, nativeFrees, finalizerReclaims)
}
