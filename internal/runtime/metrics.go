package runtime

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lamina-run/lamina/internal/model"
)

// Cache metric label values.
const (
	cacheHit  = "hit"
	cacheMiss = "miss"
)

var (
	invocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lamina_invocations_total",
			Help: "Total number of invocations handled by the engine.",
		},
		[]string{"status"},
	)

	invocationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lamina_invocation_seconds",
			Help:    "End-to-end invocation duration from resolution to finalized envelope, in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)

	scriptCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lamina_script_cache_total",
			Help: "Script instance cache lookups by result.",
		},
		[]string{"result"},
	)

	compileDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lamina_script_compile_seconds",
			Help:    "Duration of compile-and-construct on a cache miss, in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(invocationsTotal)
	prometheus.MustRegister(invocationDuration)
	prometheus.MustRegister(scriptCacheTotal)
	prometheus.MustRegister(compileDuration)

	// Pre-initialize label combinations so they appear in /metrics with
	// value 0 from startup, rather than only after first observation.
	for _, status := range []string{model.StatusCompleted, model.StatusFailed, model.StatusAborted} {
		invocationsTotal.WithLabelValues(status)
	}
	scriptCacheTotal.WithLabelValues(cacheHit)
	scriptCacheTotal.WithLabelValues(cacheMiss)
}
