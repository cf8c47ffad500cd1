package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus counters for the numeric engine. They are registered on the
// default registry; the optional metrics server (internal/server) exposes
// them, and they are harmless no-ops when no scraper is attached.
var (
	// ConstCacheHits counts constant-cache lookups served from a cached
	// value of sufficient precision.
	ConstCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mpcalc",
		Subsystem: "constcache",
		Name:      "hits_total",
		Help:      "Constant cache lookups satisfied by a cached value.",
	})

	// ConstCacheMisses counts constant-cache lookups that forced a
	// recomputation, either cold or at a higher precision than cached.
	ConstCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mpcalc",
		Subsystem: "constcache",
		Name:      "misses_total",
		Help:      "Constant cache lookups that required recomputation.",
	})

	// EngineEvaluations counts top-level expression evaluations performed
	// by the CLI and TUI front ends.
	EngineEvaluations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mpcalc",
		Subsystem: "engine",
		Name:      "evaluations_total",
		Help:      "Top-level evaluations requested by a front end.",
	})
)
