package logic

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics
var (
	resolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forecast_resolutions_total",
		Help: "Name resolutions by outcome (exact, shortened, partial, alias, not_found, ambiguous)",
	}, []string{"outcome"})

	statsTierTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forecast_stats_tier_total",
		Help: "Stats acquisitions by resulting data source",
	}, []string{"source"})

	statsCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forecast_stats_cache_lookups_total",
		Help: "Stats cache lookups by result (hit, miss)",
	}, []string{"result"})

	providerDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "forecast_provider_request_duration_seconds",
		Help:    "Duration of Tier-1 statistics provider calls",
		Buckets: prometheus.DefBuckets,
	})

	simulationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "forecast_simulation_duration_seconds",
		Help:    "Duration of Monte Carlo match simulations",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	})

	narrativeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forecast_narrative_failures_total",
		Help: "Narrative generator calls that failed or timed out",
	})
)
