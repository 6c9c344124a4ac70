package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initTopologyMetrics() {
	r.LoadsResolved = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "loads_resolved_total",
			Help:      "Loads labeled with a feeding transformer and phase",
		},
	)

	r.ResolutionFailures = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "resolution_failures_total",
			Help:      "Failed label resolutions by failure kind",
		},
		[]string{"kind"},
	)

	r.TransformerGroups = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "transformer_groups",
			Help:      "Transformers feeding at least one load in the last build",
		},
	)

	r.TransformersByRole = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "transformers",
			Help:      "Transformers in the circuit snapshot by role",
		},
		[]string{"role"},
	)

	r.GroupSize = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "transformer_group_loads",
			Help:      "Number of loads fed by each transformer",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
		},
	)

	r.BusViolations = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "bus_violations_total",
			Help:      "Circuit constraint violations by type and severity",
		},
		[]string{"type", "severity"},
	)
}

func (r *Registry) initSynthesisMetrics() {
	r.ProfilesSynthesized = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "profiles_synthesized_total",
			Help:      "Synthetic profiles drawn by base profile",
		},
		[]string{"base_profile"},
	)

	r.DegenerateDraws = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "degenerate_draws_total",
			Help:      "Draws without spread, filled with a constant",
		},
		[]string{"base_profile"},
	)

	r.ProfilePoints = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "profile_points",
			Help:      "Length of every synthetic profile",
		},
	)
}

func (r *Registry) initBuildMetrics() {
	r.BuildsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "builds_total",
			Help:      "Dataset builds by outcome",
		},
		[]string{"status"},
	)

	r.StageDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "stage_duration_seconds",
			Help:      "Build stage duration in seconds",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30, 120},
		},
		[]string{"stage"},
	)

	r.ExportBytes = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "export_bytes_total",
			Help:      "Bytes written per exported artifact",
		},
		[]string{"artifact"},
	)
}
