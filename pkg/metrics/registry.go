package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "feederdata"

// Registry holds all metrics of a dataset build.
type Registry struct {
	// Topology metrics
	LoadsResolved      prometheus.Counter
	ResolutionFailures *prometheus.CounterVec
	TransformerGroups  prometheus.Gauge
	TransformersByRole *prometheus.GaugeVec
	GroupSize          prometheus.Histogram
	BusViolations      *prometheus.CounterVec

	// Synthesis metrics
	ProfilesSynthesized *prometheus.CounterVec
	DegenerateDraws     *prometheus.CounterVec
	ProfilePoints       prometheus.Gauge

	// Build metrics
	BuildsTotal   *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
	ExportBytes   *prometheus.CounterVec

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initTopologyMetrics()
	r.initSynthesisMetrics()
	r.initBuildMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
