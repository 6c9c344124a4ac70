package metrics

import (
	"io"
	"time"

	"github.com/prometheus/common/expfmt"
)

// RecordResolution records the outcome of labeling a batch of loads.
// kind is empty on success.
func (r *Registry) RecordResolution(resolved int, kind string) {
	r.LoadsResolved.Add(float64(resolved))
	if kind != "" {
		r.ResolutionFailures.WithLabelValues(kind).Inc()
	}
}

// RecordGroups records the transformer groups of one build.
func (r *Registry) RecordGroups(sizes []int) {
	r.TransformerGroups.Set(float64(len(sizes)))
	for _, n := range sizes {
		r.GroupSize.Observe(float64(n))
	}
}

// SetTransformerRoles sets the per-role transformer counts of the snapshot.
func (r *Registry) SetTransformerRoles(counts map[string]int) {
	r.TransformersByRole.Reset()
	for role, n := range counts {
		r.TransformersByRole.WithLabelValues(role).Set(float64(n))
	}
}

// RecordViolation counts one constraint violation.
func (r *Registry) RecordViolation(violationType, severity string) {
	r.BusViolations.WithLabelValues(violationType, severity).Inc()
}

// RecordProfile counts one synthetic profile.
func (r *Registry) RecordProfile(baseProfile string, degenerate bool) {
	r.ProfilesSynthesized.WithLabelValues(baseProfile).Inc()
	if degenerate {
		r.DegenerateDraws.WithLabelValues(baseProfile).Inc()
	}
}

// RecordStage records how long a build stage took.
func (r *Registry) RecordStage(stage string, duration time.Duration) {
	r.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordBuild counts a finished build.
func (r *Registry) RecordBuild(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.BuildsTotal.WithLabelValues(status).Inc()
}

// RecordExport adds the size of a written artifact.
func (r *Registry) RecordExport(artifact string, n int64) {
	r.ExportBytes.WithLabelValues(artifact).Add(float64(n))
}

// WriteText writes every gathered metric family in the Prometheus text format.
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
