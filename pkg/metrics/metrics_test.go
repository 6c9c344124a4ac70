package metrics

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return m.Counter.GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return m.Gauge.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r.LoadsResolved == nil || r.ProfilesSynthesized == nil || r.StageDuration == nil {
		t.Fatal("metrics not initialized")
	}
	if r.GetPrometheusRegistry() == nil {
		t.Fatal("Prometheus registry not initialized")
	}

	// Separate registries do not share collectors.
	NewRegistry().LoadsResolved.Inc()
	if v := counterValue(t, r.LoadsResolved); v != 0 {
		t.Errorf("LoadsResolved = %v, want 0", v)
	}
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordResolution(t *testing.T) {
	r := NewRegistry()

	r.RecordResolution(3, "")
	r.RecordResolution(0, "unresolved_line")

	if v := counterValue(t, r.LoadsResolved); v != 3 {
		t.Errorf("LoadsResolved = %v, want 3", v)
	}
	c, err := r.ResolutionFailures.GetMetricWithLabelValues("unresolved_line")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if v := counterValue(t, c); v != 1 {
		t.Errorf("unresolved_line failures = %v, want 1", v)
	}
}

func TestRecordGroups(t *testing.T) {
	r := NewRegistry()
	r.RecordGroups([]int{2, 1, 5})

	if v := gaugeValue(t, r.TransformerGroups); v != 3 {
		t.Errorf("TransformerGroups = %v, want 3", v)
	}

	var m dto.Metric
	if err := r.GroupSize.Write(&m); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if m.Histogram.GetSampleCount() != 3 || m.Histogram.GetSampleSum() != 8 {
		t.Errorf("GroupSize count=%d sum=%v", m.Histogram.GetSampleCount(), m.Histogram.GetSampleSum())
	}
}

func TestSetTransformerRoles(t *testing.T) {
	r := NewRegistry()
	r.SetTransformerRoles(map[string]int{"distribution": 4, "substation": 1})
	r.SetTransformerRoles(map[string]int{"distribution": 2})

	g, _ := r.TransformersByRole.GetMetricWithLabelValues("distribution")
	if v := gaugeValue(t, g); v != 2 {
		t.Errorf("distribution = %v, want 2", v)
	}

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "feederdata_transformers" {
			continue
		}
		if len(mf.GetMetric()) != 1 {
			t.Errorf("stale role series kept: %d series", len(mf.GetMetric()))
		}
	}
}

func TestRecordProfile(t *testing.T) {
	r := NewRegistry()
	r.RecordProfile("Residential", false)
	r.RecordProfile("Residential", true)
	r.RecordProfile("Flat", true)

	c, _ := r.ProfilesSynthesized.GetMetricWithLabelValues("Residential")
	if v := counterValue(t, c); v != 2 {
		t.Errorf("Residential profiles = %v, want 2", v)
	}
	c, _ = r.DegenerateDraws.GetMetricWithLabelValues("Flat")
	if v := counterValue(t, c); v != 1 {
		t.Errorf("Flat degenerate = %v, want 1", v)
	}
}

func TestRecordBuildAndStage(t *testing.T) {
	r := NewRegistry()
	r.RecordBuild(nil)
	r.RecordBuild(errors.New("failed"))
	r.RecordStage("resolve", 20*time.Millisecond)
	r.RecordExport("load-labels.csv", 128)

	c, _ := r.BuildsTotal.GetMetricWithLabelValues("error")
	if v := counterValue(t, c); v != 1 {
		t.Errorf("failed builds = %v, want 1", v)
	}
	c, _ = r.ExportBytes.GetMetricWithLabelValues("load-labels.csv")
	if v := counterValue(t, c); v != 128 {
		t.Errorf("export bytes = %v, want 128", v)
	}
}

func TestWriteText(t *testing.T) {
	r := NewRegistry()
	r.RecordResolution(7, "")
	r.RecordViolation("duplicate_bus", "warning")

	var buf bytes.Buffer
	if err := r.WriteText(&buf); err != nil {
		t.Fatalf("WriteText() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"# TYPE feederdata_loads_resolved_total counter",
		"feederdata_loads_resolved_total 7",
		`feederdata_bus_violations_total{severity="warning",type="duplicate_bus"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}
