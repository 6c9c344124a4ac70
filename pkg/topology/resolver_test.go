package topology

import (
	"errors"
	"strings"
	"testing"
)

func TestResolver_Resolve(t *testing.T) {
	r := NewCircuitResolver(testFeeder())

	tests := []struct {
		load Load
		want LoadLabel
	}{
		{
			load: Load{Name: "L1", Bus: "b1.1", BaseProfile: "Residential"},
			want: LoadLabel{LoadName: "L1", Phase: 0, Loadshape: "Residential", TransformerName: "t_a"},
		},
		{
			load: Load{Name: "L3", Bus: "b3.2", BaseProfile: "Residential"},
			want: LoadLabel{LoadName: "L3", Phase: 1, Loadshape: "Residential", TransformerName: "t_b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.load.Name, func(t *testing.T) {
			got, err := r.Resolve(tt.load)
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolver_UnresolvedLine(t *testing.T) {
	r := NewCircuitResolver(testFeeder())

	_, err := r.Resolve(Load{Name: "orphan", Bus: "b99.1"})
	if !errors.Is(err, ErrUnresolvedLine) {
		t.Fatalf("error = %v, want ErrUnresolvedLine", err)
	}

	var rerr *ResolutionError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *ResolutionError, got %T", err)
	}
	if rerr.Entity != "load" || rerr.Name != "orphan" {
		t.Errorf("error names %s %q, want load orphan", rerr.Entity, rerr.Name)
	}
	if !strings.Contains(err.Error(), `"orphan"`) {
		t.Errorf("message %q does not name the load", err.Error())
	}
}

func TestResolver_UnresolvedTransformer(t *testing.T) {
	c := testFeeder()
	c.Lines = append(c.Lines, Line{Name: "l_dangling", Bus1: "x_nowhere", Bus2: "b4.3"})
	r := NewCircuitResolver(c)

	_, err := r.Resolve(Load{Name: "L4", Bus: "b4.3"})
	if !errors.Is(err, ErrUnresolvedTransformer) {
		t.Fatalf("error = %v, want ErrUnresolvedTransformer", err)
	}

	var rerr *ResolutionError
	errors.As(err, &rerr)
	if rerr.Name != "l_dangling" || rerr.For != "L4" || rerr.Bus != "x_nowhere" {
		t.Errorf("error = %+v, want line l_dangling for load L4 at bus x_nowhere", rerr)
	}
}

func TestResolver_MalformedBus(t *testing.T) {
	c := testFeeder()
	c.Lines = append(c.Lines, Line{Name: "l_bare", Bus1: "x_a", Bus2: "b42"})
	r := NewCircuitResolver(c)

	_, err := r.Resolve(Load{Name: "L42", Bus: "b42"})
	if !errors.Is(err, ErrMalformedBusIdentifier) {
		t.Fatalf("error = %v, want ErrMalformedBusIdentifier", err)
	}
}

func TestResolver_ResolveAll(t *testing.T) {
	c := testFeeder()
	r := NewCircuitResolver(c)

	labels, err := r.ResolveAll(c.Loads)
	if err != nil {
		t.Fatalf("ResolveAll() error: %v", err)
	}

	want := []string{"t_a", "t_a", "t_b"}
	if len(labels) != len(want) {
		t.Fatalf("got %d labels, want %d", len(labels), len(want))
	}
	for i, l := range labels {
		if l.TransformerName != want[i] {
			t.Errorf("labels[%d].TransformerName = %q, want %q", i, l.TransformerName, want[i])
		}
		if l.LoadName != c.Loads[i].Name {
			t.Errorf("labels[%d] out of order: %q", i, l.LoadName)
		}
	}
}

func TestResolver_ResolveAllFailsWholeBatch(t *testing.T) {
	c := testFeeder()
	c.Loads = append(c.Loads, Load{Name: "orphan", Bus: "b99.1"}, Load{Name: "L1b", Bus: "b1.1"})
	r := NewCircuitResolver(c)

	labels, err := r.ResolveAll(c.Loads)
	if labels != nil {
		t.Errorf("expected no labels on failure, got %d", len(labels))
	}

	var rerr *ResolutionError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *ResolutionError, got %v", err)
	}
	if rerr.Index != 3 || rerr.Name != "orphan" {
		t.Errorf("error = %+v, want load orphan at index 3", rerr)
	}
}
