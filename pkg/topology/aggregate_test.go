package topology

import (
	"reflect"
	"testing"
)

func TestAggregate_PreservesMemberOrder(t *testing.T) {
	labels := []LoadLabel{
		{LoadName: "L3", Phase: 2, TransformerName: "T"},
		{LoadName: "L1", Phase: 2, TransformerName: "T"},
		{LoadName: "L2", Phase: 2, TransformerName: "T"},
	}

	got := Aggregate(labels)
	if len(got) != 1 {
		t.Fatalf("got %d groups, want 1", len(got))
	}
	if got[0].JoinNames() != "L3;L1;L2" {
		t.Errorf("JoinNames() = %q, want L3;L1;L2", got[0].JoinNames())
	}
	if got[0].JoinIndices() != "0;1;2" {
		t.Errorf("JoinIndices() = %q, want 0;1;2", got[0].JoinIndices())
	}
	if got[0].Phase != 2 {
		t.Errorf("Phase = %d, want 2", got[0].Phase)
	}
}

func TestAggregate_GroupsSortedByName(t *testing.T) {
	labels := []LoadLabel{
		{LoadName: "a", Phase: 1, TransformerName: "t_zeta"},
		{LoadName: "b", Phase: 0, TransformerName: "t_alpha"},
		{LoadName: "c", Phase: 1, TransformerName: "t_zeta"},
		{LoadName: "d", Phase: 2, TransformerName: "t_mid"},
		{LoadName: "e", Phase: 0, TransformerName: "t_alpha"},
	}

	want := []TransformerLabel{
		{TransformerName: "t_alpha", Phase: 0, LoadIndices: []int{1, 4}, LoadNames: []string{"b", "e"}},
		{TransformerName: "t_mid", Phase: 2, LoadIndices: []int{3}, LoadNames: []string{"d"}},
		{TransformerName: "t_zeta", Phase: 1, LoadIndices: []int{0, 2}, LoadNames: []string{"a", "c"}},
	}

	if got := Aggregate(labels); !reflect.DeepEqual(got, want) {
		t.Errorf("Aggregate() = %+v\nwant %+v", got, want)
	}
}

func TestAggregate_PhaseFromFirstMember(t *testing.T) {
	labels := []LoadLabel{
		{LoadName: "x", Phase: 1, TransformerName: "T"},
		{LoadName: "y", Phase: 2, TransformerName: "T"},
	}
	if got := Aggregate(labels); got[0].Phase != 1 {
		t.Errorf("Phase = %d, want first member's phase 1", got[0].Phase)
	}
}

func TestAggregate_Empty(t *testing.T) {
	if got := Aggregate(nil); len(got) != 0 {
		t.Errorf("Aggregate(nil) = %+v, want empty", got)
	}
}

func TestAggregate_FromResolvedFeeder(t *testing.T) {
	c := testFeeder()
	labels, err := NewCircuitResolver(c).ResolveAll(c.Loads)
	if err != nil {
		t.Fatalf("ResolveAll() error: %v", err)
	}

	groups := Aggregate(labels)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].TransformerName != "t_a" || groups[0].JoinNames() != "L1;L2" {
		t.Errorf("groups[0] = %+v", groups[0])
	}
	if groups[1].TransformerName != "t_b" || groups[1].Phase != 1 {
		t.Errorf("groups[1] = %+v", groups[1])
	}
}
