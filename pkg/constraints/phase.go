package constraints

import (
	"fmt"
	"sort"
)

// PhaseHomogeneityConstraint checks that all loads of a transformer group are
// on the same phase. Transformer labels take the phase of their first member,
// so a mixed group is labeled with one phase that some members do not have.
type PhaseHomogeneityConstraint struct {
	Severity Severity
}

// Name returns a human-readable name for this constraint
func (c *PhaseHomogeneityConstraint) Name() string {
	return "PhaseHomogeneity"
}

// Validate reports one violation per transformer whose loads span several phases.
func (c *PhaseHomogeneityConstraint) Validate(in Input) ([]Violation, error) {
	phases := make(map[string]map[int][]string)
	var order []string

	for _, label := range in.Labels {
		byPhase, ok := phases[label.TransformerName]
		if !ok {
			byPhase = make(map[int][]string)
			phases[label.TransformerName] = byPhase
			order = append(order, label.TransformerName)
		}
		byPhase[label.Phase] = append(byPhase[label.Phase], label.LoadName)
	}

	var violations []Violation
	for _, name := range order {
		byPhase := phases[name]
		if len(byPhase) < 2 {
			continue
		}

		seen := make([]int, 0, len(byPhase))
		for p := range byPhase {
			seen = append(seen, p)
		}
		sort.Ints(seen)

		violations = append(violations, Violation{
			Type:       MixedPhase,
			Severity:   c.Severity,
			Element:    name,
			Constraint: c.Name(),
			Message:    fmt.Sprintf("transformer %q feeds loads on phases %v", name, seen),
			Details: map[string]any{
				"phases": seen,
				"loads":  byPhase,
			},
		})
	}

	return violations, nil
}
