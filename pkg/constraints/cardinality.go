package constraints

import (
	"fmt"

	"github.com/dd0wney/cluso-feederdata/pkg/topology"
)

// TransformerLoadsConstraint validates the number of loads each transformer
// of a role feeds. It needs resolved labels.
type TransformerLoadsConstraint struct {
	Role     topology.Role
	Min      int // Minimum number of loads (0 = optional)
	Max      int // Maximum number of loads (0 = unlimited)
	Severity Severity
}

// Name returns the constraint name
func (c *TransformerLoadsConstraint) Name() string {
	return fmt.Sprintf("TransformerLoads(%s,[%d,%d])", c.Role, c.Min, c.Max)
}

// Validate counts labels per transformer and checks every transformer of the role.
func (c *TransformerLoadsConstraint) Validate(in Input) ([]Violation, error) {
	if in.Labels == nil {
		return nil, nil
	}

	counts := make(map[string]int)
	for _, label := range in.Labels {
		counts[label.TransformerName]++
	}

	var violations []Violation
	for _, t := range in.Circuit.TransformersByRole(c.Role) {
		n := counts[t.Name]

		switch {
		case n < c.Min:
			violations = append(violations, c.violation(t, n,
				fmt.Sprintf("transformer %q feeds %d loads, minimum is %d", t.Name, n, c.Min)))
		case c.Max > 0 && n > c.Max:
			violations = append(violations, c.violation(t, n,
				fmt.Sprintf("transformer %q feeds %d loads, maximum is %d", t.Name, n, c.Max)))
		}
	}

	return violations, nil
}

func (c *TransformerLoadsConstraint) violation(t topology.Transformer, n int, msg string) Violation {
	return Violation{
		Type:       LoadCount,
		Severity:   c.Severity,
		Element:    t.Name,
		Bus:        t.WindingBus,
		Constraint: c.Name(),
		Message:    msg,
		Details: map[string]any{
			"count": n,
			"min":   c.Min,
			"max":   c.Max,
		},
	}
}
