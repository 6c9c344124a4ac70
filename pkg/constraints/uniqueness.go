package constraints

import (
	"fmt"
	"strings"

	"github.com/dd0wney/cluso-feederdata/pkg/topology"
)

// UniqueBusConstraint reports bus identifiers claimed by more than one line
// (as bus2) or more than one transformer (as winding bus). Resolution uses
// the first element in snapshot order, so later claimants are unreachable.
type UniqueBusConstraint struct {
	// Kind restricts the check to "line" or "transformer"; empty checks both.
	Kind string

	// Severity of each reported duplicate. Zero value is Info.
	Severity Severity
}

// Name returns a human-readable name for this constraint
func (c *UniqueBusConstraint) Name() string {
	if c.Kind == "" {
		return "UniqueBus"
	}
	return fmt.Sprintf("UniqueBus(%s)", c.Kind)
}

// Validate reports one violation per colliding bus.
func (c *UniqueBusConstraint) Validate(in Input) ([]Violation, error) {
	var violations []Violation

	for _, dup := range in.index().Duplicates() {
		if c.Kind != "" && dup.Kind != c.Kind {
			continue
		}
		// The first shadowed claimant is the element resolution can no longer reach.
		cause := topology.NewError("CheckBuses").Bus(dup.Bus).Cause(topology.ErrDuplicateBus)
		if dup.Kind == "transformer" {
			cause.Transformer(dup.Names[1])
		} else {
			cause.Line(dup.Names[1])
		}
		violations = append(violations, Violation{
			Type:       DuplicateBus,
			Severity:   c.Severity,
			Element:    dup.Names[0],
			Bus:        dup.Bus,
			Constraint: c.Name(),
			Message: fmt.Sprintf("%d %ss share bus %q; %s wins, ignored: %s",
				len(dup.Names), dup.Kind, dup.Bus, dup.Names[0], strings.Join(dup.Names[1:], ", ")),
			Details: map[string]any{
				"kind":      dup.Kind,
				"names":     dup.Names,
				"positions": dup.Positions,
			},
			Cause: cause.Err(),
		})
	}

	return violations, nil
}

// SubstationConstraint checks the number of transformers with the substation role.
type SubstationConstraint struct {
	Expected int
	Severity Severity
}

// Name returns a human-readable name for this constraint
func (c *SubstationConstraint) Name() string {
	return fmt.Sprintf("Substations(%d)", c.Expected)
}

// Validate compares the substation count with Expected.
func (c *SubstationConstraint) Validate(in Input) ([]Violation, error) {
	subs := in.Circuit.TransformersByRole(topology.RoleSubstation)
	if len(subs) == c.Expected {
		return nil, nil
	}

	names := make([]string, len(subs))
	for i, t := range subs {
		names[i] = t.Name
	}
	return []Violation{{
		Type:       SubstationCount,
		Severity:   c.Severity,
		Constraint: c.Name(),
		Message:    fmt.Sprintf("found %d substation transformers, want %d", len(subs), c.Expected),
		Details:    map[string]any{"names": names},
	}}, nil
}
