package constraints

import (
	"fmt"

	"github.com/dd0wney/cluso-feederdata/pkg/topology"
	"github.com/dd0wney/cluso-feederdata/pkg/validation"
)

// BusFormatConstraint checks that every load bus carries a valid phase suffix.
type BusFormatConstraint struct {
	Severity Severity
}

// Name returns a human-readable name for this constraint
func (c *BusFormatConstraint) Name() string {
	return "BusFormat"
}

// Validate reports each load whose bus identifier cannot yield a phase.
func (c *BusFormatConstraint) Validate(in Input) ([]Violation, error) {
	var violations []Violation

	for i, load := range in.Circuit.Loads {
		err := validation.BusIdentifier(load.Bus)
		if err == nil {
			_, err = topology.PhaseOf(load.Bus)
		}
		if err == nil {
			continue
		}
		cause := topology.NewError("CheckBuses").Load(load.Name).Index(i).Bus(load.Bus).
			Cause(topology.ErrMalformedBusIdentifier).Err()
		violations = append(violations, Violation{
			Type:       MalformedBus,
			Severity:   c.Severity,
			Element:    load.Name,
			Bus:        load.Bus,
			Constraint: c.Name(),
			Message:    fmt.Sprintf("load %q bus %q: %v", load.Name, load.Bus, err),
			Details:    map[string]any{"index": i},
			Cause:      cause,
		})
	}

	return violations, nil
}
