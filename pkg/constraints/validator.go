package constraints

import (
	"errors"
	"fmt"
	"time"

	"github.com/dd0wney/cluso-feederdata/pkg/topology"
)

// ErrViolations is wrapped by ValidationResult.Err.
var ErrViolations = errors.New("circuit constraint violations")

// ValidationResult contains the results of checking a circuit against constraints
type ValidationResult struct {
	Valid      bool        // True if no violations found
	Violations []Violation // List of all violations
	CheckedAt  time.Time   // When validation was performed
}

// GetViolationsBySeverity returns violations filtered by severity level
func (vr *ValidationResult) GetViolationsBySeverity(severity Severity) []Violation {
	filtered := make([]Violation, 0)
	for _, v := range vr.Violations {
		if v.Severity == severity {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// GetViolationsByType returns violations filtered by type
func (vr *ValidationResult) GetViolationsByType(violationType ViolationType) []Violation {
	filtered := make([]Violation, 0)
	for _, v := range vr.Violations {
		if v.Type == violationType {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// Err returns a *ViolationError holding the Error-severity violations, or nil.
func (vr *ValidationResult) Err() error {
	errs := vr.GetViolationsBySeverity(Error)
	if len(errs) == 0 {
		return nil
	}
	return &ViolationError{Violations: errs}
}

// ViolationError reports Error-severity violations. It matches ErrViolations
// and the Cause of every violation it carries, so errors.Is(err,
// topology.ErrDuplicateBus) holds for a failed strict bus check.
type ViolationError struct {
	Violations []Violation
}

// Error implements the error interface.
func (e *ViolationError) Error() string {
	if len(e.Violations) == 0 {
		return ErrViolations.Error()
	}
	msg := e.Violations[0].Message
	if len(e.Violations) > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, len(e.Violations)-1)
	}
	return fmt.Sprintf("%v: %s", ErrViolations, msg)
}

// Unwrap returns ErrViolations followed by the violation causes.
func (e *ViolationError) Unwrap() []error {
	errs := []error{ErrViolations}
	for _, v := range e.Violations {
		if v.Cause != nil {
			errs = append(errs, v.Cause)
		}
	}
	return errs
}

// Validator manages a set of constraints and checks circuits against them
type Validator struct {
	constraints []Constraint
}

// NewValidator creates a validator with the given constraints
func NewValidator(constraints ...Constraint) *Validator {
	return &Validator{constraints: constraints}
}

// AddConstraint adds a constraint to the validator
func (v *Validator) AddConstraint(constraint Constraint) {
	v.constraints = append(v.constraints, constraint)
}

// Validate runs all constraints and returns the results
func (v *Validator) Validate(in Input) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:      true,
		Violations: make([]Violation, 0),
		CheckedAt:  time.Now(),
	}

	for _, constraint := range v.constraints {
		violations, err := constraint.Validate(in)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", constraint.Name(), err)
		}

		if len(violations) > 0 {
			result.Valid = false
			result.Violations = append(result.Violations, violations...)
		}
	}

	return result, nil
}

// GetConstraints returns all constraints in the validator
func (v *Validator) GetConstraints() []Constraint {
	return v.constraints
}

// StructuralConstraints are checked on the snapshot before resolution.
// strict raises duplicate and malformed buses to Error severity.
func StructuralConstraints(strict bool) []Constraint {
	sev := Warning
	if strict {
		sev = Error
	}
	return []Constraint{
		&UniqueBusConstraint{Severity: sev},
		&BusFormatConstraint{Severity: sev},
		&SubstationConstraint{Expected: 1, Severity: Warning},
	}
}

// LabelConstraints are checked on resolved labels.
func LabelConstraints(strict bool) []Constraint {
	sev := Warning
	if strict {
		sev = Error
	}
	return []Constraint{
		&PhaseHomogeneityConstraint{Severity: sev},
		&TransformerLoadsConstraint{Role: topology.RoleDistribution, Min: 1, Severity: Info},
	}
}
