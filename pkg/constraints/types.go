package constraints

import (
	"github.com/dd0wney/cluso-feederdata/pkg/topology"
)

// Input is what constraints are checked against. Labels is nil until the
// loads have been resolved; label constraints report nothing without them.
type Input struct {
	Circuit topology.Circuit
	Index   *topology.BusIndex
	Labels  []topology.LoadLabel
}

// NewInput indexes the circuit for checking.
func NewInput(c topology.Circuit) Input {
	return Input{Circuit: c, Index: topology.NewBusIndex(c)}
}

// WithLabels returns a copy of in carrying resolved labels.
func (in Input) WithLabels(labels []topology.LoadLabel) Input {
	in.Labels = labels
	return in
}

func (in Input) index() *topology.BusIndex {
	if in.Index == nil {
		return topology.NewBusIndex(in.Circuit)
	}
	return in.Index
}

// Severity indicates the importance of a violation
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// ViolationType categorizes the type of constraint violation
type ViolationType int

const (
	DuplicateBus ViolationType = iota
	MalformedBus
	MixedPhase
	LoadCount
	SubstationCount
)

func (vt ViolationType) String() string {
	switch vt {
	case DuplicateBus:
		return "duplicate_bus"
	case MalformedBus:
		return "malformed_bus"
	case MixedPhase:
		return "mixed_phase"
	case LoadCount:
		return "load_count"
	case SubstationCount:
		return "substation_count"
	default:
		return "unknown"
	}
}

// Violation represents a constraint violation
type Violation struct {
	Type       ViolationType
	Severity   Severity
	Element    string // Offending element name, empty for circuit-wide violations
	Bus        string
	Constraint string
	Message    string
	Details    map[string]any

	// Cause is the topology error the violation stands for, if any. It is
	// reachable through errors.Is on ValidationResult.Err.
	Cause error
}

// Constraint is the interface that all constraint types must implement.
type Constraint interface {
	// Validate checks the constraint and returns its violations (empty if valid)
	Validate(in Input) ([]Violation, error)

	// Name returns a human-readable name for the constraint
	Name() string
}
