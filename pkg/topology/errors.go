package topology

import (
	"errors"
	"fmt"
)

// Resolution sentinel errors
var (
	ErrUnresolvedLine         = errors.New("no line bus2 matches load bus")
	ErrUnresolvedTransformer  = errors.New("no transformer winding bus matches line bus1")
	ErrMalformedBusIdentifier = errors.New("bus identifier has no integer phase suffix")
	ErrDuplicateBus           = errors.New("bus identifier is not unique")
)

// ResolutionError carries the element that failed resolution.
type ResolutionError struct {
	Op     string // Operation that failed (e.g., "Resolve", "PhaseOf")
	Entity string // Entity kind ("load", "line", "transformer")
	Name   string // Entity name, if known
	Bus    string // Bus identifier involved in the failure
	Index  int    // Position in the load iteration order, -1 if not applicable
	For    string // Load being resolved when the failing entity is a line
	Cause  error
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	subject := e.Entity
	if e.Name != "" {
		subject = fmt.Sprintf("%s %q", e.Entity, e.Name)
	}
	if e.For != "" {
		subject = fmt.Sprintf("%s for load %q", subject, e.For)
	}
	if e.Index >= 0 {
		subject = fmt.Sprintf("%s (index %d)", subject, e.Index)
	}
	if e.Bus != "" {
		return fmt.Sprintf("%s %s (bus %q): %v", e.Op, subject, e.Bus, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, subject, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ResolutionError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches the cause.
func (e *ResolutionError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder provides a fluent interface for building ResolutionErrors.
type ErrorBuilder struct {
	err ResolutionError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: ResolutionError{Op: op, Index: -1}}
}

// Load sets the entity to "load" with the given name.
func (b *ErrorBuilder) Load(name string) *ErrorBuilder {
	b.err.Entity = "load"
	b.err.Name = name
	return b
}

// Line sets the entity to "line" with the given name.
func (b *ErrorBuilder) Line(name string) *ErrorBuilder {
	b.err.Entity = "line"
	b.err.Name = name
	return b
}

// Transformer sets the entity to "transformer" with the given name.
func (b *ErrorBuilder) Transformer(name string) *ErrorBuilder {
	b.err.Entity = "transformer"
	b.err.Name = name
	return b
}

// Bus sets the bus identifier involved.
func (b *ErrorBuilder) Bus(bus string) *ErrorBuilder {
	b.err.Bus = bus
	return b
}

// Index sets the position of the load in iteration order.
func (b *ErrorBuilder) Index(i int) *ErrorBuilder {
	b.err.Index = i
	return b
}

// For records the load whose resolution reached the failing entity.
func (b *ErrorBuilder) For(load string) *ErrorBuilder {
	b.err.For = load
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Build returns the constructed ResolutionError.
func (b *ErrorBuilder) Build() *ResolutionError {
	return &b.err
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	if b.err.Entity == "" {
		b.err.Entity = "bus"
	}
	return &b.err
}
