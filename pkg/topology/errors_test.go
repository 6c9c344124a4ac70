package topology

import (
	"errors"
	"testing"
)

func TestResolutionError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "load with bus",
			err:      NewError("Resolve").Load("L1").Bus("b1.1").Cause(ErrUnresolvedLine).Err(),
			expected: `Resolve load "L1" (bus "b1.1"): no line bus2 matches load bus`,
		},
		{
			name: "line for load with index",
			err: NewError("Resolve").Line("l9").For("L9").Index(4).Bus("x9").
				Cause(ErrUnresolvedTransformer).Err(),
			expected: `Resolve line "l9" for load "L9" (index 4) (bus "x9"): no transformer winding bus matches line bus1`,
		},
		{
			name:     "bare bus",
			err:      NewError("PhaseOf").Bus("b42").Cause(ErrMalformedBusIdentifier).Err(),
			expected: `PhaseOf bus (bus "b42"): bus identifier has no integer phase suffix`,
		},
		{
			name:     "transformer without bus",
			err:      NewError("Validate").Transformer("t1").Cause(ErrDuplicateBus).Err(),
			expected: `Validate transformer "t1": bus identifier is not unique`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q\nwant %q", got, tt.expected)
			}
		})
	}
}

func TestResolutionError_IsAndUnwrap(t *testing.T) {
	err := NewError("Resolve").Load("L1").Cause(ErrUnresolvedLine).Err()

	if !errors.Is(err, ErrUnresolvedLine) {
		t.Error("errors.Is should match the cause")
	}
	if errors.Is(err, ErrUnresolvedTransformer) {
		t.Error("errors.Is should not match a different sentinel")
	}
	if errors.Unwrap(err) != ErrUnresolvedLine {
		t.Error("Unwrap should return the cause")
	}

	built := NewError("Resolve").Load("L1").Cause(ErrUnresolvedLine).Build()
	if built.Is(nil) {
		t.Error("Is(nil) should be false")
	}
}
