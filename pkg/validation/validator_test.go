package validation

import (
	"strings"
	"testing"
)

type testSnapshotLoad struct {
	Name string `validate:"required,element"`
	Bus  string `validate:"required,busid"`
}

type testParams struct {
	Step  float64 `validate:"gt=0,lte=1"`
	Count int     `validate:"gte=1"`
	Mode  string  `validate:"oneof=serial substream"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name        string
		value       any
		expectError bool
		errorField  string
	}{
		{
			name:  "valid load",
			value: &testSnapshotLoad{Name: "l_1001", Bus: "b1001.2"},
		},
		{
			name:  "bare bus is valid",
			value: &testSnapshotLoad{Name: "l_1001", Bus: "x_a"},
		},
		{
			name:        "missing name",
			value:       &testSnapshotLoad{Bus: "b1.1"},
			expectError: true,
			errorField:  "Name",
		},
		{
			name:        "dotted element name",
			value:       &testSnapshotLoad{Name: "Load.l1", Bus: "b1.1"},
			expectError: true,
			errorField:  "Name",
		},
		{
			name:        "non-numeric node suffix",
			value:       &testSnapshotLoad{Name: "l1", Bus: "b1.a"},
			expectError: true,
			errorField:  "Bus",
		},
		{
			name:        "step zero",
			value:       &testParams{Step: 0, Count: 1, Mode: "serial"},
			expectError: true,
			errorField:  "Step",
		},
		{
			name:        "bad mode",
			value:       &testParams{Step: 0.25, Count: 1, Mode: "fast"},
			expectError: true,
			errorField:  "Mode",
		},
		{
			name:  "valid params",
			value: &testParams{Step: 0.25, Count: 4, Mode: "substream"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.value)
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorField) {
					t.Errorf("error %q does not mention field %s", err.Error(), tt.errorField)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestStruct_Nil(t *testing.T) {
	if err := Struct(nil); err == nil {
		t.Error("expected error for nil value")
	}
}

func TestBusIdentifier(t *testing.T) {
	valid := []string{"b42", "b42.1", "b42.1.2", "sourcebus"}
	invalid := []string{"", "b42.", ".1", "b 42.1", "b42.x"}

	for _, s := range valid {
		if err := BusIdentifier(s); err != nil {
			t.Errorf("BusIdentifier(%q) unexpected error: %v", s, err)
		}
	}
	for _, s := range invalid {
		if err := BusIdentifier(s); err == nil {
			t.Errorf("BusIdentifier(%q) expected error", s)
		}
	}
}
