// Package snapshot decodes circuit topology snapshots exported from the
// simulation engine.
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-feederdata/pkg/topology"
	"github.com/dd0wney/cluso-feederdata/pkg/validation"
)

// Snapshot is the on-disk form of a circuit. Slice order is the engine's
// enumeration order and is preserved.
type Snapshot struct {
	Name         string        `yaml:"circuit"`
	Lines        []Line        `yaml:"lines" validate:"dive"`
	Transformers []Transformer `yaml:"transformers" validate:"dive"`
	Loads        []Load        `yaml:"loads" validate:"dive"`
}

// Line is a line element with its two terminal buses.
type Line struct {
	Name string `yaml:"name" validate:"required,element"`
	Bus1 string `yaml:"bus1" validate:"required,busid"`
	Bus2 string `yaml:"bus2" validate:"required,busid"`
}

// Transformer is a transformer with its active winding bus.
type Transformer struct {
	Name string `yaml:"name" validate:"required,element"`
	Bus  string `yaml:"bus" validate:"required,busid"`
	Role string `yaml:"role" validate:"omitempty,oneof=distribution substation"`
}

// Load is a load element with its bus and assigned yearly loadshape.
type Load struct {
	Name   string `yaml:"name" validate:"required,element"`
	Bus    string `yaml:"bus" validate:"required,busid"`
	Yearly string `yaml:"yearly" validate:"required"`
}

// Decode reads and validates a YAML snapshot.
func Decode(r io.Reader) (*Snapshot, error) {
	var s Snapshot

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("snapshot is empty")
		}
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	if err := validation.Struct(&s); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}
	return &s, nil
}

// Open reads a snapshot file.
func Open(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Circuit converts the snapshot into a topology circuit. Roles come only
// from the snapshot's role field; tagging the configured substation by name
// is left to the dataset builder.
func (s *Snapshot) Circuit() topology.Circuit {
	c := topology.Circuit{
		Lines:        make([]topology.Line, len(s.Lines)),
		Transformers: make([]topology.Transformer, len(s.Transformers)),
		Loads:        make([]topology.Load, len(s.Loads)),
	}

	for i, l := range s.Lines {
		c.Lines[i] = topology.Line{Name: l.Name, Bus1: l.Bus1, Bus2: l.Bus2}
	}

	for i, t := range s.Transformers {
		// Decode already restricted Role to known values.
		role, _ := topology.ParseRole(t.Role)
		c.Transformers[i] = topology.Transformer{Name: t.Name, WindingBus: t.Bus, Role: role}
	}

	for i, l := range s.Loads {
		c.Loads[i] = topology.Load{Name: l.Name, Bus: l.Bus, BaseProfile: l.Yearly}
	}

	return c
}
