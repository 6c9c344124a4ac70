package dataset

import (
	"time"

	"github.com/dd0wney/cluso-feederdata/pkg/constraints"
	"github.com/dd0wney/cluso-feederdata/pkg/monitor"
	"github.com/dd0wney/cluso-feederdata/pkg/profile"
	"github.com/dd0wney/cluso-feederdata/pkg/topology"
)

// LoadObjectClass prefixes load element names in engine commands.
const LoadObjectClass = topology.LoadClass

// BaseProfile is a coarse reference shape a build drew its profiles from.
type BaseProfile struct {
	Name   string
	Values []float64
}

// Dataset is the product of one build: structural labels, synthetic
// profiles and the commands that install those profiles in the engine.
type Dataset struct {
	BuildID   string
	CreatedAt time.Time

	Circuit           topology.Circuit
	LoadLabels        []topology.LoadLabel
	TransformerLabels []topology.TransformerLabel
	Profiles          []profile.SyntheticProfile
	BaseProfiles      []BaseProfile // ascending by name
	Commands          []string
	Monitors          monitor.Plan
	Violations        []constraints.Violation

	Seed int64
	Step float64
	Mode profile.Mode
}

// DistributionTransformers returns the transformers that feed loads directly.
func (d *Dataset) DistributionTransformers() []topology.Transformer {
	return d.Circuit.TransformersByRole(topology.RoleDistribution)
}

// SubstationTransformers returns the feeder head transformers.
func (d *Dataset) SubstationTransformers() []topology.Transformer {
	return d.Circuit.TransformersByRole(topology.RoleSubstation)
}

// DegenerateCount returns how many profiles were filled with a constant.
func (d *Dataset) DegenerateCount() int {
	n := 0
	for _, p := range d.Profiles {
		if p.Degenerate {
			n++
		}
	}
	return n
}

// MonitorCommands renders the commands that attach every planned monitor.
func (d *Dataset) MonitorCommands() []string {
	return d.Monitors.Commands()
}

// TimestepHours returns the time axis shared by every profile.
func (d *Dataset) TimestepHours() []float64 {
	if len(d.Profiles) == 0 {
		return nil
	}
	return profile.Hours(len(d.Profiles[0].Values), d.Step)
}
