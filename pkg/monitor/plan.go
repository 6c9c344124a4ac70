package monitor

import (
	"github.com/dd0wney/cluso-feederdata/pkg/topology"
)

// Plan is the monitor layout of a feeder dataset. Every load is monitored at
// its terminal; transformers are monitored on both windings, split by role.
type Plan struct {
	Loads                 []Monitor
	DistributionPrimary   []Monitor
	DistributionSecondary []Monitor
	SubstationPrimary     []Monitor
	SubstationSecondary   []Monitor
}

// NewPlan lays out monitors for c, in snapshot order within each group.
func NewPlan(c topology.Circuit, mode int) Plan {
	loads := make([]string, len(c.Loads))
	for i, l := range c.Loads {
		loads[i] = topology.ObjectName(topology.LoadClass, l.Name)
	}
	dist := transformerObjects(c.TransformersByRole(topology.RoleDistribution))
	subs := transformerObjects(c.TransformersByRole(topology.RoleSubstation))

	return Plan{
		Loads:                 Make(loads, mode, TerminalPrimary),
		DistributionPrimary:   Make(dist, mode, TerminalPrimary),
		DistributionSecondary: Make(dist, mode, TerminalSecondary),
		SubstationPrimary:     Make(subs, mode, TerminalPrimary),
		SubstationSecondary:   Make(subs, mode, TerminalSecondary),
	}
}

// Len returns the total number of monitors.
func (p Plan) Len() int {
	return len(p.Loads) + len(p.DistributionPrimary) + len(p.DistributionSecondary) +
		len(p.SubstationPrimary) + len(p.SubstationSecondary)
}

// Commands renders the plan: load monitors first, then each distribution
// transformer's primary and secondary pair, then each substation pair.
func (p Plan) Commands() []string {
	cmds := make([]string, 0, p.Len())
	cmds = append(cmds, Commands(p.Loads)...)
	cmds = appendPairs(cmds, p.DistributionPrimary, p.DistributionSecondary)
	cmds = appendPairs(cmds, p.SubstationPrimary, p.SubstationSecondary)
	return cmds
}

func appendPairs(cmds []string, primary, secondary []Monitor) []string {
	for i := range primary {
		cmds = append(cmds, primary[i].Command())
		if i < len(secondary) {
			cmds = append(cmds, secondary[i].Command())
		}
	}
	return cmds
}

func transformerObjects(xfmrs []topology.Transformer) []string {
	names := make([]string, len(xfmrs))
	for i, t := range xfmrs {
		names[i] = topology.ObjectName(topology.TransformerClass, t.Name)
	}
	return names
}
