package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-feederdata/pkg/topology"
)

func TestName(t *testing.T) {
	assert.Equal(t, "l1_mode_0_terminal_1", Name("l1", ModeStandard, TerminalPrimary))
	assert.Equal(t, "t_a_mode_1_terminal_2", Name("t_a", ModePower, TerminalSecondary))
}

func TestNewAndCommand(t *testing.T) {
	m := New("Transformer.t_a", ModeStandard, TerminalSecondary)

	assert.Equal(t, Monitor{
		Name:       "t_a_mode_0_terminal_2",
		ObjectName: "Transformer.t_a",
		Mode:       ModeStandard,
		Terminal:   TerminalSecondary,
	}, m)
	assert.Equal(t, "new monitor.t_a_mode_0_terminal_2 element=Transformer.t_a mode=0 terminal=2", m.Command())

	// Unqualified names are used as they are.
	assert.Equal(t, "l9_mode_0_terminal_1", New("l9", ModeStandard, TerminalPrimary).Name)
}

func TestMakeAndCommands(t *testing.T) {
	monitors := Make([]string{"Load.L3", "Load.L1"}, ModeStandard, TerminalPrimary)
	require.Len(t, monitors, 2)

	assert.Equal(t, []string{
		"new monitor.L3_mode_0_terminal_1 element=Load.L3 mode=0 terminal=1",
		"new monitor.L1_mode_0_terminal_1 element=Load.L1 mode=0 terminal=1",
	}, Commands(monitors))
	assert.Empty(t, Make(nil, ModeStandard, TerminalPrimary))
}

func TestPlan(t *testing.T) {
	c := topology.Circuit{
		Transformers: []topology.Transformer{
			{Name: "mdv_sub_1", WindingBus: "sourcebus", Role: topology.RoleSubstation},
			{Name: "t_b", WindingBus: "x_b"},
			{Name: "t_a", WindingBus: "x_a"},
		},
		Loads: []topology.Load{
			{Name: "L1", Bus: "b1.1"},
			{Name: "L2", Bus: "b2.1"},
		},
	}

	p := NewPlan(c, ModeStandard)
	assert.Equal(t, 2+2+2+1+1, p.Len())
	require.Len(t, p.DistributionPrimary, 2)
	assert.Equal(t, "Transformer.t_b", p.DistributionPrimary[0].ObjectName)
	assert.Equal(t, TerminalSecondary, p.DistributionSecondary[1].Terminal)
	require.Len(t, p.SubstationSecondary, 1)
	assert.Equal(t, "mdv_sub_1_mode_0_terminal_2", p.SubstationSecondary[0].Name)

	assert.Equal(t, []string{
		"new monitor.L1_mode_0_terminal_1 element=Load.L1 mode=0 terminal=1",
		"new monitor.L2_mode_0_terminal_1 element=Load.L2 mode=0 terminal=1",
		"new monitor.t_b_mode_0_terminal_1 element=Transformer.t_b mode=0 terminal=1",
		"new monitor.t_b_mode_0_terminal_2 element=Transformer.t_b mode=0 terminal=2",
		"new monitor.t_a_mode_0_terminal_1 element=Transformer.t_a mode=0 terminal=1",
		"new monitor.t_a_mode_0_terminal_2 element=Transformer.t_a mode=0 terminal=2",
		"new monitor.mdv_sub_1_mode_0_terminal_1 element=Transformer.mdv_sub_1 mode=0 terminal=1",
		"new monitor.mdv_sub_1_mode_0_terminal_2 element=Transformer.mdv_sub_1 mode=0 terminal=2",
	}, p.Commands())
}

func TestPlanEmptyCircuit(t *testing.T) {
	p := NewPlan(topology.Circuit{}, ModePower)
	assert.Zero(t, p.Len())
	assert.Empty(t, p.Commands())
}
