// Package monitor names engine monitors and renders the commands that attach
// them to circuit elements.
package monitor

import (
	"fmt"
	"strings"
)

// Monitor modes. Standard records voltages and currents; power records
// apparent power and angle per phase.
const (
	ModeStandard = 0
	ModePower    = 1
)

// Terminals. Loads have a single terminal; transformers are monitored on
// both windings.
const (
	TerminalPrimary   = 1
	TerminalSecondary = 2
)

// Monitor attaches to one terminal of one element.
type Monitor struct {
	Name       string
	ObjectName string // class-qualified element name, e.g. "Load.l1"
	Mode       int
	Terminal   int
}

// Name returns "<element>_mode_<mode>_terminal_<terminal>".
func Name(element string, mode, terminal int) string {
	return fmt.Sprintf("%s_mode_%d_terminal_%d", element, mode, terminal)
}

// New creates the monitor of one object terminal.
func New(objectName string, mode, terminal int) Monitor {
	return Monitor{
		Name:       Name(elementName(objectName), mode, terminal),
		ObjectName: objectName,
		Mode:       mode,
		Terminal:   terminal,
	}
}

// Make creates one monitor per object, all on the same mode and terminal.
func Make(objectNames []string, mode, terminal int) []Monitor {
	monitors := make([]Monitor, len(objectNames))
	for i, name := range objectNames {
		monitors[i] = New(name, mode, terminal)
	}
	return monitors
}

// Command renders the engine command that creates the monitor.
func (m Monitor) Command() string {
	return fmt.Sprintf("new monitor.%s element=%s mode=%d terminal=%d", m.Name, m.ObjectName, m.Mode, m.Terminal)
}

// Commands renders the commands of monitors in order.
func Commands(monitors []Monitor) []string {
	cmds := make([]string, len(monitors))
	for i, m := range monitors {
		cmds[i] = m.Command()
	}
	return cmds
}

func elementName(objectName string) string {
	if i := strings.LastIndex(objectName, "."); i >= 0 {
		return objectName[i+1:]
	}
	return objectName
}
