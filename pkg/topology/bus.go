package topology

import (
	"strconv"
	"strings"
)

// BusSeparator splits a bus name from its node (phase) suffixes.
const BusSeparator = "."

// PhaseOf returns the zero-based phase of a phase-suffixed bus identifier.
// Loads are Y-connected with a single terminal, so "b42.1" is phase A (0),
// "b42.2" phase B (1) and so on. Only the first suffix is read.
func PhaseOf(bus string) (int, error) {
	_, rest, ok := strings.Cut(bus, BusSeparator)
	if !ok {
		return 0, NewError("PhaseOf").Bus(bus).Cause(ErrMalformedBusIdentifier).Err()
	}
	node, _, _ := strings.Cut(rest, BusSeparator)

	n, err := strconv.Atoi(node)
	if err != nil || n < 1 {
		return 0, NewError("PhaseOf").Bus(bus).Cause(ErrMalformedBusIdentifier).Err()
	}
	return n - 1, nil
}

// BusName strips node suffixes from a bus identifier ("b42.2" -> "b42").
func BusName(bus string) string {
	name, _, _ := strings.Cut(bus, BusSeparator)
	return name
}
