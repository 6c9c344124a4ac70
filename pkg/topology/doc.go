// Package topology derives structural labels for the loads of a distribution
// feeder: the transformer feeding each load, the load's phase, and the
// per-transformer grouping of loads.
//
// Resolution is an exact-match equi-join over three flat relations keyed by
// bus identifier. The feeder is always two hops deep (load -> line ->
// transformer), so no graph traversal is involved:
//
//	idx := topology.NewBusIndex(circuit)
//	labels, err := topology.NewResolver(idx).ResolveAll(circuit.Loads)
//	groups := topology.Aggregate(labels)
//
// Labels must be computed from a snapshot taken before any load's base
// loadshape is reassigned; the package itself performs no I/O and holds no
// global state.
package topology
