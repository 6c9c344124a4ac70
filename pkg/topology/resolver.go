package topology

// Resolver joins loads to their feeding transformer through a BusIndex.
// The feeder is always two hops deep: load -> line -> transformer.
type Resolver struct {
	index *BusIndex
}

// NewResolver creates a resolver over an existing index.
func NewResolver(index *BusIndex) *Resolver {
	return &Resolver{index: index}
}

// NewCircuitResolver indexes the circuit and returns a resolver for it.
func NewCircuitResolver(c Circuit) *Resolver {
	return NewResolver(NewBusIndex(c))
}

// Index returns the underlying bus index.
func (r *Resolver) Index() *BusIndex {
	return r.index
}

// Resolve derives the label of a single load.
func (r *Resolver) Resolve(load Load) (LoadLabel, error) {
	return r.resolve(load, -1)
}

func (r *Resolver) resolve(load Load, position int) (LoadLabel, error) {
	// The line's bus2 is attached to the load; its bus1 is the transformer side.
	line, ok := r.index.FindLineByBus2(load.Bus)
	if !ok {
		return LoadLabel{}, NewError("Resolve").Load(load.Name).Index(position).Bus(load.Bus).
			Cause(ErrUnresolvedLine).Err()
	}

	transformer, ok := r.index.FindTransformerByBus(line.Bus1)
	if !ok {
		return LoadLabel{}, NewError("Resolve").Line(line.Name).For(load.Name).Index(position).Bus(line.Bus1).
			Cause(ErrUnresolvedTransformer).Err()
	}

	phase, err := PhaseOf(load.Bus)
	if err != nil {
		return LoadLabel{}, NewError("Resolve").Load(load.Name).Index(position).Bus(load.Bus).
			Cause(ErrMalformedBusIdentifier).Err()
	}

	return LoadLabel{
		LoadName:        load.Name,
		Phase:           phase,
		Loadshape:       load.BaseProfile,
		TransformerName: transformer.Name,
	}, nil
}

// ResolveAll labels every load in iteration order. The first failure aborts
// the whole batch and no labels are returned; a partially labeled dataset is
// never produced.
func (r *Resolver) ResolveAll(loads []Load) ([]LoadLabel, error) {
	labels := make([]LoadLabel, len(loads))
	for i, load := range loads {
		label, err := r.resolve(load, i)
		if err != nil {
			return nil, err
		}
		labels[i] = label
	}
	return labels, nil
}
