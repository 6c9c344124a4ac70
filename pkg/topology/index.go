package topology

// DuplicateBus records a bus identifier claimed by more than one element of
// the same kind. Positions are in snapshot order; Positions[0] is the winner.
type DuplicateBus struct {
	Kind      string // "line" or "transformer"
	Bus       string
	Names     []string
	Positions []int
}

// BusIndex maps bus identifiers to lines and transformers.
// Keys are compared by exact string equality; no case folding or suffix
// stripping is applied. On duplicate keys the first element in snapshot order
// wins and the collision is kept in Duplicates.
type BusIndex struct {
	lines        []Line
	transformers []Transformer

	lineByBus2           map[string]int
	transformerByBus     map[string]int
	lineDupes            map[string][]int
	transformerDupes     map[string][]int
	lineDupeOrder        []string
	transformerDupeOrder []string
}

// NewBusIndex builds the lookup maps for a circuit snapshot.
func NewBusIndex(c Circuit) *BusIndex {
	idx := &BusIndex{
		lines:            c.Lines,
		transformers:     c.Transformers,
		lineByBus2:       make(map[string]int, len(c.Lines)),
		transformerByBus: make(map[string]int, len(c.Transformers)),
		lineDupes:        make(map[string][]int),
		transformerDupes: make(map[string][]int),
	}

	for i, line := range c.Lines {
		if first, exists := idx.lineByBus2[line.Bus2]; exists {
			if _, seen := idx.lineDupes[line.Bus2]; !seen {
				idx.lineDupes[line.Bus2] = []int{first}
				idx.lineDupeOrder = append(idx.lineDupeOrder, line.Bus2)
			}
			idx.lineDupes[line.Bus2] = append(idx.lineDupes[line.Bus2], i)
			continue
		}
		idx.lineByBus2[line.Bus2] = i
	}

	for i, t := range c.Transformers {
		if first, exists := idx.transformerByBus[t.WindingBus]; exists {
			if _, seen := idx.transformerDupes[t.WindingBus]; !seen {
				idx.transformerDupes[t.WindingBus] = []int{first}
				idx.transformerDupeOrder = append(idx.transformerDupeOrder, t.WindingBus)
			}
			idx.transformerDupes[t.WindingBus] = append(idx.transformerDupes[t.WindingBus], i)
			continue
		}
		idx.transformerByBus[t.WindingBus] = i
	}

	return idx
}

// FindLineByBus2 returns the first line whose downstream bus equals bus.
func (idx *BusIndex) FindLineByBus2(bus string) (Line, bool) {
	i, ok := idx.lineByBus2[bus]
	if !ok {
		return Line{}, false
	}
	return idx.lines[i], true
}

// FindTransformerByBus returns the first transformer whose winding bus equals bus.
func (idx *BusIndex) FindTransformerByBus(bus string) (Transformer, bool) {
	i, ok := idx.transformerByBus[bus]
	if !ok {
		return Transformer{}, false
	}
	return idx.transformers[i], true
}

// Duplicates returns every colliding key, lines first, each in first-seen order.
func (idx *BusIndex) Duplicates() []DuplicateBus {
	out := make([]DuplicateBus, 0, len(idx.lineDupeOrder)+len(idx.transformerDupeOrder))

	for _, bus := range idx.lineDupeOrder {
		positions := idx.lineDupes[bus]
		names := make([]string, len(positions))
		for k, p := range positions {
			names[k] = idx.lines[p].Name
		}
		out = append(out, DuplicateBus{Kind: "line", Bus: bus, Names: names, Positions: positions})
	}

	for _, bus := range idx.transformerDupeOrder {
		positions := idx.transformerDupes[bus]
		names := make([]string, len(positions))
		for k, p := range positions {
			names[k] = idx.transformers[p].Name
		}
		out = append(out, DuplicateBus{Kind: "transformer", Bus: bus, Names: names, Positions: positions})
	}

	return out
}

// LineCount returns the number of indexed lines, duplicates included.
func (idx *BusIndex) LineCount() int {
	return len(idx.lines)
}

// TransformerCount returns the number of indexed transformers, duplicates included.
func (idx *BusIndex) TransformerCount() int {
	return len(idx.transformers)
}
