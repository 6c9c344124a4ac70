package topology

import (
	"sort"
	"strconv"
	"strings"
)

// LabelListSeparator joins load names and indices in transformer label records.
const LabelListSeparator = ";"

// Aggregate groups load labels by feeding transformer.
//
// Members keep their first-seen (load iteration) order inside a group; the
// groups themselves are ordered by ascending transformer name. Service
// transformers are single phase, so a group's phase is read from its first
// member and not cross-checked here (see constraints.PhaseHomogeneityConstraint).
func Aggregate(labels []LoadLabel) []TransformerLabel {
	groups := make(map[string]*TransformerLabel)
	names := make([]string, 0)

	for i, label := range labels {
		group, ok := groups[label.TransformerName]
		if !ok {
			group = &TransformerLabel{
				TransformerName: label.TransformerName,
				Phase:           label.Phase,
			}
			groups[label.TransformerName] = group
			names = append(names, label.TransformerName)
		}
		group.LoadIndices = append(group.LoadIndices, i)
		group.LoadNames = append(group.LoadNames, label.LoadName)
	}

	sort.Strings(names)

	out := make([]TransformerLabel, len(names))
	for i, name := range names {
		out[i] = *groups[name]
	}
	return out
}

// JoinNames renders the member load names as a single ";"-separated field.
func (t TransformerLabel) JoinNames() string {
	return strings.Join(t.LoadNames, LabelListSeparator)
}

// JoinIndices renders the member load positions as a single ";"-separated field.
func (t TransformerLabel) JoinIndices() string {
	parts := make([]string, len(t.LoadIndices))
	for i, idx := range t.LoadIndices {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, LabelListSeparator)
}
