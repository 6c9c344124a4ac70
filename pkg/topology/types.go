package topology

// Role distinguishes distribution transformers from the substation transformer.
// Resolution ignores it; callers use it to split monitor and export sets.
type Role int

const (
	// RoleDistribution is a single-phase service transformer feeding loads
	RoleDistribution Role = iota
	// RoleSubstation is the feeder head transformer
	RoleSubstation
)

// String returns the string representation of a role
func (r Role) String() string {
	switch r {
	case RoleDistribution:
		return "distribution"
	case RoleSubstation:
		return "substation"
	default:
		return "unknown"
	}
}

// ParseRole converts a string to a Role. Empty input maps to RoleDistribution.
func ParseRole(s string) (Role, bool) {
	switch s {
	case "", "distribution", "DISTRIBUTION":
		return RoleDistribution, true
	case "substation", "SUBSTATION":
		return RoleSubstation, true
	default:
		return RoleDistribution, false
	}
}

// Line is a circuit edge. Bus1 is the upstream end, Bus2 the downstream end.
type Line struct {
	Name string
	Bus1 string
	Bus2 string
}

// Transformer is identified in topology matching by its active winding bus only.
type Transformer struct {
	Name       string
	WindingBus string
	Role       Role
}

// Load is a terminal demand element attached to one bus.
// BaseProfile is the name of the loadshape assigned before any reassignment.
type Load struct {
	Name        string
	Bus         string
	BaseProfile string
}

// Engine object classes used to qualify element names.
const (
	LoadClass        = "Load"
	TransformerClass = "Transformer"
)

// ObjectName qualifies an element name with its class ("Load.l1").
func ObjectName(class, element string) string {
	return class + "." + element
}

// Circuit is one topology snapshot. The order of each slice is the external
// enumeration order; Loads order is the canonical object iteration order.
type Circuit struct {
	Lines        []Line
	Transformers []Transformer
	Loads        []Load
}

// TransformersByRole returns the transformers with the given role, in snapshot order.
func (c Circuit) TransformersByRole(role Role) []Transformer {
	out := make([]Transformer, 0, len(c.Transformers))
	for _, t := range c.Transformers {
		if t.Role == role {
			out = append(out, t)
		}
	}
	return out
}

// LoadLabel is the derived structural label of a single load.
type LoadLabel struct {
	LoadName        string
	Phase           int
	Loadshape       string
	TransformerName string
}

// TransformerLabel groups the loads fed by one transformer.
// LoadIndices are positions in the original load order.
type TransformerLabel struct {
	TransformerName string
	Phase           int
	LoadIndices     []int
	LoadNames       []string
}
