package topology

// testFeeder returns a small two-transformer feeder with a substation head.
func testFeeder() Circuit {
	return Circuit{
		Lines: []Line{
			{Name: "l_sub", Bus1: "sourcebus", Bus2: "x_primary"},
			{Name: "l1", Bus1: "x_a", Bus2: "b1.1"},
			{Name: "l2", Bus1: "x_a", Bus2: "b2.1"},
			{Name: "l3", Bus1: "x_b", Bus2: "b3.2"},
		},
		Transformers: []Transformer{
			{Name: "mdv_sub_1", WindingBus: "sourcebus", Role: RoleSubstation},
			{Name: "t_a", WindingBus: "x_a"},
			{Name: "t_b", WindingBus: "x_b"},
		},
		Loads: []Load{
			{Name: "L1", Bus: "b1.1", BaseProfile: "Residential"},
			{Name: "L2", Bus: "b2.1", BaseProfile: "Commercial_SM"},
			{Name: "L3", Bus: "b3.2", BaseProfile: "Residential"},
		},
	}
}
