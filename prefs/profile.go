package prefs

// BuildProfile converts a side's preferences, given as nested ordered
// collections of integer agent ids (spec.md §6: "preferences are provided
// as nested ordered collections of integer agent ids"), into one *List per
// agent, and validates each against the opposite side's agent count.
//
// raw[i] is agent i's tiers in preference order; raw[i][t] is tier t's
// members. Validate panics (programmer error) on malformed input.
func BuildProfile(side Side, raw [][][]int, oppositeN int) []*List {
	lists := make([]*List, len(raw))
	for i, tiers := range raw {
		converted := make([]Tier, len(tiers))
		for t, members := range tiers {
			tier := make(Tier, len(members))
			for k, m := range members {
				tier[k] = Agent(m)
			}
			converted[t] = tier
		}
		l := NewList(converted...)
		Validate(side, Agent(i), l, oppositeN)
		lists[i] = l
	}
	return lists
}
