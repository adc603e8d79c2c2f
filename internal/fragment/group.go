package fragment

// Groups maps each category to its fragments in discovery order.
// Iterate with Categories() for deterministic output; categories with no
// fragments are absent from the map entirely.
type Groups map[Category][]*Fragment

// Group buckets fragments by category, preserving the order in which they
// were discovered within each category (stable, no re-sort by content).
func Group(fragments []*Fragment) Groups {
	groups := make(Groups)
	for _, f := range fragments {
		groups[f.Category] = append(groups[f.Category], f)
	}
	return groups
}

// Categories returns the categories present in the groups, in the fixed
// taxonomy order.
func (g Groups) Categories() []Category {
	var present []Category
	for _, c := range Categories() {
		if len(g[c]) > 0 {
			present = append(present, c)
		}
	}
	return present
}

// Count returns the total number of fragments across all categories.
func (g Groups) Count() int {
	n := 0
	for _, fragments := range g {
		n += len(fragments)
	}
	return n
}

// IsEmpty reports whether the groups contain no fragments at all.
func (g Groups) IsEmpty() bool {
	return g.Count() == 0
}

// HasBreaking reports whether any grouped fragment is a breaking change.
func (g Groups) HasBreaking() bool {
	for _, fragments := range g {
		for _, f := range fragments {
			if f.Breaking {
				return true
			}
		}
	}
	return false
}
