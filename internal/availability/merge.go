package availability

// RuleContribution is the set of days one recurrence rule produced for the
// target month, attributed to its owner and category.
type RuleContribution struct {
	RuleID   string
	Username string
	Choice   Choice
	Days     []int
}

// Merge folds rule-derived days into the aggregated manual choices. A day
// the user already holds in any category blocks the rule day, whatever
// category either side used: an explicit answer always beats an inherited
// one. Contributions fold in order against the accumulated state, so a day
// two rules both produce goes to the earlier rule, and merging the same
// contribution twice is a no-op. The input mapping is not mutated.
func Merge(manual map[string]DayChoices, contributions []RuleContribution) (map[string]DayChoices, error) {
	resolved := make(map[string]DayChoices, len(manual))
	for u, dc := range manual {
		resolved[u] = dc
	}

	for _, contrib := range contributions {
		dc, ok := resolved[contrib.Username]
		if !ok {
			return nil, &IntegrityError{Username: contrib.Username}
		}
		claimed := dc.claimedDays()
		free := make([]int, 0, len(contrib.Days))
		for _, day := range contrib.Days {
			if _, taken := claimed[day]; !taken {
				free = append(free, day)
			}
		}
		resolved[contrib.Username] = dc.withDays(contrib.Choice, free)
	}
	return resolved, nil
}
