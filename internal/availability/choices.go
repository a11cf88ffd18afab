package availability

// Choice is one of the three states a user can assign to a day. The values
// double as JSON keys in the response contract.
type Choice string

const (
	ChoiceAvailable      Choice = "available"
	ChoiceMaybeAvailable Choice = "maybe_available"
	ChoiceUnavailable    Choice = "unavailable"
)

func ValidChoice(c Choice) bool {
	switch c {
	case ChoiceAvailable, ChoiceMaybeAvailable, ChoiceUnavailable:
		return true
	}
	return false
}

// DayChoices holds a single user's day numbers per choice category. Slices
// are always non-nil so the JSON encoding stays [] rather than null.
type DayChoices struct {
	Available      []int `json:"available"`
	MaybeAvailable []int `json:"maybe_available"`
	Unavailable    []int `json:"unavailable"`
}

func emptyDayChoices() DayChoices {
	return DayChoices{
		Available:      []int{},
		MaybeAvailable: []int{},
		Unavailable:    []int{},
	}
}

func (dc DayChoices) bucket(c Choice) []int {
	switch c {
	case ChoiceAvailable:
		return dc.Available
	case ChoiceMaybeAvailable:
		return dc.MaybeAvailable
	default:
		return dc.Unavailable
	}
}

// claimedDays is the union of all three categories: any day present here is
// off-limits to rule contributions regardless of category.
func (dc DayChoices) claimedDays() map[int]struct{} {
	claimed := make(map[int]struct{}, len(dc.Available)+len(dc.MaybeAvailable)+len(dc.Unavailable))
	for _, days := range [][]int{dc.Available, dc.MaybeAvailable, dc.Unavailable} {
		for _, d := range days {
			claimed[d] = struct{}{}
		}
	}
	return claimed
}

// withDays returns a copy of dc with days appended to category c,
// deduplicated against the existing bucket. dc itself is left untouched.
func (dc DayChoices) withDays(c Choice, days []int) DayChoices {
	seen := make(map[int]struct{}, len(dc.bucket(c)))
	merged := make([]int, 0, len(dc.bucket(c))+len(days))
	for _, d := range dc.bucket(c) {
		seen[d] = struct{}{}
		merged = append(merged, d)
	}
	for _, d := range days {
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		merged = append(merged, d)
	}

	out := dc
	switch c {
	case ChoiceAvailable:
		out.Available = merged
	case ChoiceMaybeAvailable:
		out.MaybeAvailable = merged
	default:
		out.Unavailable = merged
	}
	return out
}
