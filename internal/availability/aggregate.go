package availability

// ChoiceRow is one manually picked day as fetched by the data layer.
type ChoiceRow struct {
	Username string
	Day      int
	Choice   Choice
}

// Aggregate groups manual day choices by user. Every roster user appears in
// the result, with empty buckets when they picked nothing, so downstream
// lookups never miss. A row naming a user outside the roster is an
// IntegrityError: it means an upstream join went wrong and continuing would
// drop or misattribute the row.
func Aggregate(users []string, rows []ChoiceRow) (map[string]DayChoices, error) {
	grouped := make(map[string]DayChoices, len(users))
	for _, u := range users {
		grouped[u] = emptyDayChoices()
	}
	for _, row := range rows {
		dc, ok := grouped[row.Username]
		if !ok {
			return nil, &IntegrityError{Username: row.Username}
		}
		grouped[row.Username] = dc.withDays(row.Choice, []int{row.Day})
	}
	return grouped, nil
}
