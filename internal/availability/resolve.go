// Package availability implements the recurring-availability resolution
// engine. It parses compact recurrence rules, expands them onto a target
// month and merges the derived days with each user's manual choices; manual
// choices always win. The engine is pure computation over already-fetched
// rows; it performs no I/O and holds no state.
package availability

import "fmt"

// Rule is a stored recurrence rule as fetched by the data layer.
type Rule struct {
	ID        string
	Choice    Choice
	Raw       string
	StartDate Date
	Username  string
}

// Response is the engine's externally observable output shape. Time carries
// the requested month selector (MM-YYYY, 0-based month).
type Response struct {
	EventName      string                `json:"eventName"`
	Time           string                `json:"time"`
	GroupedChoices map[string]DayChoices `json:"groupedChoices"`
}

// Resolve computes the per-user availability for the month of monthStart
// from the event's roster, manual day choices and recurrence rules. Errors
// carry the offending rule id or username so callers can fix the upstream
// data.
func Resolve(eventName string, monthStart Date, users []string, choices []ChoiceRow, rules []Rule) (Response, error) {
	grouped, err := Aggregate(users, choices)
	if err != nil {
		return Response{}, err
	}

	contributions := make([]RuleContribution, 0, len(rules))
	for _, r := range rules {
		parsed, err := ParseRule(r.Raw)
		if err != nil {
			return Response{}, fmt.Errorf("rule %s: %w", r.ID, err)
		}
		days, err := OccurrencesInMonth(parsed, r.StartDate, monthStart)
		if err != nil {
			return Response{}, fmt.Errorf("rule %s: %w", r.ID, err)
		}
		contributions = append(contributions, RuleContribution{
			RuleID:   r.ID,
			Username: r.Username,
			Choice:   r.Choice,
			Days:     days,
		})
	}

	resolved, err := Merge(grouped, contributions)
	if err != nil {
		return Response{}, err
	}

	return Response{
		EventName:      eventName,
		Time:           FormatMonth(monthStart),
		GroupedChoices: resolved,
	}, nil
}
