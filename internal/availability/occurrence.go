package availability

const daysInWeek = 7

// OccurrencesInMonth computes the day numbers within the month of monthStart
// on which the rule fires. monthStart must be the first day of the target
// month. The result is ordered by the rule's weekday order, then by date, and
// may be empty; a rule starting after the target month yields no occurrences
// rather than an error. A non-WEEKLY frequency is an UnsupportedRuleError.
func OccurrencesInMonth(rule ParsedRule, ruleStart, monthStart Date) ([]int, error) {
	if rule.Freq != FreqWeekly {
		return nil, &UnsupportedRuleError{Freq: string(rule.Freq)}
	}

	anchor := intervalAnchor(ruleStart, monthStart, rule.Interval)
	if !anchor.SameMonth(monthStart) {
		return nil, nil
	}

	var days []int
	for _, code := range rule.Weekdays {
		idx, err := codeToIndex(code)
		if err != nil {
			return nil, err
		}
		first := nextWeekdayOnOrAfter(anchor, idx)
		for d := first; d.SameMonth(monthStart); d = d.AddDays(rule.Interval * daysInWeek) {
			days = append(days, d.Day)
		}
	}
	return days, nil
}

// intervalAnchor returns the earliest date on the rule's cadence (an integer
// multiple of interval weeks past start) that is on or after monthStart.
// When the rule starts inside or after the target month the start itself is
// the anchor.
func intervalAnchor(start, monthStart Date, interval int) Date {
	gap := start.DaysUntil(monthStart)
	if gap <= 0 {
		return start
	}
	step := interval * daysInWeek
	k := (gap + step - 1) / step
	return start.AddDays(k * step)
}

// nextWeekdayOnOrAfter finds the first date on or after from whose ISO
// weekday equals weekday. The equal case must short-circuit: falling through
// to the wrap branch would skip a whole week.
func nextWeekdayOnOrAfter(from Date, weekday int) Date {
	current := from.Weekday()
	switch {
	case weekday == current:
		return from
	case weekday > current:
		return from.AddDays(weekday - current)
	default:
		return from.AddDays(daysInWeek - current + weekday)
	}
}
