package availability

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOccurrencesInMonthBiweekly(t *testing.T) {
	// Every 2 weeks on Tue/Thu, anchored to Tue 2024-01-02, resolved for
	// February 2024 (leap month, 29 days). The cadence multiples of 14 days
	// from Jan 2 put the shared anchor on Tue Feb 13.
	rule, err := ParseRule("FREQ=WEEKLY;INTERVAL=2;BYDAY=TU,TH")
	require.NoError(t, err)

	days, err := OccurrencesInMonth(rule, NewDate(2024, 0, 2), NewDate(2024, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, []int{13, 27, 15, 29}, days)
}

func TestOccurrencesInMonth(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		ruleStart  Date
		monthStart Date
		want       []int
	}{
		{
			name:       "weekly rule starting mid target month",
			raw:        "FREQ=WEEKLY;INTERVAL=1;BYDAY=MO",
			ruleStart:  NewDate(2024, 1, 10), // Sat Feb 10
			monthStart: NewDate(2024, 1, 1),
			want:       []int{12, 19, 26},
		},
		{
			name:       "rule starting in a future month",
			raw:        "FREQ=WEEKLY;INTERVAL=1;BYDAY=MO",
			ruleStart:  NewDate(2024, 2, 5),
			monthStart: NewDate(2024, 1, 1),
			want:       nil,
		},
		{
			name:       "anchor cadence overshoots the target month",
			raw:        "FREQ=WEEKLY;INTERVAL=5;BYDAY=WE",
			ruleStart:  NewDate(2024, 0, 31), // next cadence stop is Mar 6
			monthStart: NewDate(2024, 1, 1),
			want:       nil,
		},
		{
			name:       "weekday alignment wraps past month end",
			raw:        "FREQ=WEEKLY;INTERVAL=1;BYDAY=FR",
			ruleStart:  NewDate(2024, 1, 27), // Tue Feb 27; next Friday is Mar 1
			monthStart: NewDate(2024, 1, 1),
			want:       nil,
		},
		{
			name:       "last day of month included",
			raw:        "FREQ=WEEKLY;INTERVAL=1;BYDAY=TH",
			ruleStart:  NewDate(2024, 1, 27),
			monthStart: NewDate(2024, 1, 1),
			want:       []int{29},
		},
		{
			name:       "four week interval anchored before the month",
			raw:        "FREQ=WEEKLY;INTERVAL=4;BYDAY=MO",
			ruleStart:  NewDate(2024, 0, 1), // Mon Jan 1; cadence stops Jan 29, Feb 26
			monthStart: NewDate(2024, 1, 1),
			want:       []int{26},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := ParseRule(tt.raw)
			require.NoError(t, err)
			days, err := OccurrencesInMonth(rule, tt.ruleStart, tt.monthStart)
			require.NoError(t, err)
			assert.Equal(t, tt.want, days)
		})
	}
}

func TestOccurrencesInMonthUnsupportedFrequency(t *testing.T) {
	rule, err := ParseRule("FREQ=MONTHLY;INTERVAL=1;BYDAY=WE")
	require.NoError(t, err)

	_, err = OccurrencesInMonth(rule, NewDate(2024, 0, 3), NewDate(2024, 1, 1))
	require.Error(t, err)
	var unsupported *UnsupportedRuleError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "MONTHLY", unsupported.Freq)
}

// Every returned day number must correspond to a date inside the target
// month, whatever the rule shape.
func TestOccurrencesStayWithinMonth(t *testing.T) {
	raws := []string{
		"FREQ=WEEKLY;INTERVAL=1;BYDAY=MO,TU,WE,TH,FR,SA,SU",
		"FREQ=WEEKLY;INTERVAL=2;BYDAY=SU",
		"FREQ=WEEKLY;INTERVAL=3;BYDAY=FR,SA",
	}
	starts := []Date{
		NewDate(2023, 11, 25),
		NewDate(2024, 0, 1),
		NewDate(2024, 1, 28),
	}
	monthStart := NewDate(2024, 1, 1)

	for _, raw := range raws {
		rule, err := ParseRule(raw)
		require.NoError(t, err)
		for _, start := range starts {
			days, err := OccurrencesInMonth(rule, start, monthStart)
			require.NoError(t, err)
			for _, day := range days {
				date := NewDate(monthStart.Year, monthStart.Month, day)
				assert.True(t, date.SameMonth(monthStart), "rule %q start %s produced %d", raw, start, day)
				assert.Equal(t, day, date.Day)
			}
		}
	}
}

// Exhaustive weekday-pair check of the alignment arithmetic: for every
// from-weekday and every searched weekday the result lands on the searched
// weekday within the same week (offset 0..6), with offset 0 exactly when the
// weekdays already match.
func TestNextWeekdayOnOrAfterAllPairs(t *testing.T) {
	// 2024-01-01 is a Monday, so this week covers weekdays 1..7 in order.
	for fromDay := 1; fromDay <= 7; fromDay++ {
		from := NewDate(2024, 0, fromDay)
		require.Equal(t, fromDay, from.Weekday())
		for target := 1; target <= 7; target++ {
			got := nextWeekdayOnOrAfter(from, target)
			offset := from.DaysUntil(got)
			assert.Equal(t, target, got.Weekday(), "from %d to %d", fromDay, target)
			assert.GreaterOrEqual(t, offset, 0, "from %d to %d", fromDay, target)
			assert.Less(t, offset, 7, "from %d to %d", fromDay, target)
			if target == fromDay {
				assert.Zero(t, offset, "equal weekdays must not skip a week")
			}
		}
	}
}
