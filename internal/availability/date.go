package availability

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date is a single day on the fixed UTC calendar. Month is 0-based (0 =
// January), matching the wire format of month selectors. Values are
// immutable; arithmetic returns a new Date and normalizes out-of-range
// components through the time package.
type Date struct {
	Year  int
	Month int
	Day   int
}

func NewDate(year, month, day int) Date {
	return fromTime(time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC))
}

// DateOf truncates t to its UTC calendar day.
func DateOf(t time.Time) Date {
	return fromTime(t.UTC())
}

func fromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()) - 1, Day: t.Day()}
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month+1), d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) AddDays(n int) Date {
	return fromTime(d.Time().AddDate(0, 0, n))
}

// Weekday returns the ISO weekday index, Monday=1 through Sunday=7.
func (d Date) Weekday() int {
	wd := int(d.Time().Weekday()) // 0 = Sunday
	if wd == 0 {
		return 7
	}
	return wd
}

// DaysUntil returns the number of calendar days from d to o; negative when o
// precedes d.
func (d Date) DaysUntil(o Date) int {
	return int(o.Time().Sub(d.Time()) / (24 * time.Hour))
}

// SameMonth reports whether both dates fall in the same calendar month.
func (d Date) SameMonth(o Date) bool {
	return d.Year == o.Year && d.Month == o.Month
}

// DaysInMonth returns the length of d's month.
func (d Date) DaysInMonth() int {
	return time.Date(d.Year, time.Month(d.Month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

func (d Date) String() string {
	return d.Time().Format("2006-01-02")
}

var monthSelectorRe = regexp.MustCompile(`^(\d{1,2})-(\d{4})$`)

// ParseMonth parses an "MM-YYYY" selector (MM 0-based, 0-11) into the first
// day of that month. Anything else is a FormatError.
func ParseMonth(s string) (Date, error) {
	m := monthSelectorRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Date{}, &FormatError{What: "month selector", Value: s}
	}
	month, err := strconv.Atoi(m[1])
	if err != nil || month > 11 {
		return Date{}, &FormatError{What: "month selector", Value: s}
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return Date{}, &FormatError{What: "month selector", Value: s}
	}
	return Date{Year: year, Month: month, Day: 1}, nil
}

// FormatMonth renders the selector for d's month, unpadded, 0-based.
func FormatMonth(d Date) string {
	return fmt.Sprintf("%d-%d", d.Month, d.Year)
}
