// Package ics renders a user's resolved availability as an iCalendar
// document: one all-day VEVENT per day answered available or
// maybe-available, plus one RRULE-bearing VEVENT per recurring rule the user
// owns.
package ics

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"

	"github.com/mwislek/termino/internal/availability"
)

const prodID = "-//termino//availability//EN"

var ruleWeekdays = map[string]rrule.Weekday{
	"MO": rrule.MO,
	"TU": rrule.TU,
	"WE": rrule.WE,
	"TH": rrule.TH,
	"FR": rrule.FR,
	"SA": rrule.SA,
	"SU": rrule.SU,
}

// Build encodes the given user's availability for the month of monthStart.
// Unavailable days are omitted; maybe-available days are marked TENTATIVE.
func Build(eventName, username string, monthStart availability.Date, choices availability.DayChoices, rules []availability.Rule) ([]byte, error) {
	cal := &ical.Calendar{
		Component: &ical.Component{
			Name:  ical.CompCalendar,
			Props: ical.Props{},
		},
	}
	cal.Props.SetText(ical.PropProductID, prodID)
	cal.Props.SetText(ical.PropVersion, "2.0")

	now := time.Now().UTC()

	for _, day := range choices.Available {
		cal.Children = append(cal.Children, dayEvent(eventName, username, monthStart, day, "CONFIRMED", now))
	}
	for _, day := range choices.MaybeAvailable {
		cal.Children = append(cal.Children, dayEvent(eventName, username, monthStart, day, "TENTATIVE", now))
	}

	for _, r := range rules {
		if r.Username != username {
			continue
		}
		comp, err := ruleEvent(eventName, r, now)
		if err != nil {
			return nil, err
		}
		cal.Children = append(cal.Children, comp)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func dayEvent(eventName, username string, monthStart availability.Date, day int, status string, now time.Time) *ical.Component {
	date := availability.NewDate(monthStart.Year, monthStart.Month, day)

	ev := &ical.Component{
		Name:  ical.CompEvent,
		Props: ical.Props{},
	}
	ev.Props.SetText(ical.PropUID, fmt.Sprintf("%s-%s-%s", username, date, status))
	ev.Props.SetDateTime(ical.PropDateTimeStamp, now)
	ev.Props.SetText(ical.PropSummary, fmt.Sprintf("%s: %s", eventName, username))
	ev.Props.SetText(ical.PropStatus, status)
	setAllDay(ev, ical.PropDateTimeStart, date)
	setAllDay(ev, ical.PropDateTimeEnd, date.AddDays(1))
	return ev
}

func ruleEvent(eventName string, r availability.Rule, now time.Time) (*ical.Component, error) {
	parsed, err := availability.ParseRule(r.Raw)
	if err != nil {
		return nil, err
	}

	weekdays := make([]rrule.Weekday, 0, len(parsed.Weekdays))
	for _, code := range parsed.Weekdays {
		wd, ok := ruleWeekdays[code]
		if !ok {
			return nil, fmt.Errorf("rule %s: unknown weekday %q", r.ID, code)
		}
		weekdays = append(weekdays, wd)
	}

	opt := rrule.ROption{
		Freq:      rrule.WEEKLY,
		Interval:  parsed.Interval,
		Byweekday: weekdays,
		Dtstart:   r.StartDate.Time(),
	}
	// NewRRule validates the option set before serialization.
	if _, err := rrule.NewRRule(opt); err != nil {
		return nil, fmt.Errorf("rule %s: %w", r.ID, err)
	}

	ev := &ical.Component{
		Name:  ical.CompEvent,
		Props: ical.Props{},
	}
	ev.Props.SetText(ical.PropUID, fmt.Sprintf("rule-%s", r.ID))
	ev.Props.SetDateTime(ical.PropDateTimeStamp, now)
	ev.Props.SetText(ical.PropSummary, fmt.Sprintf("%s: %s (%s)", eventName, r.Username, r.Choice))
	setAllDay(ev, ical.PropDateTimeStart, r.StartDate)
	setAllDay(ev, ical.PropDateTimeEnd, r.StartDate.AddDays(1))

	// RECUR values must not go through text escaping.
	prop := ical.NewProp(ical.PropRecurrenceRule)
	prop.Value = opt.RRuleString()
	ev.Props.Set(prop)

	return ev, nil
}

func setAllDay(comp *ical.Component, name string, date availability.Date) {
	prop := ical.NewProp(name)
	prop.Params.Set("VALUE", "DATE")
	prop.Value = date.Time().Format("20060102")
	comp.Props.Set(prop)
}
