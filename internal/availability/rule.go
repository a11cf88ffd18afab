package availability

import (
	"strconv"
	"strings"
)

type Frequency string

const FreqWeekly Frequency = "WEEKLY"

// ParsedRule is the structured form of a raw recurrence string such as
// "FREQ=WEEKLY;INTERVAL=2;BYDAY=TU,TH". Weekdays keep the order they appear
// in the BYDAY value.
type ParsedRule struct {
	Freq     Frequency
	Interval int
	Weekdays []string
}

// ParseRule parses the semicolon-delimited KEY=value grammar. FREQ, INTERVAL
// and BYDAY are required; a missing key, a non-positive interval or an
// unknown weekday code is a FormatError. The frequency itself is validated
// structurally only: unimplemented frequencies parse fine and are rejected
// later by occurrence generation.
func ParseRule(raw string) (ParsedRule, error) {
	fields := map[string]string{}
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, val, ok := strings.Cut(part, "=")
		if !ok || key == "" || val == "" {
			return ParsedRule{}, &FormatError{What: "recurrence rule", Value: raw}
		}
		fields[key] = val
	}

	freq, ok := fields["FREQ"]
	if !ok {
		return ParsedRule{}, &FormatError{What: "recurrence rule", Value: raw}
	}
	rawInterval, ok := fields["INTERVAL"]
	if !ok {
		return ParsedRule{}, &FormatError{What: "recurrence rule", Value: raw}
	}
	interval, err := strconv.Atoi(rawInterval)
	if err != nil || interval < 1 {
		return ParsedRule{}, &FormatError{What: "rule interval", Value: rawInterval}
	}
	byday, ok := fields["BYDAY"]
	if !ok {
		return ParsedRule{}, &FormatError{What: "recurrence rule", Value: raw}
	}

	codes := splitCodes(byday)
	for _, code := range codes {
		if _, err := codeToIndex(code); err != nil {
			return ParsedRule{}, err
		}
	}

	return ParsedRule{Freq: Frequency(freq), Interval: interval, Weekdays: codes}, nil
}
