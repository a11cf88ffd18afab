package availability

import "fmt"

// FormatError reports malformed caller input: a recurrence string or month
// selector that does not match the expected grammar. It is always an input
// problem, never an engine defect.
type FormatError struct {
	What  string
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format: invalid %s %q", e.What, e.Value)
}

// UnsupportedRuleError reports a syntactically valid rule that uses a
// frequency the engine does not implement. Kept distinct from FormatError so
// callers can tell bad data from a feature gap.
type UnsupportedRuleError struct {
	Freq string
}

func (e *UnsupportedRuleError) Error() string {
	return fmt.Sprintf("unsupported rule frequency %q", e.Freq)
}

// IntegrityError reports a choice or rule row referencing a username absent
// from the event roster. Continuing would silently misattribute data, so
// resolution aborts.
type IntegrityError struct {
	Username string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity: unknown user %q", e.Username)
}
