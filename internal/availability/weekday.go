package availability

import "strings"

// ISO weekday indices for the two-letter codes used in rule strings.
var weekdayIndex = map[string]int{
	"MO": 1,
	"TU": 2,
	"WE": 3,
	"TH": 4,
	"FR": 5,
	"SA": 6,
	"SU": 7,
}

func codeToIndex(code string) (int, error) {
	idx, ok := weekdayIndex[code]
	if !ok {
		return 0, &FormatError{What: "weekday code", Value: code}
	}
	return idx, nil
}

// splitCodes splits a BYDAY value ("TU,TH") into its weekday codes, keeping
// the order they were written in.
func splitCodes(value string) []string {
	return strings.Split(value, ",")
}
