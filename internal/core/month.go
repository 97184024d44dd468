package core

import "strings"

// Month is a calendar month, 1 (January) through 12 (December).
type Month int

var monthLabels = [12]string{
	"JANUARI", "FEBRUARI", "MARET", "APRIL", "MEI", "JUNI",
	"JULI", "AGUSTUS", "SEPTEMBER", "OKTOBER", "NOVEMBER", "DESEMBER",
}

// Months returns the canonical month set in calendar order.
func Months() []Month {
	out := make([]Month, 12)
	for i := range out {
		out[i] = Month(i + 1)
	}
	return out
}

func (m Month) Valid() bool { return m >= 1 && m <= 12 }

// Label returns the canonical month name as it appears in the source sheets.
func (m Month) Label() string {
	if !m.Valid() {
		return ""
	}
	return monthLabels[m-1]
}

func (m Month) String() string { return m.Label() }

// ParseMonth matches a label against the canonical month names,
// ignoring case and surrounding whitespace.
func ParseMonth(label string) (Month, bool) {
	label = strings.ToUpper(strings.TrimSpace(label))
	for i, l := range monthLabels {
		if l == label {
			return Month(i + 1), true
		}
	}
	return 0, false
}
