package date

import "fmt"

// Range represents a range of dates.
type Range struct{ From, To Date }

// NewRange returns the range between two days, boundaries included.
func NewRange(from, to Date) Range { return Range{From: from, To: to} }

// MonthRange returns the range covering a whole month.
func MonthRange(m Month) Range {
	return Range{From: m.FirstDay(), To: m.Add(1).FirstDay().Add(-1)}
}

// Contains return true date is included in the range (boundaries included).
// A zero boundary is open.
func (r Range) Contains(date Date) bool {
	if !r.From.IsZero() && date.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && date.After(r.To) {
		return false
	}
	return true
}

// Identifier compute a unique identifier for the Range.
func (r Range) Identifier() string {
	if r.From.Day() == 1 && MonthRange(MonthOf(r.From)) == r {
		return MonthOf(r.From).String()
	}
	return fmt.Sprintf("%s_%s", r.From, r.To)
}
