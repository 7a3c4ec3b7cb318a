package date

import (
	"fmt"
	"time"
)

// MonthFormat is the layout of a month key, e.g. "2024-03".
const MonthFormat = "2006-01"

const readMonthFormat = "2006-1"

// Month identifies a calendar month. Its String form is the period key used
// by monthly obligations.
type Month struct {
	y int
	m time.Month
}

// NewMonth returns a normalized Month (month 13 of 2024 is January 2025).
func NewMonth(year int, month time.Month) Month {
	d := New(year, month, 1)
	return Month{d.y, d.m}
}

// MonthOf returns the month containing d.
func MonthOf(d Date) Month { return Month{d.y, d.m} }

// ThisMonth returns the month containing t.
func ThisMonth(t time.Time) Month { return NewMonth(t.Year(), t.Month()) }

// ParseMonth parses a month key such as "2024-03" (or "2024-3").
func ParseMonth(str string) (Month, error) {
	t, err := time.Parse(readMonthFormat, str)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q want format %q: %w", str, MonthFormat, err)
	}
	return NewMonth(t.Year(), t.Month()), nil
}

func (m Month) Year() int           { return m.y }
func (m Month) Month() time.Month   { return m.m }
func (m Month) FirstDay() Date      { return New(m.y, m.m, 1) }
func (m Month) Add(n int) Month     { return NewMonth(m.y, m.m+time.Month(n)) }
func (m Month) Before(x Month) bool { return m.y < x.y || (m.y == x.y && m.m < x.m) }
func (m Month) After(x Month) bool  { return x.Before(m) }
func (m Month) IsZero() bool        { return m.y == 0 && m.m == 0 }

// String returns the month key.
func (m Month) String() string { return m.FirstDay().time().Format(MonthFormat) }

// Months returns count consecutive months starting with first.
func Months(first Month, count int) []Month {
	if count <= 0 {
		return nil
	}
	list := make([]Month, 0, count)
	for i := range count {
		list = append(list, first.Add(i))
	}
	return list
}

// MonthsBetween returns every month from first to last, both included.
// It is empty when last is before first.
func MonthsBetween(first, last Month) []Month {
	var list []Month
	for m := first; !m.After(last); m = m.Add(1) {
		list = append(list, m)
	}
	return list
}
