package date

import (
	"fmt"
	"strings"
)

// Period is the length of a recurring cycle, counted in whole months.
type Period int

func (p Period) String() string {
	switch p {
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case SemiAnnually:
		return "semi-annually"
	case Yearly:
		return "yearly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

const (
	Monthly Period = iota
	Quarterly
	SemiAnnually
	Yearly
)

// Months returns the length of the period in months.
func (p Period) Months() int {
	switch p {
	case Quarterly:
		return 3
	case SemiAnnually:
		return 6
	case Yearly:
		return 12
	default:
		return 1
	}
}

// PerYear returns how many periods fit in a year.
func (p Period) PerYear() int { return 12 / p.Months() }

func ParsePeriod(p string) (Period, error) {
	p = strings.ToLower(p)
	switch p {
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "semi-annually", "semi_annually", "semester", "half":
		return SemiAnnually, nil
	case "yearly", "year", "annually":
		return Yearly, nil
	default:
		return Monthly, fmt.Errorf("unknown period %s", p)
	}
}

// Schedule returns the dates start+k·p for k ≥ 1 that are not after end.
// The start itself is never part of the schedule. Every step is computed from
// start so that a clamped day (the 31st in February) does not drift.
func Schedule(start Date, p Period, end Date) []Date {
	var dates []Date
	for k := 1; ; k++ {
		next := start.AddMonths(k * p.Months())
		if next.After(end) {
			return dates
		}
		dates = append(dates, next)
	}
}
