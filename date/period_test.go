package date

import (
	"testing"
	"time"
)

func TestSchedule(t *testing.T) {
	start := MustParse("2024-01-01")
	end := MustParse("2024-12-01")

	testCases := []struct {
		name   string
		period Period
		want   int
		first  Date
		last   Date
	}{
		{"monthly", Monthly, 11, MustParse("2024-02-01"), MustParse("2024-12-01")},
		{"quarterly", Quarterly, 3, MustParse("2024-04-01"), MustParse("2024-10-01")},
		{"semi-annually", SemiAnnually, 1, MustParse("2024-07-01"), MustParse("2024-07-01")},
		{"yearly", Yearly, 0, Date{}, Date{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Schedule(start, tc.period, end)
			if len(got) != tc.want {
				t.Fatalf("Schedule(%v) has %d entries, want %d: %v", tc.period, len(got), tc.want, got)
			}
			for _, d := range got {
				if d == start {
					t.Errorf("Schedule(%v) contains the start date", tc.period)
				}
			}
			if tc.want == 0 {
				return
			}
			if got[0] != tc.first {
				t.Errorf("Schedule(%v)[0] = %v, want %v", tc.period, got[0], tc.first)
			}
			if got[len(got)-1] != tc.last {
				t.Errorf("Schedule(%v) last = %v, want %v", tc.period, got[len(got)-1], tc.last)
			}
		})
	}
}

func TestScheduleDoesNotDrift(t *testing.T) {
	got := Schedule(MustParse("2024-01-31"), Monthly, MustParse("2024-05-31"))
	want := []Date{
		New(2024, time.February, 29),
		New(2024, time.March, 31),
		New(2024, time.April, 30),
		New(2024, time.May, 31),
	}
	if len(got) != len(want) {
		t.Fatalf("Schedule() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Schedule()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestParsePeriod(t *testing.T) {
	testCases := []struct {
		in   string
		want Period
	}{
		{"monthly", Monthly},
		{"QUARTERLY", Quarterly},
		{"semi_annually", SemiAnnually},
		{"annually", Yearly},
	}
	for _, tc := range testCases {
		got, err := ParsePeriod(tc.in)
		if err != nil {
			t.Errorf("ParsePeriod(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParsePeriod(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if _, err := ParsePeriod("weekly"); err == nil {
		t.Errorf("ParsePeriod(%q) expected an error", "weekly")
	}
}

func TestMonths(t *testing.T) {
	got := Months(NewMonth(2024, time.November), 3)
	want := []string{"2024-11", "2024-12", "2025-01"}
	if len(got) != len(want) {
		t.Fatalf("Months() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i].String() != want[i] {
			t.Errorf("Months()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	between := MonthsBetween(NewMonth(2024, time.December), NewMonth(2025, time.February))
	if len(between) != 3 {
		t.Errorf("MonthsBetween() = %v, want 3 months", between)
	}
	if empty := MonthsBetween(NewMonth(2025, time.March), NewMonth(2025, time.February)); len(empty) != 0 {
		t.Errorf("MonthsBetween(reversed) = %v, want empty", empty)
	}

	m, err := ParseMonth("2024-3")
	if err != nil || m.String() != "2024-03" {
		t.Errorf("ParseMonth(%q) = %v, %v, want 2024-03", "2024-3", m, err)
	}
}

func TestRangeContains(t *testing.T) {
	r := MonthRange(NewMonth(2024, time.February))
	if r.To != New(2024, time.February, 29) {
		t.Errorf("MonthRange().To = %v, want 2024-02-29", r.To)
	}
	if !r.Contains(New(2024, time.February, 1)) || !r.Contains(New(2024, time.February, 29)) {
		t.Errorf("MonthRange() should contain its boundaries")
	}
	if r.Contains(New(2024, time.March, 1)) {
		t.Errorf("MonthRange() should not contain 2024-03-01")
	}
	if got := r.Identifier(); got != "2024-02" {
		t.Errorf("Identifier() = %q, want %q", got, "2024-02")
	}
	open := Range{From: New(2024, time.January, 1)}
	if !open.Contains(New(2030, time.January, 1)) {
		t.Errorf("open Range should contain any later date")
	}
}
