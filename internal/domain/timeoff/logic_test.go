package timeoff

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDayNormalizes(t *testing.T) {
	in := time.Date(2026, 3, 14, 15, 9, 26, 535, time.FixedZone("offset", 3600))
	got := Day(in)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Fatalf("expected midnight, got %v", got)
	}
	if got.Location() != time.UTC {
		t.Fatalf("expected UTC, got %v", got.Location())
	}
	if got.Year() != 2026 || got.Month() != 3 || got.Day() != 14 {
		t.Fatalf("expected calendar day preserved, got %v", got)
	}
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(2026, time.February)
	if !start.Equal(date(2026, 2, 1)) {
		t.Fatalf("expected 2026-02-01, got %v", start)
	}
	if !end.Equal(date(2026, 2, 28)) {
		t.Fatalf("expected 2026-02-28, got %v", end)
	}

	start, end = MonthBounds(2024, time.February)
	if !start.Equal(date(2024, 2, 1)) || !end.Equal(date(2024, 2, 29)) {
		t.Fatalf("expected leap-year bounds, got %v %v", start, end)
	}

	start, end = MonthBounds(2025, time.December)
	if !start.Equal(date(2025, 12, 1)) || !end.Equal(date(2025, 12, 31)) {
		t.Fatalf("expected december bounds, got %v %v", start, end)
	}
}

func TestOverlapsMonth(t *testing.T) {
	monthStart, monthEnd := MonthBounds(2026, time.January)

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"fully inside", date(2026, 1, 10), date(2026, 1, 12), true},
		{"starts inside ends after", date(2026, 1, 28), date(2026, 2, 3), true},
		{"starts before ends inside", date(2025, 12, 29), date(2026, 1, 2), true},
		{"spans entire month", date(2025, 12, 15), date(2026, 2, 15), true},
		{"single day on boundary", date(2026, 1, 31), date(2026, 1, 31), true},
		{"before the month", date(2025, 12, 1), date(2025, 12, 31), false},
		{"after the month", date(2026, 2, 1), date(2026, 2, 5), false},
	}
	for _, tc := range cases {
		if got := OverlapsMonth(tc.start, tc.end, monthStart, monthEnd); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestRequestSpanningMonthBoundaryVisibleInBoth(t *testing.T) {
	start := date(2026, 1, 28)
	end := date(2026, 2, 3)

	janStart, janEnd := MonthBounds(2026, time.January)
	febStart, febEnd := MonthBounds(2026, time.February)

	if !OverlapsMonth(start, end, janStart, janEnd) {
		t.Fatal("expected request to appear in january")
	}
	if !OverlapsMonth(start, end, febStart, febEnd) {
		t.Fatal("expected request to appear in february")
	}
}

func TestInclusiveDays(t *testing.T) {
	if got := InclusiveDays(date(2026, 1, 10), date(2026, 1, 10)); got != 1 {
		t.Fatalf("expected 1 day, got %d", got)
	}
	if got := InclusiveDays(date(2026, 1, 10), date(2026, 1, 12)); got != 3 {
		t.Fatalf("expected 3 days, got %d", got)
	}
}

func TestTerminal(t *testing.T) {
	if Terminal(StatusPending) {
		t.Fatal("pending must not be terminal")
	}
	if !Terminal(StatusApproved) || !Terminal(StatusRejected) {
		t.Fatal("approved and rejected must be terminal")
	}
}
