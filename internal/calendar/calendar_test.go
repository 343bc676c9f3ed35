package calendar

import (
	"testing"
	"time"

	"github.com/julianstephens/dayweave/internal/models"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Skipf("timezone data for %s unavailable: %v", name, err)
	}
	return loc
}

func TestNormalizeTimeZone(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty falls back to UTC", input: "", expected: "UTC"},
		{name: "blank falls back to UTC", input: "   ", expected: "UTC"},
		{name: "invalid falls back to UTC", input: "Mars/Olympus_Mons", expected: "UTC"},
		{name: "valid zone kept", input: "America/New_York", expected: "America/New_York"},
		{name: "surrounding space trimmed", input: " Europe/London ", expected: "Europe/London"},
		{name: "Local maps to process zone", input: "Local", expected: time.Local.String()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTimeZone(tt.input).String(); got != tt.expected {
				t.Errorf("NormalizeTimeZone(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeTimeZoneWithFallback(t *testing.T) {
	mustLoad(t, "Asia/Tokyo")
	if got := NormalizeTimeZoneWithFallback("bogus", "Asia/Tokyo").String(); got != "Asia/Tokyo" {
		t.Errorf("expected configured fallback, got %q", got)
	}
	if got := NormalizeTimeZoneWithFallback("bogus", "also-bogus").String(); got != "UTC" {
		t.Errorf("expected UTC when fallback is invalid, got %q", got)
	}
	if ValidTimeZone("bogus") || !ValidTimeZone("UTC") {
		t.Error("ValidTimeZone gave the wrong answer")
	}
}

func TestStartOfDay(t *testing.T) {
	ny := mustLoad(t, "America/New_York")

	// 2024-03-10 03:30 UTC is still 2024-03-09 in New York.
	instant := time.Date(2024, 3, 10, 3, 30, 0, 0, time.UTC)
	got := StartOfDay(instant, ny)
	want := time.Date(2024, 3, 9, 0, 0, 0, 0, ny)
	if !got.Equal(want) {
		t.Errorf("StartOfDay = %v, want %v", got, want)
	}
	if key := FormatDateKey(instant, ny); key != "2024-03-09" {
		t.Errorf("FormatDateKey = %q, want 2024-03-09", key)
	}
	if key := FormatDateKey(instant, time.UTC); key != "2024-03-10" {
		t.Errorf("FormatDateKey in UTC = %q, want 2024-03-10", key)
	}
}

func TestAddDaysPreservesWallClockAcrossDST(t *testing.T) {
	ny := mustLoad(t, "America/New_York")

	// Spring forward happens on 2024-03-10.
	before := time.Date(2024, 3, 9, 9, 0, 0, 0, ny)
	after := AddDays(before, 1, ny)
	if after.Hour() != 9 || after.Day() != 10 {
		t.Errorf("AddDays across spring-forward = %v, want 09:00 on the 10th", after)
	}
	if diff := after.Sub(before); diff != 23*time.Hour {
		t.Errorf("absolute difference = %v, want 23h", diff)
	}

	// Fall back happens on 2024-11-03.
	fb := time.Date(2024, 11, 2, 9, 0, 0, 0, ny)
	next := AddDays(fb, 1, ny)
	if next.Hour() != 9 || next.Sub(fb) != 25*time.Hour {
		t.Errorf("AddDays across fall-back = %v (%v), want 09:00 and 25h", next, next.Sub(fb))
	}
}

func TestAddDaysRoundTripKeepsDayKey(t *testing.T) {
	zones := []string{"America/New_York", "Europe/London", "Australia/Sydney", "Asia/Kolkata", "UTC"}
	instants := []time.Time{
		time.Date(2024, 3, 10, 7, 30, 0, 0, time.UTC),  // NY spring-forward morning
		time.Date(2024, 11, 3, 5, 30, 0, 0, time.UTC),  // NY fall-back, inside the repeated hour
		time.Date(2024, 3, 31, 1, 30, 0, 0, time.UTC),  // London spring-forward
		time.Date(2024, 10, 27, 1, 15, 0, 0, time.UTC), // London fall-back
		time.Date(2024, 4, 6, 15, 30, 0, 0, time.UTC),  // Sydney DST end
	}

	for _, zone := range zones {
		loc := mustLoad(t, zone)
		for _, instant := range instants {
			for _, n := range []int{1, -1, 7, 30} {
				key := FormatDateKey(instant, loc)
				back := AddDays(AddDays(instant, n, loc), -n, loc)
				if got := FormatDateKey(back, loc); got != key {
					t.Errorf("%s: AddDays(%v, %d) then back gives day %s, want %s", zone, instant, n, got, key)
				}
			}
		}
	}
}

func TestAddDaysIntoNonexistentHour(t *testing.T) {
	ny := mustLoad(t, "America/New_York")

	// 02:30 does not exist on 2024-03-10; the day key must still advance by one.
	start := time.Date(2024, 3, 9, 2, 30, 0, 0, ny)
	next := AddDays(start, 1, ny)
	if got := FormatDateKey(next, ny); got != "2024-03-10" {
		t.Errorf("day key = %s, want 2024-03-10", got)
	}
	if got := FormatDateKey(AddDays(next, -1, ny), ny); got != "2024-03-09" {
		t.Errorf("day key after going back = %s, want 2024-03-09", got)
	}
}

func TestAddMonthsClampsToMonthEnd(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		n    int
		want string
	}{
		{name: "jan 31 plus one", in: time.Date(2024, 1, 31, 8, 0, 0, 0, time.UTC), n: 1, want: "2024-02-29"},
		{name: "jan 31 non-leap", in: time.Date(2023, 1, 31, 8, 0, 0, 0, time.UTC), n: 1, want: "2023-02-28"},
		{name: "plus twelve", in: time.Date(2024, 2, 29, 8, 0, 0, 0, time.UTC), n: 12, want: "2025-02-28"},
		{name: "mid month", in: time.Date(2024, 5, 15, 8, 0, 0, 0, time.UTC), n: 6, want: "2024-11-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDateKey(AddMonths(tt.in, tt.n, time.UTC), time.UTC); got != tt.want {
				t.Errorf("AddMonths = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	ny := mustLoad(t, "America/New_York")

	a := time.Date(2024, 3, 9, 23, 0, 0, 0, ny)
	b := time.Date(2024, 3, 11, 0, 30, 0, 0, ny)
	if got := DaysBetween(a, b, ny); got != 2 {
		t.Errorf("DaysBetween = %d, want 2", got)
	}
	if got := DaysBetween(b, a, ny); got != -2 {
		t.Errorf("DaysBetween reversed = %d, want -2", got)
	}
}

func TestAtResolvesWindowBounds(t *testing.T) {
	ny := mustLoad(t, "America/New_York")
	day, err := ParseDateKey("2024-03-10", ny)
	if err != nil {
		t.Fatalf("ParseDateKey failed: %v", err)
	}

	start := At(day, models.MustClock("01:00"), ny)
	end := At(day, models.MustClock("04:00"), ny)
	// Spring forward skips 02:00-03:00, so the window only holds two hours.
	if got := end.Sub(start); got != 2*time.Hour {
		t.Errorf("resolved window length = %v, want 2h", got)
	}

	midnight := At(day, models.MustClock("24:00"), ny)
	if got := FormatDateKey(midnight, ny); got != "2024-03-11" {
		t.Errorf("24:00 resolves to %s, want next day", got)
	}
}

func TestClampToDay(t *testing.T) {
	day := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	if got, ok := ClampToDay(time.Date(2024, 5, 31, 22, 0, 0, 0, time.UTC), day, time.UTC); !ok || got.Hour() != 0 || got.Day() != 1 {
		t.Errorf("earlier instant should clamp to start of day, got %v %v", got, ok)
	}
	if _, ok := ClampToDay(time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), day, time.UTC); ok {
		t.Error("instant at next midnight should be outside the day")
	}
	now := time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)
	if got, ok := ClampToDay(now, day, time.UTC); !ok || !got.Equal(now) {
		t.Errorf("instant inside the day should be returned as-is, got %v", got)
	}
}

func TestCalendarInterface(t *testing.T) {
	cal := New("not/a-zone")
	if cal.Location() != time.UTC {
		t.Fatalf("expected UTC calendar, got %v", cal.Location())
	}
	day, err := cal.ParseDateKey("2024-01-31")
	if err != nil {
		t.Fatalf("ParseDateKey failed: %v", err)
	}
	if cal.Weekday(day) != time.Wednesday {
		t.Errorf("Weekday = %v, want Wednesday", cal.Weekday(day))
	}
	if got := cal.DateKey(cal.AddDays(day, 1)); got != "2024-02-01" {
		t.Errorf("AddDays = %s", got)
	}
	if got := cal.DaysBetween(day, cal.AddMonths(day, 1)); got != 29 {
		t.Errorf("DaysBetween to AddMonths = %d, want 29", got)
	}
	if got := ForLocation(nil).Location(); got != time.UTC {
		t.Errorf("ForLocation(nil) = %v, want UTC", got)
	}
}
