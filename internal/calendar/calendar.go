// Package calendar converts between absolute instants and a user's local
// calendar days. Everything that needs "day" semantics goes through here;
// adding 24h to an instant is never the same as moving to the next day.
package calendar

import (
	"strings"
	"time"

	"github.com/julianstephens/dayweave/internal/constants"
	"github.com/julianstephens/dayweave/internal/models"
)

// NormalizeTimeZone resolves an IANA zone name. It never fails: an empty or
// unknown name yields UTC. "Local" yields the process's local zone.
func NormalizeTimeZone(candidate string) *time.Location {
	return NormalizeTimeZoneWithFallback(candidate, constants.DefaultFallbackTimezone)
}

// NormalizeTimeZoneWithFallback is NormalizeTimeZone with a configured
// fallback zone. An invalid fallback degrades to UTC.
func NormalizeTimeZoneWithFallback(candidate, fallback string) *time.Location {
	if loc, ok := loadLocation(candidate); ok {
		return loc
	}
	if loc, ok := loadLocation(fallback); ok {
		return loc
	}
	return time.UTC
}

func loadLocation(name string) (*time.Location, bool) {
	name = strings.TrimSpace(name)
	switch name {
	case "":
		return nil, false
	case "Local":
		return time.Local, true
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, false
	}
	return loc, true
}

// ValidTimeZone reports whether name resolves to a zone without falling back.
func ValidTimeZone(name string) bool {
	_, ok := loadLocation(name)
	return ok
}

// StartOfDay returns local midnight of the day containing t.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// AddDays moves t by n local calendar days, keeping its wall-clock time.
// Across a DST change the absolute offset shifts; the local time does not.
func AddDays(t time.Time, n int, loc *time.Location) time.Time {
	local := t.In(loc)
	y, m, d := local.Date()
	return time.Date(y, m, d+n, local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), loc)
}

// AddMonths moves t by n local months. The day of month is clamped so that
// Jan 31 + 1 month is the last day of February, not early March.
func AddMonths(t time.Time, n int, loc *time.Location) time.Time {
	local := t.In(loc)
	y, m, d := local.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, loc)
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), loc)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FormatDateKey returns the YYYY-MM-DD key of t's local day.
func FormatDateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(constants.DateFormat)
}

// ParseDateKey parses a YYYY-MM-DD key to local midnight in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// At returns the instant of the given local time of day on day's local date.
// A clock of 24:00 resolves to the next local midnight.
func At(day time.Time, clock models.Clock, loc *time.Location) time.Time {
	y, m, d := day.In(loc).Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, loc)
}

// DaysBetween returns the number of local calendar days from a to b.
func DaysBetween(a, b time.Time, loc *time.Location) int {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	// Civil dates in UTC have no DST, so the division is exact.
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// Weekday returns the local weekday of t.
func Weekday(t time.Time, loc *time.Location) time.Weekday {
	return t.In(loc).Weekday()
}

// ClampToDay clamps now into day's local bounds. It returns false when now
// is already past the end of that day.
func ClampToDay(now, day time.Time, loc *time.Location) (time.Time, bool) {
	start := StartOfDay(day, loc)
	end := StartOfDay(AddDays(start, 1, loc), loc)
	switch {
	case !now.Before(end):
		return time.Time{}, false
	case !now.After(start):
		return start, true
	default:
		return now, true
	}
}

// Calendar bundles the day arithmetic for a single zone.
type Calendar interface {
	Location() *time.Location
	StartOfDay(t time.Time) time.Time
	AddDays(t time.Time, n int) time.Time
	AddMonths(t time.Time, n int) time.Time
	DateKey(t time.Time) string
	ParseDateKey(key string) (time.Time, error)
	At(day time.Time, clock models.Clock) time.Time
	DaysBetween(a, b time.Time) int
	Weekday(t time.Time) time.Weekday
}

type zoned struct {
	loc *time.Location
}

// New returns a Calendar for the named zone, normalized with NormalizeTimeZone.
func New(zone string) Calendar {
	return zoned{loc: NormalizeTimeZone(zone)}
}

// ForLocation returns a Calendar for an already resolved location.
func ForLocation(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return zoned{loc: loc}
}

func (z zoned) Location() *time.Location { return z.loc }
func (z zoned) StartOfDay(t time.Time) time.Time { return StartOfDay(t, z.loc) }
func (z zoned) AddDays(t time.Time, n int) time.Time { return AddDays(t, n, z.loc) }
func (z zoned) AddMonths(t time.Time, n int) time.Time { return AddMonths(t, n, z.loc) }
func (z zoned) DateKey(t time.Time) string { return FormatDateKey(t, z.loc) }
func (z zoned) ParseDateKey(key string) (time.Time, error) { return ParseDateKey(key, z.loc) }
func (z zoned) At(day time.Time, c models.Clock) time.Time { return At(day, c, z.loc) }
func (z zoned) DaysBetween(a, b time.Time) int { return DaysBetween(a, b, z.loc) }
func (z zoned) Weekday(t time.Time) time.Weekday { return Weekday(t, z.loc) }
