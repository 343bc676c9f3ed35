// Package windows resolves the set of windows that apply to a date.
package windows

import (
	"sort"
	"time"

	"github.com/julianstephens/dayweave/internal/calendar"
	"github.com/julianstephens/dayweave/internal/models"
)

// Config is the raw window configuration for one user.
type Config struct {
	// Windows is the default window set, used when no day type applies.
	Windows  []models.Window
	DayTypes []models.DayType
	// Assignments maps a date key (YYYY-MM-DD) to a day type ID.
	Assignments map[string]string
	// DefaultDayType is the day type used for unassigned dates. When empty,
	// a day type flagged IsDefault is used; failing that, Windows.
	DefaultDayType string
}

// Empty reports whether the config defines no windows at all.
func (c Config) Empty() bool {
	if len(c.Windows) > 0 {
		return false
	}
	for _, dt := range c.DayTypes {
		if len(dt.Windows) > 0 {
			return false
		}
	}
	return true
}

// DayTypeFor returns the day type that applies to date, if any.
func (c Config) DayTypeFor(date time.Time, cal calendar.Calendar) (models.DayType, bool) {
	if id, ok := c.Assignments[cal.DateKey(date)]; ok {
		if dt, ok := c.dayType(id); ok {
			return dt, true
		}
	}
	if c.DefaultDayType != "" {
		if dt, ok := c.dayType(c.DefaultDayType); ok {
			return dt, true
		}
	}
	for _, dt := range c.DayTypes {
		if dt.IsDefault {
			return dt, true
		}
	}
	return models.DayType{}, false
}

func (c Config) dayType(id string) (models.DayType, bool) {
	for _, dt := range c.DayTypes {
		if dt.ID == id {
			return dt, true
		}
	}
	return models.DayType{}, false
}

// SourceFor returns the configured windows for date's day type, before any
// weekday or overlap filtering.
func (c Config) SourceFor(date time.Time, cal calendar.Calendar) []models.Window {
	if dt, ok := c.DayTypeFor(date, cal); ok {
		return dt.Windows
	}
	return c.Windows
}

// ResolveForDate returns the windows active on date's local weekday, sorted
// by start time then ID. A day type assigned to the date replaces the
// default set. A window overlapping one that starts earlier is dropped, and
// windows with an empty span are ignored. No configuration yields an empty
// list, not an error.
func ResolveForDate(date time.Time, cfg Config, cal calendar.Calendar) []models.Window {
	if cal == nil {
		cal = calendar.New("")
	}

	source := cfg.SourceFor(date, cal)
	wd := cal.Weekday(date)
	active := make([]models.Window, 0, len(source))
	for _, w := range source {
		if w.End <= w.Start || !w.ActiveOn(wd) {
			continue
		}
		active = append(active, w)
	}

	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Start != active[j].Start {
			return active[i].Start < active[j].Start
		}
		return active[i].ID < active[j].ID
	})

	resolved := make([]models.Window, 0, len(active))
	for _, w := range active {
		if n := len(resolved); n > 0 && w.Start < resolved[n-1].End {
			continue
		}
		resolved = append(resolved, w)
	}
	return resolved
}

// DaysFor returns the weekdays the window with id is active on under the
// default set. It returns false when no such window exists.
func (c Config) DaysFor(id string) ([]time.Weekday, bool) {
	for _, w := range c.Windows {
		if w.ID == id {
			return w.Days, true
		}
	}
	for _, dt := range c.DayTypes {
		for _, w := range dt.Windows {
			if w.ID == id {
				return w.Days, true
			}
		}
	}
	return nil, false
}
