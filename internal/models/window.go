package models

import "time"

// Window is a recurring span of local time that can host work. Start and
// End are times of day, not instants; they are resolved per date.
type Window struct {
	ID        string         `json:"id" yaml:"id" validate:"required"`
	Label     string         `json:"label" yaml:"label"`
	Start     Clock          `json:"start" yaml:"start" validate:"gte=0,lt=1440"`
	End       Clock          `json:"end" yaml:"end" validate:"gtfield=Start,lte=1440"`
	Days      []time.Weekday `json:"days,omitempty" yaml:"-" validate:"dive,gte=0,lte=6"`
	EnergyCap Energy         `json:"energy_cap" yaml:"energy" validate:"gte=0,lte=5"`
	Location  string         `json:"location,omitempty" yaml:"location,omitempty"`
}

// DurationMin is the nominal length of the window in minutes. The resolved
// length on a DST transition day may differ.
func (w Window) DurationMin() int {
	return int(w.End - w.Start)
}

// ActiveOn reports whether the window recurs on wd. No days means every day.
func (w Window) ActiveOn(wd time.Weekday) bool {
	return ContainsWeekday(w.Days, wd)
}

// AcceptsLocation reports whether an item with the given location may be
// placed in the window. Unlocated windows accept anything; a located window
// only hosts items with the same location.
func (w Window) AcceptsLocation(location string) bool {
	if w.Location == "" {
		return true
	}
	return w.Location == location
}

// DayType is a named full-day template of windows. When a date is assigned
// a day type its windows replace the default set.
type DayType struct {
	ID        string   `json:"id" validate:"required"`
	Name      string   `json:"name" validate:"required"`
	IsDefault bool     `json:"is_default"`
	Windows   []Window `json:"windows" validate:"dive"`
}
