// Package habits decides which habits are due on a given day and derives
// completion streaks from their history.
package habits

import (
	"time"

	"github.com/julianstephens/dayweave/internal/calendar"
	"github.com/julianstephens/dayweave/internal/models"
)

// Tag names the rule that decided a DueInfo. It is meant for debugging and
// "why is this due" output, never for control flow.
type Tag string

const (
	TagInactive           Tag = "inactive"
	TagOverride           Tag = "override"
	TagOverrideOverdue    Tag = "override_overdue"
	TagOverrideFuture     Tag = "override_future"
	TagBeforeCreation     Tag = "before_creation"
	TagScheduledToday     Tag = "scheduled_today"
	TagCompletedToday     Tag = "completed_today"
	TagDayMismatch        Tag = "day_mismatch"
	TagIntervalNotReached Tag = "interval_not_reached"
	TagWindowInactive     Tag = "window_inactive"
	TagDue                Tag = "due"
	TagOverdue            Tag = "overdue"
)

// Params is the input to EvaluateDueOnDate. LastScheduledStart and
// NextDueOverride take precedence over the values stored on the habit when
// set.
type Params struct {
	Habit    models.Habit
	Date     time.Time
	Calendar calendar.Calendar

	// WindowDays are the weekdays the habit's bound window is active on.
	// Empty means every day.
	WindowDays []time.Weekday

	LastScheduledStart *time.Time
	NextDueOverride    *time.Time
}

// DueInfo is the verdict for one habit on one day. DueStart, when set, is
// the instant the habit became (or will become) due.
type DueInfo struct {
	IsDue    bool       `json:"is_due"`
	DueStart *time.Time `json:"due_start,omitempty"`
	Tag      Tag        `json:"tag"`
}

// EvaluateDueOnDate decides whether a habit is due on p.Date. An unsatisfied
// override decides first; otherwise the habit must exist on the day, not be
// scheduled or completed that day, match its recurrence rule and, when bound
// to a window, fall on a day that window is active.
func EvaluateDueOnDate(p Params) DueInfo {
	cal := p.Calendar
	if cal == nil {
		cal = calendar.New("")
	}
	h := p.Habit
	day := cal.StartOfDay(p.Date)

	if h.ArchivedAt != nil || h.DeletedAt != nil {
		return DueInfo{Tag: TagInactive}
	}

	override := p.NextDueOverride
	if override == nil {
		override = h.NextDueOverride
	}
	lastScheduled := p.LastScheduledStart
	if lastScheduled == nil {
		lastScheduled = h.LastScheduledStart
	}

	var lastDone *time.Time
	if h.LastCompletedAt != nil {
		d := cal.StartOfDay(*h.LastCompletedAt)
		lastDone = &d
	}

	scheduledToday := lastScheduled != nil && cal.StartOfDay(*lastScheduled).Equal(day)

	if override != nil {
		overrideDay := cal.StartOfDay(*override)
		satisfied := lastDone != nil && !lastDone.Before(overrideDay)
		if !satisfied {
			at := *override
			switch {
			case overrideDay.After(day):
				return DueInfo{DueStart: &at, Tag: TagOverrideFuture}
			case overrideDay.Equal(day):
				return DueInfo{IsDue: true, DueStart: &at, Tag: TagOverride}
			case scheduledToday:
				return DueInfo{Tag: TagScheduledToday}
			default:
				return DueInfo{IsDue: true, DueStart: &at, Tag: TagOverrideOverdue}
			}
		}
	}

	var created time.Time
	if !h.CreatedAt.IsZero() {
		created = cal.StartOfDay(h.CreatedAt)
		if day.Before(created) {
			return DueInfo{DueStart: &created, Tag: TagBeforeCreation}
		}
	}

	if scheduledToday {
		return DueInfo{Tag: TagScheduledToday}
	}
	if lastDone != nil && lastDone.Equal(day) {
		return DueInfo{Tag: TagCompletedToday}
	}

	info := evaluateRule(h.Recurrence, day, lastDone, cal, p.WindowDays)
	if !info.IsDue {
		return info
	}

	if h.WindowID != "" && !models.ContainsWeekday(p.WindowDays, cal.Weekday(day)) {
		return DueInfo{Tag: TagWindowInactive}
	}
	return info
}

func evaluateRule(r models.Recurrence, day time.Time, lastDone *time.Time, cal calendar.Calendar, windowDays []time.Weekday) DueInfo {
	wd := cal.Weekday(day)

	switch r.Kind {
	case models.RecurrenceIntervalDays, models.RecurrenceIntervalMonths:
		if lastDone == nil {
			return DueInfo{IsDue: true, DueStart: &day, Tag: TagDue}
		}
		next := nextAfter(r, *lastDone, cal)
		if day.Before(next) {
			return DueInfo{DueStart: &next, Tag: TagIntervalNotReached}
		}
		if next.Equal(day) {
			return DueInfo{IsDue: true, DueStart: &next, Tag: TagDue}
		}
		return DueInfo{IsDue: true, DueStart: &next, Tag: TagOverdue}

	case models.RecurrenceWindow:
		if !models.ContainsWeekday(windowDays, wd) {
			return DueInfo{Tag: TagWindowInactive}
		}
		return DueInfo{IsDue: true, DueStart: &day, Tag: TagDue}

	default:
		// daily and days_of_week; a daily rule with days behaves the same.
		if !models.ContainsWeekday(r.Days, wd) {
			return DueInfo{Tag: TagDayMismatch}
		}
		return DueInfo{IsDue: true, DueStart: &day, Tag: TagDue}
	}
}

// nextAfter returns the day an interval habit completed on lastDone becomes
// due again.
func nextAfter(r models.Recurrence, lastDone time.Time, cal calendar.Calendar) time.Time {
	if r.Kind == models.RecurrenceIntervalMonths {
		n := r.IntervalMonths
		if n < 1 {
			n = 1
		}
		return cal.StartOfDay(cal.AddMonths(lastDone, n))
	}
	n := r.IntervalDays
	if n < 1 {
		n = 1
	}
	return cal.StartOfDay(cal.AddDays(lastDone, n))
}
