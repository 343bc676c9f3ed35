package habits

import (
	"testing"
	"time"

	"github.com/julianstephens/dayweave/internal/calendar"
	"github.com/julianstephens/dayweave/internal/models"
)

var utc = calendar.New("UTC")

func day(s string) time.Time {
	t, err := utc.ParseDateKey(s)
	if err != nil {
		panic(err)
	}
	return t
}

func at(s string, hour int) *time.Time {
	t := day(s).Add(time.Duration(hour) * time.Hour)
	return &t
}

func TestEvaluateDueOnDate_DaysOfWeek(t *testing.T) {
	h := models.Habit{
		ID:         "h1",
		Name:       "Run",
		Recurrence: models.Recurrence{Kind: models.RecurrenceDaysOfWeek, Days: []time.Weekday{time.Monday, time.Wednesday, time.Friday}},
		CreatedAt:  day("2024-05-01"),
	}

	tests := []struct {
		name    string
		date    string
		wantDue bool
		wantTag Tag
	}{
		{name: "monday", date: "2024-06-03", wantDue: true, wantTag: TagDue},
		{name: "tuesday", date: "2024-06-04", wantDue: false, wantTag: TagDayMismatch},
		{name: "wednesday", date: "2024-06-05", wantDue: true, wantTag: TagDue},
		{name: "saturday", date: "2024-06-08", wantDue: false, wantTag: TagDayMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateDueOnDate(Params{Habit: h, Date: day(tt.date), Calendar: utc})
			if got.IsDue != tt.wantDue {
				t.Errorf("IsDue = %v, want %v", got.IsDue, tt.wantDue)
			}
			if got.Tag != tt.wantTag {
				t.Errorf("Tag = %v, want %v", got.Tag, tt.wantTag)
			}
			if got.IsDue && (got.DueStart == nil || !got.DueStart.Equal(day(tt.date))) {
				t.Errorf("DueStart = %v, want start of %s", got.DueStart, tt.date)
			}
		})
	}
}

func TestEvaluateDueOnDate_Interval(t *testing.T) {
	every3 := models.Recurrence{Kind: models.RecurrenceIntervalDays, IntervalDays: 3}
	monthly := models.Recurrence{Kind: models.RecurrenceIntervalMonths, IntervalMonths: 1}

	tests := []struct {
		name      string
		habit     models.Habit
		date      string
		wantDue   bool
		wantTag   Tag
		wantStart string
	}{
		{
			name:    "never completed is due from creation",
			habit:   models.Habit{Recurrence: every3, CreatedAt: day("2024-06-01")},
			date:    "2024-06-01",
			wantDue: true, wantTag: TagDue, wantStart: "2024-06-01",
		},
		{
			name:    "interval not reached",
			habit:   models.Habit{Recurrence: every3, CreatedAt: day("2024-05-01"), LastCompletedAt: at("2024-06-01", 8)},
			date:    "2024-06-03",
			wantDue: false, wantTag: TagIntervalNotReached, wantStart: "2024-06-04",
		},
		{
			name:    "interval reached",
			habit:   models.Habit{Recurrence: every3, CreatedAt: day("2024-05-01"), LastCompletedAt: at("2024-06-01", 8)},
			date:    "2024-06-04",
			wantDue: true, wantTag: TagDue, wantStart: "2024-06-04",
		},
		{
			name:    "overdue stays due",
			habit:   models.Habit{Recurrence: every3, CreatedAt: day("2024-05-01"), LastCompletedAt: at("2024-06-01", 8)},
			date:    "2024-06-09",
			wantDue: true, wantTag: TagOverdue, wantStart: "2024-06-04",
		},
		{
			name:    "monthly clamps to month end",
			habit:   models.Habit{Recurrence: monthly, CreatedAt: day("2024-01-01"), LastCompletedAt: at("2024-01-31", 9)},
			date:    "2024-02-28",
			wantDue: false, wantTag: TagIntervalNotReached, wantStart: "2024-02-29",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateDueOnDate(Params{Habit: tt.habit, Date: day(tt.date), Calendar: utc})
			if got.IsDue != tt.wantDue || got.Tag != tt.wantTag {
				t.Fatalf("got (%v, %v), want (%v, %v)", got.IsDue, got.Tag, tt.wantDue, tt.wantTag)
			}
			if got.DueStart == nil || !got.DueStart.Equal(day(tt.wantStart)) {
				t.Errorf("DueStart = %v, want %s", got.DueStart, tt.wantStart)
			}
		})
	}
}

func TestEvaluateDueOnDate_Guards(t *testing.T) {
	daily := models.Recurrence{Kind: models.RecurrenceDaily}
	archived := day("2024-06-01")

	tests := []struct {
		name    string
		params  Params
		wantDue bool
		wantTag Tag
	}{
		{
			name:    "before creation",
			params:  Params{Habit: models.Habit{Recurrence: daily, CreatedAt: day("2024-06-10")}, Date: day("2024-06-09")},
			wantTag: TagBeforeCreation,
		},
		{
			name:    "created later the same day",
			params:  Params{Habit: models.Habit{Recurrence: daily, CreatedAt: *at("2024-06-10", 15)}, Date: day("2024-06-10")},
			wantDue: true, wantTag: TagDue,
		},
		{
			name:    "already scheduled today",
			params:  Params{Habit: models.Habit{Recurrence: daily}, Date: day("2024-06-10"), LastScheduledStart: at("2024-06-10", 9)},
			wantTag: TagScheduledToday,
		},
		{
			name:    "scheduled yesterday",
			params:  Params{Habit: models.Habit{Recurrence: daily, LastScheduledStart: at("2024-06-09", 9)}, Date: day("2024-06-10")},
			wantDue: true, wantTag: TagDue,
		},
		{
			name:    "completed today",
			params:  Params{Habit: models.Habit{Recurrence: daily, LastCompletedAt: at("2024-06-10", 7)}, Date: day("2024-06-10")},
			wantTag: TagCompletedToday,
		},
		{
			name:    "archived",
			params:  Params{Habit: models.Habit{Recurrence: daily, ArchivedAt: &archived}, Date: day("2024-06-10")},
			wantTag: TagInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.params.Calendar = utc
			got := EvaluateDueOnDate(tt.params)
			if got.IsDue != tt.wantDue || got.Tag != tt.wantTag {
				t.Errorf("got (%v, %v), want (%v, %v)", got.IsDue, got.Tag, tt.wantDue, tt.wantTag)
			}
		})
	}
}

func TestEvaluateDueOnDate_Override(t *testing.T) {
	// A Mon/Wed/Fri habit bound to a weekday window.
	base := models.Habit{
		Recurrence: models.Recurrence{Kind: models.RecurrenceDaysOfWeek, Days: []time.Weekday{time.Monday, time.Wednesday, time.Friday}},
		WindowID:   "w1",
		CreatedAt:  day("2024-05-01"),
	}
	weekdays := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

	tests := []struct {
		name      string
		override  *time.Time
		completed *time.Time
		date      string
		wantDue   bool
		scheduled *time.Time
		wantTag   Tag
	}{
		{name: "override on a non-rule day wins", override: at("2024-06-04", 14), date: "2024-06-04", wantDue: true, wantTag: TagOverride},
		{name: "override on an inactive window day wins", override: at("2024-06-08", 10), date: "2024-06-08", wantDue: true, wantTag: TagOverride},
		{name: "future override suppresses rule", override: at("2024-06-07", 9), date: "2024-06-05", wantDue: false, wantTag: TagOverrideFuture},
		{name: "unsatisfied past override is overdue", override: at("2024-06-04", 9), date: "2024-06-06", wantDue: true, wantTag: TagOverrideOverdue},
		{name: "completion on override day satisfies it", override: at("2024-06-04", 9), completed: at("2024-06-04", 18), date: "2024-06-05", wantDue: true, wantTag: TagDue},
		{name: "earlier completion does not satisfy", override: at("2024-06-04", 9), completed: at("2024-06-03", 18), date: "2024-06-04", wantDue: true, wantTag: TagOverride},
		{name: "past override already scheduled today", override: at("2024-06-04", 9), scheduled: at("2024-06-06", 10), date: "2024-06-06", wantDue: false, wantTag: TagScheduledToday},
		{name: "past override scheduled on another day stays overdue", override: at("2024-06-04", 9), scheduled: at("2024-06-05", 10), date: "2024-06-06", wantDue: true, wantTag: TagOverrideOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := base
			h.LastCompletedAt = tt.completed
			got := EvaluateDueOnDate(Params{
				Habit:              h,
				Date:               day(tt.date),
				Calendar:           utc,
				WindowDays:         weekdays,
				NextDueOverride:    tt.override,
				LastScheduledStart: tt.scheduled,
			})
			if got.IsDue != tt.wantDue || got.Tag != tt.wantTag {
				t.Fatalf("got (%v, %v), want (%v, %v)", got.IsDue, got.Tag, tt.wantDue, tt.wantTag)
			}
			if tt.wantTag == TagOverride && !got.DueStart.Equal(*tt.override) {
				t.Errorf("DueStart = %v, want override instant %v", got.DueStart, tt.override)
			}
		})
	}
}

func TestEvaluateDueOnDate_BoundWindow(t *testing.T) {
	weekend := []time.Weekday{time.Saturday, time.Sunday}

	daily := models.Habit{Recurrence: models.Recurrence{Kind: models.RecurrenceDaily}, WindowID: "weekend"}
	if got := EvaluateDueOnDate(Params{Habit: daily, Date: day("2024-06-05"), Calendar: utc, WindowDays: weekend}); got.IsDue {
		t.Errorf("daily habit bound to a weekend window should not be due on a Wednesday, got %v", got.Tag)
	}
	if got := EvaluateDueOnDate(Params{Habit: daily, Date: day("2024-06-08"), Calendar: utc, WindowDays: weekend}); !got.IsDue {
		t.Errorf("daily habit should be due on Saturday, got %v", got.Tag)
	}

	unbound := models.Habit{Recurrence: models.Recurrence{Kind: models.RecurrenceDaily}}
	if got := EvaluateDueOnDate(Params{Habit: unbound, Date: day("2024-06-05"), Calendar: utc, WindowDays: weekend}); !got.IsDue {
		t.Errorf("window days must not affect an unbound habit, got %v", got.Tag)
	}

	perWindow := models.Habit{Recurrence: models.Recurrence{Kind: models.RecurrenceWindow}, WindowID: "weekend"}
	if got := EvaluateDueOnDate(Params{Habit: perWindow, Date: day("2024-06-09"), Calendar: utc, WindowDays: weekend}); !got.IsDue {
		t.Errorf("window habit should be due when its window is active, got %v", got.Tag)
	}
	if got := EvaluateDueOnDate(Params{Habit: perWindow, Date: day("2024-06-10"), Calendar: utc, WindowDays: weekend}); got.IsDue || got.Tag != TagWindowInactive {
		t.Errorf("window habit should not be due on Monday, got (%v, %v)", got.IsDue, got.Tag)
	}
}

func TestEvaluateDueOnDate_LocalDayBoundary(t *testing.T) {
	cal := calendar.New("America/Los_Angeles")
	if cal.Location().String() != "America/Los_Angeles" {
		t.Skip("zone data unavailable")
	}

	// 2024-06-05 03:00 UTC is still Tuesday evening in Los Angeles.
	completed := time.Date(2024, 6, 5, 3, 0, 0, 0, time.UTC)
	h := models.Habit{Recurrence: models.Recurrence{Kind: models.RecurrenceDaily}, LastCompletedAt: &completed}

	tue, _ := cal.ParseDateKey("2024-06-04")
	wed, _ := cal.ParseDateKey("2024-06-05")

	if got := EvaluateDueOnDate(Params{Habit: h, Date: tue, Calendar: cal}); got.Tag != TagCompletedToday {
		t.Errorf("Tuesday tag = %v, want %v", got.Tag, TagCompletedToday)
	}
	if got := EvaluateDueOnDate(Params{Habit: h, Date: wed, Calendar: cal}); !got.IsDue {
		t.Errorf("Wednesday should be due, got %v", got.Tag)
	}
}
