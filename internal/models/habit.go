package models

import "time"

// RecurrenceKind selects how a habit's due days are computed.
type RecurrenceKind string

const (
	RecurrenceDaily          RecurrenceKind = "daily"
	RecurrenceDaysOfWeek     RecurrenceKind = "days_of_week"
	RecurrenceIntervalDays   RecurrenceKind = "interval_days"
	RecurrenceIntervalMonths RecurrenceKind = "interval_months"
	RecurrenceWindow         RecurrenceKind = "window"
)

type Recurrence struct {
	Kind           RecurrenceKind `json:"kind" validate:"required,oneof=daily days_of_week interval_days interval_months window"`
	Days           []time.Weekday `json:"days,omitempty" validate:"required_if=Kind days_of_week,dive,gte=0,lte=6"`
	IntervalDays   int            `json:"interval_days,omitempty" validate:"required_if=Kind interval_days,gte=0"`
	IntervalMonths int            `json:"interval_months,omitempty" validate:"required_if=Kind interval_months,gte=0"`
}

// Habit is a recurring practice. A due habit becomes a WorkItem for the day.
type Habit struct {
	ID          string     `json:"id" validate:"required"`
	Name        string     `json:"name" validate:"required"`
	Recurrence  Recurrence `json:"recurrence"`
	WindowID    string     `json:"window_id,omitempty"`
	DurationMin int        `json:"duration_min" validate:"gte=0"`
	Priority    Priority   `json:"priority" validate:"gte=0,lte=5"`
	Energy      Energy     `json:"energy" validate:"gte=0,lte=5"`
	Location    string     `json:"location,omitempty"`
	SkillID     string     `json:"skill_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	LastCompletedAt    *time.Time `json:"last_completed_at,omitempty"`
	LastScheduledStart *time.Time `json:"last_scheduled_start,omitempty"`
	NextDueOverride    *time.Time `json:"next_due_override,omitempty"`

	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

// HabitCompletion records a single completion instant of a habit.
type HabitCompletion struct {
	ID          string    `json:"id"`
	HabitID     string    `json:"habit_id"`
	CompletedAt time.Time `json:"completed_at"`
}
