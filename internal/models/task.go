package models

import "time"

// Task is a one-off unit of work. Tasks that belong to a ready project are
// folded into that project's WorkItem instead of being placed on their own.
type Task struct {
	ID          string     `json:"id" validate:"required"`
	Name        string     `json:"name" validate:"required"`
	DurationMin int        `json:"duration_min" validate:"gte=0"`
	Priority    Priority   `json:"priority" validate:"gte=0,lte=5"`
	Energy      Energy     `json:"energy" validate:"gte=0,lte=5"`
	Stage       Stage      `json:"stage,omitempty"`
	ProjectID   string     `json:"project_id,omitempty"`
	SkillID     string     `json:"skill_id,omitempty"`
	GoalID      string     `json:"goal_id,omitempty"`
	Location    string     `json:"location,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	Blocked     bool       `json:"blocked"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Ready reports whether the task is neither completed nor blocked.
func (t Task) Ready() bool {
	return t.CompletedAt == nil && !t.Blocked
}

// Project groups tasks under a single placeable item.
type Project struct {
	ID          string     `json:"id" validate:"required"`
	Name        string     `json:"name" validate:"required"`
	DurationMin int        `json:"duration_min" validate:"gte=0"`
	Priority    Priority   `json:"priority" validate:"gte=0,lte=5"`
	Energy      Energy     `json:"energy" validate:"gte=0,lte=5"`
	Stage       Stage      `json:"stage,omitempty"`
	GoalID      string     `json:"goal_id,omitempty"`
	SkillID     string     `json:"skill_id,omitempty"`
	Location    string     `json:"location,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Goal is never placed; its weight boosts the projects that reference it.
type Goal struct {
	ID        string     `json:"id" validate:"required"`
	Name      string     `json:"name" validate:"required"`
	Priority  Priority   `json:"priority" validate:"gte=0,lte=5"`
	Boost     float64    `json:"boost" validate:"gte=0"`
	DueAt     *time.Time `json:"due_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// WorkItem is the engine-facing view of a task, project or due habit. It is
// built fresh for every run and never mutated by the engine.
type WorkItem struct {
	ID          string      `json:"id" validate:"required"`
	Name        string      `json:"name"`
	Kind        ItemKind    `json:"kind" validate:"required,oneof=task project habit"`
	DurationMin int         `json:"duration_min" validate:"gte=0"`
	Priority    Priority    `json:"priority" validate:"gte=0,lte=5"`
	Energy      Energy      `json:"energy" validate:"gte=0,lte=5"`
	Stage       Stage       `json:"stage,omitempty"`
	SkillID     string      `json:"skill_id,omitempty"`
	GoalID      string      `json:"goal_id,omitempty"`
	ProjectID   string      `json:"project_id,omitempty"`
	Location    string      `json:"location,omitempty"`
	DueAt       *time.Time  `json:"due_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	Recurrence  *Recurrence `json:"recurrence,omitempty"`

	// ChildWeight is the summed weight of tasks folded into a project item.
	ChildWeight float64 `json:"child_weight,omitempty" validate:"gte=0"`
	// GoalWeight is the weight of the goal a project item rolls up to.
	GoalWeight float64 `json:"goal_weight,omitempty" validate:"gte=0"`
	// Streak is the current completion streak of a habit item.
	Streak int `json:"streak,omitempty" validate:"gte=0"`
}
