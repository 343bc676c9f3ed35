package models

// Settings represents the per-user scheduling settings
type Settings struct {
	Timezone         string  `json:"timezone" validate:"omitempty,zone"`          // IANA zone name, e.g. "America/New_York"
	FallbackTimezone string  `json:"fallback_timezone" validate:"omitempty,zone"` // used when Timezone is empty or invalid
	GoalAgePerDay    float64 `json:"goal_age_per_day" validate:"gte=0"`           // goal weight accrued per day since last update
	GoalAgeCapDays   int     `json:"goal_age_cap_days" validate:"gte=0"`          // 0 means the age term is uncapped
	DefaultDayType   string  `json:"default_day_type"`                            // day type ID used when a date has no assignment
}
