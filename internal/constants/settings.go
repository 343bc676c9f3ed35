package constants

const (
	// Settings keys
	SettingTimezone         = "timezone"
	SettingFallbackTimezone = "fallback_timezone"
	SettingGoalAgePerDay    = "goal_age_per_day"
	SettingGoalAgeCapDays   = "goal_age_cap_days"
	SettingDefaultDayType   = "default_day_type"

	// Default Settings Values
	DefaultTimezone         = "UTC"
	DefaultFallbackTimezone = "UTC"
	DefaultGoalAgePerDay    = 10.0
	DefaultGoalAgeCapDays   = 90
)
