package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/dayweave/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingFallbackTimezone:
			settings.FallbackTimezone = value
		case constants.SettingDefaultDayType:
			settings.DefaultDayType = value
		case constants.SettingGoalAgePerDay:
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.GoalAgePerDay = v
		case constants.SettingGoalAgeCapDays:
			v, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.GoalAgeCapDays = v
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:         settings.Timezone,
		constants.SettingFallbackTimezone: settings.FallbackTimezone,
		constants.SettingDefaultDayType:   settings.DefaultDayType,
		constants.SettingGoalAgePerDay:    strconv.FormatFloat(settings.GoalAgePerDay, 'f', -1, 64),
		constants.SettingGoalAgeCapDays:   strconv.Itoa(settings.GoalAgeCapDays),
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.FallbackTimezone == "" {
		settings.FallbackTimezone = constants.DefaultFallbackTimezone
	}
	if settings.GoalAgePerDay == 0 {
		settings.GoalAgePerDay = constants.DefaultGoalAgePerDay
	}
	if settings.GoalAgeCapDays == 0 {
		settings.GoalAgeCapDays = constants.DefaultGoalAgeCapDays
	}
}
