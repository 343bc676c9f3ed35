package cli

import (
	"fmt"

	"github.com/julianstephens/dayweave/internal/validation"
)

type SettingsCmd struct {
	Get SettingsGetCmd `cmd:"" help:"Show current settings." default:"1"`
	Set SettingsSetCmd `cmd:"" help:"Update settings."`
}

type SettingsGetCmd struct{}

func (c *SettingsGetCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings(ctx.ctx(), ctx.UserID)
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	ctx.printf("Current Settings:\n")
	ctx.printf("  Timezone:          %s\n", settings.Timezone)
	ctx.printf("  Fallback Timezone: %s\n", settings.FallbackTimezone)
	ctx.printf("  Default Day Type:  %s\n", orDash(settings.DefaultDayType))
	ctx.printf("  Goal Age Per Day:  %g\n", settings.GoalAgePerDay)
	ctx.printf("  Goal Age Cap Days: %d\n", settings.GoalAgeCapDays)
	return nil
}

type SettingsSetCmd struct {
	Timezone         *string  `help:"IANA time zone to plan in."`
	FallbackTimezone *string  `help:"Zone used when the timezone is missing or invalid."`
	DefaultDayType   *string  `help:"Day type used for dates without an assignment."`
	GoalAgePerDay    *float64 `help:"Goal weight gained per day since its last update."`
	GoalAgeCapDays   *int     `help:"Days after which goal aging stops (0 for no cap)."`
}

func (c *SettingsSetCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings(ctx.ctx(), ctx.UserID)
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	updated := false
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.FallbackTimezone != nil {
		settings.FallbackTimezone = *c.FallbackTimezone
		updated = true
	}
	if c.DefaultDayType != nil {
		settings.DefaultDayType = *c.DefaultDayType
		updated = true
	}
	if c.GoalAgePerDay != nil {
		settings.GoalAgePerDay = *c.GoalAgePerDay
		updated = true
	}
	if c.GoalAgeCapDays != nil {
		settings.GoalAgeCapDays = *c.GoalAgeCapDays
		updated = true
	}

	if !updated {
		ctx.printf("No changes specified. Use 'settings get' to view settings or flags to update them.\n")
		return nil
	}
	if err := validation.Settings(settings); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(ctx.ctx(), ctx.UserID, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.printf("Settings updated successfully.\n")
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
