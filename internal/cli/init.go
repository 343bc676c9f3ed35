package cli

import (
	"github.com/julianstephens/dayweave/internal/validation"
)

type InitCmd struct {
	Timezone string `help:"IANA time zone to plan in, e.g. America/New_York."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	if c.Timezone != "" {
		if err := validation.TimeZone(c.Timezone); err != nil {
			return err
		}
		settings, err := ctx.Store.GetSettings(ctx.ctx(), ctx.UserID)
		if err != nil {
			return err
		}
		settings.Timezone = c.Timezone
		if err := ctx.Store.SaveSettings(ctx.ctx(), ctx.UserID, settings); err != nil {
			return err
		}
	}
	ctx.printf("Initialized dayweave storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
