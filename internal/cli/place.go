package cli

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/dayweave/internal/scheduler"
	"github.com/julianstephens/dayweave/internal/weight"
)

type PlaceCmd struct {
	Date string `arg:"" optional:"" help:"Date to plan (YYYY-MM-DD, 'today' or 'tomorrow')." default:"today"`
	Save bool   `short:"s" help:"Store the placements for the date."`
	Yes  bool   `short:"y" help:"Replace a saved plan without asking."`
	JSON bool   `name:"json" help:"Print the plan as JSON."`
}

func (c *PlaceCmd) Run(ctx *Context) error {
	cal, settings, err := ctx.calendar()
	if err != nil {
		return err
	}
	day, err := parseDay(c.Date, cal, ctx.now())
	if err != nil {
		return err
	}
	dateKey := cal.DateKey(day)

	existing, err := ctx.Store.GetPlacements(ctx.ctx(), ctx.UserID, dateKey)
	if err != nil {
		return fmt.Errorf("failed to load saved plan: %w", err)
	}

	s := scheduler.New(ctx.Store, ctx.Store, ctx.Store)
	s.FallbackZone = settings.FallbackTimezone
	s.Policy = weight.Policy{AgePerDay: settings.GoalAgePerDay, AgeCapDays: settings.GoalAgeCapDays}
	s.Now = ctx.now

	plan, err := s.Run(ctx.ctx(), scheduler.Request{
		UserID: ctx.UserID,
		Date:   dateKey,
		Replan: len(existing) > 0,
	})
	if err != nil {
		return err
	}

	if c.JSON {
		data, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal plan: %w", err)
		}
		ctx.printf("%s\n", data)
	} else {
		ctx.printf("%s", RenderPlan(plan))
	}

	if !c.Save {
		return nil
	}

	if len(existing) > 0 && !c.Yes {
		ok, err := ctx.confirm(fmt.Sprintf("A plan with %d placements is saved for %s. Replace it?", len(existing), dateKey))
		if err != nil {
			return err
		}
		if !ok {
			ctx.printf("Plan not saved.\n")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Store.SavePlacements(ctx.ctx(), ctx.UserID, dateKey, plan.Placements); err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	ctx.printf("Saved %d placements for %s%s\n", len(plan.Placements), dateKey, unplacedSuffix(len(plan.Unplaced)))
	return nil
}

func unplacedSuffix(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf(" (%d not placed)", n)
}
