package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/dayweave/internal/models"
	"github.com/julianstephens/dayweave/internal/validation"
	"github.com/julianstephens/dayweave/internal/windows"
)

type WindowCmd struct {
	Add    WindowAddCmd    `cmd:"" help:"Add or replace a window."`
	List   WindowListCmd   `cmd:"" help:"List configured windows."`
	Remove WindowRemoveCmd `cmd:"" help:"Remove a window."`
	Import WindowImportCmd `cmd:"" help:"Replace the window configuration from a YAML file."`
}

type WindowAddCmd struct {
	ID       string `arg:"" help:"Window ID."`
	Start    string `arg:"" help:"Start time (HH:MM)."`
	End      string `arg:"" help:"End time (HH:MM, 24:00 for midnight)."`
	Label    string `short:"l" help:"Display label."`
	Days     string `short:"w" help:"Comma-separated weekdays the window is active (default every day)."`
	Energy   string `short:"e" help:"Highest energy tier the window accepts." default:"extreme"`
	Location string `help:"Only items at this location are placed here."`
	DayType  string `short:"t" name:"daytype" help:"Attach the window to a day type instead of the default set."`
}

func (c *WindowAddCmd) window() (models.Window, error) {
	start, err := models.ParseClock(c.Start)
	if err != nil {
		return models.Window{}, err
	}
	end, err := models.ParseClock(c.End)
	if err != nil {
		return models.Window{}, err
	}
	days, err := models.ParseWeekdays(c.Days)
	if err != nil {
		return models.Window{}, err
	}
	energy, err := models.ParseEnergy(c.Energy)
	if err != nil {
		return models.Window{}, err
	}
	return models.Window{
		ID:        c.ID,
		Label:     c.Label,
		Start:     start,
		End:       end,
		Days:      days,
		EnergyCap: energy,
		Location:  c.Location,
	}, nil
}

func (c *WindowAddCmd) Run(ctx *Context) error {
	w, err := c.window()
	if err != nil {
		return err
	}
	if err := validation.Window(w); err != nil {
		return err
	}

	cfg, err := ctx.Store.WindowConfig(ctx.ctx(), ctx.UserID)
	if err != nil {
		return err
	}
	set, ok := windowSet(&cfg, c.DayType)
	if !ok {
		return fmt.Errorf("day type %q does not exist", c.DayType)
	}
	*set = upsertWindow(*set, w)
	if err := validation.Windows(*set); err != nil {
		return err
	}

	if err := ctx.Store.SaveWindow(ctx.ctx(), ctx.UserID, c.DayType, w); err != nil {
		return err
	}
	ctx.printf("Saved window %s (%s-%s)\n", w.ID, w.Start, w.End)
	return nil
}

// windowSet returns the window list a new window joins: the default set for
// an empty dayTypeID, otherwise that day type's windows.
func windowSet(cfg *windows.Config, dayTypeID string) (*[]models.Window, bool) {
	if dayTypeID == "" {
		return &cfg.Windows, true
	}
	for i := range cfg.DayTypes {
		if cfg.DayTypes[i].ID == dayTypeID {
			return &cfg.DayTypes[i].Windows, true
		}
	}
	return nil, false
}

func upsertWindow(ws []models.Window, w models.Window) []models.Window {
	for i := range ws {
		if ws[i].ID == w.ID {
			out := append([]models.Window(nil), ws...)
			out[i] = w
			return out
		}
	}
	return append(ws, w)
}

type WindowListCmd struct{}

func (c *WindowListCmd) Run(ctx *Context) error {
	cfg, err := ctx.Store.WindowConfig(ctx.ctx(), ctx.UserID)
	if err != nil {
		return err
	}
	if cfg.Empty() && len(cfg.DayTypes) == 0 {
		ctx.printf("No windows configured\n")
		return nil
	}

	ctx.printf("Default windows:\n")
	printWindows(ctx, cfg.Windows)
	for _, dt := range cfg.DayTypes {
		marker := ""
		if dt.IsDefault || dt.ID == cfg.DefaultDayType {
			marker = " (default)"
		}
		ctx.printf("\nDay type %s - %s%s:\n", dt.ID, dt.Name, marker)
		printWindows(ctx, dt.Windows)
	}
	if len(cfg.Assignments) > 0 {
		ctx.printf("\nAssignments:\n")
		for _, key := range sortedKeys(cfg.Assignments) {
			ctx.printf("  %s  %s\n", key, cfg.Assignments[key])
		}
	}
	return nil
}

func printWindows(ctx *Context, ws []models.Window) {
	if len(ws) == 0 {
		ctx.printf("  (none)\n")
		return
	}
	for _, w := range ws {
		extra := ""
		if w.Location != "" {
			extra = ", at " + w.Location
		}
		ctx.printf("  %-12s %s-%s  %-10s energy<=%s%s\n",
			w.ID, w.Start, w.End, models.FormatWeekdays(w.Days), w.EnergyCap, extra)
	}
}

type WindowRemoveCmd struct {
	ID      string `arg:"" help:"Window ID."`
	DayType string `short:"t" name:"daytype" help:"Day type the window belongs to."`
}

func (c *WindowRemoveCmd) Run(ctx *Context) error {
	if err := ctx.Store.DeleteWindow(ctx.ctx(), ctx.UserID, c.DayType, c.ID); err != nil {
		return err
	}
	ctx.printf("Removed window %s\n", c.ID)
	return nil
}

type WindowImportCmd struct {
	File string `arg:"" help:"YAML file with windows, day_types and assignments." type:"existingfile"`
	Yes  bool   `short:"y" help:"Replace an existing configuration without asking."`
}

func (c *WindowImportCmd) Run(ctx *Context) error {
	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer f.Close()

	cfg, err := windows.LoadConfigYAML(f)
	if err != nil {
		return err
	}
	if err := validation.Config(cfg); err != nil {
		return err
	}

	current, err := ctx.Store.WindowConfig(ctx.ctx(), ctx.UserID)
	if err != nil {
		return err
	}
	if !c.Yes && (!current.Empty() || len(current.DayTypes) > 0) {
		ok, err := ctx.confirm("Replace the existing window configuration?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.printf("Import cancelled.\n")
			return nil
		}
	}

	if err := ctx.Store.ReplaceWindowConfig(ctx.ctx(), ctx.UserID, cfg); err != nil {
		return err
	}
	types := make([]string, 0, len(cfg.DayTypes))
	for _, dt := range cfg.DayTypes {
		types = append(types, dt.ID)
	}
	ctx.printf("Imported %d default windows and %d day types (%s)\n",
		len(cfg.Windows), len(cfg.DayTypes), strings.Join(types, ", "))
	return nil
}

type DayTypeCmd struct {
	Add    DayTypeAddCmd    `cmd:"" help:"Add or rename a day type."`
	Assign DayTypeAssignCmd `cmd:"" help:"Use a day type for a date."`
}

type DayTypeAddCmd struct {
	ID      string `arg:"" help:"Day type ID."`
	Name    string `arg:"" help:"Display name."`
	Default bool   `help:"Use this day type for dates without an assignment."`
}

func (c *DayTypeAddCmd) Run(ctx *Context) error {
	cfg, err := ctx.Store.WindowConfig(ctx.ctx(), ctx.UserID)
	if err != nil {
		return err
	}
	dt := models.DayType{ID: c.ID, Name: c.Name, IsDefault: c.Default}
	for _, existing := range cfg.DayTypes {
		if existing.ID == c.ID {
			dt.Windows = existing.Windows
		} else if c.Default && existing.IsDefault {
			existing.IsDefault = false
			if err := ctx.Store.SaveDayType(ctx.ctx(), ctx.UserID, existing); err != nil {
				return err
			}
		}
	}
	if err := validation.DayType(dt); err != nil {
		return err
	}
	if err := ctx.Store.SaveDayType(ctx.ctx(), ctx.UserID, dt); err != nil {
		return err
	}
	if c.Default {
		settings, err := ctx.Store.GetSettings(ctx.ctx(), ctx.UserID)
		if err != nil {
			return err
		}
		settings.DefaultDayType = dt.ID
		if err := ctx.Store.SaveSettings(ctx.ctx(), ctx.UserID, settings); err != nil {
			return err
		}
	}
	ctx.printf("Saved day type %s\n", dt.ID)
	return nil
}

type DayTypeAssignCmd struct {
	Date    string `arg:"" help:"Date (YYYY-MM-DD, 'today' or 'tomorrow')."`
	DayType string `arg:"" optional:"" help:"Day type ID; omit to clear the assignment."`
}

func (c *DayTypeAssignCmd) Run(ctx *Context) error {
	cal, _, err := ctx.calendar()
	if err != nil {
		return err
	}
	day, err := parseDay(c.Date, cal, ctx.now())
	if err != nil {
		return err
	}
	key := cal.DateKey(day)
	if err := ctx.Store.AssignDayType(ctx.ctx(), ctx.UserID, key, c.DayType); err != nil {
		return err
	}
	if c.DayType == "" {
		ctx.printf("Cleared day type for %s\n", key)
	} else {
		ctx.printf("%s is now a %s day\n", key, c.DayType)
	}
	return nil
}
