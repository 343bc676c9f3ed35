package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/dayweave/internal/habits"
	"github.com/julianstephens/dayweave/internal/models"
	"github.com/julianstephens/dayweave/internal/storage"
	"github.com/julianstephens/dayweave/internal/validation"
)

type HabitCmd struct {
	Add      HabitAddCmd      `cmd:"" help:"Add a new habit."`
	List     HabitListCmd     `cmd:"" help:"List habits with streaks and today's status."`
	Done     HabitDoneCmd     `cmd:"" help:"Record a habit completion."`
	Override HabitOverrideCmd `cmd:"" help:"Force the next due date of a habit."`
	Archive  HabitArchiveCmd  `cmd:"" help:"Archive a habit."`
}

type HabitAddCmd struct {
	Name       string `arg:"" help:"Habit name."`
	Recurrence string `short:"r" help:"daily, weekly, bi-weekly, monthly, 'every N days', 'mon,wed,fri' or window." default:"daily"`
	Window     string `short:"w" help:"Window ID the habit is bound to."`
	Duration   int    `short:"d" help:"Duration in minutes." default:"15"`
	Priority   string `short:"p" help:"Priority tier." default:"none"`
	Energy     string `short:"e" help:"Energy tier." default:"none"`
	Location   string `help:"Where the habit must happen."`
	Skill      string `help:"Skill ID the habit practices."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	_, err := ctx.Store.GetHabitByName(ctx.ctx(), ctx.UserID, c.Name)
	if err == nil {
		return fmt.Errorf("habit with name %q already exists", c.Name)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	rec, err := habits.ParseRecurrence(c.Recurrence)
	if err != nil {
		return err
	}
	priority, energy, err := parseTiers(c.Priority, c.Energy)
	if err != nil {
		return err
	}
	if c.Window != "" {
		cfg, err := ctx.Store.WindowConfig(ctx.ctx(), ctx.UserID)
		if err != nil {
			return err
		}
		if _, ok := cfg.DaysFor(c.Window); !ok {
			return fmt.Errorf("window %q does not exist", c.Window)
		}
	}

	now := ctx.now()
	habit := models.Habit{
		ID:          uuid.New().String(),
		Name:        c.Name,
		Recurrence:  rec,
		WindowID:    c.Window,
		DurationMin: c.Duration,
		Priority:    priority,
		Energy:      energy,
		Location:    c.Location,
		SkillID:     c.Skill,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validation.Habit(habit); err != nil {
		return err
	}
	if err := ctx.Store.AddHabit(ctx.ctx(), ctx.UserID, habit); err != nil {
		return err
	}
	ctx.printf("Added habit: %s (%s)\n", habit.Name, habits.FormatRecurrence(rec))
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	cal, _, err := ctx.calendar()
	if err != nil {
		return err
	}
	list, err := ctx.Store.ActiveHabits(ctx.ctx(), ctx.UserID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		ctx.printf("No habits found\n")
		return nil
	}
	cfg, err := ctx.Store.WindowConfig(ctx.ctx(), ctx.UserID)
	if err != nil {
		return err
	}

	today := cal.StartOfDay(ctx.now())
	ctx.printf("Habits:\n")
	for _, h := range list {
		completions, err := ctx.Store.HabitCompletions(ctx.ctx(), ctx.UserID, h.ID)
		if err != nil {
			return err
		}
		streak := habits.ComputeStreak(completions, cal, today)
		days, _ := cfg.DaysFor(h.WindowID)
		info := habits.EvaluateDueOnDate(habits.Params{Habit: h, Date: today, Calendar: cal, WindowDays: days})

		status := "not due"
		if info.IsDue {
			status = "due"
		}
		ctx.printf("  %-20s %-16s streak %d (best %d)  today: %s [%s]\n",
			h.Name, habits.FormatRecurrence(h.Recurrence), streak.Current, streak.Longest, status, info.Tag)
	}
	return nil
}

type HabitDoneCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Day the habit was done (YYYY-MM-DD); defaults to now."`
}

func (c *HabitDoneCmd) Run(ctx *Context) error {
	habit, err := ctx.Store.GetHabitByName(ctx.ctx(), ctx.UserID, c.Name)
	if err != nil {
		return err
	}

	at := ctx.now()
	if c.Date != "" {
		cal, _, err := ctx.calendar()
		if err != nil {
			return err
		}
		day, err := parseDay(c.Date, cal, at)
		if err != nil {
			return err
		}
		at = cal.At(day, models.MustClock("12:00"))
	}

	completion := models.HabitCompletion{ID: uuid.New().String(), HabitID: habit.ID, CompletedAt: at}
	if err := ctx.Store.AddHabitCompletion(ctx.ctx(), ctx.UserID, completion); err != nil {
		return err
	}
	ctx.printf("Recorded %s on %s\n", habit.Name, at.Format("2006-01-02"))
	return nil
}

type HabitOverrideCmd struct {
	Name  string `arg:"" help:"Habit name."`
	Date  string `arg:"" optional:"" help:"Day the habit is next due (YYYY-MM-DD, 'today' or 'tomorrow')."`
	Clear bool   `help:"Remove the override."`
}

func (c *HabitOverrideCmd) Run(ctx *Context) error {
	habit, err := ctx.Store.GetHabitByName(ctx.ctx(), ctx.UserID, c.Name)
	if err != nil {
		return err
	}
	if c.Clear {
		if err := ctx.Store.SetHabitOverride(ctx.ctx(), ctx.UserID, habit.ID, nil); err != nil {
			return err
		}
		ctx.printf("Cleared override for %s\n", habit.Name)
		return nil
	}
	if c.Date == "" {
		return fmt.Errorf("a date is required unless --clear is given")
	}

	cal, _, err := ctx.calendar()
	if err != nil {
		return err
	}
	day, err := parseDay(c.Date, cal, ctx.now())
	if err != nil {
		return err
	}
	if err := ctx.Store.SetHabitOverride(ctx.ctx(), ctx.UserID, habit.ID, &day); err != nil {
		return err
	}
	ctx.printf("%s is next due on %s\n", habit.Name, cal.DateKey(day))
	return nil
}

type HabitArchiveCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitArchiveCmd) Run(ctx *Context) error {
	habit, err := ctx.Store.GetHabitByName(ctx.ctx(), ctx.UserID, c.Name)
	if err != nil {
		return err
	}
	if err := ctx.Store.ArchiveHabit(ctx.ctx(), ctx.UserID, habit.ID, ctx.now()); err != nil {
		return err
	}
	ctx.printf("Archived habit: %s\n", habit.Name)
	return nil
}
