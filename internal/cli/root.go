package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayweave/internal/backup"
	"github.com/julianstephens/dayweave/internal/calendar"
	"github.com/julianstephens/dayweave/internal/logger"
	"github.com/julianstephens/dayweave/internal/models"
	"github.com/julianstephens/dayweave/internal/storage"
)

// Context is handed to every command's Run method.
type Context struct {
	Store  storage.Provider
	UserID string
	Out    io.Writer
	Now    func() time.Time
	// Confirm asks a yes/no question. Tests replace it; nil uses a huh prompt.
	Confirm func(title string) (bool, error)
}

func (c *Context) ctx() context.Context {
	return context.Background()
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Context) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) confirm(title string) (bool, error) {
	if c.Confirm != nil {
		return c.Confirm(title)
	}
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).Run()
	return ok, err
}

// calendar returns the user's calendar from stored settings.
func (c *Context) calendar() (calendar.Calendar, models.Settings, error) {
	settings, err := c.Store.GetSettings(c.ctx(), c.UserID)
	if err != nil {
		return nil, settings, fmt.Errorf("failed to get settings: %w", err)
	}
	loc := calendar.NormalizeTimeZoneWithFallback(settings.Timezone, settings.FallbackTimezone)
	return calendar.ForLocation(loc), settings, nil
}

// PerformAutomaticBackup snapshots a sqlite store and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	path := c.Store.GetConfigPath()
	if !strings.HasSuffix(path, ".db") {
		return
	}
	if _, err := backup.NewManager(path).Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// parseDay accepts "today", "tomorrow" or a YYYY-MM-DD key and returns the
// local midnight of that day.
func parseDay(s string, cal calendar.Calendar, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return cal.StartOfDay(now), nil
	case "tomorrow":
		return cal.AddDays(cal.StartOfDay(now), 1), nil
	}
	day, err := cal.ParseDateKey(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD, 'today' or 'tomorrow'", s)
	}
	return day, nil
}

// parseDue parses an optional due date. A bare date means the end of that
// local day; RFC3339 instants are taken as is.
func parseDue(s string, cal calendar.Calendar, now time.Time) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	day, err := parseDay(s, cal, now)
	if err != nil {
		return nil, err
	}
	due := cal.At(day, models.MustClock("23:59"))
	return &due, nil
}

func parseTiers(priority, energy string) (models.Priority, models.Energy, error) {
	p, err := models.ParsePriority(priority)
	if err != nil {
		return 0, 0, err
	}
	e, err := models.ParseEnergy(energy)
	if err != nil {
		return 0, 0, err
	}
	return p, e, nil
}
