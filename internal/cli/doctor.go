package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/dayweave/internal/backup"
	"github.com/julianstephens/dayweave/internal/storage"
	"github.com/julianstephens/dayweave/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name     string
	run      func(ctx *Context) error
	warnOnly bool
	needsDB  bool
}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.printf("Running diagnostics...\n\n")

	checks := []check{
		{name: "Database reachable", run: checkDBReachable},
		{name: "Schema version", run: checkSchemaVersion, needsDB: true},
		{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
		{name: "Settings", run: checkSettings, needsDB: true},
		{name: "Window configuration", run: checkWindowConfig, needsDB: true},
		{name: "Habits", run: checkHabits, needsDB: true},
		{name: "Clock/timezone", run: checkClockTimezone, needsDB: true},
	}

	hasError := false
	dbReachable := true
	for i, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.printf("⚠ %s: WARNING\n   %v\n", c.name, err)
		default:
			ctx.printf("❌ %s: FAIL\n   Error: %v\n", c.name, err)
			hasError = true
			if i == 0 {
				dbReachable = false
			}
		}
	}

	ctx.printf("\n")
	if hasError {
		ctx.printf("Diagnostics completed with errors.\n")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.printf("All diagnostics passed!\n")
	return nil
}

func checkDBReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if s, ok := ctx.Store.(interface{ DB() *sql.DB }); ok {
		if s.DB() == nil {
			return fmt.Errorf("database connection is nil")
		}
		if err := s.DB().PingContext(ctx.ctx()); err != nil {
			return fmt.Errorf("failed to ping database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *Context) error {
	reporter, ok := ctx.Store.(storage.SchemaReporter)
	if !ok {
		return nil
	}
	current, latest, err := reporter.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	path := ctx.Store.GetConfigPath()
	if !strings.HasSuffix(path, ".db") {
		return nil
	}
	backups, err := backup.NewManager(path).List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found, consider creating one with 'dayweave backup'")
	}
	return nil
}

func checkSettings(ctx *Context) error {
	settings, err := ctx.Store.GetSettings(ctx.ctx(), ctx.UserID)
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return validation.Settings(settings)
}

func checkWindowConfig(ctx *Context) error {
	cfg, err := ctx.Store.WindowConfig(ctx.ctx(), ctx.UserID)
	if err != nil {
		return fmt.Errorf("failed to get windows: %w", err)
	}
	if cfg.Empty() {
		return fmt.Errorf("no windows configured, nothing can be placed")
	}
	return validation.Config(cfg)
}

func checkHabits(ctx *Context) error {
	list, err := ctx.Store.ActiveHabits(ctx.ctx(), ctx.UserID)
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}
	var errs []error
	for _, h := range list {
		if err := validation.Habit(h); err != nil {
			errs = append(errs, fmt.Errorf("habit %q: %w", h.Name, err))
		}
	}
	return errors.Join(errs...)
}

func checkClockTimezone(ctx *Context) error {
	now := ctx.now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	settings, err := ctx.Store.GetSettings(ctx.ctx(), ctx.UserID)
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.Timezone == "" {
		ctx.printf("   Note: no timezone set, using %s\n", orDash(settings.FallbackTimezone))
		return nil
	}
	if err := validation.TimeZone(settings.Timezone); err != nil {
		return fmt.Errorf("timezone %q cannot be loaded, plans fall back to %s", settings.Timezone, orDash(settings.FallbackTimezone))
	}
	return nil
}
