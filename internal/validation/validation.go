// Package validation rejects malformed data at the boundary, before it is
// stored or handed to the scheduler. The engine assumes its input passed
// through here.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/dayweave/internal/calendar"
	"github.com/julianstephens/dayweave/internal/constants"
	"github.com/julianstephens/dayweave/internal/models"
	"github.com/julianstephens/dayweave/internal/windows"
)

// ErrInvalid wraps every error this package returns.
var ErrInvalid = errors.New("invalid input")

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("zone", func(fl validator.FieldLevel) bool {
		return calendar.ValidTimeZone(fl.Field().String())
	}); err != nil {
		panic(err)
	}
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Struct checks v against its validate tags.
func Struct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msg := fmt.Sprintf("%s failed '%s'", e.StructNamespace(), e.Tag())
		if e.Param() != "" {
			msg += "=" + e.Param()
		}
		msgs = append(msgs, msg)
	}
	return invalid("%s", strings.Join(msgs, "; "))
}

// TimeZone checks that name is a loadable IANA zone.
func TimeZone(name string) error {
	if !calendar.ValidTimeZone(name) {
		return invalid("unknown time zone %q", name)
	}
	return nil
}

// Settings validates persisted user settings.
func Settings(s models.Settings) error {
	return Struct(s)
}

// Window validates a single window: a non-empty ID and an end after its
// start within one day.
func Window(w models.Window) error {
	if err := Struct(w); err != nil {
		return fmt.Errorf("window %s: %w", w.ID, err)
	}
	return nil
}

// Windows validates a window set that is resolved together: each window,
// unique IDs, and no two windows overlapping on a shared weekday.
func Windows(ws []models.Window) error {
	var errs []error
	seen := make(map[string]bool, len(ws))
	for _, w := range ws {
		if err := Window(w); err != nil {
			errs = append(errs, err)
		}
		if seen[w.ID] {
			errs = append(errs, invalid("duplicate window id %q", w.ID))
		}
		seen[w.ID] = true
	}
	for i := 0; i < len(ws); i++ {
		for j := i + 1; j < len(ws); j++ {
			a, b := ws[i], ws[j]
			if a.Start < b.End && b.Start < a.End && shareDay(a.Days, b.Days) {
				errs = append(errs, invalid("windows %s (%s-%s) and %s (%s-%s) overlap",
					a.ID, a.Start, a.End, b.ID, b.Start, b.End))
			}
		}
	}
	return errors.Join(errs...)
}

func shareDay(a, b []time.Weekday) bool {
	if len(a) == 0 || len(b) == 0 {
		return true
	}
	for _, d := range a {
		if models.ContainsWeekday(b, d) {
			return true
		}
	}
	return false
}

// DayType validates a day type and its windows.
func DayType(dt models.DayType) error {
	var errs []error
	if dt.ID == "" {
		errs = append(errs, invalid("day type id is required"))
	}
	if strings.TrimSpace(dt.Name) == "" {
		errs = append(errs, invalid("day type %s: name is required", dt.ID))
	}
	if err := Windows(dt.Windows); err != nil {
		errs = append(errs, fmt.Errorf("day type %s: %w", dt.ID, err))
	}
	return errors.Join(errs...)
}

// Config validates a whole window configuration, including that every
// assignment names a real date and an existing day type.
func Config(cfg windows.Config) error {
	var errs []error
	if err := Windows(cfg.Windows); err != nil {
		errs = append(errs, err)
	}

	types := make(map[string]bool, len(cfg.DayTypes))
	defaults := 0
	for _, dt := range cfg.DayTypes {
		if err := DayType(dt); err != nil {
			errs = append(errs, err)
		}
		if types[dt.ID] {
			errs = append(errs, invalid("duplicate day type id %q", dt.ID))
		}
		types[dt.ID] = true
		if dt.IsDefault {
			defaults++
		}
	}
	if defaults > 1 {
		errs = append(errs, invalid("%d day types are marked default", defaults))
	}
	if cfg.DefaultDayType != "" && !types[cfg.DefaultDayType] {
		errs = append(errs, invalid("default day type %q does not exist", cfg.DefaultDayType))
	}
	for key, id := range cfg.Assignments {
		if _, err := time.Parse(constants.DateFormat, key); err != nil {
			errs = append(errs, invalid("assignment date %q is not YYYY-MM-DD", key))
		}
		if !types[id] {
			errs = append(errs, invalid("assignment %s names unknown day type %q", key, id))
		}
	}
	return errors.Join(errs...)
}

func Task(t models.Task) error       { return Struct(t) }
func Project(p models.Project) error { return Struct(p) }
func Goal(g models.Goal) error       { return Struct(g) }

// Habit validates a habit, including its recurrence.
func Habit(h models.Habit) error {
	if err := Struct(h); err != nil {
		return err
	}
	if h.Recurrence.Kind == models.RecurrenceWindow && h.WindowID == "" {
		return invalid("habit %s: window recurrence requires a window", h.ID)
	}
	return nil
}

// WorkItems validates the candidate list for one run: each item, and no
// repeated IDs.
func WorkItems(items []models.WorkItem) error {
	var errs []error
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if err := Struct(it); err != nil {
			errs = append(errs, fmt.Errorf("item %s: %w", it.ID, err))
		}
		if seen[it.ID] {
			errs = append(errs, invalid("duplicate item id %q", it.ID))
		}
		seen[it.ID] = true
	}
	return errors.Join(errs...)
}
