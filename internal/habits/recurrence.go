package habits

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/julianstephens/dayweave/internal/models"
)

var (
	everyDaysRe   = regexp.MustCompile(`^every\s+(\d+)\s+days?$`)
	everyMonthsRe = regexp.MustCompile(`^every\s+(\d+)\s+months?$`)
)

var namedDayIntervals = map[string]int{
	"weekly":    7,
	"bi-weekly": 14,
	"biweekly":  14,
}

var namedMonthIntervals = map[string]int{
	"monthly":    1,
	"bi-monthly": 2,
	"bimonthly":  2,
	"quarterly":  3,
	"semiannual": 6,
	"yearly":     12,
	"annually":   12,
}

// ParseRecurrence reads a recurrence written the way users type it:
// "daily", "weekly", "bi-weekly", "monthly", "bi-monthly", "every 6 months",
// "yearly", "every N days", "window", or a weekday list like "mon,wed,fri".
func ParseRecurrence(s string) (models.Recurrence, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.Join(strings.Fields(v), " ")

	switch v {
	case "", "daily", "everyday", "every day", "none":
		return models.Recurrence{Kind: models.RecurrenceDaily}, nil
	case "window":
		return models.Recurrence{Kind: models.RecurrenceWindow}, nil
	}
	if n, ok := namedDayIntervals[v]; ok {
		return models.Recurrence{Kind: models.RecurrenceIntervalDays, IntervalDays: n}, nil
	}
	if n, ok := namedMonthIntervals[v]; ok {
		return models.Recurrence{Kind: models.RecurrenceIntervalMonths, IntervalMonths: n}, nil
	}
	if m := everyDaysRe.FindStringSubmatch(v); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			return models.Recurrence{}, fmt.Errorf("invalid day interval: %s", s)
		}
		return models.Recurrence{Kind: models.RecurrenceIntervalDays, IntervalDays: n}, nil
	}
	if m := everyMonthsRe.FindStringSubmatch(v); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			return models.Recurrence{}, fmt.Errorf("invalid month interval: %s", s)
		}
		return models.Recurrence{Kind: models.RecurrenceIntervalMonths, IntervalMonths: n}, nil
	}

	days, err := models.ParseWeekdays(v)
	if err != nil {
		return models.Recurrence{}, fmt.Errorf("unrecognized recurrence %q", s)
	}
	return models.Recurrence{Kind: models.RecurrenceDaysOfWeek, Days: days}, nil
}

// FormatRecurrence renders r in a form ParseRecurrence accepts.
func FormatRecurrence(r models.Recurrence) string {
	switch r.Kind {
	case models.RecurrenceDaysOfWeek:
		return strings.ToLower(models.FormatWeekdays(r.Days))
	case models.RecurrenceIntervalDays:
		switch r.IntervalDays {
		case 1:
			return "daily"
		case 7:
			return "weekly"
		case 14:
			return "bi-weekly"
		}
		return fmt.Sprintf("every %d days", r.IntervalDays)
	case models.RecurrenceIntervalMonths:
		switch r.IntervalMonths {
		case 1:
			return "monthly"
		case 2:
			return "bi-monthly"
		case 12:
			return "yearly"
		}
		return fmt.Sprintf("every %d months", r.IntervalMonths)
	case models.RecurrenceWindow:
		return "window"
	default:
		if len(r.Days) > 0 {
			return strings.ToLower(models.FormatWeekdays(r.Days))
		}
		return "daily"
	}
}
