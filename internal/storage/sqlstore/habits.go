package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/dayweave/internal/models"
)

const habitColumns = `id, name, recurrence_kind, recurrence_days, interval_days, interval_months, window_id,
	duration_min, priority, energy, location, skill_id, created_at, updated_at, last_completed_at,
	last_scheduled_start, next_due_override, archived_at, deleted_at`

// encodeDays stores a weekday list as "Mon,Wed,Fri"; an empty list is "".
func encodeDays(days []time.Weekday) string {
	if len(days) == 0 {
		return ""
	}
	return models.FormatWeekdays(days)
}

func scanHabit(row scanner) (models.Habit, error) {
	var h models.Habit
	var kind, days, createdAt, updatedAt string
	var lastCompleted, lastScheduled, override, archived, deleted sql.NullString

	err := row.Scan(&h.ID, &h.Name, &kind, &days, &h.Recurrence.IntervalDays, &h.Recurrence.IntervalMonths,
		&h.WindowID, &h.DurationMin, &h.Priority, &h.Energy, &h.Location, &h.SkillID, &createdAt, &updatedAt,
		&lastCompleted, &lastScheduled, &override, &archived, &deleted)
	if err != nil {
		return models.Habit{}, err
	}
	h.Recurrence.Kind = models.RecurrenceKind(kind)
	if h.Recurrence.Days, err = models.ParseWeekdays(days); err != nil {
		return models.Habit{}, fmt.Errorf("habit %s: %w", h.ID, err)
	}

	if h.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if h.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	nullable := []struct {
		src   sql.NullString
		dst   **time.Time
		field string
	}{
		{lastCompleted, &h.LastCompletedAt, "last_completed_at"},
		{lastScheduled, &h.LastScheduledStart, "last_scheduled_start"},
		{override, &h.NextDueOverride, "next_due_override"},
		{archived, &h.ArchivedAt, "archived_at"},
		{deleted, &h.DeletedAt, "deleted_at"},
	}
	for _, n := range nullable {
		if *n.dst, err = parseNullTime(n.src, n.field); err != nil {
			return models.Habit{}, err
		}
	}
	return h, nil
}

// AddHabit inserts or updates a habit. Scheduling state (last completion,
// last scheduled start, override) is only written on insert; use the
// dedicated methods to change it afterwards.
func (s *Store) AddHabit(ctx context.Context, userID string, h models.Habit) error {
	_, err := s.exec(ctx, `INSERT INTO habits (id, user_id, name, recurrence_kind, recurrence_days,
		interval_days, interval_months, window_id, duration_min, priority, energy, location, skill_id,
		created_at, updated_at, last_completed_at, last_scheduled_start, next_due_override, archived_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name, recurrence_kind = excluded.recurrence_kind,
			recurrence_days = excluded.recurrence_days, interval_days = excluded.interval_days,
			interval_months = excluded.interval_months, window_id = excluded.window_id,
			duration_min = excluded.duration_min, priority = excluded.priority, energy = excluded.energy,
			location = excluded.location, skill_id = excluded.skill_id, updated_at = excluded.updated_at`,
		h.ID, userID, h.Name, string(h.Recurrence.Kind), encodeDays(h.Recurrence.Days),
		h.Recurrence.IntervalDays, h.Recurrence.IntervalMonths, h.WindowID, h.DurationMin,
		int(h.Priority), int(h.Energy), h.Location, h.SkillID, formatTime(h.CreatedAt), formatTime(h.UpdatedAt),
		nullTime(h.LastCompletedAt), nullTime(h.LastScheduledStart), nullTime(h.NextDueOverride),
		nullTime(h.ArchivedAt), nullTime(h.DeletedAt))
	if err != nil {
		return fmt.Errorf("failed to save habit %s: %w", h.Name, err)
	}
	return nil
}

func (s *Store) GetHabit(ctx context.Context, userID, id string) (models.Habit, error) {
	row := s.queryRow(ctx, "SELECT "+habitColumns+" FROM habits WHERE user_id = ? AND id = ?", userID, id)
	h, err := scanHabit(row)
	if err != nil {
		return models.Habit{}, notFound(err, "habit", id)
	}
	return h, nil
}

func (s *Store) GetHabitByName(ctx context.Context, userID, name string) (models.Habit, error) {
	row := s.queryRow(ctx, "SELECT "+habitColumns+
		" FROM habits WHERE user_id = ? AND name = ? AND deleted_at IS NULL", userID, name)
	h, err := scanHabit(row)
	if err != nil {
		return models.Habit{}, notFound(err, "habit", name)
	}
	return h, nil
}

// ActiveHabits returns habits that are neither archived nor deleted.
func (s *Store) ActiveHabits(ctx context.Context, userID string) ([]models.Habit, error) {
	rows, err := s.query(ctx, "SELECT "+habitColumns+
		" FROM habits WHERE user_id = ? AND archived_at IS NULL AND deleted_at IS NULL ORDER BY name, id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) ArchiveHabit(ctx context.Context, userID, id string, at time.Time) error {
	res, err := s.exec(ctx, "UPDATE habits SET archived_at = ?, updated_at = ? WHERE user_id = ? AND id = ?",
		formatTime(at), formatTime(at), userID, id)
	if err != nil {
		return fmt.Errorf("failed to archive habit %s: %w", id, err)
	}
	return requireRow(res, "habit", id)
}

// SetHabitOverride sets or, with a nil override, clears the habit's next
// due override.
func (s *Store) SetHabitOverride(ctx context.Context, userID, id string, override *time.Time) error {
	res, err := s.exec(ctx, "UPDATE habits SET next_due_override = ? WHERE user_id = ? AND id = ?",
		nullTime(override), userID, id)
	if err != nil {
		return fmt.Errorf("failed to set override for habit %s: %w", id, err)
	}
	return requireRow(res, "habit", id)
}

// AddHabitCompletion records a completion and advances the habit's
// last_completed_at when the completion is newer.
func (s *Store) AddHabitCompletion(ctx context.Context, userID string, c models.HabitCompletion) error {
	if _, err := s.GetHabit(ctx, userID, c.HabitID); err != nil {
		return err
	}
	at := formatTime(c.CompletedAt)
	return s.inTx(ctx, func(exec func(string, ...interface{}) error) error {
		if err := exec("INSERT INTO habit_completions (id, habit_id, completed_at) VALUES (?, ?, ?)",
			c.ID, c.HabitID, at); err != nil {
			return fmt.Errorf("failed to record completion for habit %s: %w", c.HabitID, err)
		}
		if err := exec(`UPDATE habits SET last_completed_at = ?
			WHERE user_id = ? AND id = ? AND (last_completed_at IS NULL OR last_completed_at < ?)`,
			at, userID, c.HabitID, at); err != nil {
			return fmt.Errorf("failed to update habit %s: %w", c.HabitID, err)
		}
		return nil
	})
}

// HabitCompletions returns a habit's completions, oldest first.
func (s *Store) HabitCompletions(ctx context.Context, userID, habitID string) ([]models.HabitCompletion, error) {
	rows, err := s.query(ctx, `SELECT c.id, c.habit_id, c.completed_at FROM habit_completions c
		JOIN habits h ON h.id = c.habit_id
		WHERE h.user_id = ? AND c.habit_id = ? ORDER BY c.completed_at, c.id`, userID, habitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []models.HabitCompletion
	for rows.Next() {
		var c models.HabitCompletion
		var at string
		if err := rows.Scan(&c.ID, &c.HabitID, &at); err != nil {
			return nil, err
		}
		if c.CompletedAt, err = parseTime(at); err != nil {
			return nil, fmt.Errorf("failed to parse completed_at: %w", err)
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}
