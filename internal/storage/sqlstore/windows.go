package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/dayweave/internal/constants"
	"github.com/julianstephens/dayweave/internal/models"
	"github.com/julianstephens/dayweave/internal/windows"
)

const insertWindow = `INSERT INTO windows (user_id, day_type_id, id, label, start_min, end_min, days, energy_cap, location)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (user_id, day_type_id, id) DO UPDATE SET
		label = excluded.label, start_min = excluded.start_min, end_min = excluded.end_min,
		days = excluded.days, energy_cap = excluded.energy_cap, location = excluded.location`

func windowArgs(userID, dayTypeID string, w models.Window) []interface{} {
	return []interface{}{userID, dayTypeID, w.ID, w.Label, int(w.Start), int(w.End),
		encodeDays(w.Days), int(w.EnergyCap), w.Location}
}

// SaveWindow upserts a window. An empty dayTypeID targets the default set.
func (s *Store) SaveWindow(ctx context.Context, userID, dayTypeID string, w models.Window) error {
	if _, err := s.exec(ctx, insertWindow, windowArgs(userID, dayTypeID, w)...); err != nil {
		return fmt.Errorf("failed to save window %s: %w", w.ID, err)
	}
	return nil
}

func (s *Store) DeleteWindow(ctx context.Context, userID, dayTypeID, id string) error {
	res, err := s.exec(ctx, "DELETE FROM windows WHERE user_id = ? AND day_type_id = ? AND id = ?", userID, dayTypeID, id)
	if err != nil {
		return fmt.Errorf("failed to delete window %s: %w", id, err)
	}
	return requireRow(res, "window", id)
}

// SaveDayType upserts a day type together with its windows, replacing any
// windows it previously had.
func (s *Store) SaveDayType(ctx context.Context, userID string, dt models.DayType) error {
	return s.inTx(ctx, func(exec func(string, ...interface{}) error) error {
		return saveDayType(exec, userID, dt)
	})
}

func saveDayType(exec func(string, ...interface{}) error, userID string, dt models.DayType) error {
	isDefault := 0
	if dt.IsDefault {
		isDefault = 1
	}
	if err := exec(`INSERT INTO day_types (user_id, id, name, is_default) VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, id) DO UPDATE SET name = excluded.name, is_default = excluded.is_default`,
		userID, dt.ID, dt.Name, isDefault); err != nil {
		return fmt.Errorf("failed to save day type %s: %w", dt.ID, err)
	}
	if err := exec("DELETE FROM windows WHERE user_id = ? AND day_type_id = ?", userID, dt.ID); err != nil {
		return fmt.Errorf("failed to clear windows of day type %s: %w", dt.ID, err)
	}
	for _, w := range dt.Windows {
		if err := exec(insertWindow, windowArgs(userID, dt.ID, w)...); err != nil {
			return fmt.Errorf("failed to save window %s of day type %s: %w", w.ID, dt.ID, err)
		}
	}
	return nil
}

// AssignDayType pins a date to a day type. An empty dayTypeID removes the
// assignment.
func (s *Store) AssignDayType(ctx context.Context, userID, dateKey, dayTypeID string) error {
	if dayTypeID == "" {
		_, err := s.exec(ctx, "DELETE FROM day_assignments WHERE user_id = ? AND date_key = ?", userID, dateKey)
		return err
	}
	var exists int
	err := s.queryRow(ctx, "SELECT 1 FROM day_types WHERE user_id = ? AND id = ?", userID, dayTypeID).Scan(&exists)
	if err != nil {
		return notFound(err, "day type", dayTypeID)
	}
	_, err = s.exec(ctx, `INSERT INTO day_assignments (user_id, date_key, day_type_id) VALUES (?, ?, ?)
		ON CONFLICT (user_id, date_key) DO UPDATE SET day_type_id = excluded.day_type_id`,
		userID, dateKey, dayTypeID)
	if err != nil {
		return fmt.Errorf("failed to assign %s to %s: %w", dayTypeID, dateKey, err)
	}
	return nil
}

// ReplaceWindowConfig swaps the user's whole window configuration in one
// transaction. The default day type setting is updated alongside.
func (s *Store) ReplaceWindowConfig(ctx context.Context, userID string, cfg windows.Config) error {
	return s.inTx(ctx, func(exec func(string, ...interface{}) error) error {
		for _, table := range []string{"windows", "day_types", "day_assignments"} {
			if err := exec("DELETE FROM "+table+" WHERE user_id = ?", userID); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		for _, w := range cfg.Windows {
			if err := exec(insertWindow, windowArgs(userID, "", w)...); err != nil {
				return fmt.Errorf("failed to save window %s: %w", w.ID, err)
			}
		}
		for _, dt := range cfg.DayTypes {
			if err := saveDayType(exec, userID, dt); err != nil {
				return err
			}
		}
		for key, id := range cfg.Assignments {
			if err := exec("INSERT INTO day_assignments (user_id, date_key, day_type_id) VALUES (?, ?, ?)",
				userID, key, id); err != nil {
				return fmt.Errorf("failed to assign %s to %s: %w", id, key, err)
			}
		}
		return exec(`INSERT INTO settings (user_id, key, value) VALUES (?, ?, ?)
			ON CONFLICT (user_id, key) DO UPDATE SET value = excluded.value`,
			userID, constants.SettingDefaultDayType, cfg.DefaultDayType)
	})
}

// WindowConfig loads the user's windows, day types and date assignments.
func (s *Store) WindowConfig(ctx context.Context, userID string) (windows.Config, error) {
	var cfg windows.Config

	dayTypes, err := s.dayTypes(ctx, userID)
	if err != nil {
		return cfg, err
	}

	rows, err := s.query(ctx, `SELECT day_type_id, id, label, start_min, end_min, days, energy_cap, location
		FROM windows WHERE user_id = ? ORDER BY day_type_id, start_min, id`, userID)
	if err != nil {
		return cfg, err
	}
	defer rows.Close()

	index := make(map[string]int, len(dayTypes))
	for i, dt := range dayTypes {
		index[dt.ID] = i
	}
	for rows.Next() {
		var w models.Window
		var dayTypeID, days string
		if err := rows.Scan(&dayTypeID, &w.ID, &w.Label, &w.Start, &w.End, &days, &w.EnergyCap, &w.Location); err != nil {
			return cfg, err
		}
		if w.Days, err = models.ParseWeekdays(days); err != nil {
			return cfg, fmt.Errorf("window %s: %w", w.ID, err)
		}
		if dayTypeID == "" {
			cfg.Windows = append(cfg.Windows, w)
			continue
		}
		if i, ok := index[dayTypeID]; ok {
			dayTypes[i].Windows = append(dayTypes[i].Windows, w)
		}
	}
	if err := rows.Err(); err != nil {
		return cfg, err
	}
	cfg.DayTypes = dayTypes

	if cfg.Assignments, err = s.assignments(ctx, userID); err != nil {
		return cfg, err
	}

	err = s.queryRow(ctx, "SELECT value FROM settings WHERE user_id = ? AND key = ?",
		userID, constants.SettingDefaultDayType).Scan(&cfg.DefaultDayType)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return cfg, fmt.Errorf("failed to read default day type: %w", err)
	}
	return cfg, nil
}

func (s *Store) dayTypes(ctx context.Context, userID string) ([]models.DayType, error) {
	rows, err := s.query(ctx, "SELECT id, name, is_default FROM day_types WHERE user_id = ? ORDER BY id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dayTypes []models.DayType
	for rows.Next() {
		var dt models.DayType
		var isDefault int
		if err := rows.Scan(&dt.ID, &dt.Name, &isDefault); err != nil {
			return nil, err
		}
		dt.IsDefault = isDefault != 0
		dayTypes = append(dayTypes, dt)
	}
	return dayTypes, rows.Err()
}

func (s *Store) assignments(ctx context.Context, userID string) (map[string]string, error) {
	rows, err := s.query(ctx, "SELECT date_key, day_type_id FROM day_assignments WHERE user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make(map[string]string)
	for rows.Next() {
		var key, id string
		if err := rows.Scan(&key, &id); err != nil {
			return nil, err
		}
		assignments[key] = id
	}
	return assignments, rows.Err()
}
