package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/dayweave/internal/constants"
	"github.com/julianstephens/dayweave/internal/models"
)

// GetSettings returns the user's settings. Keys never saved take their
// default values.
func (s *Store) GetSettings(ctx context.Context, userID string) (models.Settings, error) {
	rows, err := s.query(ctx, "SELECT key, value FROM settings WHERE user_id = ?", userID)
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	var defaults models.Settings
	models.ApplyDefaultSettings(&defaults)
	data := models.SettingsToMap(defaults)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		data[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	return models.MapToSettings(data)
}

func (s *Store) SaveSettings(ctx context.Context, userID string, settings models.Settings) error {
	return s.inTx(ctx, func(exec func(string, ...interface{}) error) error {
		for key, value := range models.SettingsToMap(settings) {
			err := exec(`INSERT INTO settings (user_id, key, value) VALUES (?, ?, ?)
				ON CONFLICT (user_id, key) DO UPDATE SET value = excluded.value`, userID, key, value)
			if err != nil {
				return fmt.Errorf("failed to save setting %s: %w", key, err)
			}
		}
		return nil
	})
}

// TimeZone returns the user's configured zone name, which may be empty.
func (s *Store) TimeZone(ctx context.Context, userID string) (string, error) {
	var zone string
	err := s.queryRow(ctx, "SELECT value FROM settings WHERE user_id = ? AND key = ?", userID, constants.SettingTimezone).Scan(&zone)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return zone, err
}
