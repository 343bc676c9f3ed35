package sqlstore

import (
	"context"
	"fmt"

	"github.com/julianstephens/dayweave/internal/models"
)

// SavePlacements replaces the placements stored for dateKey. Habits that
// were placed get their last_scheduled_start moved to the placement start.
func (s *Store) SavePlacements(ctx context.Context, userID, dateKey string, placements []models.Placement) error {
	return s.inTx(ctx, func(exec func(string, ...interface{}) error) error {
		if err := exec("DELETE FROM placements WHERE user_id = ? AND date_key = ?", userID, dateKey); err != nil {
			return fmt.Errorf("failed to clear placements for %s: %w", dateKey, err)
		}
		for _, p := range placements {
			if err := exec(`INSERT INTO placements (user_id, date_key, item_id, window_id, start_at, end_at, weight)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				userID, dateKey, p.ItemID, p.WindowID, formatTime(p.Start), formatTime(p.End), p.Weight); err != nil {
				return fmt.Errorf("failed to save placement of %s: %w", p.ItemID, err)
			}
			if err := exec("UPDATE habits SET last_scheduled_start = ? WHERE user_id = ? AND id = ?",
				formatTime(p.Start), userID, p.ItemID); err != nil {
				return fmt.Errorf("failed to update habit %s: %w", p.ItemID, err)
			}
		}
		return nil
	})
}

// GetPlacements returns the placements stored for dateKey in start order.
func (s *Store) GetPlacements(ctx context.Context, userID, dateKey string) ([]models.Placement, error) {
	rows, err := s.query(ctx, `SELECT item_id, window_id, start_at, end_at, weight FROM placements
		WHERE user_id = ? AND date_key = ? ORDER BY start_at, item_id`, userID, dateKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var placements []models.Placement
	for rows.Next() {
		var p models.Placement
		var start, end string
		if err := rows.Scan(&p.ItemID, &p.WindowID, &start, &end, &p.Weight); err != nil {
			return nil, err
		}
		if p.Start, err = parseTime(start); err != nil {
			return nil, fmt.Errorf("failed to parse start_at: %w", err)
		}
		if p.End, err = parseTime(end); err != nil {
			return nil, fmt.Errorf("failed to parse end_at: %w", err)
		}
		placements = append(placements, p)
	}
	return placements, rows.Err()
}
