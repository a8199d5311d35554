package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/levelup/internal/models"
)

func (s *Store) GetActiveHabits(ctx context.Context, userID string) ([]models.ActiveHabit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, habit_id, title, category, xp_reward, is_quantitative, unit, target_value, activated_at
		FROM active_habits WHERE user_id = ? ORDER BY activated_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query active habits: %w", err)
	}
	defer rows.Close()

	var habits []models.ActiveHabit
	for rows.Next() {
		var h models.ActiveHabit
		var target sql.NullFloat64
		var activatedAt string

		if err := rows.Scan(&h.ID, &h.UserID, &h.HabitID, &h.Title, &h.Category, &h.XPReward,
			&h.IsQuantitative, &h.Unit, &target, &activatedAt); err != nil {
			return nil, err
		}
		h.TargetValue = floatPtr(target)
		h.ActivatedAt, err = parseTime(activatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse activated_at for habit %s: %w", h.ID, err)
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) ActivateHabits(ctx context.Context, userID string, templates []models.HabitTemplate) error {
	if len(templates) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	for _, t := range templates {
		h := models.NewActiveHabit(uuid.New().String(), userID, t, now)
		_, err := tx.ExecContext(ctx, `
			INSERT INTO active_habits (id, user_id, habit_id, title, category, xp_reward, is_quantitative, unit, target_value, activated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(user_id, habit_id) DO NOTHING`,
			h.ID, h.UserID, h.HabitID, h.Title, h.Category, h.XPReward, h.IsQuantitative, h.Unit,
			nullFloat(h.TargetValue), formatTime(h.ActivatedAt))
		if err != nil {
			return fmt.Errorf("failed to activate habit %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

func (s *Store) DeactivateHabit(ctx context.Context, activeHabitID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM active_habits WHERE id = ?`, activeHabitID)
	if err != nil {
		return fmt.Errorf("failed to deactivate habit %s: %w", activeHabitID, err)
	}
	return nil
}
