package postgres

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
		FROM active_habits WHERE user_id = $1 ORDER BY activated_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query active habits: %w", err)
	}
	defer rows.Close()

	var habits []models.ActiveHabit
	for rows.Next() {
		var h models.ActiveHabit
		var target sql.NullFloat64
		if err := rows.Scan(&h.ID, &h.UserID, &h.HabitID, &h.Title, &h.Category, &h.XPReward,
			&h.IsQuantitative, &h.Unit, &target, &h.ActivatedAt); err != nil {
			return nil, err
		}
		h.TargetValue = floatPtr(target)
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
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (user_id, habit_id) DO NOTHING`,
			h.ID, h.UserID, h.HabitID, h.Title, h.Category, h.XPReward, h.IsQuantitative, h.Unit,
			nullFloat(h.TargetValue), h.ActivatedAt)
		if err != nil {
			return fmt.Errorf("failed to activate habit %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

func (s *Store) DeactivateHabit(ctx context.Context, activeHabitID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM active_habits WHERE id = $1`, activeHabitID); err != nil {
		return fmt.Errorf("failed to deactivate habit %s: %w", activeHabitID, err)
	}
	return nil
}
