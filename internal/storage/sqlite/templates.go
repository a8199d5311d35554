package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/levelup/internal/models"
)

func (s *Store) SeedTemplates(ctx context.Context, templates []models.HabitTemplate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, t := range templates {
		goals, err := json.Marshal(nonNil(t.Goals))
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO habit_templates (id, title, category, goals, difficulty, xp_reward, is_quantitative, unit, target_value, sort_order)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO NOTHING`,
			t.ID, t.Title, t.Category, string(goals), t.Difficulty, t.XPReward, t.IsQuantitative, t.Unit,
			nullFloat(t.TargetValue), i)
		if err != nil {
			return fmt.Errorf("failed to seed template %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

func (s *Store) GetTemplates(ctx context.Context) ([]models.HabitTemplate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, category, goals, difficulty, xp_reward, is_quantitative, unit, target_value
		FROM habit_templates ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	defer rows.Close()

	var out []models.HabitTemplate
	for rows.Next() {
		var t models.HabitTemplate
		var goals string
		var target sql.NullFloat64

		if err := rows.Scan(&t.ID, &t.Title, &t.Category, &goals, &t.Difficulty, &t.XPReward,
			&t.IsQuantitative, &t.Unit, &target); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(goals), &t.Goals); err != nil {
			return nil, fmt.Errorf("failed to parse goals for template %s: %w", t.ID, err)
		}
		t.TargetValue = floatPtr(target)
		out = append(out, t)
	}
	return out, rows.Err()
}
