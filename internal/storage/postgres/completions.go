package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/julianstephens/levelup/internal/errors"
	"github.com/julianstephens/levelup/internal/models"
)

func (s *Store) AddCompletion(ctx context.Context, rec models.CompletionRecord) error {
	if rec.UserID == "" || rec.HabitID == "" {
		return apperrors.Invalidf("completion requires user and habit ids")
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO habit_completions (id, user_id, habit_id, xp_awarded, completed_at, completed_value)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID, rec.UserID, rec.HabitID, rec.XPAwarded, rec.CompletedAt, nullFloat(rec.CompletedValue))
	if err != nil {
		return fmt.Errorf("failed to record completion: %w", err)
	}
	return nil
}

func (s *Store) GetRecentCompletions(ctx context.Context, userID string, since time.Time) ([]models.CompletionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, habit_id, xp_awarded, completed_at, completed_value
		FROM habit_completions
		WHERE user_id = $1 AND completed_at >= $2
		ORDER BY completed_at, id`, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query completions: %w", err)
	}
	defer rows.Close()

	var out []models.CompletionRecord
	for rows.Next() {
		var c models.CompletionRecord
		var value sql.NullFloat64
		if err := rows.Scan(&c.ID, &c.UserID, &c.HabitID, &c.XPAwarded, &c.CompletedAt, &value); err != nil {
			return nil, err
		}
		c.CompletedValue = floatPtr(value)
		out = append(out, c)
	}
	return out, rows.Err()
}
