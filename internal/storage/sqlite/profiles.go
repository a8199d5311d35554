package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/julianstephens/levelup/internal/errors"
	"github.com/julianstephens/levelup/internal/models"
)

func (s *Store) CreateProfile(ctx context.Context, p models.UserProfile) error {
	if p.UserID == "" {
		return apperrors.Invalidf("profile requires a user id")
	}
	goals, err := json.Marshal(nonNil(p.SelectedGoals))
	if err != nil {
		return err
	}
	var dismissed sql.NullString
	if p.SuggestionDismissedAt != nil {
		dismissed = sql.NullString{String: formatTime(*p.SuggestionDismissedAt), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, display_name, xp, level, streak, commitment_level, willpower,
			suggestion_dismissed_at, selected_goals, timezone, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.DisplayName, p.XP, p.Level, p.Streak, string(p.CommitmentLevel), p.Willpower,
		dismissed, string(goals), p.Timezone, formatTime(p.CreatedAt))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.Invalidf("profile %q already exists", p.UserID)
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (s *Store) GetProfile(ctx context.Context, userID string) (models.UserProfile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, display_name, xp, level, streak, commitment_level, willpower,
			suggestion_dismissed_at, selected_goals, timezone, created_at
		FROM profiles WHERE user_id = ?`, userID)

	var p models.UserProfile
	var commitment, goals, createdAt string
	var dismissed sql.NullString

	err := row.Scan(&p.UserID, &p.DisplayName, &p.XP, &p.Level, &p.Streak, &commitment, &p.Willpower,
		&dismissed, &goals, &p.Timezone, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserProfile{}, apperrors.NotFoundf("profile %q", userID)
		}
		return models.UserProfile{}, err
	}

	p.CommitmentLevel = models.CommitmentLevel(commitment)
	if err := json.Unmarshal([]byte(goals), &p.SelectedGoals); err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to parse selected_goals: %w", err)
	}
	p.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if dismissed.Valid {
		t, err := parseTime(dismissed.String)
		if err != nil {
			return models.UserProfile{}, fmt.Errorf("failed to parse suggestion_dismissed_at: %w", err)
		}
		p.SuggestionDismissedAt = &t
	}

	return p, nil
}

func (s *Store) UpdateProfile(ctx context.Context, userID string, u models.ProfileUpdate) error {
	var sets []string
	var args []interface{}

	if u.DisplayName != nil {
		sets = append(sets, "display_name = ?")
		args = append(args, *u.DisplayName)
	}
	if u.Willpower != nil {
		sets = append(sets, "willpower = ?")
		args = append(args, *u.Willpower)
	}
	if u.CommitmentLevel != nil {
		sets = append(sets, "commitment_level = ?")
		args = append(args, string(*u.CommitmentLevel))
	}
	if u.SelectedGoals != nil {
		goals, err := json.Marshal(u.SelectedGoals)
		if err != nil {
			return err
		}
		sets = append(sets, "selected_goals = ?")
		args = append(args, string(goals))
	}
	if u.Timezone != nil {
		sets = append(sets, "timezone = ?")
		args = append(args, *u.Timezone)
	}
	if u.ClearSuggestionDismissal {
		sets = append(sets, "suggestion_dismissed_at = NULL")
	} else if u.SuggestionDismissedAt != nil {
		sets = append(sets, "suggestion_dismissed_at = ?")
		args = append(args, formatTime(*u.SuggestionDismissedAt))
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, userID)
	result, err := s.db.ExecContext(ctx,
		"UPDATE profiles SET "+strings.Join(sets, ", ")+" WHERE user_id = ?", args...)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NotFoundf("profile %q", userID)
	}
	return nil
}

func nonNil(goals []string) []string {
	if goals == nil {
		return []string{}
	}
	return goals
}
