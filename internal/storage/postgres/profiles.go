package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	pq "github.com/lib/pq"

	apperrors "github.com/julianstephens/levelup/internal/errors"
	"github.com/julianstephens/levelup/internal/models"
)

// uniqueViolation is the SQLSTATE for unique_violation
const uniqueViolation = "23505"

func (s *Store) CreateProfile(ctx context.Context, p models.UserProfile) error {
	if p.UserID == "" {
		return apperrors.Invalidf("profile requires a user id")
	}
	var dismissed sql.NullTime
	if p.SuggestionDismissedAt != nil {
		dismissed = sql.NullTime{Time: *p.SuggestionDismissedAt, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, display_name, xp, level, streak, commitment_level, willpower,
			suggestion_dismissed_at, selected_goals, timezone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.UserID, p.DisplayName, p.XP, p.Level, p.Streak, string(p.CommitmentLevel), p.Willpower,
		dismissed, pq.Array(nonNil(p.SelectedGoals)), p.Timezone, p.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
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
		FROM profiles WHERE user_id = $1`, userID)

	var p models.UserProfile
	var commitment string
	var dismissed sql.NullTime

	err := row.Scan(&p.UserID, &p.DisplayName, &p.XP, &p.Level, &p.Streak, &commitment, &p.Willpower,
		&dismissed, pq.Array(&p.SelectedGoals), &p.Timezone, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserProfile{}, apperrors.NotFoundf("profile %q", userID)
		}
		return models.UserProfile{}, err
	}

	p.CommitmentLevel = models.CommitmentLevel(commitment)
	if dismissed.Valid {
		t := dismissed.Time
		p.SuggestionDismissedAt = &t
	}
	return p, nil
}

func (s *Store) UpdateProfile(ctx context.Context, userID string, u models.ProfileUpdate) error {
	var sets []string
	var args []interface{}
	bind := func(col string, v interface{}) {
		args = append(args, v)
		sets = append(sets, col+" = $"+strconv.Itoa(len(args)))
	}

	if u.DisplayName != nil {
		bind("display_name", *u.DisplayName)
	}
	if u.Willpower != nil {
		bind("willpower", *u.Willpower)
	}
	if u.CommitmentLevel != nil {
		bind("commitment_level", string(*u.CommitmentLevel))
	}
	if u.SelectedGoals != nil {
		bind("selected_goals", pq.Array(u.SelectedGoals))
	}
	if u.Timezone != nil {
		bind("timezone", *u.Timezone)
	}
	if u.ClearSuggestionDismissal {
		sets = append(sets, "suggestion_dismissed_at = NULL")
	} else if u.SuggestionDismissedAt != nil {
		bind("suggestion_dismissed_at", *u.SuggestionDismissedAt)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, userID)
	query := "UPDATE profiles SET " + strings.Join(sets, ", ") + " WHERE user_id = $" + strconv.Itoa(len(args))
	result, err := s.db.ExecContext(ctx, query, args...)
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
