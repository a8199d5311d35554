package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/levelup/internal/catalog"
	"github.com/julianstephens/levelup/internal/clock"
	"github.com/julianstephens/levelup/internal/constants"
	apperrors "github.com/julianstephens/levelup/internal/errors"
	"github.com/julianstephens/levelup/internal/models"
)

// Onboarding is the input for creating a user.
type Onboarding struct {
	UserID          string   `json:"user_id"`
	DisplayName     string   `json:"display_name"`
	CommitmentLevel string   `json:"commitment_level"`
	SelectedGoals   []string `json:"selected_goals"`
	Timezone        string   `json:"timezone"`
	HabitIDs        []string `json:"habit_ids"`
}

// Onboard validates the input, creates the profile and activates the initial habits.
func Onboard(ctx context.Context, store Store, cat *catalog.Catalog, clk clock.Clock, in Onboarding) (models.UserProfile, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return models.UserProfile{}, apperrors.Invalidf("user_id is required")
	}
	level, err := models.ParseCommitmentLevel(in.CommitmentLevel)
	if err != nil {
		return models.UserProfile{}, apperrors.Invalidf("%v", err)
	}
	if in.Timezone != "" {
		if _, err := clock.LoadLocation(in.Timezone); err != nil {
			return models.UserProfile{}, apperrors.Invalidf("%v", err)
		}
	}
	if err := cat.ValidateGoals(in.SelectedGoals); err != nil {
		return models.UserProfile{}, err
	}
	templates, err := cat.LookupAll(in.HabitIDs)
	if err != nil {
		return models.UserProfile{}, err
	}
	if clk == nil {
		clk = clock.System
	}

	p := models.UserProfile{
		UserID:          userID,
		DisplayName:     in.DisplayName,
		Level:           constants.DefaultLevel,
		CommitmentLevel: level,
		Willpower:       constants.DefaultWillpower,
		SelectedGoals:   append([]string{}, in.SelectedGoals...),
		Timezone:        in.Timezone,
		CreatedAt:       clk.Now(),
	}
	if err := store.CreateProfile(ctx, p); err != nil {
		return models.UserProfile{}, err
	}
	if err := store.ActivateHabits(ctx, userID, templates); err != nil {
		return p, fmt.Errorf("profile created but habits were not activated: %w", err)
	}
	return p, nil
}
