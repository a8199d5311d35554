// Package storagetest holds the behaviour every storage.Provider must share.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/julianstephens/levelup/internal/errors"
	"github.com/julianstephens/levelup/internal/models"
	"github.com/julianstephens/levelup/internal/storage"
)

// Factory returns an initialized provider. The suite closes it.
type Factory func(t *testing.T) storage.Provider

func ptr[T any](v T) *T { return &v }

func templates() []models.HabitTemplate {
	return []models.HabitTemplate{
		{ID: "tpl_water", Title: "Drink water", Category: "hydration", Goals: []string{"stay-hydrated"}, Difficulty: 5, XPReward: 12},
		{ID: "tpl_walk", Title: "Walk", Category: "fitness", Goals: []string{"get-fit", "more-energy"}, Difficulty: 15, XPReward: 16},
		{ID: "tpl_run", Title: "Run", Category: "fitness", Goals: []string{"get-fit"}, Difficulty: 85, XPReward: 44,
			IsQuantitative: true, Unit: "km", TargetValue: ptr(5.0)},
	}
}

// Run exercises the provider contract. User ids are random so the suite can
// share a database with earlier runs.
func Run(t *testing.T, newStore Factory) {
	ctx := context.Background()

	t.Run("Profiles", func(t *testing.T) {
		s := newStore(t)
		defer s.Close()

		userID := "user-" + uuid.NewString()
		created := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
		p := models.UserProfile{
			UserID:          userID,
			DisplayName:     "Sam",
			Level:           1,
			CommitmentLevel: models.CommitmentSteady,
			Willpower:       50,
			SelectedGoals:   []string{"get-fit", "sleep-better"},
			Timezone:        "UTC",
			CreatedAt:       created,
		}
		require.NoError(t, s.CreateProfile(ctx, p))

		err := s.CreateProfile(ctx, p)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

		got, err := s.GetProfile(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "Sam", got.DisplayName)
		assert.Equal(t, models.CommitmentSteady, got.CommitmentLevel)
		assert.Equal(t, 50, got.Willpower)
		assert.Equal(t, []string{"get-fit", "sleep-better"}, got.SelectedGoals)
		assert.Nil(t, got.SuggestionDismissedAt)
		assert.WithinDuration(t, created, got.CreatedAt, time.Millisecond)

		dismissed := time.Date(2025, 3, 2, 18, 0, 0, 0, time.UTC)
		require.NoError(t, s.UpdateProfile(ctx, userID, models.ProfileUpdate{
			Willpower:             ptr(73),
			SuggestionDismissedAt: &dismissed,
		}))
		got, err = s.GetProfile(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 73, got.Willpower)
		assert.Equal(t, "Sam", got.DisplayName, "unset fields are untouched")
		require.NotNil(t, got.SuggestionDismissedAt)
		assert.WithinDuration(t, dismissed, *got.SuggestionDismissedAt, time.Millisecond)

		require.NoError(t, s.UpdateProfile(ctx, userID, models.ProfileUpdate{ClearSuggestionDismissal: true}))
		got, err = s.GetProfile(ctx, userID)
		require.NoError(t, err)
		assert.Nil(t, got.SuggestionDismissedAt)

		_, err = s.GetProfile(ctx, "missing-"+uuid.NewString())
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		err = s.UpdateProfile(ctx, "missing-"+uuid.NewString(), models.ProfileUpdate{Willpower: ptr(10)})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Plans", func(t *testing.T) {
		s := newStore(t)
		defer s.Close()

		userID := "user-" + uuid.NewString()
		tpls := templates()

		require.NoError(t, s.ActivateHabits(ctx, userID, tpls[:2]))
		// re-activating an active template is a no-op
		require.NoError(t, s.ActivateHabits(ctx, userID, tpls))

		plan, err := s.GetActiveHabits(ctx, userID)
		require.NoError(t, err)
		require.Len(t, plan, 3)

		byHabit := make(map[string]models.ActiveHabit)
		for _, h := range plan {
			assert.Equal(t, userID, h.UserID)
			assert.NotEmpty(t, h.ID)
			byHabit[h.HabitID] = h
		}
		run := byHabit["tpl_run"]
		assert.True(t, run.IsQuantitative)
		assert.Equal(t, "km", run.Unit)
		require.NotNil(t, run.TargetValue)
		assert.InDelta(t, 5.0, *run.TargetValue, 1e-9)
		assert.Equal(t, 44, run.XPReward)
		assert.Nil(t, byHabit["tpl_water"].TargetValue)

		require.NoError(t, s.DeactivateHabit(ctx, byHabit["tpl_walk"].ID))
		// deactivating twice is not an error
		require.NoError(t, s.DeactivateHabit(ctx, byHabit["tpl_walk"].ID))

		plan, err = s.GetActiveHabits(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, plan, 2)
		for _, h := range plan {
			assert.NotEqual(t, "tpl_walk", h.HabitID)
		}

		other, err := s.GetActiveHabits(ctx, "user-"+uuid.NewString())
		require.NoError(t, err)
		assert.Empty(t, other)
	})

	t.Run("Completions", func(t *testing.T) {
		s := newStore(t)
		defer s.Close()

		userID := "user-" + uuid.NewString()
		base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

		recs := []models.CompletionRecord{
			{UserID: userID, HabitID: "tpl_walk", XPAwarded: 16, CompletedAt: base.Add(-72 * time.Hour)},
			{UserID: userID, HabitID: "tpl_run", XPAwarded: 44, CompletedAt: base, CompletedValue: ptr(6.5)},
			{UserID: userID, HabitID: "tpl_water", XPAwarded: 12, CompletedAt: base.Add(-24 * time.Hour)},
			{UserID: "user-" + uuid.NewString(), HabitID: "tpl_water", CompletedAt: base},
		}
		for _, r := range recs {
			require.NoError(t, s.AddCompletion(ctx, r))
		}

		err := s.AddCompletion(ctx, models.CompletionRecord{UserID: userID})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

		got, err := s.GetRecentCompletions(ctx, userID, base.Add(-48*time.Hour))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "tpl_water", got[0].HabitID, "oldest first")
		assert.Equal(t, "tpl_run", got[1].HabitID)
		assert.NotEmpty(t, got[1].ID)
		require.NotNil(t, got[1].CompletedValue)
		assert.InDelta(t, 6.5, *got[1].CompletedValue, 1e-9)
		assert.Nil(t, got[0].CompletedValue)

		// since is inclusive
		got, err = s.GetRecentCompletions(ctx, userID, base)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.WithinDuration(t, base, got[0].CompletedAt, time.Millisecond)
	})

	t.Run("Templates", func(t *testing.T) {
		s := newStore(t)
		defer s.Close()

		tpls := templates()
		require.NoError(t, s.SeedTemplates(ctx, tpls))
		require.NoError(t, s.SeedTemplates(ctx, tpls), "seeding is idempotent")

		got, err := s.GetTemplates(ctx)
		require.NoError(t, err)

		byID := make(map[string]models.HabitTemplate)
		for _, tpl := range got {
			byID[tpl.ID] = tpl
		}
		for _, want := range tpls {
			have, ok := byID[want.ID]
			require.True(t, ok, "template %s missing", want.ID)
			assert.Equal(t, want.Title, have.Title)
			assert.Equal(t, want.Goals, have.Goals)
			assert.Equal(t, want.Difficulty, have.Difficulty)
			assert.Equal(t, want.IsQuantitative, have.IsQuantitative)
		}
	})
}
