package willpower

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/julianstephens/levelup/internal/errors"
	"github.com/julianstephens/levelup/internal/models"
)

func TestApplySuggestion(t *testing.T) {
	f := newFixture(t)
	f.user("u1", models.CommitmentHardcore, []string{"eat", "fit", "sleep"}, "n_easy", "f_easy", "s_easy")
	f.complete("u1", allDays, "n_easy", "f_easy", "s_easy")
	before := f.plan("u1")

	s, err := f.engine.EvaluatePlan(f.ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, s)

	dismissed := testNow.Add(-10 * 24 * time.Hour)
	require.NoError(t, f.store.UpdateProfile(f.ctx, "u1", models.ProfileUpdate{SuggestionDismissedAt: &dismissed}))

	require.NoError(t, f.life.Apply(f.ctx, "u1", *s))

	after := f.plan("u1")
	for _, h := range s.Removals() {
		assert.NotContains(t, after, h.HabitID)
	}
	for _, tpl := range s.Additions() {
		assert.Contains(t, after, tpl.ID)
	}
	assert.Equal(t, before["s_easy"], after["s_easy"], "untouched habit keeps its entry")
	assert.Len(t, after, 3)
	assert.Nil(t, f.profile("u1").SuggestionDismissedAt)
}

func TestApplyIsRepeatable(t *testing.T) {
	f := newFixture(t)
	f.user("u1", models.CommitmentHardcore, []string{"eat"}, "n_easy", "s_easy")
	plan := f.plan("u1")
	mid, _ := f.catalog.Lookup("n_mid")
	s := models.Suggestion{
		Direction: models.DirectionHarder,
		Swaps:     []models.Swap{{Remove: plan["n_easy"], Add: mid}},
	}

	require.NoError(t, f.life.Apply(f.ctx, "u1", s))
	require.NoError(t, f.life.Apply(f.ctx, "u1", s))

	after := f.plan("u1")
	assert.Len(t, after, 2)
	assert.Contains(t, after, "n_mid")
	assert.Contains(t, after, "s_easy")
}

func TestApplyPureRemovalAndAddition(t *testing.T) {
	f := newFixture(t)
	f.user("u1", models.CommitmentChill, []string{"eat"}, "n_hard", "f_hard")
	plan := f.plan("u1")
	fruit, _ := f.catalog.Lookup("n_fruit")

	require.NoError(t, f.life.Apply(f.ctx, "u1", models.Suggestion{
		Direction: models.DirectionEasier,
		ToRemove:  []models.ActiveHabit{plan["f_hard"]},
		ToAdd:     []models.HabitTemplate{fruit},
	}))

	after := f.plan("u1")
	assert.NotContains(t, after, "f_hard")
	assert.Contains(t, after, "n_hard")
	assert.Contains(t, after, "n_fruit")
}

func TestApplyRejectsForeignHabit(t *testing.T) {
	f := newFixture(t)
	f.user("u1", models.CommitmentChill, []string{"eat"}, "n_easy")
	f.user("u2", models.CommitmentChill, []string{"eat"}, "n_hard")
	theirs := f.plan("u2")["n_hard"]

	err := f.life.Apply(f.ctx, "u1", models.Suggestion{ToRemove: []models.ActiveHabit{theirs}})
	assert.ErrorIs(t, err, ErrForeignHabit)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, f.plan("u2"), "n_hard", "nothing was removed")
}

func TestApplyRejectsUnknownTemplate(t *testing.T) {
	f := newFixture(t)
	f.user("u1", models.CommitmentChill, []string{"eat"}, "n_easy")
	plan := f.plan("u1")

	err := f.life.Apply(f.ctx, "u1", models.Suggestion{
		Swaps: []models.Swap{{Remove: plan["n_easy"], Add: models.HabitTemplate{ID: "made_up", Difficulty: 1}}},
	})
	assert.ErrorIs(t, err, ErrUnknownTemplate)
	assert.Contains(t, f.plan("u1"), "n_easy", "validation happens before any mutation")
}

func TestApplyUsesCatalogMetadata(t *testing.T) {
	f := newFixture(t)
	f.user("u1", models.CommitmentChill, []string{"eat"})
	tampered, _ := f.catalog.Lookup("n_mid")
	want := tampered.XPReward
	tampered.XPReward = 9999

	require.NoError(t, f.life.Apply(f.ctx, "u1", models.Suggestion{ToAdd: []models.HabitTemplate{tampered}}))
	assert.Equal(t, want, f.plan("u1")["n_mid"].XPReward)
}

func TestApplyMissingProfile(t *testing.T) {
	f := newFixture(t)
	err := f.life.Apply(f.ctx, "ghost", models.Suggestion{})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// failingActivate lets removals succeed and then fails the activation batch.
type failingActivate struct {
	Store
}

func (failingActivate) ActivateHabits(context.Context, string, []models.HabitTemplate) error {
	return errors.New("store unavailable")
}

func TestApplyPartialFailureLeavesSmallerPlan(t *testing.T) {
	f := newFixture(t)
	f.user("u1", models.CommitmentChill, []string{"eat"}, "n_hard", "s_easy")
	plan := f.plan("u1")
	mid, _ := f.catalog.Lookup("n_mid")

	life := NewLifecycle(failingActivate{f.store}, f.catalog, WithClock(f.clock))
	err := life.Apply(f.ctx, "u1", models.Suggestion{
		Swaps: []models.Swap{{Remove: plan["n_hard"], Add: mid}},
	})
	require.Error(t, err)

	after := f.plan("u1")
	assert.Len(t, after, 1)
	assert.Contains(t, after, "s_easy")
}

func TestDismiss(t *testing.T) {
	f := newFixture(t)
	f.user("u1", models.CommitmentChill, []string{"eat"})

	require.NoError(t, f.life.Dismiss(f.ctx, "u1"))
	p := f.profile("u1")
	require.NotNil(t, p.SuggestionDismissedAt)
	assert.Equal(t, testNow, *p.SuggestionDismissedAt)

	err := f.life.Dismiss(f.ctx, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
