package profiles

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/levelup/internal/cli/clitest"
	apperrors "github.com/julianstephens/levelup/internal/errors"
	"github.com/julianstephens/levelup/internal/models"
)

func strPtr(s string) *string { return &s }

func TestCreateAndShow(t *testing.T) {
	env := clitest.New(t)

	cmd := &ProfileCreateCmd{
		User:       "alice",
		Name:       "Alice",
		Commitment: "dedicated",
		Goals:      []string{"get-fit"},
		Timezone:   "Europe/Berlin",
		Habits:     []string{"habit_17"},
	}
	require.NoError(t, cmd.Run(env.Context))
	assert.Contains(t, env.Output(), "✓ Created profile alice with 1 habit(s)")

	require.NoError(t, (&ProfileShowCmd{User: "alice"}).Run(env.Context))
	out := env.Output()
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "dedicated")
	assert.Contains(t, out, "Europe/Berlin")

	require.NoError(t, (&ProfileShowCmd{User: "alice", JSON: true}).Run(env.Context))
	assert.Contains(t, env.Output(), `"willpower": 50`)
}

func TestCreateRejectsBadInput(t *testing.T) {
	env := clitest.New(t)

	for name, cmd := range map[string]*ProfileCreateCmd{
		"commitment": {User: "a", Commitment: "extreme"},
		"goal":       {User: "a", Commitment: "steady", Goals: []string{"fly"}},
		"timezone":   {User: "a", Commitment: "steady", Timezone: "Mars/Olympus"},
		"habit":      {User: "a", Commitment: "steady", Habits: []string{"habit_0"}},
	} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, cmd.Run(env.Context), apperrors.ErrInvalidInput)
		})
	}
}

func TestShowMissing(t *testing.T) {
	env := clitest.New(t)
	assert.ErrorIs(t, (&ProfileShowCmd{User: "ghost"}).Run(env.Context), apperrors.ErrNotFound)
}

func TestShowCooldown(t *testing.T) {
	env := clitest.New(t)
	env.Onboard(t, "alice", models.CommitmentSteady, nil, nil)
	require.NoError(t, env.Lifecycle.Dismiss(t.Context(), "alice"))

	require.NoError(t, (&ProfileShowCmd{User: "alice"}).Run(env.Context))
	assert.Contains(t, env.Output(), "paused")
}

func TestSet(t *testing.T) {
	env := clitest.New(t)
	env.Onboard(t, "alice", models.CommitmentSteady, []string{"get-fit"}, nil)

	cmd := &ProfileSetCmd{
		User:       "alice",
		Name:       strPtr("Al"),
		Commitment: strPtr("hardcore"),
		Goals:      []string{"sleep-better", "reduce-stress"},
		Timezone:   strPtr("Asia/Tokyo"),
	}
	require.NoError(t, cmd.Run(env.Context))

	p, err := env.Store.GetProfile(t.Context(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "Al", p.DisplayName)
	assert.Equal(t, models.CommitmentHardcore, p.CommitmentLevel)
	assert.Equal(t, []string{"sleep-better", "reduce-stress"}, p.SelectedGoals)
	assert.Equal(t, "Asia/Tokyo", p.Timezone)

	require.NoError(t, (&ProfileSetCmd{User: "alice", ClearGoals: true}).Run(env.Context))
	p, err = env.Store.GetProfile(t.Context(), "alice")
	require.NoError(t, err)
	assert.Empty(t, p.SelectedGoals)
	assert.WithinDuration(t, clitest.Now, p.CreatedAt, time.Second)
}

func TestSetRejectsBadInput(t *testing.T) {
	env := clitest.New(t)
	env.Onboard(t, "alice", models.CommitmentSteady, nil, nil)

	for name, cmd := range map[string]*ProfileSetCmd{
		"nothing":    {User: "alice"},
		"commitment": {User: "alice", Commitment: strPtr("max")},
		"goal":       {User: "alice", Goals: []string{"fly"}},
		"timezone":   {User: "alice", Timezone: strPtr("Nowhere/Land")},
	} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, cmd.Run(env.Context), apperrors.ErrInvalidInput)
		})
	}

	assert.ErrorIs(t, (&ProfileSetCmd{User: "ghost", Name: strPtr("x")}).Run(env.Context), apperrors.ErrNotFound)
}
