package willpower

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/julianstephens/levelup/internal/errors"
	"github.com/julianstephens/levelup/internal/metrics"
	"github.com/julianstephens/levelup/internal/models"
)

func TestDecideBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		willpower int
		planDiff  float64
		rate      float64
		want      models.Direction
		wantOK    bool
	}{
		{"harder at exact margin and rate", 30, 10, 0.75, models.DirectionHarder, true},
		{"harder one point short", 29, 10, 0.75, "", false},
		{"harder rate just short", 30, 10, 0.7499, "", false},
		{"harder well above", 96, 10, 1, models.DirectionHarder, true},
		{"easier at exact margin and rate", 30, 50, 0.4, models.DirectionEasier, true},
		{"easier one point over", 31, 50, 0.4, "", false},
		{"easier rate just over", 30, 50, 0.4001, "", false},
		{"easier well below", 5, 60, 0, models.DirectionEasier, true},
		{"flow", 50, 45, 0.6, "", false},
		{"high willpower low rate", 90, 10, 0.5, "", false},
		{"low willpower high rate", 10, 60, 0.9, "", false},
		{"fractional plan difficulty", 33, 13.3, 0.8, "", false},
		{"fractional plan difficulty met", 34, 13.3, 0.8, models.DirectionHarder, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Decide(tt.willpower, tt.planDiff, tt.rate)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluatePlanHardcoreHarder(t *testing.T) {
	f := newFixture(t)
	f.user("u1", models.CommitmentHardcore, []string{"eat", "fit", "sleep"}, "n_easy", "f_easy", "s_easy")
	f.complete("u1", allDays, "n_easy", "f_easy", "s_easy")

	s, err := f.engine.EvaluatePlan(f.ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.Equal(t, models.DirectionHarder, s.Direction)
	assert.Equal(t, ReasonHarder, s.Reason)
	assert.Equal(t, 96, s.Willpower)
	assert.InDelta(t, 10, s.PlanDifficulty, 1e-9)
	assert.InDelta(t, 1, s.CompletionRate, 1e-9)

	require.Len(t, s.Swaps, 2)
	assert.Equal(t, "n_easy", s.Swaps[0].Remove.HabitID)
	assert.Equal(t, "n_mid", s.Swaps[0].Add.ID, "closest step up in nutrition")
	assert.Equal(t, "f_easy", s.Swaps[1].Remove.HabitID)
	assert.Equal(t, "f_quant", s.Swaps[1].Add.ID, "quantitative 26 beats plain 50")
	assert.Empty(t, s.ToAdd)
	assert.Empty(t, s.ToRemove)

	assert.Equal(t, 96, f.profile("u1").Willpower)
}

func TestEvaluatePlanSingleDayReturnsNil(t *testing.T) {
	for _, level := range []models.CommitmentLevel{models.CommitmentChill, models.CommitmentHardcore} {
		f := newFixture(t)
		f.user("u1", level, []string{"eat"}, "n_easy", "f_easy", "s_easy")
		f.complete("u1", []int{0}, "n_easy")

		s, err := f.engine.EvaluatePlan(f.ctx, "u1")
		require.NoError(t, err)
		assert.Nil(t, s, string(level))
	}
}

func TestEvaluatePlanNoHabitsReturnsNil(t *testing.T) {
	f := newFixture(t)
	f.user("u1", models.CommitmentHardcore, []string{"eat"})
	f.complete("u1", allDays, "n_easy")

	s, err := f.engine.EvaluatePlan(f.ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestEvaluatePlanFlowReturnsNil(t *testing.T) {
	f := newFixture(t)
	// steady, every habit on 3 of 5 days: willpower 64 vs plan 30, rate 0.6
	f.user("u1", models.CommitmentSteady, []string{"eat"}, "n_easy", "n_mid", "f_hard")
	f.complete("u1", []int{0, 1, 2}, "n_easy", "n_mid", "f_hard")

	s, err := f.engine.EvaluatePlan(f.ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.NotEqual(t, 50, f.profile("u1").Willpower, "willpower is still refreshed")
}

func TestEvaluatePlanHarderFallbackAddition(t *testing.T) {
	f := newFixture(t)
	// sleep has nothing harder, so the engine proposes one extra habit instead
	f.user("u1", models.CommitmentHardcore, []string{"eat"}, "s_easy")
	f.complete("u1", allDays, "s_easy")

	s, err := f.engine.EvaluatePlan(f.ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, models.DirectionHarder, s.Direction)
	assert.Empty(t, s.Swaps)
	require.Len(t, s.ToAdd, 1)
	assert.Equal(t, "n_easy", s.ToAdd[0].ID, "lowest difficulty at or above the plan mean of 10")
}

func TestEvaluatePlanNoCandidatesReturnsNil(t *testing.T) {
	f := newFixture(t)
	f.user("u1", models.CommitmentHardcore, nil, "n_easy", "f_easy", "s_easy")
	f.complete("u1", allDays, "n_easy", "f_easy", "s_easy")

	s, err := f.engine.EvaluatePlan(f.ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, s, "a user without goals has no candidate pool")
}

func TestEvaluatePlanEasier(t *testing.T) {
	f := newFixture(t)
	// plan difficulty 50, two sparse easy completions: willpower 21, rate 0.13
	f.user("u1", models.CommitmentChill, []string{"eat", "fit"}, "n_hard", "f_hard", "m_only")
	f.complete("u1", []int{0, 3}, "s_easy")

	s, err := f.engine.EvaluatePlan(f.ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.Equal(t, models.DirectionEasier, s.Direction)
	assert.Equal(t, ReasonEasier, s.Reason)
	assert.Equal(t, 21, s.Willpower)
	require.Len(t, s.Swaps, 2)
	assert.Equal(t, "n_hard", s.Swaps[0].Remove.HabitID)
	assert.Equal(t, "n_mid", s.Swaps[0].Add.ID, "closest easier nutrition habit")
	assert.Equal(t, "f_hard", s.Swaps[1].Remove.HabitID)
	assert.Equal(t, "f_quant", s.Swaps[1].Add.ID)
	assert.Empty(t, s.ToRemove)
	assert.Empty(t, s.ToAdd)
}

func TestEvaluatePlanEasierRemovesWithoutReplacement(t *testing.T) {
	f := newFixture(t)
	f.user("u1", models.CommitmentChill, []string{"fit"}, "n_hard", "f_hard", "m_only")
	f.complete("u1", []int{0, 3}, "s_easy")

	s, err := f.engine.EvaluatePlan(f.ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, s)

	require.Len(t, s.ToRemove, 1)
	assert.Equal(t, "n_hard", s.ToRemove[0].HabitID, "no nutrition candidates for a fitness-only user")
	require.Len(t, s.Swaps, 1)
	assert.Equal(t, "f_hard", s.Swaps[0].Remove.HabitID)
}

func TestEvaluatePlanCooldown(t *testing.T) {
	f := newFixture(t)
	f.user("u1", models.CommitmentHardcore, []string{"eat", "fit", "sleep"}, "n_easy", "f_easy", "s_easy")
	f.complete("u1", allDays, "n_easy", "f_easy", "s_easy")

	require.NoError(t, f.life.Dismiss(f.ctx, "u1"))
	p := f.profile("u1")
	require.NotNil(t, p.SuggestionDismissedAt)
	assert.Equal(t, testNow, *p.SuggestionDismissedAt)

	s, err := f.engine.EvaluatePlan(f.ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, s, "dismissed just now")
	assert.Equal(t, 96, f.profile("u1").Willpower, "willpower refreshes during cooldown")

	f.clock.Advance(3*24*time.Hour - time.Second)
	// keep the window full as the clock moves
	f.complete("u1", []int{0, 1, 2}, "n_easy", "f_easy", "s_easy")
	s, err = f.engine.EvaluatePlan(f.ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, s, "one second before the cooldown ends")

	f.clock.Advance(time.Second)
	s, err = f.engine.EvaluatePlan(f.ctx, "u1")
	require.NoError(t, err)
	assert.NotNil(t, s, "cooldown elapsed")
}

func TestInCooldown(t *testing.T) {
	f := newFixture(t)
	dismissed := testNow.Add(-71 * time.Hour)
	p := models.UserProfile{SuggestionDismissedAt: &dismissed}
	assert.True(t, f.engine.InCooldown(p))

	dismissed = testNow.Add(-72 * time.Hour)
	assert.False(t, f.engine.InCooldown(p))

	assert.False(t, f.engine.InCooldown(models.UserProfile{}))

	dismissed = testNow.Add(-time.Hour)
	ends, ok := f.engine.CooldownUntil(p)
	assert.True(t, ok)
	assert.True(t, ends.Equal(testNow.Add(71*time.Hour)))
}

func TestEvaluatePlanMissingProfile(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.EvaluatePlan(f.ctx, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEvaluatePlanRecordsOutcomes(t *testing.T) {
	m := metrics.New(metrics.Config{})
	f := newFixture(t)
	engine := NewEngine(f.store, f.catalog, WithClock(f.clock), WithLocation(time.UTC), WithMetrics(m))

	f.user("u1", models.CommitmentHardcore, []string{"eat", "fit", "sleep"}, "n_easy", "f_easy", "s_easy")
	f.complete("u1", allDays, "n_easy", "f_easy", "s_easy")
	f.user("u2", models.CommitmentHardcore, []string{"eat"})

	_, err := engine.EvaluatePlan(f.ctx, "u1")
	require.NoError(t, err)
	_, err = engine.EvaluatePlan(f.ctx, "u2")
	require.NoError(t, err)
	_, err = engine.EvaluatePlan(f.ctx, "ghost")
	require.Error(t, err)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `levelup_engine_evaluations_total{outcome="harder"} 1`)
	assert.Contains(t, string(body), `levelup_engine_evaluations_total{outcome="no_habits"} 1`)
	assert.Contains(t, string(body), `levelup_engine_evaluations_total{outcome="error"} 1`)
	assert.Contains(t, string(body), "levelup_engine_willpower_count 1")
}
