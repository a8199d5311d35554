package willpower

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/julianstephens/levelup/internal/catalog"
	"github.com/julianstephens/levelup/internal/clock"
	"github.com/julianstephens/levelup/internal/models"
	"github.com/julianstephens/levelup/internal/storage/memory"
)

var testNow = time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)

func qty(v float64) *float64 { return &v }

// testCatalog is small enough that every expected pick can be worked out by hand.
func testCatalog() *catalog.Catalog {
	return catalog.MustNew([]models.HabitTemplate{
		{ID: "n_fruit", Title: "Fruit", Category: "nutrition", Goals: []string{"eat"}, Difficulty: 5},
		{ID: "n_easy", Title: "Veg", Category: "nutrition", Goals: []string{"eat"}, Difficulty: 10},
		{ID: "n_mid", Title: "Cook", Category: "nutrition", Goals: []string{"eat"}, Difficulty: 30},
		{ID: "n_hard", Title: "No sugar", Category: "nutrition", Goals: []string{"eat"}, Difficulty: 60},
		{ID: "f_easy", Title: "Walk", Category: "fitness", Goals: []string{"fit"}, Difficulty: 10},
		{ID: "f_quant", Title: "Push-ups", Category: "fitness", Goals: []string{"fit"}, Difficulty: 20,
			IsQuantitative: true, Unit: "reps", TargetValue: qty(10)},
		{ID: "f_hard", Title: "Workout", Category: "fitness", Goals: []string{"fit"}, Difficulty: 50},
		{ID: "s_easy", Title: "Bedtime", Category: "sleep", Goals: []string{"sleep"}, Difficulty: 10},
		{ID: "m_only", Title: "Journal", Category: "mental health", Goals: []string{"calm"}, Difficulty: 40},
	})
}

// manualClock is a clock tests can move forward.
type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

var _ clock.Clock = (*manualClock)(nil)

type fixture struct {
	t       *testing.T
	ctx     context.Context
	store   *memory.Store
	catalog *catalog.Catalog
	clock   *manualClock
	engine  *Engine
	life    *Lifecycle
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clk := &manualClock{now: testNow}
	store := memory.NewWithClock(clk)
	c := testCatalog()
	opts := []Option{WithClock(clk), WithLocation(time.UTC)}
	return &fixture{
		t:       t,
		ctx:     context.Background(),
		store:   store,
		catalog: c,
		clock:   clk,
		engine:  NewEngine(store, c, opts...),
		life:    NewLifecycle(store, c, opts...),
	}
}

func (f *fixture) user(id string, level models.CommitmentLevel, goals []string, habitIDs ...string) {
	f.t.Helper()
	require.NoError(f.t, f.store.CreateProfile(f.ctx, models.UserProfile{
		UserID:          id,
		Level:           1,
		CommitmentLevel: level,
		Willpower:       50,
		SelectedGoals:   goals,
		CreatedAt:       testNow.Add(-30 * 24 * time.Hour),
	}))
	var tpls []models.HabitTemplate
	for _, hid := range habitIDs {
		tpl, ok := f.catalog.Lookup(hid)
		require.True(f.t, ok, "unknown template %s", hid)
		tpls = append(tpls, tpl)
	}
	require.NoError(f.t, f.store.ActivateHabits(f.ctx, id, tpls))
}

// complete logs one completion per habit on each day offset (0 = the clock's today).
func (f *fixture) complete(userID string, dayOffsets []int, habitIDs ...string) {
	f.t.Helper()
	for _, d := range dayOffsets {
		now := f.clock.Now()
		at := time.Date(now.Year(), now.Month(), now.Day()-d, 9, 0, 0, 0, time.UTC)
		for _, hid := range habitIDs {
			require.NoError(f.t, f.store.AddCompletion(f.ctx, models.CompletionRecord{
				UserID: userID, HabitID: hid, XPAwarded: 10, CompletedAt: at,
			}))
		}
	}
}

func (f *fixture) plan(userID string) map[string]models.ActiveHabit {
	f.t.Helper()
	habits, err := f.store.GetActiveHabits(f.ctx, userID)
	require.NoError(f.t, err)
	out := make(map[string]models.ActiveHabit, len(habits))
	for _, h := range habits {
		out[h.HabitID] = h
	}
	return out
}

func (f *fixture) profile(userID string) models.UserProfile {
	f.t.Helper()
	p, err := f.store.GetProfile(f.ctx, userID)
	require.NoError(f.t, err)
	return p
}

var allDays = []int{0, 1, 2, 3, 4}
