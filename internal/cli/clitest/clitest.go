// Package clitest builds command contexts for CLI tests.
package clitest

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/julianstephens/levelup/internal/catalog"
	"github.com/julianstephens/levelup/internal/cli"
	"github.com/julianstephens/levelup/internal/clock"
	"github.com/julianstephens/levelup/internal/models"
	"github.com/julianstephens/levelup/internal/storage"
	"github.com/julianstephens/levelup/internal/storage/memory"
	"github.com/julianstephens/levelup/internal/tracker"
)

// Now is the fixed instant every test context runs at.
var Now = time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)

// Env is a command context plus the pieces tests inspect.
type Env struct {
	*cli.Context
	Buf *bytes.Buffer
	// Answer is returned by the confirm prompt
	Answer bool
	Asked  []string
}

// New returns an Env backed by an in-memory store.
func New(t *testing.T) *Env {
	t.Helper()
	env := NewWithStore(t, memory.NewWithClock(clock.Fixed(Now)))
	env.Seed(t)
	return env
}

// NewWithStore returns an Env around store without touching it.
func NewWithStore(t *testing.T, store storage.Provider) *Env {
	t.Helper()
	env := &Env{Buf: &bytes.Buffer{}}
	env.Context = cli.NewContext(store, cli.Options{
		Clock:    clock.Fixed(Now),
		Location: time.UTC,
		Out:      env.Buf,
		Confirm: func(title, _ string) (bool, error) {
			env.Asked = append(env.Asked, title)
			return env.Answer, nil
		},
	})
	return env
}

// Seed writes the catalog into the store.
func (e *Env) Seed(t *testing.T) {
	t.Helper()
	require.NoError(t, catalog.Seed(context.Background(), e.Store, e.Catalog))
}

// Output returns and clears what commands have printed.
func (e *Env) Output() string {
	out := e.Buf.String()
	e.Buf.Reset()
	return out
}

// Onboard creates a UTC user with the given plan.
func (e *Env) Onboard(t *testing.T, id string, level models.CommitmentLevel, goals, habits []string) {
	t.Helper()
	_, err := tracker.Onboard(context.Background(), e.Store, e.Catalog, e.Clock, tracker.Onboarding{
		UserID:          id,
		CommitmentLevel: string(level),
		SelectedGoals:   goals,
		Timezone:        "UTC",
		HabitIDs:        habits,
	})
	require.NoError(t, err)
}

// Crushing onboards a hardcore user with every habit completed on each of the last five days.
func (e *Env) Crushing(t *testing.T, id string) {
	t.Helper()
	habits := []string{"habit_1", "habit_7", "habit_17"}
	e.Onboard(t, id, models.CommitmentHardcore, []string{catalog.GoalEatHealthier, catalog.GoalHydrate, catalog.GoalGetFit}, habits)

	ctx := context.Background()
	for d := 0; d < 5; d++ {
		at := Now.AddDate(0, 0, -d).Add(-time.Hour)
		for _, h := range habits {
			require.NoError(t, e.Store.AddCompletion(ctx, models.CompletionRecord{UserID: id, HabitID: h, CompletedAt: at}))
		}
	}
}
