package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/levelup/internal/clock"
	"github.com/julianstephens/levelup/internal/models"
	"github.com/julianstephens/levelup/internal/storage"
	"github.com/julianstephens/levelup/internal/storage/storagetest"
)

func TestStoreContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Provider {
		return New()
	})
}

func TestActivateUsesClock(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	s := NewWithClock(clock.Fixed(at))

	require.NoError(t, s.ActivateHabits(context.Background(), "u1", []models.HabitTemplate{{ID: "h1", Title: "x"}}))
	plan, err := s.GetActiveHabits(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, at, plan[0].ActivatedAt)
}

func TestProfileIsolation(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.CreateProfile(ctx, models.UserProfile{UserID: "u1", SelectedGoals: []string{"get-fit"}}))

	p, err := s.GetProfile(ctx, "u1")
	require.NoError(t, err)
	p.SelectedGoals[0] = "mutated"

	again, err := s.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"get-fit"}, again.SelectedGoals)
}

func TestConcurrentCompletions(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.AddCompletion(ctx, models.CompletionRecord{UserID: "u1", HabitID: "h1", CompletedAt: now})
		}()
	}
	wg.Wait()

	got, err := s.GetRecentCompletions(ctx, "u1", now.Add(-time.Minute))
	require.NoError(t, err)
	assert.Len(t, got, 50)
}
