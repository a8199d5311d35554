package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/levelup/internal/clock"
	"github.com/julianstephens/levelup/internal/constants"
	"github.com/julianstephens/levelup/internal/logger"
	"github.com/julianstephens/levelup/internal/models"
)

// Pattern names a synthetic completion history.
type Pattern string

const (
	// PatternStruggling completes only the first habit, yesterday and three days ago.
	PatternStruggling Pattern = "struggling"
	// PatternCrushing completes every habit on every day of the evaluation window.
	PatternCrushing Pattern = "crushing"
)

// seededHour is the local hour seeded completions are stamped with.
const seededHour = 10

var struggleOffsets = []int{1, 3}

// SeedResult reports what a seed run wrote and what the engine made of it.
type SeedResult struct {
	Pattern    Pattern            `json:"pattern"`
	Seeded     int                `json:"seeded"`
	Suggestion *models.Suggestion `json:"suggestion,omitempty"`
}

// ParsePattern validates a pattern name.
func ParsePattern(s string) (Pattern, error) {
	switch p := Pattern(s); p {
	case PatternStruggling, PatternCrushing:
		return p, nil
	}
	return "", fmt.Errorf("unknown seed pattern %q (want %s or %s)", s, PatternStruggling, PatternCrushing)
}

// Seed writes synthetic completions for a debugging session and evaluates the plan.
func (t *Tracker) Seed(ctx context.Context, userID string, pattern Pattern) (SeedResult, error) {
	if _, err := t.store.GetProfile(ctx, userID); err != nil {
		return SeedResult{}, err
	}
	plan, err := t.store.GetActiveHabits(ctx, userID)
	if err != nil {
		return SeedResult{}, fmt.Errorf("failed to load active habits: %w", err)
	}
	if len(plan) == 0 {
		return SeedResult{}, fmt.Errorf("user %s has no active habits", userID)
	}

	var (
		offsets []int
		habits  []models.ActiveHabit
	)
	switch pattern {
	case PatternStruggling:
		offsets, habits = struggleOffsets, plan[:1]
	case PatternCrushing:
		for d := 0; d < constants.EvalWindowDays; d++ {
			offsets = append(offsets, d)
		}
		habits = plan
	default:
		return SeedResult{}, fmt.Errorf("unknown seed pattern %q", pattern)
	}

	now := t.clock.Now()
	today := clock.DayOf(now, t.location)
	count := 0
	for _, offset := range offsets {
		at := today.AddDays(-offset).Start(t.location).Add(seededHour * time.Hour)
		if at.After(now) {
			at = now
		}
		for _, h := range habits {
			rec := models.CompletionRecord{
				ID:          uuid.New().String(),
				UserID:      userID,
				HabitID:     h.HabitID,
				XPAwarded:   h.XPReward,
				CompletedAt: at,
			}
			if err := t.store.AddCompletion(ctx, rec); err != nil {
				return SeedResult{Pattern: pattern, Seeded: count}, fmt.Errorf("failed to seed completion: %w", err)
			}
			count++
		}
	}
	logger.Info("Seeded completions", "user", userID, "pattern", pattern, "count", count)

	return SeedResult{Pattern: pattern, Seeded: count, Suggestion: t.evaluate(ctx, userID)}, nil
}
