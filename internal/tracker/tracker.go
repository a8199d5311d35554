// Package tracker records habit completions and runs the suggestion engine
// after each one without letting engine failures affect the completion.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/levelup/internal/clock"
	apperrors "github.com/julianstephens/levelup/internal/errors"
	"github.com/julianstephens/levelup/internal/logger"
	"github.com/julianstephens/levelup/internal/metrics"
	"github.com/julianstephens/levelup/internal/models"
	"github.com/julianstephens/levelup/internal/storage"
)

// ErrHabitNotActive is returned when completing a habit that is not in the user's plan.
var ErrHabitNotActive = errors.New("habit is not active")

// Store is the storage the tracker writes to.
type Store interface {
	storage.PlanStore
	storage.CompletionStore
	storage.ProfileStore
}

// Evaluator is satisfied by *willpower.Engine.
type Evaluator interface {
	EvaluatePlan(ctx context.Context, userID string) (*models.Suggestion, error)
}

// Result is a recorded completion plus the suggestion it triggered, if any.
type Result struct {
	Completion models.CompletionRecord `json:"completion"`
	Suggestion *models.Suggestion      `json:"suggestion,omitempty"`
}

type Option func(*Tracker)

func WithClock(c clock.Clock) Option {
	return func(t *Tracker) { t.clock = c }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(t *Tracker) { t.metrics = m }
}

// WithLocation sets the calendar used to place seeded completions.
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) {
		if loc != nil {
			t.location = loc
		}
	}
}

type Tracker struct {
	store    Store
	engine   Evaluator
	clock    clock.Clock
	location *time.Location
	metrics  *metrics.Metrics
}

func New(store Store, engine Evaluator, opts ...Option) *Tracker {
	t := &Tracker{store: store, engine: engine, clock: clock.System, location: time.Local}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// CompleteHabit logs a completion of an active habit and then evaluates the
// plan. Evaluation errors are logged and dropped.
func (t *Tracker) CompleteHabit(ctx context.Context, userID, habitID string, value *float64) (Result, error) {
	if value != nil && *value < 0 {
		return Result{}, apperrors.Invalidf("completed value must not be negative")
	}

	habit, err := t.activeHabit(ctx, userID, habitID)
	if err != nil {
		return Result{}, err
	}

	rec := models.CompletionRecord{
		ID:             uuid.New().String(),
		UserID:         userID,
		HabitID:        habit.HabitID,
		XPAwarded:      habit.XPReward,
		CompletedAt:    t.clock.Now(),
		CompletedValue: value,
	}
	if err := t.store.AddCompletion(ctx, rec); err != nil {
		return Result{}, fmt.Errorf("failed to record completion: %w", err)
	}
	t.metrics.RecordCompletion()
	logger.Debug("Habit completed", "user", userID, "habit", habitID, "xp", rec.XPAwarded)

	return Result{Completion: rec, Suggestion: t.evaluate(ctx, userID)}, nil
}

// evaluate runs the engine on a best-effort basis.
func (t *Tracker) evaluate(ctx context.Context, userID string) *models.Suggestion {
	if t.engine == nil {
		return nil
	}
	s, err := t.engine.EvaluatePlan(ctx, userID)
	if err != nil {
		logger.Warn("Plan evaluation failed", "user", userID, "error", err)
		return nil
	}
	return s
}

func (t *Tracker) activeHabit(ctx context.Context, userID, habitID string) (models.ActiveHabit, error) {
	if _, err := t.store.GetProfile(ctx, userID); err != nil {
		return models.ActiveHabit{}, err
	}
	plan, err := t.store.GetActiveHabits(ctx, userID)
	if err != nil {
		return models.ActiveHabit{}, fmt.Errorf("failed to load active habits: %w", err)
	}
	for _, h := range plan {
		if h.HabitID == habitID || h.ID == habitID {
			return h, nil
		}
	}
	return models.ActiveHabit{}, fmt.Errorf("%w: %w: %s", apperrors.ErrInvalidInput, ErrHabitNotActive, habitID)
}
