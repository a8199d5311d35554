// Package willpower estimates a user's capacity from recent completions and
// proposes plan changes when that capacity drifts away from the plan's difficulty.
package willpower

import (
	"errors"
	"time"

	"github.com/julianstephens/levelup/internal/clock"
	"github.com/julianstephens/levelup/internal/logger"
	"github.com/julianstephens/levelup/internal/metrics"
	"github.com/julianstephens/levelup/internal/models"
	"github.com/julianstephens/levelup/internal/storage"
)

var (
	// ErrNoActiveHabits means the user has an empty plan and nothing can be evaluated.
	ErrNoActiveHabits = errors.New("no active habits")
	// ErrInsufficientData means too few distinct days had completions inside the window.
	ErrInsufficientData = errors.New("insufficient completion data")
	// ErrForeignHabit is returned when a suggestion removes a habit owned by another user.
	ErrForeignHabit = errors.New("habit belongs to another user")
	// ErrUnknownTemplate is returned when a suggestion adds a template missing from the catalog.
	ErrUnknownTemplate = errors.New("unknown habit template")
)

// Store is the subset of storage the engine reads and writes.
type Store interface {
	storage.PlanStore
	storage.CompletionStore
	storage.ProfileStore
}

// Option configures an Estimator, Engine or Lifecycle.
type Option func(*options)

type options struct {
	clock    clock.Clock
	location *time.Location
	metrics  *metrics.Metrics
}

func newOptions(opts []Option) options {
	o := options{clock: clock.System, location: time.Local}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock replaces the wall clock.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLocation sets the location used for users without a timezone.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// locationFor resolves the calendar a profile's days are bucketed in.
func (o options) locationFor(p models.UserProfile) *time.Location {
	if p.Timezone == "" {
		return o.location
	}
	loc, err := clock.LoadLocation(p.Timezone)
	if err != nil {
		logger.Warn("Ignoring invalid profile timezone", "user", p.UserID, "timezone", p.Timezone, "error", err)
		return o.location
	}
	return loc
}
