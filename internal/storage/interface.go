package storage

import (
	"context"
	"time"

	"github.com/julianstephens/levelup/internal/models"
)

// PlanStore reads and mutates the set of habits active for a user.
type PlanStore interface {
	GetActiveHabits(ctx context.Context, userID string) ([]models.ActiveHabit, error)
	// ActivateHabits adds the templates to the user's plan. Templates that are already
	// active for the user are skipped.
	ActivateHabits(ctx context.Context, userID string, templates []models.HabitTemplate) error
	// DeactivateHabit removes one plan entry by its ActiveHabit id.
	DeactivateHabit(ctx context.Context, activeHabitID string) error
}

// CompletionStore is the append-only completion log.
type CompletionStore interface {
	AddCompletion(ctx context.Context, rec models.CompletionRecord) error
	// GetRecentCompletions returns the user's completions at or after since, oldest first.
	GetRecentCompletions(ctx context.Context, userID string, since time.Time) ([]models.CompletionRecord, error)
}

// ProfileStore reads and partially updates user profiles.
type ProfileStore interface {
	CreateProfile(ctx context.Context, p models.UserProfile) error
	GetProfile(ctx context.Context, userID string) (models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) error
}

// TemplateStore holds the seeded copy of the habit catalog.
type TemplateStore interface {
	SeedTemplates(ctx context.Context, templates []models.HabitTemplate) error
	GetTemplates(ctx context.Context) ([]models.HabitTemplate, error)
}

// Provider is a complete storage backend.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	PlanStore
	CompletionStore
	ProfileStore
	TemplateStore

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by the SQL-backed providers.
type Migrator interface {
	// Migrate applies pending migrations and returns how many ran.
	Migrate(logFn func(string)) (int, error)
	SchemaVersion() (current, latest int, err error)
}

// Pinger is implemented by providers with a remote or file connection.
type Pinger interface {
	Ping(ctx context.Context) error
}
