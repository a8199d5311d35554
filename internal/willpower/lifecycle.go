package willpower

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/levelup/internal/catalog"
	apperrors "github.com/julianstephens/levelup/internal/errors"
	"github.com/julianstephens/levelup/internal/logger"
	"github.com/julianstephens/levelup/internal/models"
)

// Lifecycle applies accepted suggestions and records dismissals.
type Lifecycle struct {
	store   Store
	catalog *catalog.Catalog
	opts    options
}

func NewLifecycle(store Store, c *catalog.Catalog, opts ...Option) *Lifecycle {
	return &Lifecycle{store: store, catalog: c, opts: newOptions(opts)}
}

// Apply deactivates every habit the suggestion removes, activates every template
// it adds and clears the dismissal cooldown. Removals that are already gone from
// the plan are skipped so a retried Apply converges. If activation fails after
// the removals went through the user is left with a smaller plan.
func (l *Lifecycle) Apply(ctx context.Context, userID string, s models.Suggestion) error {
	if _, err := l.store.GetProfile(ctx, userID); err != nil {
		return err
	}

	plan, err := l.store.GetActiveHabits(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load active habits: %w", err)
	}
	inPlan := make(map[string]bool, len(plan))
	for _, h := range plan {
		inPlan[h.ID] = true
	}

	var removals []string
	seen := make(map[string]bool)
	for _, h := range s.Removals() {
		if h.UserID != "" && h.UserID != userID {
			return fmt.Errorf("%w: %w: %s", apperrors.ErrInvalidInput, ErrForeignHabit, h.ID)
		}
		if seen[h.ID] {
			continue
		}
		seen[h.ID] = true
		if !inPlan[h.ID] {
			logger.Debug("Skipping removal of inactive habit", "user", userID, "habit", h.ID)
			continue
		}
		removals = append(removals, h.ID)
	}

	// Re-read additions from the catalog so callers cannot alter template metadata.
	var additions []models.HabitTemplate
	added := make(map[string]bool)
	for _, t := range s.Additions() {
		if added[t.ID] {
			continue
		}
		tpl, ok := l.catalog.Lookup(t.ID)
		if !ok {
			return fmt.Errorf("%w: %w: %s", apperrors.ErrInvalidInput, ErrUnknownTemplate, t.ID)
		}
		added[t.ID] = true
		additions = append(additions, tpl)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range removals {
		g.Go(func() error {
			if err := l.store.DeactivateHabit(gctx, id); err != nil {
				return fmt.Errorf("failed to deactivate habit %s: %w", id, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if len(additions) > 0 {
		if err := l.store.ActivateHabits(ctx, userID, additions); err != nil {
			logger.Warn("Suggestion partially applied", "user", userID, "removed", len(removals), "error", err)
			return fmt.Errorf("failed to activate habits: %w", err)
		}
	}

	if err := l.store.UpdateProfile(ctx, userID, models.ProfileUpdate{ClearSuggestionDismissal: true}); err != nil {
		return fmt.Errorf("failed to clear dismissal: %w", err)
	}

	l.opts.metrics.RecordApplied(string(s.Direction))
	logger.Info("Suggestion applied", "user", userID, "direction", s.Direction,
		"removed", len(removals), "added", len(additions))
	return nil
}

// Dismiss starts the cooldown during which no new suggestion is made.
func (l *Lifecycle) Dismiss(ctx context.Context, userID string) error {
	now := l.opts.clock.Now()
	if err := l.store.UpdateProfile(ctx, userID, models.ProfileUpdate{SuggestionDismissedAt: &now}); err != nil {
		return fmt.Errorf("failed to dismiss suggestion: %w", err)
	}
	l.opts.metrics.RecordDismissal()
	logger.Info("Suggestion dismissed", "user", userID)
	return nil
}
