package willpower

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/levelup/internal/catalog"
	"github.com/julianstephens/levelup/internal/constants"
	"github.com/julianstephens/levelup/internal/logger"
	"github.com/julianstephens/levelup/internal/metrics"
	"github.com/julianstephens/levelup/internal/models"
)

const (
	ReasonHarder = "You've been crushing your goals consistently! Your current plan might be too easy for you."
	ReasonEasier = "We noticed you've been having a tough time keeping up. A lighter plan might help you build momentum."
)

// Decide applies the double threshold. ok is false when the user is in flow.
func Decide(willpower int, planDifficulty, completionRate float64) (dir models.Direction, ok bool) {
	w := float64(willpower)
	switch {
	case w >= planDifficulty+constants.DirectionMargin && completionRate >= constants.HarderCompletionRate:
		return models.DirectionHarder, true
	case w <= planDifficulty-constants.DirectionMargin && completionRate <= constants.EasierCompletionRate:
		return models.DirectionEasier, true
	}
	return "", false
}

// CooldownEnds returns when a dismissal stops suppressing suggestions.
func CooldownEnds(dismissedAt time.Time, loc *time.Location) time.Time {
	return dismissedAt.In(loc).AddDate(0, 0, constants.DismissCooldownDays)
}

// Engine decides whether a user's plan should change and builds the proposal.
type Engine struct {
	store     Store
	catalog   *catalog.Catalog
	model     DifficultyModel
	estimator *Estimator
	opts      options
}

func NewEngine(store Store, c *catalog.Catalog, opts ...Option) *Engine {
	model := NewDifficultyModel(c)
	return &Engine{
		store:     store,
		catalog:   c,
		model:     model,
		estimator: NewEstimator(store, model, opts...),
		opts:      newOptions(opts),
	}
}

func (e *Engine) Estimator() *Estimator {
	return e.estimator
}

func (e *Engine) Model() DifficultyModel {
	return e.model
}

// InCooldown reports whether a recent dismissal still blocks suggestions.
func (e *Engine) InCooldown(p models.UserProfile) bool {
	_, ok := e.CooldownUntil(p)
	return ok
}

// CooldownUntil returns when the active cooldown ends, if there is one.
func (e *Engine) CooldownUntil(p models.UserProfile) (time.Time, bool) {
	if p.SuggestionDismissedAt == nil {
		return time.Time{}, false
	}
	ends := CooldownEnds(*p.SuggestionDismissedAt, e.opts.locationFor(p))
	return ends, e.opts.clock.Now().Before(ends)
}

// EvaluatePlan refreshes the user's willpower and returns a suggestion, or nil
// when there is nothing to propose. Missing data, an active cooldown and the
// lack of viable candidates all yield nil without an error.
func (e *Engine) EvaluatePlan(ctx context.Context, userID string) (*models.Suggestion, error) {
	start := time.Now()
	s, outcome, err := e.evaluate(ctx, userID)
	if err != nil {
		outcome = metrics.OutcomeError
	}
	e.opts.metrics.RecordEvaluation(outcome, time.Since(start))
	logger.Debug("Plan evaluated", "user", userID, "outcome", outcome)
	return s, err
}

func (e *Engine) evaluate(ctx context.Context, userID string) (*models.Suggestion, string, error) {
	profile, err := e.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	if e.InCooldown(profile) {
		// willpower keeps tracking the user while suggestions are muted
		if _, err := e.estimator.evaluate(ctx, profile); err != nil && !isAbort(err) {
			return nil, "", err
		}
		return nil, metrics.OutcomeCooldown, nil
	}

	est, err := e.estimator.evaluate(ctx, profile)
	switch {
	case errors.Is(err, ErrNoActiveHabits):
		return nil, metrics.OutcomeNoHabits, nil
	case errors.Is(err, ErrInsufficientData):
		return nil, metrics.OutcomeInsufficient, nil
	case err != nil:
		return nil, "", err
	}

	dir, ok := Decide(est.Willpower, est.PlanDifficulty, est.CompletionRate)
	if !ok {
		return nil, metrics.OutcomeFlow, nil
	}

	s := e.build(dir, est.ActiveHabits, profile.SelectedGoals)
	if s.IsEmpty() {
		return nil, metrics.OutcomeNoCandidates, nil
	}
	s.Willpower = est.Willpower
	s.PlanDifficulty = est.PlanDifficulty
	s.CompletionRate = est.CompletionRate
	return s, string(dir), nil
}

// build constructs the plan change for a direction. The result may be empty.
func (e *Engine) build(dir models.Direction, plan []models.ActiveHabit, goals []string) *models.Suggestion {
	b := newBuilder(e.model, candidatePool(e.catalog, plan, goals))
	s := &models.Suggestion{
		Direction: dir,
		Swaps:     []models.Swap{},
		ToAdd:     []models.HabitTemplate{},
		ToRemove:  []models.ActiveHabit{},
	}

	switch dir {
	case models.DirectionHarder:
		s.Reason = ReasonHarder
		swaps, toAdd := b.harder(plan)
		s.Swaps = append(s.Swaps, swaps...)
		s.ToAdd = append(s.ToAdd, toAdd...)
	case models.DirectionEasier:
		s.Reason = ReasonEasier
		swaps, toRemove := b.easier(plan)
		s.Swaps = append(s.Swaps, swaps...)
		s.ToRemove = append(s.ToRemove, toRemove...)
	default:
		panic(fmt.Sprintf("unknown direction %q", dir))
	}
	return s
}

func isAbort(err error) bool {
	return errors.Is(err, ErrNoActiveHabits) || errors.Is(err, ErrInsufficientData)
}
