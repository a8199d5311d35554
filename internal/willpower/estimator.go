package willpower

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/levelup/internal/clock"
	"github.com/julianstephens/levelup/internal/constants"
	"github.com/julianstephens/levelup/internal/logger"
	"github.com/julianstephens/levelup/internal/models"
)

var commitmentBase = map[models.CommitmentLevel]int{
	models.CommitmentChill:     15,
	models.CommitmentCasual:    30,
	models.CommitmentSteady:    50,
	models.CommitmentDedicated: 70,
	models.CommitmentHardcore:  85,
}

// CommitmentBase returns the baseline willpower of a commitment tier.
func CommitmentBase(level models.CommitmentLevel) int {
	if base, ok := commitmentBase[level]; ok {
		return base
	}
	return constants.DefaultCommitmentBase
}

// Estimate is the outcome of one willpower evaluation.
type Estimate struct {
	Willpower        int     `json:"willpower"`
	PlanDifficulty   float64 `json:"plan_difficulty"`
	CompletionRate   float64 `json:"completion_rate"`
	ConsistencyRate  float64 `json:"consistency_rate"`
	DifficultyRatio  float64 `json:"difficulty_ratio"`
	PerformanceScore float64 `json:"performance_score"`
	DaysWithData     int     `json:"days_with_data"`
	Completions      int     `json:"completions"`

	ActiveHabits []models.ActiveHabit `json:"-"`
}

// Inputs is everything Score needs.
type Inputs struct {
	Habits      []models.ActiveHabit
	Completions []models.CompletionRecord
	Window      clock.Window
	Commitment  models.CommitmentLevel
}

// Score computes willpower from a plan and its completions. Completions outside
// the window are ignored.
func (m DifficultyModel) Score(in Inputs) (Estimate, error) {
	if len(in.Habits) == 0 {
		return Estimate{}, ErrNoActiveHabits
	}

	days := make(map[clock.Day]bool)
	var completed []models.CompletionRecord
	for _, c := range in.Completions {
		if !in.Window.Contains(c.CompletedAt) {
			continue
		}
		completed = append(completed, c)
		days[clock.DayOf(c.CompletedAt, in.Window.Loc)] = true
	}
	if len(days) < constants.MinDaysForEval {
		return Estimate{DaysWithData: len(days), Completions: len(completed)}, ErrInsufficientData
	}

	windowDays := float64(constants.EvalWindowDays)
	planDifficulty := m.PlanDifficulty(in.Habits)

	completionRate := math.Min(1, float64(len(completed))/(float64(len(in.Habits))*windowDays))
	consistencyRate := float64(len(days)) / windowDays

	difficultyRatio := 1.0
	if planDifficulty > 0 {
		var sum float64
		for _, c := range completed {
			sum += m.Effective(c.HabitID)
		}
		difficultyRatio = math.Min(constants.MaxDifficultyRatio, sum/float64(len(completed))/planDifficulty)
	}

	performance := completionRate*constants.CompletionWeight +
		consistencyRate*constants.ConsistencyWeight +
		math.Min(difficultyRatio, 1)*constants.DifficultyWeight
	performance = clamp(performance, 0, 100)

	base := float64(CommitmentBase(in.Commitment))
	willpower := int(math.Round(base*constants.CommitmentBlend + performance*constants.PerformanceBlend))

	return Estimate{
		Willpower:        int(clamp(float64(willpower), 0, 100)),
		PlanDifficulty:   planDifficulty,
		CompletionRate:   completionRate,
		ConsistencyRate:  consistencyRate,
		DifficultyRatio:  difficultyRatio,
		PerformanceScore: performance,
		DaysWithData:     len(days),
		Completions:      len(completed),
		ActiveHabits:     in.Habits,
	}, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Estimator recomputes and persists a user's willpower.
type Estimator struct {
	store Store
	model DifficultyModel
	opts  options
}

func NewEstimator(store Store, model DifficultyModel, opts ...Option) *Estimator {
	return &Estimator{store: store, model: model, opts: newOptions(opts)}
}

// Evaluate scores the user's last EvalWindowDays calendar days and stores the
// new willpower on the profile. ErrNoActiveHabits and ErrInsufficientData leave
// the profile untouched.
func (e *Estimator) Evaluate(ctx context.Context, userID string) (Estimate, error) {
	profile, err := e.store.GetProfile(ctx, userID)
	if err != nil {
		return Estimate{}, err
	}
	return e.evaluate(ctx, profile)
}

func (e *Estimator) evaluate(ctx context.Context, profile models.UserProfile) (Estimate, error) {
	loc := e.opts.locationFor(profile)
	window := clock.LastNDays(e.opts.clock.Now(), constants.EvalWindowDays, loc)

	var (
		habits      []models.ActiveHabit
		completions []models.CompletionRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		habits, err = e.store.GetActiveHabits(gctx, profile.UserID)
		if err != nil {
			return fmt.Errorf("failed to load active habits: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		completions, err = e.store.GetRecentCompletions(gctx, profile.UserID, window.Since())
		if err != nil {
			return fmt.Errorf("failed to load completions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Estimate{}, err
	}

	est, err := e.model.Score(Inputs{
		Habits:      habits,
		Completions: completions,
		Window:      window,
		Commitment:  profile.CommitmentLevel,
	})
	if err != nil {
		return est, err
	}

	if err := e.store.UpdateProfile(ctx, profile.UserID, models.ProfileUpdate{Willpower: &est.Willpower}); err != nil {
		return Estimate{}, fmt.Errorf("failed to save willpower: %w", err)
	}
	e.opts.metrics.RecordEstimate(est.Willpower, est.PlanDifficulty)
	logger.Debug("Willpower updated", "user", profile.UserID, "willpower", est.Willpower,
		"plan_difficulty", est.PlanDifficulty, "completion_rate", est.CompletionRate, "days", est.DaysWithData)
	return est, nil
}
