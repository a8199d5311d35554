package constants

const (
	// EvalWindowDays is the number of calendar days (today included) the estimator looks back.
	EvalWindowDays = 5
	// MinDaysForEval is the minimum number of distinct days with completions before any evaluation.
	MinDaysForEval = 2
	// DismissCooldownDays is how long a dismissed suggestion suppresses new ones.
	DismissCooldownDays = 3

	// QuantitativeMultiplier scales the difficulty of measured habits.
	QuantitativeMultiplier = 1.3
	// FallbackDifficulty is used for habits that are missing from the catalog.
	FallbackDifficulty = 30.0
	// MaxDifficultyRatio caps the completed/plan difficulty ratio.
	MaxDifficultyRatio = 1.5

	// Performance score weights (sum to 100)
	CompletionWeight  = 50.0
	ConsistencyWeight = 30.0
	DifficultyWeight  = 20.0

	// Willpower blend between commitment baseline and performance (sum to 1.0)
	CommitmentBlend  = 0.25
	PerformanceBlend = 0.75

	// DefaultCommitmentBase is used when the commitment level is unset or unknown.
	DefaultCommitmentBase = 40

	// Decision thresholds
	DirectionMargin        = 20.0
	HarderCompletionRate   = 0.75
	EasierCompletionRate   = 0.4
	MaxSwapsPerSuggestion  = 2
	XPRewardBase           = 10
	XPRewardDifficultyRate = 0.4
)

func init() {
	if CompletionWeight+ConsistencyWeight+DifficultyWeight != 100 {
		panic("performance score weights must sum to 100")
	}
	if CommitmentBlend+PerformanceBlend != 1.0 {
		panic("CommitmentBlend and PerformanceBlend must sum to 1.0")
	}
}
