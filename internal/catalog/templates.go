package catalog

import "github.com/julianstephens/levelup/internal/models"

// Categories
const (
	CategoryNutrition    = "nutrition"
	CategoryHydration    = "hydration"
	CategorySleep        = "sleep"
	CategoryFitness      = "fitness"
	CategoryMentalHealth = "mental health"
)

// Goal tags selected during onboarding
const (
	GoalEatHealthier = "eat-healthier"
	GoalHydrate      = "stay-hydrated"
	GoalSleepBetter  = "sleep-better"
	GoalGetFit       = "get-fit"
	GoalLoseWeight   = "lose-weight"
	GoalReduceStress = "reduce-stress"
	GoalMoreEnergy   = "more-energy"
)

func target(v float64) *float64 { return &v }

// builtinTemplates is the catalog shipped with the binary. Ids are stable: they are
// stored on plans and completions.
var builtinTemplates = []models.HabitTemplate{
	// Nutrition
	{ID: "habit_1", Title: "Eat a serving of fruit", Category: CategoryNutrition, Goals: []string{GoalEatHealthier, GoalMoreEnergy}, Difficulty: 10},
	{ID: "habit_2", Title: "Eat a home-cooked meal", Category: CategoryNutrition, Goals: []string{GoalEatHealthier, GoalLoseWeight}, Difficulty: 25},
	{ID: "habit_3", Title: "Eat vegetables with every meal", Category: CategoryNutrition, Goals: []string{GoalEatHealthier, GoalLoseWeight}, Difficulty: 40},
	{ID: "habit_4", Title: "Track all meals for the day", Category: CategoryNutrition, Goals: []string{GoalEatHealthier, GoalLoseWeight}, Difficulty: 55},
	{ID: "habit_5", Title: "Stay under a daily calorie target", Category: CategoryNutrition, Goals: []string{GoalLoseWeight}, Difficulty: 60, IsQuantitative: true, Unit: "kcal", TargetValue: target(2000)},
	{ID: "habit_6", Title: "No added sugar all day", Category: CategoryNutrition, Goals: []string{GoalEatHealthier, GoalLoseWeight, GoalMoreEnergy}, Difficulty: 75},

	// Hydration
	{ID: "habit_7", Title: "Drink a glass of water after waking", Category: CategoryHydration, Goals: []string{GoalHydrate, GoalMoreEnergy}, Difficulty: 5},
	{ID: "habit_8", Title: "Replace one soda with water", Category: CategoryHydration, Goals: []string{GoalHydrate, GoalLoseWeight}, Difficulty: 20},
	{ID: "habit_9", Title: "Drink 4 glasses of water", Category: CategoryHydration, Goals: []string{GoalHydrate}, Difficulty: 15, IsQuantitative: true, Unit: "glasses", TargetValue: target(4)},
	{ID: "habit_10", Title: "Drink 8 glasses of water", Category: CategoryHydration, Goals: []string{GoalHydrate, GoalMoreEnergy}, Difficulty: 35, IsQuantitative: true, Unit: "glasses", TargetValue: target(8)},
	{ID: "habit_11", Title: "Drink 3 liters of water", Category: CategoryHydration, Goals: []string{GoalHydrate, GoalGetFit}, Difficulty: 55, IsQuantitative: true, Unit: "liters", TargetValue: target(3)},

	// Sleep
	{ID: "habit_12", Title: "Go to bed before midnight", Category: CategorySleep, Goals: []string{GoalSleepBetter, GoalMoreEnergy}, Difficulty: 20},
	{ID: "habit_13", Title: "No screens 30 min before bed", Category: CategorySleep, Goals: []string{GoalSleepBetter, GoalReduceStress}, Difficulty: 40},
	{ID: "habit_14", Title: "Get 7+ hours of sleep", Category: CategorySleep, Goals: []string{GoalSleepBetter, GoalMoreEnergy}, Difficulty: 35, IsQuantitative: true, Unit: "hours", TargetValue: target(7)},
	{ID: "habit_15", Title: "Keep a fixed wake-up time", Category: CategorySleep, Goals: []string{GoalSleepBetter}, Difficulty: 60},
	{ID: "habit_16", Title: "No caffeine after 2pm", Category: CategorySleep, Goals: []string{GoalSleepBetter, GoalReduceStress}, Difficulty: 45},

	// Fitness
	{ID: "habit_17", Title: "Take a 15-minute walk", Category: CategoryFitness, Goals: []string{GoalGetFit, GoalLoseWeight, GoalReduceStress}, Difficulty: 15},
	{ID: "habit_18", Title: "Do 10 push-ups", Category: CategoryFitness, Goals: []string{GoalGetFit}, Difficulty: 25, IsQuantitative: true, Unit: "reps", TargetValue: target(10)},
	{ID: "habit_19", Title: "Walk 8,000 steps", Category: CategoryFitness, Goals: []string{GoalGetFit, GoalLoseWeight, GoalMoreEnergy}, Difficulty: 40, IsQuantitative: true, Unit: "steps", TargetValue: target(8000)},
	{ID: "habit_20", Title: "Complete a 30-min workout", Category: CategoryFitness, Goals: []string{GoalGetFit, GoalLoseWeight}, Difficulty: 65},
	{ID: "habit_21", Title: "Run 5 km", Category: CategoryFitness, Goals: []string{GoalGetFit, GoalLoseWeight}, Difficulty: 85, IsQuantitative: true, Unit: "km", TargetValue: target(5)},

	// Mental health
	{ID: "habit_22", Title: "Write 3 things you are grateful for", Category: CategoryMentalHealth, Goals: []string{GoalReduceStress}, Difficulty: 10},
	{ID: "habit_23", Title: "Meditate for 5 minutes", Category: CategoryMentalHealth, Goals: []string{GoalReduceStress, GoalSleepBetter}, Difficulty: 20, IsQuantitative: true, Unit: "minutes", TargetValue: target(5)},
	{ID: "habit_24", Title: "Journal for 10 minutes", Category: CategoryMentalHealth, Goals: []string{GoalReduceStress}, Difficulty: 35},
	{ID: "habit_25", Title: "Meditate for 20 minutes", Category: CategoryMentalHealth, Goals: []string{GoalReduceStress, GoalSleepBetter}, Difficulty: 55, IsQuantitative: true, Unit: "minutes", TargetValue: target(20)},
	{ID: "habit_26", Title: "Spend an hour offline", Category: CategoryMentalHealth, Goals: []string{GoalReduceStress, GoalMoreEnergy}, Difficulty: 50},
}

var defaultCatalog = MustNew(builtinTemplates)

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}
