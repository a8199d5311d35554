package willpower

import (
	"github.com/julianstephens/levelup/internal/catalog"
	"github.com/julianstephens/levelup/internal/constants"
	"github.com/julianstephens/levelup/internal/models"
)

// DifficultyModel maps habit ids to difficulty scores. It never fails: habits
// missing from the catalog score FallbackDifficulty.
type DifficultyModel struct {
	catalog *catalog.Catalog
}

func NewDifficultyModel(c *catalog.Catalog) DifficultyModel {
	return DifficultyModel{catalog: c}
}

// Effective is the template difficulty, scaled up for quantitative habits.
func (m DifficultyModel) Effective(habitID string) float64 {
	t, ok := m.lookup(habitID)
	if !ok {
		return constants.FallbackDifficulty
	}
	return EffectiveOf(t)
}

// Raw is the unscaled template difficulty.
func (m DifficultyModel) Raw(habitID string) float64 {
	t, ok := m.lookup(habitID)
	if !ok {
		return constants.FallbackDifficulty
	}
	return float64(t.Difficulty)
}

// Category prefers the catalog's category over the denormalized copy on the plan entry.
func (m DifficultyModel) Category(h models.ActiveHabit) string {
	if t, ok := m.lookup(h.HabitID); ok {
		return t.Category
	}
	return h.Category
}

func (m DifficultyModel) lookup(habitID string) (models.HabitTemplate, bool) {
	if m.catalog == nil {
		return models.HabitTemplate{}, false
	}
	return m.catalog.Lookup(habitID)
}

// EffectiveOf scores a template directly.
func EffectiveOf(t models.HabitTemplate) float64 {
	d := float64(t.Difficulty)
	if t.IsQuantitative {
		d *= constants.QuantitativeMultiplier
	}
	return d
}

// PlanDifficulty is the mean effective difficulty of the plan, 0 for an empty plan.
func (m DifficultyModel) PlanDifficulty(habits []models.ActiveHabit) float64 {
	if len(habits) == 0 {
		return 0
	}
	var sum float64
	for _, h := range habits {
		sum += m.Effective(h.HabitID)
	}
	return sum / float64(len(habits))
}

func (m DifficultyModel) meanRaw(habits []models.ActiveHabit) float64 {
	if len(habits) == 0 {
		return 0
	}
	var sum float64
	for _, h := range habits {
		sum += m.Raw(h.HabitID)
	}
	return sum / float64(len(habits))
}
