package willpower

import (
	"sort"

	"github.com/julianstephens/levelup/internal/catalog"
	"github.com/julianstephens/levelup/internal/constants"
	"github.com/julianstephens/levelup/internal/models"
)

// builder assembles one suggestion. Templates already proposed are tracked in
// reserved instead of being removed from the pool.
type builder struct {
	model    DifficultyModel
	pool     []models.HabitTemplate
	reserved map[string]bool
}

// candidatePool returns catalog templates that are not in the plan and serve
// at least one of the user's goals. A user without goals has no candidates.
func candidatePool(c *catalog.Catalog, plan []models.ActiveHabit, goals []string) []models.HabitTemplate {
	if c == nil || len(goals) == 0 {
		return nil
	}
	active := make(map[string]bool, len(plan))
	for _, h := range plan {
		active[h.HabitID] = true
	}
	return c.Filter(catalog.Filter{Goals: goals, ExcludeIDs: active})
}

func newBuilder(model DifficultyModel, pool []models.HabitTemplate) *builder {
	return &builder{model: model, pool: pool, reserved: make(map[string]bool)}
}

// available reports whether any pool template is still unreserved.
func (b *builder) available() bool {
	for _, t := range b.pool {
		if !b.reserved[t.ID] {
			return true
		}
	}
	return false
}

// pick returns the first unreserved template accepted by keep that no later
// template beats under better. Ties go to catalog order.
func (b *builder) pick(keep func(models.HabitTemplate) bool, better func(a, b models.HabitTemplate) bool) (models.HabitTemplate, bool) {
	var best models.HabitTemplate
	found := false
	for _, t := range b.pool {
		if b.reserved[t.ID] || !keep(t) {
			continue
		}
		if !found || better(t, best) {
			best, found = t, true
		}
	}
	if found {
		b.reserved[best.ID] = true
	}
	return best, found
}

// sortedPlan orders the plan by effective difficulty; ties keep plan order.
func (b *builder) sortedPlan(plan []models.ActiveHabit, ascending bool) []models.ActiveHabit {
	sorted := append([]models.ActiveHabit(nil), plan...)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := b.model.Effective(sorted[i].HabitID), b.model.Effective(sorted[j].HabitID)
		if ascending {
			return di < dj
		}
		return di > dj
	})
	return sorted
}

func firstN(plan []models.ActiveHabit, n int) []models.ActiveHabit {
	if len(plan) > n {
		return plan[:n]
	}
	return plan
}

// harder swaps the easiest habits for the next step up in their category, or
// failing that proposes one addition at or above the plan's mean difficulty.
func (b *builder) harder(plan []models.ActiveHabit) (swaps []models.Swap, toAdd []models.HabitTemplate) {
	for _, h := range firstN(b.sortedPlan(plan, true), constants.MaxSwapsPerSuggestion) {
		current := b.model.Effective(h.HabitID)
		category := b.model.Category(h)
		next, ok := b.pick(
			func(t models.HabitTemplate) bool {
				return t.Category == category && EffectiveOf(t) > current
			},
			func(a, c models.HabitTemplate) bool { return EffectiveOf(a) < EffectiveOf(c) },
		)
		if ok {
			swaps = append(swaps, models.Swap{Remove: h, Add: next})
		}
	}

	if len(swaps) == 0 && b.available() {
		floor := b.model.meanRaw(plan)
		if t, ok := b.pick(
			func(t models.HabitTemplate) bool { return float64(t.Difficulty) >= floor },
			func(a, c models.HabitTemplate) bool { return a.Difficulty < c.Difficulty },
		); ok {
			toAdd = append(toAdd, t)
		}
	}
	return swaps, toAdd
}

// easier swaps the hardest habits for the closest easier habit in their
// category, or drops them when the category has nothing easier.
func (b *builder) easier(plan []models.ActiveHabit) (swaps []models.Swap, toRemove []models.ActiveHabit) {
	for _, h := range firstN(b.sortedPlan(plan, false), constants.MaxSwapsPerSuggestion) {
		current := b.model.Effective(h.HabitID)
		category := b.model.Category(h)
		prev, ok := b.pick(
			func(t models.HabitTemplate) bool {
				return t.Category == category && EffectiveOf(t) < current
			},
			func(a, c models.HabitTemplate) bool { return EffectiveOf(a) > EffectiveOf(c) },
		)
		if ok {
			swaps = append(swaps, models.Swap{Remove: h, Add: prev})
		} else {
			toRemove = append(toRemove, h)
		}
	}
	return swaps, toRemove
}
