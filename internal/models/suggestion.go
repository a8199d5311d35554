package models

type Direction string

const (
	DirectionHarder Direction = "harder"
	DirectionEasier Direction = "easier"
)

// Swap replaces an active habit with a catalog template
type Swap struct {
	Remove ActiveHabit   `json:"remove"`
	Add    HabitTemplate `json:"add"`
}

// Suggestion is a proposed change to a user's plan. It is never persisted.
type Suggestion struct {
	Direction      Direction       `json:"direction"`
	Reason         string          `json:"reason"`
	Willpower      int             `json:"willpower"`
	PlanDifficulty float64         `json:"plan_difficulty"`
	CompletionRate float64         `json:"completion_rate"` // 0-1
	Swaps          []Swap          `json:"swaps"`
	ToAdd          []HabitTemplate `json:"to_add"`
	ToRemove       []ActiveHabit   `json:"to_remove"`
}

// Removals returns every active habit the suggestion takes out of the plan.
func (s Suggestion) Removals() []ActiveHabit {
	out := make([]ActiveHabit, 0, len(s.Swaps)+len(s.ToRemove))
	for _, sw := range s.Swaps {
		out = append(out, sw.Remove)
	}
	return append(out, s.ToRemove...)
}

// Additions returns every template the suggestion puts into the plan.
func (s Suggestion) Additions() []HabitTemplate {
	out := make([]HabitTemplate, 0, len(s.Swaps)+len(s.ToAdd))
	for _, sw := range s.Swaps {
		out = append(out, sw.Add)
	}
	return append(out, s.ToAdd...)
}

// IsEmpty reports whether the suggestion would change nothing.
func (s Suggestion) IsEmpty() bool {
	return len(s.Swaps) == 0 && len(s.ToAdd) == 0 && len(s.ToRemove) == 0
}
