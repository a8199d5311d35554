package models

import "time"

// HabitTemplate is an immutable catalog entry shared by every user
type HabitTemplate struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Category       string   `json:"category"`
	Goals          []string `json:"goals"`
	Difficulty     int      `json:"difficulty"` // 0-100
	XPReward       int      `json:"xp_reward"`
	IsQuantitative bool     `json:"is_quantitative"`
	Unit           string   `json:"unit,omitempty"`
	TargetValue    *float64 `json:"target_value,omitempty"`
}

// HasAnyGoal reports whether the template serves at least one of the given goals.
func (t HabitTemplate) HasAnyGoal(goals []string) bool {
	for _, g := range t.Goals {
		for _, want := range goals {
			if g == want {
				return true
			}
		}
	}
	return false
}

// ActiveHabit is a template activated in one user's plan
type ActiveHabit struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	HabitID        string    `json:"habit_id"`
	Title          string    `json:"title"`
	Category       string    `json:"category"`
	XPReward       int       `json:"xp_reward"`
	IsQuantitative bool      `json:"is_quantitative"`
	Unit           string    `json:"unit,omitempty"`
	TargetValue    *float64  `json:"target_value,omitempty"`
	ActivatedAt    time.Time `json:"activated_at"`
}

// NewActiveHabit copies the template metadata onto a new plan entry.
func NewActiveHabit(id, userID string, t HabitTemplate, activatedAt time.Time) ActiveHabit {
	return ActiveHabit{
		ID:             id,
		UserID:         userID,
		HabitID:        t.ID,
		Title:          t.Title,
		Category:       t.Category,
		XPReward:       t.XPReward,
		IsQuantitative: t.IsQuantitative,
		Unit:           t.Unit,
		TargetValue:    t.TargetValue,
		ActivatedAt:    activatedAt,
	}
}

// CompletionRecord is an append-only log entry of a completed habit
type CompletionRecord struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	HabitID        string    `json:"habit_id"`
	XPAwarded      int       `json:"xp_awarded"`
	CompletedAt    time.Time `json:"completed_at"`
	CompletedValue *float64  `json:"completed_value,omitempty"`
}
