package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommitmentLevel(t *testing.T) {
	for _, lvl := range CommitmentLevels {
		got, err := ParseCommitmentLevel(string(lvl))
		require.NoError(t, err)
		assert.Equal(t, lvl, got)
	}

	got, err := ParseCommitmentLevel("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ParseCommitmentLevel("Hardcore")
	assert.Error(t, err)
}

func TestProfileUpdateApply(t *testing.T) {
	dismissed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p := UserProfile{
		UserID:        "u1",
		DisplayName:   "old",
		Willpower:     50,
		SelectedGoals: []string{"get-fit"},
	}

	name := "new"
	wp := 72
	lvl := CommitmentDedicated
	goals := []string{"sleep-better"}
	ProfileUpdate{
		DisplayName:           &name,
		Willpower:             &wp,
		CommitmentLevel:       &lvl,
		SelectedGoals:         goals,
		SuggestionDismissedAt: &dismissed,
	}.Apply(&p)

	assert.Equal(t, "new", p.DisplayName)
	assert.Equal(t, 72, p.Willpower)
	assert.Equal(t, CommitmentDedicated, p.CommitmentLevel)
	assert.Equal(t, []string{"sleep-better"}, p.SelectedGoals)
	require.NotNil(t, p.SuggestionDismissedAt)
	assert.True(t, p.SuggestionDismissedAt.Equal(dismissed))

	// the update does not alias caller memory
	goals[0] = "mutated"
	dismissed = dismissed.Add(time.Hour)
	assert.Equal(t, "sleep-better", p.SelectedGoals[0])
	assert.Equal(t, 12, p.SuggestionDismissedAt.Hour())

	ProfileUpdate{}.Apply(&p)
	assert.Equal(t, "new", p.DisplayName)
	assert.NotNil(t, p.SuggestionDismissedAt)

	ProfileUpdate{ClearSuggestionDismissal: true, SuggestionDismissedAt: &dismissed}.Apply(&p)
	assert.Nil(t, p.SuggestionDismissedAt)
}

func TestSuggestionHelpers(t *testing.T) {
	s := Suggestion{
		Swaps: []Swap{
			{Remove: ActiveHabit{ID: "a1"}, Add: HabitTemplate{ID: "t2"}},
		},
		ToAdd:    []HabitTemplate{{ID: "t3"}},
		ToRemove: []ActiveHabit{{ID: "a4"}},
	}
	assert.False(t, s.IsEmpty())

	var removed []string
	for _, h := range s.Removals() {
		removed = append(removed, h.ID)
	}
	assert.Equal(t, []string{"a1", "a4"}, removed)

	var added []string
	for _, tpl := range s.Additions() {
		added = append(added, tpl.ID)
	}
	assert.Equal(t, []string{"t2", "t3"}, added)

	assert.True(t, Suggestion{}.IsEmpty())
}

func TestNewActiveHabitCopiesTemplate(t *testing.T) {
	target := 3.0
	tpl := HabitTemplate{ID: "habit_11", Title: "Drink 3 liters of water", Category: "hydration",
		XPReward: 21, IsQuantitative: true, Unit: "liters", TargetValue: &target}
	at := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	h := NewActiveHabit("a1", "u1", tpl, at)
	assert.Equal(t, "habit_11", h.HabitID)
	assert.Equal(t, "u1", h.UserID)
	assert.Equal(t, 21, h.XPReward)
	assert.Equal(t, "liters", h.Unit)
	assert.Equal(t, at, h.ActivatedAt)

	assert.False(t, tpl.HasAnyGoal(nil))
}
