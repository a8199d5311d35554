package models

import (
	"fmt"
	"time"
)

type CommitmentLevel string

const (
	CommitmentChill     CommitmentLevel = "chill"
	CommitmentCasual    CommitmentLevel = "casual"
	CommitmentSteady    CommitmentLevel = "steady"
	CommitmentDedicated CommitmentLevel = "dedicated"
	CommitmentHardcore  CommitmentLevel = "hardcore"
)

// CommitmentLevels lists the known tiers from lowest to highest
var CommitmentLevels = []CommitmentLevel{
	CommitmentChill,
	CommitmentCasual,
	CommitmentSteady,
	CommitmentDedicated,
	CommitmentHardcore,
}

// ParseCommitmentLevel validates a commitment tag. The empty string is accepted as "unset".
func ParseCommitmentLevel(s string) (CommitmentLevel, error) {
	if s == "" {
		return "", nil
	}
	for _, lvl := range CommitmentLevels {
		if string(lvl) == s {
			return lvl, nil
		}
	}
	return "", fmt.Errorf("unknown commitment level %q", s)
}

// UserProfile holds the per-user state the engine reads and writes
type UserProfile struct {
	UserID                string          `json:"user_id"`
	DisplayName           string          `json:"display_name,omitempty"`
	XP                    int             `json:"xp"`
	Level                 int             `json:"level"`
	Streak                int             `json:"streak"`
	CommitmentLevel       CommitmentLevel `json:"commitment_level,omitempty"`
	Willpower             int             `json:"willpower"`
	SuggestionDismissedAt *time.Time      `json:"suggestion_dismissed_at,omitempty"`
	SelectedGoals         []string        `json:"selected_goals"`
	Timezone              string          `json:"timezone,omitempty"` // IANA name, empty for the engine default
	CreatedAt             time.Time       `json:"created_at"`
}

// ProfileUpdate is a partial profile write. Nil fields are left unchanged.
type ProfileUpdate struct {
	DisplayName              *string
	Willpower                *int
	CommitmentLevel          *CommitmentLevel
	SelectedGoals            []string
	Timezone                 *string
	SuggestionDismissedAt    *time.Time
	ClearSuggestionDismissal bool
}

// Apply writes the set fields onto p.
func (u ProfileUpdate) Apply(p *UserProfile) {
	if u.DisplayName != nil {
		p.DisplayName = *u.DisplayName
	}
	if u.Willpower != nil {
		p.Willpower = *u.Willpower
	}
	if u.CommitmentLevel != nil {
		p.CommitmentLevel = *u.CommitmentLevel
	}
	if u.SelectedGoals != nil {
		p.SelectedGoals = append([]string(nil), u.SelectedGoals...)
	}
	if u.Timezone != nil {
		p.Timezone = *u.Timezone
	}
	if u.ClearSuggestionDismissal {
		p.SuggestionDismissedAt = nil
	} else if u.SuggestionDismissedAt != nil {
		t := *u.SuggestionDismissedAt
		p.SuggestionDismissedAt = &t
	}
}
