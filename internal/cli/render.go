package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/levelup/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	harderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	easierStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	removeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	addStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

// RenderSuggestion formats a suggestion as a bordered card.
func RenderSuggestion(s models.Suggestion) string {
	var b strings.Builder

	heading := harderStyle.Render("Level up: time for a harder plan")
	if s.Direction == models.DirectionEasier {
		heading = easierStyle.Render("Ease off: time for a lighter plan")
	}
	b.WriteString(heading + "\n")
	b.WriteString(s.Reason + "\n\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("willpower %d · plan difficulty %.0f · completion %.0f%%",
		s.Willpower, s.PlanDifficulty, s.CompletionRate*100)))
	b.WriteString("\n")

	for _, sw := range s.Swaps {
		fmt.Fprintf(&b, "\n%s %s  →  %s %s",
			removeStyle.Render("-"), sw.Remove.Title,
			addStyle.Render("+"), sw.Add.Title)
	}
	for _, t := range s.ToAdd {
		fmt.Fprintf(&b, "\n%s %s", addStyle.Render("+"), t.Title)
	}
	for _, h := range s.ToRemove {
		fmt.Fprintf(&b, "\n%s %s", removeStyle.Render("-"), h.Title)
	}

	return boxStyle.Render(b.String())
}

// RenderPlan lists a user's active habits.
func RenderPlan(habits []models.ActiveHabit) string {
	if len(habits) == 0 {
		return mutedStyle.Render("No active habits.")
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Active habits (%d)", len(habits))))
	for _, h := range habits {
		line := fmt.Sprintf("%-28s %-14s %3d xp", h.Title, h.Category, h.XPReward)
		if h.IsQuantitative && h.TargetValue != nil {
			line += fmt.Sprintf("  target %g %s", *h.TargetValue, h.Unit)
		}
		fmt.Fprintf(&b, "\n  %s  %s", line, mutedStyle.Render(h.ID))
	}
	return b.String()
}

// RenderTemplates lists catalog entries.
func RenderTemplates(templates []models.HabitTemplate) string {
	if len(templates) == 0 {
		return mutedStyle.Render("No templates match.")
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Habit catalog (%d)", len(templates))))
	for _, t := range templates {
		fmt.Fprintf(&b, "\n  %-20s %-28s %-14s difficulty %3d  %s",
			t.ID, t.Title, t.Category, t.Difficulty, mutedStyle.Render(strings.Join(t.Goals, ", ")))
	}
	return b.String()
}

// RenderProfile summarises a user profile.
func RenderProfile(p models.UserProfile) string {
	name := p.DisplayName
	if name == "" {
		name = p.UserID
	}
	rows := []string{
		titleStyle.Render(name),
		fmt.Sprintf("id          %s", p.UserID),
		fmt.Sprintf("level       %d (%d xp)", p.Level, p.XP),
		fmt.Sprintf("streak      %d", p.Streak),
		fmt.Sprintf("willpower   %d", p.Willpower),
		fmt.Sprintf("commitment  %s", orDash(string(p.CommitmentLevel))),
		fmt.Sprintf("goals       %s", orDash(strings.Join(p.SelectedGoals, ", "))),
		fmt.Sprintf("timezone    %s", orDash(p.Timezone)),
	}
	if p.SuggestionDismissedAt != nil {
		rows = append(rows, fmt.Sprintf("dismissed   %s", p.SuggestionDismissedAt.Format("2006-01-02 15:04")))
	}
	return boxStyle.Render(strings.Join(rows, "\n"))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
