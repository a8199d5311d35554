// Package catalog holds the fixed registry of habit templates users pick their plans from.
package catalog

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/julianstephens/levelup/internal/constants"
	apperrors "github.com/julianstephens/levelup/internal/errors"
	"github.com/julianstephens/levelup/internal/models"
)

// Catalog is an immutable, ordered set of habit templates. Safe for concurrent reads.
type Catalog struct {
	templates []models.HabitTemplate
	byID      map[string]models.HabitTemplate
}

// Filter narrows a catalog listing. Zero values match everything.
type Filter struct {
	Goals      []string        // at least one goal must match
	Category   string          // exact category
	ExcludeIDs map[string]bool // template ids to skip
}

// XPRewardFor derives the XP reward of a template from its difficulty.
func XPRewardFor(difficulty int) int {
	return constants.XPRewardBase + int(math.Round(float64(difficulty)*constants.XPRewardDifficultyRate))
}

// New validates the templates and builds a catalog. Missing XP rewards are derived from difficulty.
func New(templates []models.HabitTemplate) (*Catalog, error) {
	c := &Catalog{
		templates: make([]models.HabitTemplate, 0, len(templates)),
		byID:      make(map[string]models.HabitTemplate, len(templates)),
	}
	for _, t := range templates {
		if t.ID == "" {
			return nil, fmt.Errorf("template %q has no id", t.Title)
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate template id %q", t.ID)
		}
		if t.Difficulty < 0 || t.Difficulty > 100 {
			return nil, fmt.Errorf("template %q: difficulty %d out of range 0-100", t.ID, t.Difficulty)
		}
		if t.XPReward == 0 {
			t.XPReward = XPRewardFor(t.Difficulty)
		}
		t.Goals = append([]string(nil), t.Goals...)
		c.templates = append(c.templates, t)
		c.byID[t.ID] = t
	}
	return c, nil
}

// MustNew is New for statically known template sets.
func MustNew(templates []models.HabitTemplate) *Catalog {
	c, err := New(templates)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the template with the given id.
func (c *Catalog) Lookup(id string) (models.HabitTemplate, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// LookupAll resolves ids in order. Unknown ids are an input error.
func (c *Catalog) LookupAll(ids []string) ([]models.HabitTemplate, error) {
	out := make([]models.HabitTemplate, 0, len(ids))
	for _, id := range ids {
		t, ok := c.byID[id]
		if !ok {
			return nil, apperrors.Invalidf("unknown habit %q", id)
		}
		out = append(out, t)
	}
	return out, nil
}

// ValidateGoals rejects goal tags that no template serves.
func (c *Catalog) ValidateGoals(goals []string) error {
	known := make(map[string]bool)
	for _, t := range c.templates {
		for _, g := range t.Goals {
			known[g] = true
		}
	}
	for _, g := range goals {
		if !known[g] {
			return apperrors.Invalidf("unknown goal %q", g)
		}
	}
	return nil
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	return len(c.templates)
}

// All returns every template in catalog order.
func (c *Catalog) All() []models.HabitTemplate {
	return append([]models.HabitTemplate(nil), c.templates...)
}

// Filter returns the templates matching f, in catalog order.
func (c *Catalog) Filter(f Filter) []models.HabitTemplate {
	var out []models.HabitTemplate
	for _, t := range c.templates {
		if f.ExcludeIDs[t.ID] {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if len(f.Goals) > 0 && !t.HasAnyGoal(f.Goals) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Goals returns the distinct goal tags used by the catalog, sorted.
func (c *Catalog) Goals() []string {
	seen := make(map[string]bool)
	for _, t := range c.templates {
		for _, g := range t.Goals {
			seen[g] = true
		}
	}
	return sortedKeys(seen)
}

// Categories returns the distinct categories, sorted.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	for _, t := range c.templates {
		seen[t.Category] = true
	}
	return sortedKeys(seen)
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// TemplateSeeder persists catalog templates.
type TemplateSeeder interface {
	SeedTemplates(ctx context.Context, templates []models.HabitTemplate) error
}

// Seed writes the catalog into storage. Stores ignore templates that already exist.
func Seed(ctx context.Context, store TemplateSeeder, c *Catalog) error {
	if err := store.SeedTemplates(ctx, c.All()); err != nil {
		return fmt.Errorf("failed to seed habit templates: %w", err)
	}
	return nil
}
