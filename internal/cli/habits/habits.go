package habits

import (
	"context"
	"fmt"

	"github.com/julianstephens/levelup/internal/catalog"
	"github.com/julianstephens/levelup/internal/cli"
	apperrors "github.com/julianstephens/levelup/internal/errors"
	"github.com/julianstephens/levelup/internal/models"
)

type CatalogListCmd struct {
	Goal     []string `help:"Only templates serving one of these goals." sep:","`
	Category string   `help:"Only templates in this category."`
}

func (c *CatalogListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Catalog.ValidateGoals(c.Goal); err != nil {
		return err
	}
	templates := ctx.Catalog.Filter(catalog.Filter{Goals: c.Goal, Category: c.Category})
	ctx.Println(cli.RenderTemplates(templates))
	return nil
}

type HabitListCmd struct {
	User string `arg:"" help:"User id."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	plan, err := userPlan(ctx, c.User)
	if err != nil {
		return err
	}
	ctx.Println(cli.RenderPlan(plan))
	return nil
}

type HabitActivateCmd struct {
	User   string   `arg:"" help:"User id."`
	Habits []string `arg:"" help:"Catalog template ids to add to the plan."`
}

func (c *HabitActivateCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, err := ctx.Store.GetProfile(bg, c.User); err != nil {
		return err
	}
	templates, err := ctx.Catalog.LookupAll(c.Habits)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Store.ActivateHabits(bg, c.User, templates); err != nil {
		return fmt.Errorf("failed to activate habits: %w", err)
	}
	for _, t := range templates {
		ctx.Printf("✓ Activated %s\n", t.Title)
	}
	return nil
}

type HabitDeactivateCmd struct {
	User  string `arg:"" help:"User id."`
	Habit string `arg:"" help:"Active habit id or catalog template id."`
}

func (c *HabitDeactivateCmd) Run(ctx *cli.Context) error {
	plan, err := userPlan(ctx, c.User)
	if err != nil {
		return err
	}
	h, ok := findHabit(plan, c.Habit)
	if !ok {
		return apperrors.NotFoundf("habit %q in plan of %s", c.Habit, c.User)
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Store.DeactivateHabit(context.Background(), h.ID); err != nil {
		return fmt.Errorf("failed to deactivate habit: %w", err)
	}
	ctx.Printf("✓ Deactivated %s\n", h.Title)
	return nil
}

type CompleteCmd struct {
	User  string   `arg:"" help:"User id."`
	Habit string   `arg:"" help:"Active habit id or catalog template id."`
	Value *float64 `help:"Measured value for quantitative habits."`
}

func (c *CompleteCmd) Run(ctx *cli.Context) error {
	res, err := ctx.Tracker.CompleteHabit(context.Background(), c.User, c.Habit, c.Value)
	if err != nil {
		return err
	}

	name := res.Completion.HabitID
	if t, ok := ctx.Catalog.Lookup(name); ok {
		name = t.Title
	}
	ctx.Printf("✓ Completed %s (+%d xp)\n", name, res.Completion.XPAwarded)
	if res.Suggestion != nil {
		ctx.Println()
		ctx.Println(cli.RenderSuggestion(*res.Suggestion))
		ctx.Printf("Run 'levelup suggest %s --apply' to accept or '--dismiss' to skip it.\n", c.User)
	}
	return nil
}

func userPlan(ctx *cli.Context, userID string) ([]models.ActiveHabit, error) {
	bg := context.Background()
	if _, err := ctx.Store.GetProfile(bg, userID); err != nil {
		return nil, err
	}
	plan, err := ctx.Store.GetActiveHabits(bg, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load active habits: %w", err)
	}
	return plan, nil
}

func findHabit(plan []models.ActiveHabit, id string) (models.ActiveHabit, bool) {
	for _, h := range plan {
		if h.ID == id || h.HabitID == id {
			return h, true
		}
	}
	return models.ActiveHabit{}, false
}
