package suggestions

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/levelup/internal/cli"
	"github.com/julianstephens/levelup/internal/models"
)

type SuggestCmd struct {
	User        string `arg:"" help:"User id."`
	Apply       bool   `help:"Apply the suggestion to the plan." xor:"action"`
	Dismiss     bool   `help:"Dismiss the suggestion for a few days." xor:"action"`
	Interactive bool   `short:"i" help:"Ask whether to apply or dismiss." xor:"action"`
	JSON        bool   `help:"Print the suggestion as JSON."`
}

func (c *SuggestCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	s, err := ctx.Engine.EvaluatePlan(bg, c.User)
	if err != nil {
		return err
	}
	if s == nil {
		return c.explainNone(bg, ctx)
	}

	if c.JSON {
		out, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal suggestion: %w", err)
		}
		ctx.Println(string(out))
	} else {
		ctx.Println(cli.RenderSuggestion(*s))
	}

	switch {
	case c.Apply:
		return apply(bg, ctx, c.User, *s)
	case c.Dismiss:
		return dismiss(bg, ctx, c.User)
	case c.Interactive:
		ok, err := ctx.Confirm("Apply this suggestion?", "Choosing no pauses suggestions for a few days.")
		if err != nil {
			return err
		}
		if ok {
			return apply(bg, ctx, c.User, *s)
		}
		return dismiss(bg, ctx, c.User)
	}
	return nil
}

func (c *SuggestCmd) explainNone(bg context.Context, ctx *cli.Context) error {
	p, err := ctx.Store.GetProfile(bg, c.User)
	if err != nil {
		return err
	}
	if ends, ok := ctx.Engine.CooldownUntil(p); ok {
		ctx.Printf("No suggestion: paused until %s.\n", ends.Format("2006-01-02 15:04"))
		return nil
	}
	ctx.Println("No suggestion right now. Your plan fits your willpower.")
	return nil
}

func apply(bg context.Context, ctx *cli.Context, userID string, s models.Suggestion) error {
	ctx.PerformAutomaticBackup()
	if err := ctx.Lifecycle.Apply(bg, userID, s); err != nil {
		return fmt.Errorf("failed to apply suggestion: %w", err)
	}
	ctx.Printf("✓ Plan updated (%d removed, %d added)\n", len(s.Removals()), len(s.Additions()))
	return nil
}

func dismiss(bg context.Context, ctx *cli.Context, userID string) error {
	if err := ctx.Lifecycle.Dismiss(bg, userID); err != nil {
		return fmt.Errorf("failed to dismiss suggestion: %w", err)
	}
	ctx.Println("Suggestion dismissed. You will not get another one for a few days.")
	return nil
}

type DismissCmd struct {
	User string `arg:"" help:"User id."`
}

func (c *DismissCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, err := ctx.Store.GetProfile(bg, c.User); err != nil {
		return err
	}
	return dismiss(bg, ctx, c.User)
}
