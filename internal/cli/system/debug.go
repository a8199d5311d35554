package system

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/levelup/internal/cli"
	"github.com/julianstephens/levelup/internal/tracker"
)

type DebugCmd struct {
	DBPath   DebugDBPathCmd   `cmd:"" name:"db-path" help:"Show database path."`
	Seed     DebugSeedCmd     `cmd:"" help:"Write a synthetic completion history and evaluate the plan."`
	Estimate DebugEstimateCmd `cmd:"" help:"Show the willpower estimate as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, map[string]string{"path": ctx.Store.GetConfigPath()})
}

type DebugSeedCmd struct {
	User    string `arg:"" help:"User id."`
	Pattern string `arg:"" enum:"struggling,crushing" help:"History to write: struggling or crushing."`
}

func (cmd *DebugSeedCmd) Run(ctx *cli.Context) error {
	pattern, err := tracker.ParsePattern(cmd.Pattern)
	if err != nil {
		return err
	}
	res, err := ctx.Tracker.Seed(context.Background(), cmd.User, pattern)
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	ctx.Printf("Seeded %d %s completions for %s\n", res.Seeded, res.Pattern, cmd.User)
	if res.Suggestion == nil {
		ctx.Println("No suggestion.")
		return nil
	}
	ctx.Println(cli.RenderSuggestion(*res.Suggestion))
	return nil
}

type DebugEstimateCmd struct {
	User string `arg:"" help:"User id."`
}

func (cmd *DebugEstimateCmd) Run(ctx *cli.Context) error {
	est, err := ctx.Engine.Estimator().Evaluate(context.Background(), cmd.User)
	if err != nil {
		return fmt.Errorf("failed to estimate willpower: %w", err)
	}
	return printJSON(ctx, est)
}

func printJSON(ctx *cli.Context, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(out))
	return nil
}
