package profiles

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/levelup/internal/cli"
	"github.com/julianstephens/levelup/internal/clock"
	apperrors "github.com/julianstephens/levelup/internal/errors"
	"github.com/julianstephens/levelup/internal/models"
	"github.com/julianstephens/levelup/internal/tracker"
)

type ProfileCreateCmd struct {
	User       string   `arg:"" help:"User id."`
	Name       string   `help:"Display name."`
	Commitment string   `help:"Commitment level (chill, casual, steady, dedicated, hardcore)." default:"steady"`
	Goals      []string `help:"Goals to pick suggestions from." sep:","`
	Timezone   string   `help:"IANA timezone the user's days are counted in."`
	Habits     []string `help:"Catalog template ids to start with." sep:","`
}

func (c *ProfileCreateCmd) Run(ctx *cli.Context) error {
	p, err := tracker.Onboard(context.Background(), ctx.Store, ctx.Catalog, ctx.Clock, tracker.Onboarding{
		UserID:          c.User,
		DisplayName:     c.Name,
		CommitmentLevel: c.Commitment,
		SelectedGoals:   c.Goals,
		Timezone:        c.Timezone,
		HabitIDs:        c.Habits,
	})
	if err != nil {
		return err
	}
	ctx.Printf("✓ Created profile %s with %d habit(s)\n", p.UserID, len(c.Habits))
	return nil
}

type ProfileShowCmd struct {
	User string `arg:"" help:"User id."`
	JSON bool   `help:"Print the raw profile as JSON."`
}

func (c *ProfileShowCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Store.GetProfile(context.Background(), c.User)
	if err != nil {
		return err
	}
	if c.JSON {
		out, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal profile: %w", err)
		}
		ctx.Println(string(out))
		return nil
	}

	ctx.Println(cli.RenderProfile(p))
	if ctx.Engine.InCooldown(p) {
		ctx.Println("Suggestions are paused after a recent dismissal.")
	}
	return nil
}

type ProfileSetCmd struct {
	User       string   `arg:"" help:"User id."`
	Name       *string  `help:"Display name."`
	Commitment *string  `help:"Commitment level (chill, casual, steady, dedicated, hardcore)."`
	Goals      []string `help:"Replace the selected goals." sep:","`
	ClearGoals bool     `help:"Remove every selected goal."`
	Timezone   *string  `help:"IANA timezone, empty for the default."`
}

func (c *ProfileSetCmd) Run(ctx *cli.Context) error {
	update, err := c.update(ctx)
	if err != nil {
		return err
	}
	if err := ctx.Store.UpdateProfile(context.Background(), c.User, update); err != nil {
		return err
	}
	ctx.Printf("✓ Updated profile %s\n", c.User)
	return nil
}

func (c *ProfileSetCmd) update(ctx *cli.Context) (models.ProfileUpdate, error) {
	var u models.ProfileUpdate
	u.DisplayName = c.Name
	if c.Commitment != nil {
		lvl, err := models.ParseCommitmentLevel(*c.Commitment)
		if err != nil {
			return u, apperrors.Invalidf("%v", err)
		}
		u.CommitmentLevel = &lvl
	}
	switch {
	case c.ClearGoals:
		u.SelectedGoals = []string{}
	case c.Goals != nil:
		if err := ctx.Catalog.ValidateGoals(c.Goals); err != nil {
			return u, err
		}
		u.SelectedGoals = c.Goals
	}
	if c.Timezone != nil {
		if *c.Timezone != "" {
			if _, err := clock.LoadLocation(*c.Timezone); err != nil {
				return u, apperrors.Invalidf("%v", err)
			}
		}
		u.Timezone = c.Timezone
	}
	if u.DisplayName == nil && u.CommitmentLevel == nil && u.SelectedGoals == nil && u.Timezone == nil {
		return u, apperrors.Invalidf("nothing to update")
	}
	return u, nil
}
