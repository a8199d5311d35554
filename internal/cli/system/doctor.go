package system

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/levelup/internal/cli"
	"github.com/julianstephens/levelup/internal/clock"
	"github.com/julianstephens/levelup/internal/constants"
	"github.com/julianstephens/levelup/internal/storage"
)

type DoctorCmd struct{}

type check struct {
	name    string
	needsDB bool
	// warn marks checks whose failure is reported but not fatal
	warn bool
	run  func(context.Context, *cli.Context) error
}

var checks = []check{
	{name: "Database reachable", run: checkDBReachable},
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Habit catalog seeded", needsDB: true, run: checkCatalogSeeded},
	{name: "Backups present", warn: true, run: checkBackupsPresent},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	bg := context.Background()
	hasError := false
	dbReachable := true

	for i, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(bg, ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warn:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if i == 0 {
				dbReachable = false
			}
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(bg context.Context, ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if p, ok := ctx.Store.(storage.Pinger); ok {
		if err := p.Ping(bg); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(_ context.Context, ctx *cli.Context) error {
	m, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return nil
	}
	current, latest, err := m.SchemaVersion()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("schema version %d is behind %d, run '%s migrate'", current, latest, constants.AppName)
	}
	if current > latest {
		return fmt.Errorf("schema version %d is newer than supported version %d, upgrade %s", current, latest, constants.AppName)
	}
	return nil
}

func checkCatalogSeeded(bg context.Context, ctx *cli.Context) error {
	stored, err := ctx.Store.GetTemplates(bg)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(stored))
	for _, t := range stored {
		have[t.ID] = true
	}
	missing := 0
	for _, t := range ctx.Catalog.All() {
		if !have[t.ID] {
			missing++
		}
	}
	if missing > 0 {
		return fmt.Errorf("%d of %d templates are missing, run '%s migrate'", missing, ctx.Catalog.Len(), constants.AppName)
	}
	return nil
}

func checkBackupsPresent(_ context.Context, ctx *cli.Context) error {
	if ctx.Backups == nil {
		return nil
	}
	backups, err := ctx.Backups.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s, run '%s backup create'", ctx.Backups.Dir(), constants.AppName)
	}
	return nil
}

func checkClockTimezone(_ context.Context, ctx *cli.Context) error {
	if tz := os.Getenv("TZ"); tz != "" {
		if _, err := clock.LoadLocation(tz); err != nil {
			return err
		}
	}
	if ctx.Clock.Now().Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", ctx.Clock.Now().Format(time.RFC3339))
	}
	return nil
}
