package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/levelup/internal/backup"
	"github.com/julianstephens/levelup/internal/catalog"
	"github.com/julianstephens/levelup/internal/clock"
	"github.com/julianstephens/levelup/internal/logger"
	"github.com/julianstephens/levelup/internal/metrics"
	"github.com/julianstephens/levelup/internal/storage"
	"github.com/julianstephens/levelup/internal/storage/sqlite"
	"github.com/julianstephens/levelup/internal/tracker"
	"github.com/julianstephens/levelup/internal/willpower"
)

// ConfirmFunc asks the user a yes/no question
type ConfirmFunc func(title, description string) (bool, error)

type Context struct {
	Store     storage.Provider
	Catalog   *catalog.Catalog
	Engine    *willpower.Engine
	Lifecycle *willpower.Lifecycle
	Tracker   *tracker.Tracker
	Metrics   *metrics.Metrics
	Clock     clock.Clock
	// Backups is nil unless the store is a local sqlite file
	Backups *backup.Manager
	Out     io.Writer
	Confirm ConfirmFunc
}

// Options customise NewContext. Zero values pick the production defaults.
type Options struct {
	Catalog  *catalog.Catalog
	Clock    clock.Clock
	Location *time.Location
	Metrics  *metrics.Metrics
	Out      io.Writer
	Confirm  ConfirmFunc
}

// NewContext wires the engine, lifecycle manager and tracker around store.
func NewContext(store storage.Provider, opts Options) *Context {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Clock == nil {
		opts.Clock = clock.System
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New(metrics.DefaultConfig())
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Confirm == nil {
		opts.Confirm = HuhConfirm
	}

	wopts := []willpower.Option{
		willpower.WithClock(opts.Clock),
		willpower.WithLocation(opts.Location),
		willpower.WithMetrics(opts.Metrics),
	}
	engine := willpower.NewEngine(store, opts.Catalog, wopts...)

	ctx := &Context{
		Store:     store,
		Catalog:   opts.Catalog,
		Engine:    engine,
		Lifecycle: willpower.NewLifecycle(store, opts.Catalog, wopts...),
		Tracker: tracker.New(store, engine,
			tracker.WithClock(opts.Clock),
			tracker.WithLocation(opts.Location),
			tracker.WithMetrics(opts.Metrics),
		),
		Metrics: opts.Metrics,
		Clock:   opts.Clock,
		Out:     opts.Out,
		Confirm: opts.Confirm,
	}
	if s, ok := store.(*sqlite.Store); ok {
		ctx.Backups = backup.NewManager(s.GetConfigPath(), backup.WithClock(opts.Clock))
	}
	return ctx
}

// PerformAutomaticBackup snapshots the database before a plan mutation.
// Failures are logged and never interrupt the command.
func (c *Context) PerformAutomaticBackup() {
	if c.Backups == nil {
		return
	}
	if _, err := c.Backups.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}
