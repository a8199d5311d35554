package system

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/levelup/internal/cli"
	"github.com/julianstephens/levelup/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Address to listen on." default:":8080" env:"LEVELUP_ADDR"`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	srv := server.New(server.Deps{
		Store:     ctx.Store,
		Catalog:   ctx.Catalog,
		Engine:    ctx.Engine,
		Lifecycle: ctx.Lifecycle,
		Tracker:   ctx.Tracker,
		Metrics:   ctx.Metrics,
		Clock:     ctx.Clock,
	})

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.Printf("Serving on %s (Ctrl+C to stop)\n", c.Addr)
	return srv.Run(sigCtx, c.Addr)
}
