package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/bangs/internal/domain"
	"github.com/aalvaropc/bangs/internal/infra/redirectserver"
	"github.com/aalvaropc/bangs/internal/infra/settings"
	"github.com/aalvaropc/bangs/internal/infra/watcher"
	"github.com/aalvaropc/bangs/internal/usecase"
)

func serveCmd(flags *rootFlags) *cobra.Command {
	var addr string
	var fallback string
	var noWatch bool

	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve /search and /resolve over HTTP, reloading when stored data changes",
		Long: `Serve runs the resolver as a local search endpoint. Point the browser's
search engine at http://<addr>/search?q=%s: queries with a bang are redirected
to the bang's destination (extra destinations are listed in Link headers),
everything else goes to the fallback search template.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := loadReady(ctx, flags)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = app.settings.Addr
			}
			if !cmd.Flags().Changed("fallback") {
				fallback = app.settings.Fallback
			}

			resolver := usecase.NewResolveRequest(app.store, usecase.WithLogger(app.log))
			handler := redirectserver.New(resolver, fallback, redirectserver.WithLogger(app.log))

			if !noWatch {
				r := &reloader{app: app}
				w := watcher.New(app.dir, app.files, func([]string) { r.reload(ctx) }, watcher.WithLogger(app.log))
				go func() {
					if err := w.Run(ctx); err != nil {
						app.log.Warn("serve.watch_failed", "err", err)
					}
				}()
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Listening on http://%s (data dir %s)\n", addr, app.dir)
			return redirectserver.Serve(ctx, addr, handler, app.log)
		},
	}

	c.Flags().StringVar(&addr, "addr", settings.Default().Addr, "Listen address")
	c.Flags().StringVar(&fallback, "fallback", settings.Default().Fallback, "Search template used when no bang matches (empty disables)")
	c.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload when files in the data dir change")
	return c
}

// reloader re-runs bootstrap after another process changed stored data.
type reloader struct {
	mu  sync.Mutex
	app *appCtx
}

func (r *reloader) reload(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a := r.app
	s, err := settings.Load(a.dir)
	if err != nil && !domain.IsKind(err, domain.KindNotFound) {
		a.log.Warn("serve.settings_unreadable", "err", err)
	} else if s.Backend != a.manager.Active() {
		if err := a.manager.Use(s.Backend); err != nil {
			a.log.Warn("serve.backend_switch_failed", "backend", string(s.Backend), "err", err)
		}
	}

	res, err := usecase.NewBootstrap(a.manager, a.store, usecase.WithLogger(a.log)).Execute(ctx)
	if err != nil {
		a.log.Warn("serve.reload_failed", "kind", domain.KindOf(err), "err", err)
		return
	}
	a.log.Info("serve.reloaded", "source", string(res.Source), "backend", string(a.manager.Active()))
}
