package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/coach/internal/dashboard"
	"github.com/alexanderramin/coach/internal/server"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve assistant sessions over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config.Server
			if addr != "" {
				cfg.Addr = addr
			}
			srv, err := server.New(cfg, server.Deps{
				Factory:   app.Factory,
				Knowledge: app.Knowledge,
				Bus:       app.Bus,
				Logger:    app.logger(),
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, app, srv, cfg.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

// runServer blocks until ctx is cancelled or the listener fails.
func runServer(ctx context.Context, app *App, srv *server.Server, addr string) error {
	logger := app.logger()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Listen(); err != nil {
			return fmt.Errorf("listening on %s: %w", addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		logger.Info("server stopped", zap.String("addr", addr))
		return nil
	})

	if app.Bus != nil {
		dash := dashboard.New(app.Stats, app.Store, logger)
		g.Go(func() error {
			return dash.Run(gctx, app.Bus)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
