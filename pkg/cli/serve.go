package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/workshopsize/pkg/cli/config"
	controller "github.com/m-mizutani/workshopsize/pkg/controller/http"
	"github.com/m-mizutani/workshopsize/pkg/usecase"
	"github.com/m-mizutani/workshopsize/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe(steamCfg *config.Steam) *cli.Command {
	var serverCfg config.Server

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serve collection sizes over HTTP",
		Flags:   serverCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.From(ctx)

			client, err := steamCfg.NewClient()
			if err != nil {
				return goerr.Wrap(err, "failed to create steam client")
			}

			collectionUC := usecase.NewCollection(client, usecase.WithSortBySize(true))

			server, err := controller.NewServer(
				ctx,
				collectionUC,
				controller.WithAddr(serverCfg.Addr),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			// main cancels ctx on SIGINT/SIGTERM
			select {
			case err := <-errCh:
				return goerr.Wrap(err, "failed to start HTTP server", goerr.V("addr", serverCfg.Addr))
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
