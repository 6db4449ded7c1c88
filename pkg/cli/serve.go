package cli

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/m-mizutani/appassoc/pkg/cli/config"
	controller "github.com/m-mizutani/appassoc/pkg/controller/http"
	"github.com/m-mizutani/appassoc/pkg/infra/wellknown"
	"github.com/m-mizutani/appassoc/pkg/usecase"
	"github.com/m-mizutani/appassoc/pkg/utils/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe(clientCfg *config.Client) *cli.Command {
	var serverCfg config.Server

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP API server",
		Flags:   serverCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting appassoc server",
				slog.String("addr", serverCfg.Addr),
			)

			clientOpts, err := clientCfg.Configure()
			if err != nil {
				return err
			}

			// Create use cases
			checkUC := usecase.NewCheck(wellknown.NewClient(clientOpts...))

			// Create HTTP server with options
			server, err := controller.NewServer(
				ctx,
				checkUC,
				controller.WithAddr(serverCfg.Addr),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case err := <-errCh:
				if err != nil {
					return goerr.Wrap(err, "HTTP server stopped unexpectedly", goerr.V("addr", serverCfg.Addr))
				}
			}

			// Graceful shutdown
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
