package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/appassoc/pkg/cli/config"
	"github.com/m-mizutani/appassoc/pkg/domain/types"
	"github.com/m-mizutani/appassoc/pkg/utils/ctxlog"
	"github.com/urfave/cli/v3"
)

// options holds writers used by the CLI
type options struct {
	out    io.Writer
	errOut io.Writer
}

// Option is a functional option for Run
type Option func(*options)

// WithWriter sets the writer for check results
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// WithErrWriter sets the writer for error messages
func WithErrWriter(w io.Writer) Option {
	return func(o *options) {
		o.errOut = w
	}
}

// Run runs the CLI application
func Run(ctx context.Context, args []string, opts ...Option) error {
	o := &options{
		out:    os.Stdout,
		errOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(o)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		loggerCfg config.Logger
		fileCfg   config.File
		clientCfg config.Client
		sentryCfg config.Sentry
		outputCfg config.Output
		logger    *slog.Logger
	)
	loggerCfg.Writer = o.errOut

	flags := append(loggerCfg.Flags(), fileCfg.Flags()...)
	flags = append(flags, clientCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)
	flags = append(flags, outputCfg.Flags()...)

	app := &cli.Command{
		Name:      "appassoc",
		Usage:     "Show the App Site Association and assetlinks.json of a domain",
		ArgsUsage: "<domain>",
		Version:   types.Version,
		Flags:     flags,
		Writer:    o.out,
		ErrWriter: o.errOut,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)

			file, err := fileCfg.Load()
			if err != nil {
				return nil, err
			}
			if err := clientCfg.Merge(c, &file.Client); err != nil {
				return nil, err
			}
			sentryCfg.Merge(c, &file.Sentry)

			if err := sentryCfg.Configure(); err != nil {
				return nil, err
			}

			logger.Debug("Configuration loaded",
				"client", clientCfg,
				"sentry", sentryCfg,
				"output", outputCfg,
			)

			return ctx, nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runCheck(ctx, c, &clientCfg, &outputCfg, o)
		},
		Commands: []*cli.Command{
			cmdServe(&clientCfg),
		},
	}

	err := app.Run(ctx, args)

	if sentryCfg.Enabled() {
		sentry.Flush(2 * time.Second)
	}

	if err != nil {
		// Step failures were already printed by the check itself
		if errors.Is(err, ErrCheckFailed) {
			return err
		}

		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}
