package cli

import (
	"context"
	"errors"

	"github.com/fatih/color"
	"github.com/m-mizutani/appassoc/pkg/cli/config"
	"github.com/m-mizutani/appassoc/pkg/controller/console"
	"github.com/m-mizutani/appassoc/pkg/domain/model"
	"github.com/m-mizutani/appassoc/pkg/infra/wellknown"
	"github.com/m-mizutani/appassoc/pkg/usecase"
	"github.com/m-mizutani/appassoc/pkg/utils/ctxlog"
	"github.com/m-mizutani/appassoc/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// ErrCheckFailed is returned when at least one step of a domain check failed
var ErrCheckFailed = errors.New("domain check failed")

func runCheck(ctx context.Context, c *cli.Command, clientCfg *config.Client, outputCfg *config.Output, o *options) error {
	logger := ctxlog.From(ctx)

	if c.Args().Len() != 1 {
		return goerr.New("exactly one domain argument is required", goerr.V("args", c.Args().Slice()))
	}

	query := &model.DomainQuery{
		Domain: c.Args().First(),
		Format: outputCfg.Format(),
	}
	if err := query.Validate(); err != nil {
		return err
	}

	clientOpts, err := clientCfg.Configure()
	if err != nil {
		return err
	}

	checkUC := usecase.NewCheck(wellknown.NewClient(clientOpts...))

	logger.Info("Checking domain", "domain", query.Domain, "format", query.Format)
	report := checkUC.Check(ctx, query.Domain)

	// The printer shows step errors on stderr, so they are only logged at debug level here
	for _, stepErr := range []error{report.AppSiteAssociationErr, report.AssetLinksErr} {
		if stepErr != nil && !errutil.IsFetchError(stepErr) {
			logger.Debug("Unexpected error in domain check", "error", stepErr)
			errutil.Capture(ctx, stepErr)
		}
	}

	printer := console.NewPrinter(query.Format,
		console.WithWriter(o.out),
		console.WithErrWriter(o.errOut),
		console.WithColor(!outputCfg.NoColor && !color.NoColor),
	)
	if err := printer.Report(report); err != nil {
		return goerr.Wrap(err, "failed to print report", goerr.V("domain", query.Domain))
	}

	if report.Failed() {
		return goerr.Wrap(ErrCheckFailed, "one or more steps failed",
			goerr.V("domain", query.Domain),
			goerr.V("check_id", report.ID),
		)
	}

	return nil
}
