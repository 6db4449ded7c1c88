package config

import (
	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/appassoc/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const (
	flagSentryDSN = "sentry-dsn"
	flagSentryEnv = "sentry-env"
)

// Sentry holds error reporting configuration
type Sentry struct {
	DSN string `masq:"secret"`
	Env string
}

// Flags returns CLI flags for Sentry configuration
func (c *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        flagSentryDSN,
			Usage:       "Sentry DSN for error reporting",
			Destination: &c.DSN,
			Sources:     cli.EnvVars("APPASSOC_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        flagSentryEnv,
			Usage:       "Sentry environment",
			Value:       "production",
			Destination: &c.Env,
			Sources:     cli.EnvVars("APPASSOC_SENTRY_ENV"),
		},
	}
}

// Merge fills values from a config file for every flag that was not set explicitly
func (c *Sentry) Merge(cmd *cli.Command, file *FileSentry) {
	if file == nil {
		return
	}
	if file.DSN != "" && !cmd.IsSet(flagSentryDSN) {
		c.DSN = file.DSN
	}
	if file.Env != "" && !cmd.IsSet(flagSentryEnv) {
		c.Env = file.Env
	}
}

// Enabled reports whether a DSN is configured
func (c *Sentry) Enabled() bool {
	return c.DSN != ""
}

// Configure initializes the global Sentry client. It does nothing without a DSN.
func (c *Sentry) Configure() error {
	if !c.Enabled() {
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         c.DSN,
		Environment: c.Env,
		Release:     "appassoc@" + types.Version,
	}); err != nil {
		return goerr.Wrap(err, "failed to initialize Sentry", goerr.V("env", c.Env))
	}

	return nil
}
