package config

import (
	"maps"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/m-mizutani/appassoc/pkg/infra/wellknown"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const (
	flagTimeout               = "timeout"
	flagHeader                = "header"
	flagAppSiteAssociationURL = "app-site-association-url"
	flagAssetLinksURL         = "assetlinks-url"
)

// Client holds configuration of the well-known endpoints client
type Client struct {
	Timeout               time.Duration
	Headers               []string `masq:"secret"`
	AppSiteAssociationURL string
	AssetLinksURL         string
}

// Flags returns CLI flags for client configuration
func (c *Client) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        flagTimeout,
			Usage:       "Timeout of each HTTP request (0 disables the timeout)",
			Value:       30 * time.Second,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("APPASSOC_TIMEOUT"),
		},
		&cli.StringSliceFlag{
			Name:        flagHeader,
			Aliases:     []string{"H"},
			Usage:       "Extra request header in 'Key: Value' form, can be repeated",
			Destination: &c.Headers,
			Sources:     cli.EnvVars("APPASSOC_HEADER"),
		},
		&cli.StringFlag{
			Name:        flagAppSiteAssociationURL,
			Usage:       "App Site Association URL template, {domain} is replaced by the checked domain",
			Value:       wellknown.DefaultAppSiteAssociationURL,
			Destination: &c.AppSiteAssociationURL,
			Sources:     cli.EnvVars("APPASSOC_APP_SITE_ASSOCIATION_URL"),
		},
		&cli.StringFlag{
			Name:        flagAssetLinksURL,
			Usage:       "assetlinks.json URL template, {domain} is replaced by the checked domain",
			Value:       wellknown.DefaultAssetLinksURL,
			Destination: &c.AssetLinksURL,
			Sources:     cli.EnvVars("APPASSOC_ASSETLINKS_URL"),
		},
	}
}

// Merge fills values from a config file for every flag that was not set explicitly
func (c *Client) Merge(cmd *cli.Command, file *FileClient) error {
	if file == nil {
		return nil
	}

	if file.Timeout != "" && !cmd.IsSet(flagTimeout) {
		timeout, err := time.ParseDuration(file.Timeout)
		if err != nil {
			return goerr.Wrap(err, "invalid timeout in config file", goerr.V("timeout", file.Timeout))
		}
		c.Timeout = timeout
	}

	if !cmd.IsSet(flagHeader) {
		for _, key := range slices.Sorted(maps.Keys(file.Headers)) {
			c.Headers = append(c.Headers, key+": "+file.Headers[key])
		}
	}

	if file.AppSiteAssociationURL != "" && !cmd.IsSet(flagAppSiteAssociationURL) {
		c.AppSiteAssociationURL = file.AppSiteAssociationURL
	}

	if file.AssetLinksURL != "" && !cmd.IsSet(flagAssetLinksURL) {
		c.AssetLinksURL = file.AssetLinksURL
	}

	return nil
}

// Configure builds the options of the well-known client. One *http.Client is
// shared by every request so that connections are reused.
func (c *Client) Configure() ([]wellknown.Option, error) {
	opts := []wellknown.Option{
		wellknown.WithHTTPClient(&http.Client{Timeout: c.Timeout}),
	}

	if c.AppSiteAssociationURL != "" {
		opts = append(opts, wellknown.WithAppSiteAssociationURL(c.AppSiteAssociationURL))
	}
	if c.AssetLinksURL != "" {
		opts = append(opts, wellknown.WithAssetLinksURL(c.AssetLinksURL))
	}

	for _, header := range c.Headers {
		key, value, ok := strings.Cut(header, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, goerr.New("header must be in 'Key: Value' form", goerr.V("header", header))
		}
		opts = append(opts, wellknown.WithHeader(key, strings.TrimSpace(value)))
	}

	return opts, nil
}
