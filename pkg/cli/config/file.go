package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// File holds the path of an optional TOML config file
type File struct {
	Path string
}

// FileConfig is the content of the TOML config file
type FileConfig struct {
	Client FileClient `toml:"client"`
	Sentry FileSentry `toml:"sentry"`
}

// FileClient is the [client] table of the config file
type FileClient struct {
	Timeout               string            `toml:"timeout"`
	Headers               map[string]string `toml:"headers" masq:"secret"`
	AppSiteAssociationURL string            `toml:"app_site_association_url"`
	AssetLinksURL         string            `toml:"assetlinks_url"`
}

// FileSentry is the [sentry] table of the config file
type FileSentry struct {
	DSN string `toml:"dsn" masq:"secret"`
	Env string `toml:"env"`
}

// Flags returns CLI flags for the config file
func (c *File) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to a TOML config file",
			Destination: &c.Path,
			Sources:     cli.EnvVars("APPASSOC_CONFIG"),
		},
	}
}

// Load reads the config file. It returns an empty config when no path is set.
func (c *File) Load() (*FileConfig, error) {
	var cfg FileConfig
	if c.Path == "" {
		return &cfg, nil
	}

	fd, err := os.Open(c.Path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open config file", goerr.V("path", c.Path))
	}
	defer fd.Close()

	if err := toml.NewDecoder(fd).DisallowUnknownFields().Decode(&cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to decode config file", goerr.V("path", c.Path))
	}

	return &cfg, nil
}
