package config

import (
	"github.com/m-mizutani/appassoc/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Output holds console output configuration
type Output struct {
	JSON    bool
	NoColor bool
}

// Flags returns CLI flags for output configuration
func (c *Output) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Output in JSON format",
			Destination: &c.JSON,
		},
		&cli.BoolFlag{
			Name:        "no-color",
			Usage:       "Disable colored output",
			Destination: &c.NoColor,
		},
	}
}

// Format returns the selected output format
func (c *Output) Format() model.OutputFormat {
	if c.JSON {
		return model.OutputJSON
	}
	return model.OutputTable
}
