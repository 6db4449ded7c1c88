package config

import "github.com/urfave/cli/v3"

// Server holds server configuration
type Server struct {
	Addr string
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Listen address of the HTTP API",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("APPASSOC_ADDR"),
		},
	}
}
