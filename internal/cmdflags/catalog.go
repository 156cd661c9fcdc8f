package cmdflags

import (
	"github.com/urfave/cli/v2"
)

func Catalog(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "catalog",
		Aliases:     []string{"c"},
		Usage:       "Path to the catalog database",
		EnvVars:     []string{"HACKADEMY_CATALOG"},
		Destination: out,
		Value:       *out,
	}
}

func Bind(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "bind",
		Aliases:     []string{"b"},
		Usage:       "Address to bind the HTTP server",
		EnvVars:     []string{"HACKADEMY_ADDR"},
		Destination: out,
		Value:       *out,
	}
}
