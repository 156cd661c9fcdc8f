package catalog

import (
	"errors"
	"os"

	"github.com/andrebq/hackademy/catalog"
	"github.com/andrebq/hackademy/internal/cmdflags"
	"github.com/andrebq/hackademy/internal/logutil"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Commands to create and populate a quiz catalog",
		Subcommands: []*cli.Command{
			initCmd(),
			importCmd(),
		},
	}
}

func initCmd() *cli.Command {
	catalogPath := "hackademy.db"
	return &cli.Command{
		Name:  "init",
		Usage: "Create an empty catalog with the expected schema",
		Flags: []cli.Flag{
			cmdflags.Catalog(&catalogPath),
		},
		Action: func(ctx *cli.Context) error {
			store, err := catalog.Open(ctx.Context, catalogPath, true)
			if err != nil {
				return err
			}
			return store.Close()
		},
	}
}

func importCmd() *cli.Command {
	catalogPath := "hackademy.db"
	return &cli.Command{
		Name:      "import",
		Usage:     "Load categories, subcategories and questions from a JSON seed file",
		ArgsUsage: "<seed.json>",
		Flags: []cli.Flag{
			cmdflags.Catalog(&catalogPath),
		},
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() != 1 {
				return errors.New("expecting exactly one seed file")
			}
			in, err := os.Open(ctx.Args().First())
			if err != nil {
				return err
			}
			defer in.Close()
			store, err := catalog.Open(ctx.Context, catalogPath, true)
			if err != nil {
				return err
			}
			defer store.Close()
			categories, subcategories, questions, err := store.ImportSeed(ctx.Context, in)
			if err != nil {
				return err
			}
			log := logutil.GetOrDefault(ctx.Context)
			log.Info().
				Int("categories", categories).
				Int("subcategories", subcategories).
				Int("questions", questions).
				Msg("Catalog seeded")
			return nil
		},
	}
}
