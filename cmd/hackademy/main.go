package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/andrebq/hackademy/cmd/hackademy/catalog"
	"github.com/andrebq/hackademy/cmd/hackademy/serve"
	"github.com/andrebq/hackademy/internal/logutil"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	// a missing .env file is fine, the environment may be set elsewhere
	godotenv.Load()
	logLevel := "info"
	pretty := false
	app := &cli.App{
		Name:  "hackademy",
		Usage: "Browse quiz categories, take quizzes, keep score!",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Minimum level worth logging",
				EnvVars:     []string{"HACKADEMY_LOG_LEVEL"},
				Value:       logLevel,
				Destination: &logLevel,
			},
			&cli.BoolFlag{
				Name:        "pretty-log",
				Usage:       "Log for humans instead of machines",
				Value:       pretty,
				Destination: &pretty,
			},
		},
		Before: func(ctx *cli.Context) error {
			log.Logger = logutil.Setup(pretty, logLevel)
			ctx.Context = logutil.WithLogger(ctx.Context, log.Logger)
			return nil
		},
		Commands: []*cli.Command{
			serve.Cmd(),
			catalog.Cmd(),
		},
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		log.Error().Err(err).Msg("Application failed")
	}
}
