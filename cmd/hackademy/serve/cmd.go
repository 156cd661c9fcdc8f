package serve

import (
	"time"

	"github.com/andrebq/hackademy/auth"
	"github.com/andrebq/hackademy/catalog"
	"github.com/andrebq/hackademy/internal/cmdflags"
	"github.com/andrebq/hackademy/internal/httpserver"
	"github.com/andrebq/hackademy/quiz"
	"github.com/andrebq/hackademy/webui"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	bindAddr := "localhost:3000"
	catalogPath := "hackademy.db"
	questionCacheTTL := time.Minute
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the quiz site over the given catalog",
		Flags: []cli.Flag{
			cmdflags.Bind(&bindAddr),
			cmdflags.Catalog(&catalogPath),
			&cli.DurationFlag{
				Name:        "question-cache-ttl",
				Usage:       "How long a fetched question set stays cached",
				Value:       questionCacheTTL,
				Destination: &questionCacheTTL,
			},
		},
		Action: func(ctx *cli.Context) error {
			store, err := catalog.Open(ctx.Context, catalogPath, true)
			if err != nil {
				return err
			}
			defer store.Close()

			// sessions live only for the lifetime of this process
			sessions := auth.NewSessionStore()
			flow := auth.NewFlow(store, sessions)
			grader := quiz.NewGrader(quiz.NewCachedSource(store, questionCacheTTL))

			handler, err := webui.AsHandler(ctx.Context, store, flow, grader)
			if err != nil {
				return err
			}
			return httpserver.Serve(ctx.Context, bindAddr, handler)
		},
	}
}
