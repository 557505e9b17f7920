package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

func main() {
	a := newApp()
	if err := a.command().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:  "eg",
		Usage: "Read and purge sessions, submissions and analyses on a remote entity service",
		Description: `eg talks to three REST routes (session, submission, analysis) and
renders what it fetches in the terminal, as JSON or as HTML.

Routes come from the config file, ENTITYGATE_* environment variables or the
--*-route flags, in increasing order of precedence.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log",
				Usage: "Log level: debug, info, warn, error (overrides logLevel in config)",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to config.yaml (default $ENTITYGATE_CONFIG or ~/.entitygate/config.yaml)",
			},
			&cli.StringFlag{
				Name:  "session-route",
				Usage: "Base URL of the session route",
			},
			&cli.StringFlag{
				Name:  "submission-route",
				Usage: "Base URL of the submission route",
			},
			&cli.StringFlag{
				Name:  "analysis-route",
				Usage: "Base URL of the analysis route",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Per-request timeout; 0 waits indefinitely",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if err := a.configure(cmd); err != nil {
				return ctx, err
			}
			level, err := log.ParseLevel(a.cfg.LogLevel)
			if err != nil {
				return ctx, err
			}
			log.SetLevel(level)
			return ctx, nil
		},
		Commands: []*cli.Command{
			a.sessionsCmd(),
			a.analysesCmd(),
			a.submissionCmd(),
			a.purgeCmd(),
			a.exportCmd(),
			a.serveCmd(),
		},
	}
}
