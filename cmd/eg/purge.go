package main

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

// purger is the delete half of the gateway.
type purger interface {
	DeleteAllSessions(ctx context.Context)
	DeleteAllSubmissions(ctx context.Context)
	DeleteAllAnalyses(ctx context.Context)
}

func (a *app) purgeCmd() *cli.Command {
	return &cli.Command{
		Name:  "purge",
		Usage: "Delete every session, submission and analysis on the remote service",
		Description: `Issues one DELETE against each selected route. With no selection flags
all three collections are purged. Failures are logged, never returned, so
the command exits 0 even when the remote is unreachable; run with
--log=debug to see each request.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "sessions",
				Usage: "Purge sessions",
			},
			&cli.BoolFlag{
				Name:  "submissions",
				Usage: "Purge submissions",
			},
			&cli.BoolFlag{
				Name:  "analyses",
				Usage: "Purge analyses",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			g, err := a.gateway()
			if err != nil {
				return err
			}
			purge(ctx, g, cmd.Bool("sessions"), cmd.Bool("submissions"), cmd.Bool("analyses"))
			return nil
		},
	}
}

// purge runs the selected deletes in order. Selecting nothing selects all.
func purge(ctx context.Context, p purger, sessions, submissions, analyses bool) {
	if !sessions && !submissions && !analyses {
		sessions, submissions, analyses = true, true, true
	}
	if sessions {
		log.Info("purging", "collection", "sessions")
		p.DeleteAllSessions(ctx)
	}
	if submissions {
		log.Info("purging", "collection", "submissions")
		p.DeleteAllSubmissions(ctx)
	}
	if analyses {
		log.Info("purging", "collection", "analyses")
		p.DeleteAllAnalyses(ctx)
	}
}
