package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sonnes/entitygate/collect"
	"github.com/sonnes/entitygate/core"
	"github.com/urfave/cli/v3"
)

func (a *app) sessionsCmd() *cli.Command {
	return &cli.Command{
		Name:  "sessions",
		Usage: "List the sessions hosted by a user, with their analyses",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "host",
				Usage:    "Host username",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "submissions",
				Usage: "Also fetch the submission of every analysed user",
			},
		}, outputFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			g, err := a.gateway()
			if err != nil {
				return err
			}
			b, err := collect.Host(ctx, g, cmd.String("host"), collect.Options{
				Submissions: cmd.Bool("submissions"),
			})
			if err != nil {
				return err
			}
			return a.output(cmd, b)
		},
	}
}

func (a *app) analysesCmd() *cli.Command {
	return &cli.Command{
		Name:  "analyses",
		Usage: "List the analyses of a session",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "session",
				Aliases:  []string{"s"},
				Usage:    "Session ID",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "user",
				Aliases: []string{"u"},
				Usage:   "Only this user's analyses",
			},
			&cli.BoolFlag{
				Name:  "submissions",
				Usage: "Also fetch the submission of every analysed user",
			},
		}, outputFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			g, err := a.gateway()
			if err != nil {
				return err
			}
			b, err := collect.Session(ctx, g, cmd.String("session"), collect.Options{
				Username:    cmd.String("user"),
				Submissions: cmd.Bool("submissions"),
			})
			if err != nil {
				return err
			}
			return a.output(cmd, b)
		},
	}
}

func (a *app) submissionCmd() *cli.Command {
	return &cli.Command{
		Name:  "submission",
		Usage: "Fetch what a user submitted to a session",
		Description: `Without --out the submission is rendered like any other bundle. With
--out the raw bytes are written to the file unchanged.`,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "session",
				Aliases:  []string{"s"},
				Usage:    "Session ID",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "user",
				Aliases:  []string{"u"},
				Usage:    "Username",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "Write the raw submission bytes to this file",
			},
		}, outputFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			g, err := a.gateway()
			if err != nil {
				return err
			}
			rec, err := collect.Submission(ctx, g, cmd.String("user"), cmd.String("session"))
			if err != nil {
				return err
			}

			if out := cmd.String("out"); out != "" {
				if err := os.WriteFile(out, rec.Content, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", out, err)
				}
				return nil
			}

			return a.output(cmd, &core.Bundle{
				SessionID:   rec.SessionID,
				FetchedAt:   time.Now(),
				Submissions: []core.SubmissionRecord{rec},
			})
		},
	}
}
