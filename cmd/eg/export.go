package main

import (
	"context"
	"fmt"

	"github.com/sonnes/entitygate/collect"
	"github.com/sonnes/entitygate/core"
	"github.com/sonnes/entitygate/snapshot"
	"github.com/urfave/cli/v3"
)

func (a *app) exportCmd() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Save a host's or a session's entities to a JSON snapshot",
		Description: `Collects entities the same way as the sessions and analyses commands and
writes them to --out. With --merge, entities are upserted into the existing
snapshot instead of replacing it, so repeated exports accumulate.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Export every session hosted by this user",
			},
			&cli.StringFlag{
				Name:    "session",
				Aliases: []string{"s"},
				Usage:   "Export one session",
			},
			&cli.StringFlag{
				Name:    "user",
				Aliases: []string{"u"},
				Usage:   "With --session, only this user's analyses",
			},
			&cli.BoolFlag{
				Name:  "submissions",
				Usage: "Include submissions",
			},
			&cli.StringFlag{
				Name:     "out",
				Usage:    "Snapshot file",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "merge",
				Usage: "Merge into an existing snapshot",
			},
			&cli.BoolFlag{
				Name:  "no-redact",
				Usage: "Disable redaction of secrets and PII",
			},
			&cli.StringSliceFlag{
				Name:  "redact",
				Usage: "Allowlist of rules to redact. Example: --redact=secrets,pii",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			host, session := cmd.String("host"), cmd.String("session")
			if (host == "") == (session == "") {
				return fmt.Errorf("exactly one of --host or --session is required")
			}

			g, err := a.gateway()
			if err != nil {
				return err
			}

			opts := collect.Options{
				Username:    cmd.String("user"),
				Submissions: cmd.Bool("submissions"),
			}
			var b *core.Bundle
			if host != "" {
				b, err = collect.Host(ctx, g, host, opts)
			} else {
				b, err = collect.Session(ctx, g, session, opts)
			}
			if err != nil {
				return err
			}

			redactor, err := newRedactor(cmd)
			if err != nil {
				return err
			}
			if redactor != nil {
				if err := core.Chain(b, redactor); err != nil {
					return fmt.Errorf("redact: %w", err)
				}
			}

			return writeSnapshot(cmd.String("out"), b, cmd.Bool("merge"))
		},
	}
}

// writeSnapshot replaces or merges into the snapshot at path.
func writeSnapshot(path string, b *core.Bundle, merge bool) error {
	if merge {
		existing, err := snapshot.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read snapshot: %w", err)
		}
		snapshot.Merge(existing, b)
		b = existing
	}
	if err := snapshot.WriteFile(path, b); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
