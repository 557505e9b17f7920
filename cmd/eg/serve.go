package main

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/sonnes/entitygate/server"
	"github.com/urfave/cli/v3"
)

func (a *app) serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Browse remote sessions and analyses in a local web UI",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on",
				Value: 8080,
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
			g, err := a.gateway()
			if err != nil {
				return err
			}

			s := server.New(g)
			redactor, err := newRedactor(cmd)
			if err != nil {
				return err
			}
			if redactor != nil {
				s.Transformers = append(s.Transformers, redactor)
			}

			addr := server.Addr(int(cmd.Int("port")))
			log.Info("serving", "addr", "http://localhost"+addr)
			return s.ListenAndServe(addr)
		},
	}
}
