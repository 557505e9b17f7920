package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/term"
	"github.com/sonnes/entitygate/collect"
	"github.com/sonnes/entitygate/compact"
	"github.com/sonnes/entitygate/config"
	"github.com/sonnes/entitygate/core"
	"github.com/sonnes/entitygate/gateway"
	"github.com/sonnes/entitygate/redact"
	"github.com/sonnes/entitygate/render"
	htmlrender "github.com/sonnes/entitygate/render/html"
	jsonrender "github.com/sonnes/entitygate/render/json"
	"github.com/sonnes/entitygate/render/terminal"
	"github.com/urfave/cli/v3"
)

var _ collect.Source = (*gateway.Gateway)(nil)

// app holds the resolved config and renderer registry used by CLI commands.
type app struct {
	cfg        *config.Config
	stdout     io.Writer
	isTerminal func() bool
	renderers  map[string]func(color bool) render.Renderer
}

func newApp() *app {
	return &app{
		stdout:     os.Stdout,
		isTerminal: func() bool { return term.IsTerminal(os.Stdout.Fd()) },
		renderers: map[string]func(color bool) render.Renderer{
			"terminal": func(bool) render.Renderer { return terminal.New() },
			"json": func(color bool) render.Renderer {
				r := jsonrender.New()
				r.Color = color
				return r
			},
			"html": func(bool) render.Renderer { return htmlrender.New() },
		},
	}
}

func (a *app) renderer(name string, color bool) (render.Renderer, error) {
	fn, ok := a.renderers[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q", name)
	}
	return fn(color), nil
}

// color resolves --color against whether stdout is a terminal.
func (a *app) color(mode string) (bool, error) {
	switch mode {
	case "", "auto":
		return a.isTerminal(), nil
	case "always":
		return true, nil
	case "never":
		return false, nil
	default:
		return false, fmt.Errorf("unknown color mode %q", mode)
	}
}

// configure loads the config file and layers root flags over it. An
// explicit --config must exist; the default location may be absent.
func (a *app) configure(cmd *cli.Command) error {
	path, required := cmd.String("config"), true
	if path == "" {
		path, required = config.DefaultPath(), false
	}

	cfg, err := config.Load(path, required)
	if err != nil {
		return err
	}

	if v := cmd.String("session-route"); v != "" {
		cfg.SessionRoute = v
	}
	if v := cmd.String("submission-route"); v != "" {
		cfg.SubmissionRoute = v
	}
	if v := cmd.String("analysis-route"); v != "" {
		cfg.AnalysisRoute = v
	}
	if cmd.IsSet("timeout") {
		cfg.Timeout = config.Duration(cmd.Duration("timeout"))
	}
	if v := cmd.String("log"); v != "" {
		cfg.LogLevel = v
	}

	a.cfg = cfg
	return nil
}

// gateway validates the routes and builds a Gateway sharing one client.
func (a *app) gateway() (*gateway.Gateway, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	client := &http.Client{Timeout: time.Duration(a.cfg.Timeout)}
	g := gateway.New(gateway.Routes{
		Session:    a.cfg.SessionRoute,
		Submission: a.cfg.SubmissionRoute,
		Analysis:   a.cfg.AnalysisRoute,
	}, gateway.WithHTTPClient(client), gateway.WithLogger(log.Default()))

	r := g.Routes()
	log.Debug("gateway", "session", r.Session, "submission", r.Submission, "analysis", r.Analysis, "timeout", client.Timeout)
	return g, nil
}

// outputFlags are shared by every command that renders a bundle.
func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "o",
			Usage: "Output format: terminal, json, html",
			Value: "terminal",
		},
		&cli.StringFlag{
			Name:  "color",
			Usage: "Highlight JSON output: auto, always, never",
			Value: "auto",
		},
		&cli.BoolFlag{
			Name:  "no-redact",
			Usage: "Disable redaction of secrets and PII",
		},
		&cli.StringSliceFlag{
			Name:  "redact",
			Usage: "Allowlist of rules to redact. Example: --redact=secrets,pii",
		},
		&cli.StringFlag{
			Name:  "compact",
			Usage: "Enable compact mode. Use --compact=no-submissions to also drop submission content",
		},
	}
}

// transformers builds the redact and compact chain from CLI flags.
func transformers(cmd *cli.Command) ([]core.Transformer, error) {
	var ts []core.Transformer

	redactor, err := newRedactor(cmd)
	if err != nil {
		return nil, err
	}
	if redactor != nil {
		ts = append(ts, redactor)
	}

	if v := cmd.String("compact"); v != "" {
		cfg := compact.Config{}
		if v == "no-submissions" {
			cfg.StripSubmissions = true
		}
		ts = append(ts, compact.New(cfg))
	}
	return ts, nil
}

// newRedactor builds a Redactor from CLI flags. Returns nil when --no-redact is set.
func newRedactor(cmd *cli.Command) (*redact.Redactor, error) {
	if cmd.Bool("no-redact") {
		return nil, nil
	}

	cfg := redact.Config{}
	rules := cmd.StringSlice("redact")

	if len(rules) == 0 {
		cfg.Secrets = true
		cfg.PII = true
	} else {
		for _, r := range rules {
			switch r {
			case "secrets":
				cfg.Secrets = true
			case "pii":
				cfg.PII = true
			default:
				return nil, fmt.Errorf("unknown redaction rule %q", r)
			}
		}
	}

	return redact.New(cfg), nil
}

// output runs the transformer chain over b and renders it to stdout in the
// format chosen by -o.
func (a *app) output(cmd *cli.Command, b *core.Bundle) error {
	ts, err := transformers(cmd)
	if err != nil {
		return err
	}
	if err := core.Chain(b, ts...); err != nil {
		return fmt.Errorf("transform: %w", err)
	}

	color, err := a.color(cmd.String("color"))
	if err != nil {
		return err
	}
	rnd, err := a.renderer(cmd.String("o"), color)
	if err != nil {
		return err
	}
	if err := rnd.Render(a.stdout, b); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
