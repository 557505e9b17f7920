// Package config loads the routes and client settings for entitygate from a
// YAML file and ENTITYGATE_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Config defines the routes of the remote service and CLI client settings.
type Config struct {
	SessionRoute    string   `yaml:"sessionRoute"`
	SubmissionRoute string   `yaml:"submissionRoute"`
	AnalysisRoute   string   `yaml:"analysisRoute"`
	Timeout         Duration `yaml:"timeout"`
	LogLevel        string   `yaml:"logLevel"`
}

// Duration is a time.Duration that reads from YAML strings such as "30s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("timeout: %w", err)
	}
	*d = Duration(v)
	return nil
}

// Load reads path, if set, and applies environment overrides. A missing file
// is only an error when required is true.
func Load(path string, required bool) (*Config, error) {
	cfg := &Config{LogLevel: "error"}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist) && !required:
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("ENTITYGATE_SESSION_ROUTE"); v != "" {
		c.SessionRoute = v
	}
	if v := os.Getenv("ENTITYGATE_SUBMISSION_ROUTE"); v != "" {
		c.SubmissionRoute = v
	}
	if v := os.Getenv("ENTITYGATE_ANALYSIS_ROUTE"); v != "" {
		c.AnalysisRoute = v
	}
	if v := os.Getenv("ENTITYGATE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("ENTITYGATE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ENTITYGATE_TIMEOUT: %w", err)
		}
		c.Timeout = Duration(d)
	}
	return nil
}

// Validate reports every missing or malformed route at once.
func (c *Config) Validate() error {
	var err error
	for _, r := range []struct{ name, value string }{
		{"sessionRoute", c.SessionRoute},
		{"submissionRoute", c.SubmissionRoute},
		{"analysisRoute", c.AnalysisRoute},
	} {
		err = multierr.Append(err, checkRoute(r.name, r.value))
	}
	if c.Timeout < 0 {
		err = multierr.Append(err, fmt.Errorf("timeout must not be negative"))
	}
	return err
}

func checkRoute(name, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required", name)
	}
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s: scheme must be http or https, got %q", name, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s: missing host", name)
	}
	return nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	if path := os.Getenv("ENTITYGATE_CONFIG"); path != "" {
		return path
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".entitygate", "config.yaml")
}
