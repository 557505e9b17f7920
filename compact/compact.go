// Package compact provides a Transformer that shrinks a bundle for quick
// viewing: raw payloads are dropped and multi-line analysis output is
// replaced with line counts.
package compact

import (
	"fmt"
	"strings"

	"github.com/sonnes/entitygate/core"
)

// Config controls the compact transformer behavior.
type Config struct {
	// StripSubmissions drops submission content, keeping only its size.
	StripSubmissions bool
}

// Compactor replaces verbose content with summaries.
type Compactor struct {
	stripSubmissions bool
}

// New creates a Compactor from the given config.
func New(cfg Config) *Compactor {
	return &Compactor{stripSubmissions: cfg.StripSubmissions}
}

// Transform implements core.Transformer.
func (c *Compactor) Transform(b *core.Bundle) error {
	for i := range b.Sessions {
		b.Sessions[i].Raw = nil
	}
	for i := range b.Analyses {
		a := &b.Analyses[i]
		a.Raw = nil
		summarizeFields(a.Results)
	}
	if c.stripSubmissions {
		for i := range b.Submissions {
			s := &b.Submissions[i]
			s.Size = len(s.Content)
			s.Content = nil
		}
	}
	return nil
}

// summarizeFields replaces every multi-line string in m, at any depth, with
// a line-count summary labelled by its key.
func summarizeFields(m map[string]any) {
	for k, v := range m {
		switch val := v.(type) {
		case string:
			if strings.Contains(strings.TrimSuffix(val, "\n"), "\n") {
				m[k] = lineSummary(k, val)
			}
		case map[string]any:
			summarizeFields(val)
		case []any:
			for _, e := range val {
				if child, ok := e.(map[string]any); ok {
					summarizeFields(child)
				}
			}
		}
	}
}

// lineSummary returns a summary like "[output: 245 lines]".
func lineSummary(label, s string) string {
	n := countLines(s)
	if n == 1 {
		return fmt.Sprintf("[%s: 1 line]", label)
	}
	return fmt.Sprintf("[%s: %d lines]", label, n)
}

// countLines returns the number of lines in s.
// An empty string has 0 lines. A string with no newline has 1 line.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n") + 1
	if strings.HasSuffix(s, "\n") {
		n--
	}
	return n
}
