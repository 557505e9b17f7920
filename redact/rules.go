// Package redact masks secrets and PII in fetched analyses and submissions
// before they are rendered or exported.
package redact

import (
	"fmt"
	"regexp"
)

// Rule detects sensitive data in a string and provides a replacement.
type Rule interface {
	Name() string
	Kind() string
	Detect(s string) []Match
	Replacement(m Match) string
}

// Match is a detected occurrence within a string.
type Match struct {
	Start int
	End   int
	Value string
}

type regexRule struct {
	name    string
	kind    string
	pattern *regexp.Regexp
}

func newRule(name, kind, pattern string) Rule {
	return &regexRule{name: name, kind: kind, pattern: regexp.MustCompile(pattern)}
}

func (r *regexRule) Name() string { return r.name }
func (r *regexRule) Kind() string { return r.kind }

func (r *regexRule) Detect(s string) []Match {
	locs := r.pattern.FindAllStringIndex(s, -1)
	matches := make([]Match, len(locs))
	for i, loc := range locs {
		matches[i] = Match{Start: loc[0], End: loc[1], Value: s[loc[0]:loc[1]]}
	}
	return matches
}

func (r *regexRule) Replacement(_ Match) string {
	return fmt.Sprintf("[REDACTED:%s]", r.name)
}

// SecretRules returns the built-in secret detection rules. Submissions are
// source code, so assignments of obvious credentials are covered too.
func SecretRules() []Rule {
	return []Rule{
		newRule("aws_key", "secret", `AKIA[0-9A-Z]{16}`),
		newRule("api_key", "secret", `(?:sk-[a-zA-Z0-9]{32,}|ghp_[a-zA-Z0-9]{36,}|gho_[a-zA-Z0-9]{36,}|glpat-[a-zA-Z0-9\-]{20,})`),
		newRule("private_key", "secret", `-----BEGIN [A-Z ]+PRIVATE KEY-----`),
		newRule("connection_string", "secret", `(?:postgres|mongodb|mysql|redis|sqlserver)://[^\s"'`+"`"+`]+`),
		newRule("jwt", "secret", `eyJ[A-Za-z0-9\-_]+\.eyJ[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_.+/=]+`),
		newRule("password", "secret", `(?i)(?:password|passwd|pwd)\s*[:=]\s*["']?[^\s"';]{4,}`),
	}
}

// PIIRules returns the built-in PII detection rules.
func PIIRules() []Rule {
	return []Rule{
		newRule("email", "pii", `[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`),
		newRule("ipv4", "pii", `\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`),
		newRule("phone", "pii", `(?:\+\d{1,3}[\s\-]?)?\(?\d{3}\)?[\s\-]?\d{3}[\s\-]?\d{4}`),
	}
}
