// Generates an example HTML report and writes it to stdout.
// Usage: go run ./render/html/cmd/example > example.html
package main

import (
	"os"
	"time"

	"github.com/sonnes/entitygate/core"
	htmlrender "github.com/sonnes/entitygate/render/html"
)

func main() {
	now := time.Date(2026, 2, 13, 10, 15, 0, 0, time.UTC)
	earlier := now.Add(-26 * time.Hour)

	b := &core.Bundle{
		Host:      "ravi",
		FetchedAt: now,
		Sessions: []core.SessionEntity{
			{
				SessionID:    "8397fc7c",
				HostUsername: "ravi",
				HostName:     "Ravi Kumar",
				Users:        []string{"asha", "dev", "meera"},
				Timestamp:    &now,
			},
			{
				SessionID:    "1c2d7e0a",
				HostUsername: "ravi",
				Users:        []string{"asha"},
				Timestamp:    &earlier,
			},
		},
		Analyses: []core.AnalysisEntity{
			{
				SessionID: "8397fc7c",
				Username:  "asha",
				Results: map[string]any{
					"verdict": "pass",
					"tests":   map[string]any{"passed": 12, "failed": 0},
				},
			},
			{
				SessionID: "8397fc7c",
				Username:  "dev",
				Results: map[string]any{
					"verdict": "fail",
					"tests":   map[string]any{"passed": 9, "failed": 3},
					"lint":    []any{"unused variable x", "missing return"},
				},
			},
			{
				SessionID: "8397fc7c",
				Username:  "meera",
				Results:   map[string]any{"score": 7.5},
			},
		},
		Submissions: []core.SubmissionRecord{
			{SessionID: "8397fc7c", Username: "asha", Content: core.Submission("def add(a, b):\n    return a + b\n")},
			{SessionID: "8397fc7c", Username: "dev", Size: 2048},
		},
	}

	if err := htmlrender.New().Render(os.Stdout, b); err != nil {
		os.Exit(1)
	}
}
