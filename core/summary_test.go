package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeResults(t *testing.T) {
	tests := []struct {
		name    string
		results map[string]any
		want    string
	}{
		{"nil", nil, ""},
		{"verdict", map[string]any{"verdict": "pass", "log": "..."}, "verdict: pass"},
		{"case insensitive", map[string]any{"Status": "failed"}, "status: failed"},
		{"number", map[string]any{"score": 7.5}, "score: 7.5"},
		{"bool", map[string]any{"result": true}, "result: true"},
		{"composite verdict skipped", map[string]any{"summary": map[string]any{"a": 1}, "zeta": 1}, "[summary, zeta]"},
		{"keys fallback", map[string]any{"lint": 1, "build": 2}, "[build, lint]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SummarizeResults(tt.results))
		})
	}
}
