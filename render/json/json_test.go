package json

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/sonnes/entitygate/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBundle() *core.Bundle {
	return &core.Bundle{
		Host:      "ravi",
		FetchedAt: time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC),
		Sessions:  []core.SessionEntity{{SessionID: "s1", HostUsername: "ravi"}},
		Analyses:  []core.AnalysisEntity{{SessionID: "s1", Username: "asha"}},
	}
}

func TestRenderIndented(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().Render(&buf, testBundle()))

	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "}\n"))
	assert.Contains(t, out, "\n  \"host\": \"ravi\"")

	var back core.Bundle
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, "s1", back.Sessions[0].SessionID)
}

func TestRenderCompact(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&Renderer{}).Render(&buf, testBundle()))

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestRenderColor(t *testing.T) {
	var plain, colored bytes.Buffer
	require.NoError(t, New().Render(&plain, testBundle()))

	r := New()
	r.Color = true
	require.NoError(t, r.Render(&colored, testBundle()))

	assert.NotEqual(t, plain.String(), colored.String())
	assert.Contains(t, colored.String(), "\x1b[")
	assert.Contains(t, ansi.Strip(colored.String()), `"host": "ravi"`)
}
