package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionEntityCaseInsensitive(t *testing.T) {
	for _, body := range []string{
		`{"sessionId":"s1","hostUsername":"ravi"}`,
		`{"SessionId":"s1","HostUsername":"ravi"}`,
		`{"SESSIONID":"s1","hostusername":"ravi"}`,
	} {
		var s SessionEntity
		require.NoError(t, json.Unmarshal([]byte(body), &s), body)
		assert.Equal(t, "s1", s.SessionID, body)
		assert.Equal(t, "ravi", s.HostUsername, body)
	}
}

func TestSessionEntityKeepsRaw(t *testing.T) {
	body := `{"sessionId":"s1","hostUsername":"ravi","tests":["a","b"],"timestamp":"2026-02-15T10:00:00Z"}`

	var s SessionEntity
	require.NoError(t, json.Unmarshal([]byte(body), &s))

	assert.JSONEq(t, body, string(s.Raw))
	require.NotNil(t, s.Timestamp)
	assert.Equal(t, time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC), s.Timestamp.UTC())
}

func TestAnalysisEntityResults(t *testing.T) {
	body := `{"SessionId":"s1","UserName":"asha","AnalysisResults":{"lint":{"errors":2}}}`

	var a AnalysisEntity
	require.NoError(t, json.Unmarshal([]byte(body), &a))

	assert.Equal(t, "s1", a.SessionID)
	assert.Equal(t, "asha", a.Username)
	require.Contains(t, a.Results, "lint")
	assert.Equal(t, map[string]any{"errors": float64(2)}, a.Results["lint"])
	assert.NotEmpty(t, a.Raw)
}

func TestEntityTimestampLayouts(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{"rfc3339", `"2023-04-10T12:34:56Z"`, time.Date(2023, 4, 10, 12, 34, 56, 0, time.UTC)},
		{"offset", `"2023-04-10T14:34:56+02:00"`, time.Date(2023, 4, 10, 12, 34, 56, 0, time.UTC)},
		{"no offset", `"2023-04-10T12:34:56"`, time.Date(2023, 4, 10, 12, 34, 56, 0, time.UTC)},
		{"no offset fractional", `"2023-04-10T12:34:56.1234567"`, time.Date(2023, 4, 10, 12, 34, 56, 123456700, time.UTC)},
		{"space separated", `"2023-04-10 12:34:56"`, time.Date(2023, 4, 10, 12, 34, 56, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s SessionEntity
			require.NoError(t, json.Unmarshal([]byte(`{"sessionId":"s1","timestamp":`+tt.value+`}`), &s))
			require.NotNil(t, s.Timestamp)
			assert.True(t, tt.want.Equal(*s.Timestamp), "got %v", s.Timestamp)

			var a AnalysisEntity
			require.NoError(t, json.Unmarshal([]byte(`{"sessionId":"s1","Timestamp":`+tt.value+`}`), &a))
			require.NotNil(t, a.Timestamp)
			assert.True(t, tt.want.Equal(*a.Timestamp), "got %v", a.Timestamp)
		})
	}
}

func TestEntityOptionalFieldsOfOtherShape(t *testing.T) {
	t.Run("session", func(t *testing.T) {
		body := `{"sessionId":"s1","hostUsername":"ravi","users":[{"name":"asha"}],"timestamp":1681130096}`

		var s SessionEntity
		require.NoError(t, json.Unmarshal([]byte(body), &s))
		assert.Equal(t, "s1", s.SessionID)
		assert.Equal(t, "ravi", s.HostUsername)
		assert.Nil(t, s.Users)
		assert.Nil(t, s.Timestamp)
		assert.JSONEq(t, body, string(s.Raw))
	})

	t.Run("analysis", func(t *testing.T) {
		body := `{"sessionId":"s1","username":"asha","analysisResults":[1,2],"timestamp":"yesterday"}`

		var a AnalysisEntity
		require.NoError(t, json.Unmarshal([]byte(body), &a))
		assert.Equal(t, "asha", a.Username)
		assert.Nil(t, a.Results)
		assert.Nil(t, a.Timestamp)
		assert.JSONEq(t, body, string(a.Raw))
	})

	t.Run("null", func(t *testing.T) {
		var s SessionEntity
		require.NoError(t, json.Unmarshal([]byte(`{"sessionId":"s1","users":null,"timestamp":null}`), &s))
		assert.Nil(t, s.Users)
		assert.Nil(t, s.Timestamp)
	})
}

func TestSubmissionUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Submission
	}{
		{"byte array", `[1,2,3]`, Submission{1, 2, 3}},
		{"empty array", `[]`, Submission{}},
		{"base64 string", `"AQID"`, Submission{1, 2, 3}},
		{"null", `null`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Submission
			require.NoError(t, json.Unmarshal([]byte(tt.in), &s))
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestSubmissionUnmarshalRejects(t *testing.T) {
	for _, in := range []string{`[1,256]`, `[-1]`, `[1.5]`, `["a"]`, `{"a":1}`, `"not base64!"`, `true`} {
		var s Submission
		assert.Error(t, json.Unmarshal([]byte(in), &s), in)
	}
}

func TestSubmissionMarshal(t *testing.T) {
	data, err := json.Marshal(Submission{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, `"AQID"`, string(data))

	var back Submission
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Submission{1, 2, 3}, back)
}

func TestBundleHelpers(t *testing.T) {
	b := &Bundle{
		Host: "ravi",
		Sessions: []SessionEntity{
			{SessionID: "s1"}, {SessionID: "s2"},
		},
		Analyses: []AnalysisEntity{
			{SessionID: "s1", Username: "a"},
			{SessionID: "s2", Username: "b"},
			{SessionID: "s1", Username: "c"},
		},
	}

	assert.Equal(t, "Sessions hosted by ravi", b.Title())
	assert.Equal(t, "2 sessions, 3 analyses, 0 submissions", b.Summary())

	got := b.AnalysesFor("s1")
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Username)
	assert.Equal(t, "c", got[1].Username)

	assert.Equal(t, "Session s9", (&Bundle{SessionID: "s9"}).Title())
}

type countTransformer struct{ n *int }

func (c countTransformer) Transform(*Bundle) error {
	*c.n++
	return nil
}

type failTransformer struct{}

func (failTransformer) Transform(*Bundle) error { return assert.AnError }

func TestChain(t *testing.T) {
	var n int
	err := Chain(&Bundle{}, countTransformer{&n}, failTransformer{}, countTransformer{&n})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, n, "stops at first error")
}
