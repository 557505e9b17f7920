package server

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/sonnes/entitygate/gateway"
	"github.com/sonnes/entitygate/redact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// remote is a mock of the session service.
func remote(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /session/{host}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("host") != "ravi" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `[{"sessionId":"s1","hostUsername":"ravi"}]`)
	})
	mux.HandleFunc("GET /analysis/{sid}", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[{"sessionId":%q,"username":"asha","analysisResults":{"verdict":"pass","contact":"asha@example.com"}}]`, r.PathValue("sid"))
	})
	mux.HandleFunc("GET /analysis/{sid}/{user}", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[{"sessionId":%q,"username":%q}]`, r.PathValue("sid"), r.PathValue("user"))
	})
	mux.HandleFunc("GET /submission/{sid}/{user}", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[104,105]`)
	})
	mux.HandleFunc("GET /broken/{sid}", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T, analysisPath string) (*Server, *bytes.Buffer) {
	t.Helper()
	up := remote(t)
	g := gateway.New(gateway.Routes{
		Session:    up.URL + "/session",
		Submission: up.URL + "/submission",
		Analysis:   up.URL + analysisPath,
	}, gateway.WithHTTPClient(up.Client()), gateway.WithLogger(log.New(&bytes.Buffer{})))

	var logs bytes.Buffer
	s := New(g, redact.New(redact.Config{PII: true}))
	s.Logger = log.New(&logs)
	return s, &logs
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestIndex(t *testing.T) {
	s, _ := newTestServer(t, "/analysis")

	rr := get(t, s.Handler(), "/")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), `action="/hosts"`)
}

func TestHostPage(t *testing.T) {
	s, _ := newTestServer(t, "/analysis")

	rr := get(t, s.Handler(), "/hosts/ravi")
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "Sessions hosted by ravi")
	assert.Contains(t, body, `<a href="/sessions/s1">Session s1</a>`)
	assert.Contains(t, body, "verdict: pass")
	assert.NotContains(t, body, "asha@example.com", "transformers run before rendering")
}

func TestHostNotFound(t *testing.T) {
	s, logs := newTestServer(t, "/analysis")

	rr := get(t, s.Handler(), "/hosts/nobody")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, logs.String(), "fetch")
}

func TestSessionPage(t *testing.T) {
	s, _ := newTestServer(t, "/analysis")

	t.Run("all users with submissions", func(t *testing.T) {
		rr := get(t, s.Handler(), "/sessions/s1?submissions=1")
		require.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Contains(t, body, "<title>Session s1</title>")
		assert.Contains(t, body, "<h2>Submissions</h2>")
	})

	t.Run("one user", func(t *testing.T) {
		rr := get(t, s.Handler(), "/sessions/s1?user=dev")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "dev")
		assert.NotContains(t, rr.Body.String(), "verdict: pass")
	})
}

func TestUpstreamFailure(t *testing.T) {
	s, _ := newTestServer(t, "/broken")

	rr := get(t, s.Handler(), "/sessions/s1")
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "500")
}

func TestRedirects(t *testing.T) {
	s, _ := newTestServer(t, "/analysis")

	rr := get(t, s.Handler(), "/hosts?host=ravi")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/hosts/ravi", rr.Header().Get("Location"))

	rr = get(t, s.Handler(), "/sessions?session=s%201")
	assert.Equal(t, "/sessions/s%201", rr.Header().Get("Location"))

	rr = get(t, s.Handler(), "/sessions")
	assert.Equal(t, "/", rr.Header().Get("Location"))
}

func TestAddr(t *testing.T) {
	assert.Equal(t, ":8080", Addr(8080))
}
