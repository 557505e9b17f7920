// Package gateway reads and bulk-deletes sessions, submissions and analyses
// held by the remote session service.
//
// Reads return typed errors on any failure. Bulk deletes never fail the
// caller: a failed delete is written to the logger and otherwise ignored.
package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/sonnes/entitygate/core"
)

// maxErrorBody bounds how much of a non-2xx body is kept on a StatusError.
const maxErrorBody = 512

// Routes holds the base URL of each resource collection.
type Routes struct {
	Session    string
	Submission string
	Analysis   string
}

// Gateway issues one HTTP round trip per call against the configured routes.
// It is safe for concurrent use.
type Gateway struct {
	routes Routes
	client *http.Client
	log    *log.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithHTTPClient sets the client shared by every call.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.client = c }
}

// WithLogger sets the diagnostic sink. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(g *Gateway) { g.log = l }
}

// New creates a Gateway. Routes are used as given.
func New(routes Routes, opts ...Option) *Gateway {
	g := &Gateway{routes: routes}
	for _, opt := range opts {
		opt(g)
	}
	if g.client == nil {
		g.client = &http.Client{}
	}
	if g.log == nil {
		g.log = log.Default()
	}
	return g
}

// Routes returns the routes the gateway was built with.
func (g *Gateway) Routes() Routes { return g.routes }

// ListSessionsByHost returns the sessions hosted by hostUsername.
func (g *Gateway) ListSessionsByHost(ctx context.Context, hostUsername string) ([]core.SessionEntity, error) {
	var out []core.SessionEntity
	if err := g.getJSON(ctx, join(g.routes.Session, hostUsername), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSubmission returns what username submitted to sessionID.
func (g *Gateway) GetSubmission(ctx context.Context, username, sessionID string) (core.Submission, error) {
	var out core.Submission
	if err := g.getJSON(ctx, join(g.routes.Submission, sessionID, username), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAnalysesByUserAndSession returns the analyses for username in sessionID.
func (g *Gateway) ListAnalysesByUserAndSession(ctx context.Context, username, sessionID string) ([]core.AnalysisEntity, error) {
	var out []core.AnalysisEntity
	if err := g.getJSON(ctx, join(g.routes.Analysis, sessionID, username), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAnalysesBySession returns every analysis in sessionID.
func (g *Gateway) ListAnalysesBySession(ctx context.Context, sessionID string) ([]core.AnalysisEntity, error) {
	var out []core.AnalysisEntity
	if err := g.getJSON(ctx, join(g.routes.Analysis, sessionID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteAllSessions removes the whole session collection.
func (g *Gateway) DeleteAllSessions(ctx context.Context) {
	g.deleteAll(ctx, g.routes.Session)
}

// DeleteAllSubmissions removes the whole submission collection.
func (g *Gateway) DeleteAllSubmissions(ctx context.Context) {
	g.deleteAll(ctx, g.routes.Submission)
}

// DeleteAllAnalyses removes the whole analysis collection.
func (g *Gateway) DeleteAllAnalyses(ctx context.Context) {
	g.deleteAll(ctx, g.routes.Analysis)
}

// getJSON issues a GET and decodes a 2xx body into v.
func (g *Gateway) getJSON(ctx context.Context, url string, v any) error {
	id := uuid.NewString()
	g.log.Debug("request", "method", http.MethodGet, "url", url, "request_id", id)

	resp, err := g.do(ctx, http.MethodGet, url, id)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: http.MethodGet, URL: url, Err: err}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &DecodeError{URL: url, Err: err}
	}
	return nil
}

// deleteAll issues a DELETE against route. Failures are logged, not returned.
// A delete writes at most one log entry at any level.
func (g *Gateway) deleteAll(ctx context.Context, route string) {
	id := uuid.NewString()
	if err := g.delete(ctx, route, id); err != nil {
		g.log.Error("[cloud] Network Error Exception", "err", err, "request_id", id)
	}
}

func (g *Gateway) delete(ctx context.Context, url, id string) error {
	resp, err := g.do(ctx, http.MethodDelete, url, id)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (g *Gateway) do(ctx context.Context, method, url, id string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", id)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	return resp, nil
}

// checkStatus returns a StatusError for responses outside 200..299. The body
// is left for the caller to close.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		Method:     resp.Request.Method,
		URL:        resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(b)),
	}
}

// join appends path segments to a route. Segments are not escaped.
func join(route string, segments ...string) string {
	return route + "/" + strings.Join(segments, "/")
}
