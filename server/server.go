// Package server provides a local HTTP server for browsing remote sessions
// and analyses as rendered HTML.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/sonnes/entitygate/collect"
	"github.com/sonnes/entitygate/core"
	"github.com/sonnes/entitygate/gateway"
	htmlrender "github.com/sonnes/entitygate/render/html"
)

// Server serves bundles fetched from a Source over HTTP for local browsing.
type Server struct {
	// Source provides access to remote entities.
	Source collect.Source
	// Transformers are applied to every bundle before rendering.
	Transformers []core.Transformer
	// Logger receives handler failures. Defaults to log.Default().
	Logger *log.Logger

	renderer *htmlrender.Renderer
}

// New creates a Server over src.
func New(src collect.Source, transformers ...core.Transformer) *Server {
	r := htmlrender.New()
	r.SessionHref = func(id string) string { return "/sessions/" + url.PathEscape(id) }
	return &Server{
		Source:       src,
		Transformers: transformers,
		Logger:       log.Default(),
		renderer:     r,
	}
}

// Handler returns the routes:
//
//	GET /                 lookup forms
//	GET /hosts?host=      redirect to /hosts/{host}
//	GET /hosts/{host}     sessions hosted by host, with analyses
//	GET /sessions?session= redirect to /sessions/{id}
//	GET /sessions/{id}    analyses of one session; ?user= narrows, ?submissions=1 adds submissions
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := s.renderer.RenderIndex(w, "/hosts", "/sessions"); err != nil {
			s.Logger.Error("render index", "err", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	})

	mux.HandleFunc("GET /hosts", redirectQuery("host", "/hosts/"))
	mux.HandleFunc("GET /sessions", redirectQuery("session", "/sessions/"))

	mux.HandleFunc("GET /hosts/{host}", func(w http.ResponseWriter, req *http.Request) {
		host := req.PathValue("host")
		b, err := collect.Host(req.Context(), s.Source, host, options(req))
		s.respond(w, b, err, "host", host)
	})

	mux.HandleFunc("GET /sessions/{id}", func(w http.ResponseWriter, req *http.Request) {
		id := req.PathValue("id")
		b, err := collect.Session(req.Context(), s.Source, id, options(req))
		s.respond(w, b, err, "session_id", id)
	})

	return mux
}

// ListenAndServe serves Handler on addr.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.Handler())
}

func options(req *http.Request) collect.Options {
	q := req.URL.Query()
	return collect.Options{
		Username:    q.Get("user"),
		Submissions: q.Get("submissions") == "1",
	}
}

func redirectQuery(param, prefix string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		v := req.URL.Query().Get(param)
		if v == "" {
			http.Redirect(w, req, "/", http.StatusSeeOther)
			return
		}
		http.Redirect(w, req, prefix+url.PathEscape(v), http.StatusSeeOther)
	}
}

func (s *Server) respond(w http.ResponseWriter, b *core.Bundle, err error, key, value string) {
	if err != nil {
		s.Logger.Error("fetch", key, value, "err", err)
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	if err := core.Chain(b, s.Transformers...); err != nil {
		s.Logger.Error("transform", key, value, "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Render(w, b); err != nil {
		s.Logger.Error("render", key, value, "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// statusFor maps an upstream failure to the status returned to the browser.
func statusFor(err error) int {
	var se *gateway.StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

// Addr formats a listen address for port.
func Addr(port int) string {
	return fmt.Sprintf(":%d", port)
}
