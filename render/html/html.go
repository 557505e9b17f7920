// Package html renders bundles as standalone HTML reports styled with
// Tailwind CSS v4 (CDN). The report body is built as markdown and converted
// with goldmark; result payloads are highlighted with chroma.
package html

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/sonnes/entitygate/core"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

//go:embed templates/*.html
var content embed.FS

// Renderer renders a bundle to a standalone HTML page.
type Renderer struct {
	md   goldmark.Markdown
	tmpl *template.Template

	// SessionHref, when non-nil, turns session headings into links. Used by
	// the browse server to route to per-session pages.
	SessionHref func(sessionID string) string
}

// New creates an HTML Renderer with goldmark configured for GFM tables and
// syntax highlighting. Raw HTML in entity fields is not passed through.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("dracula"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false), // inline styles for standalone pages
				),
			),
		),
	)

	tmpl := template.Must(template.ParseFS(content, "templates/*.html"))

	return &Renderer{md: md, tmpl: tmpl}
}

// pageData is the template data passed to page.html.
type pageData struct {
	Title     string
	Summary   string
	FetchedAt string
	Body      template.HTML
}

// indexData is the template data passed to index.html.
type indexData struct {
	HostAction    string
	SessionAction string
}

// Render writes the bundle as a complete HTML page to w.
func (r *Renderer) Render(w io.Writer, b *core.Bundle) error {
	src := bundleMarkdown(b, r.SessionHref)

	var body bytes.Buffer
	if err := r.md.Convert([]byte(src), &body); err != nil {
		return fmt.Errorf("goldmark convert: %w", err)
	}

	data := pageData{
		Title:   b.Title(),
		Summary: b.Summary(),
		Body:    template.HTML(body.String()),
	}
	if !b.FetchedAt.IsZero() {
		data.FetchedAt = b.FetchedAt.Format("Jan 2, 2006 3:04 PM")
	}
	return r.tmpl.ExecuteTemplate(w, "page.html", data)
}

// RenderIndex writes the landing page with lookup forms posting to the
// given actions.
func (r *Renderer) RenderIndex(w io.Writer, hostAction, sessionAction string) error {
	return r.tmpl.ExecuteTemplate(w, "index.html", indexData{
		HostAction:    hostAction,
		SessionAction: sessionAction,
	})
}
