// Package json renders bundles as JSON, optionally syntax-highlighted for
// terminals.
package json

import (
	"encoding/json"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/sonnes/entitygate/core"
)

// Renderer renders a bundle to JSON.
type Renderer struct {
	// Indent controls pretty-printing. When true, output is indented.
	Indent bool
	// Color highlights the output with ANSI escapes.
	Color bool
	// Style is the chroma style used when Color is set.
	Style string
}

// New creates a JSON Renderer with indentation enabled.
func New() *Renderer {
	return &Renderer{Indent: true, Style: "dracula"}
}

// Render writes b as JSON followed by a newline.
func (r *Renderer) Render(w io.Writer, b *core.Bundle) error {
	var (
		data []byte
		err  error
	)
	if r.Indent {
		data, err = json.MarshalIndent(b, "", "  ")
	} else {
		data, err = json.Marshal(b)
	}
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if !r.Color {
		_, err = w.Write(data)
		return err
	}
	style := r.Style
	if style == "" {
		style = "dracula"
	}
	return quick.Highlight(w, string(data), "json", "terminal256", style)
}
