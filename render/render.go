// Package render defines the interface for rendering collected bundles into
// various output formats.
package render

import (
	"io"

	"github.com/sonnes/entitygate/core"
)

// Renderer writes a bundle to the given writer in a specific format.
type Renderer interface {
	Render(w io.Writer, b *core.Bundle) error
}
