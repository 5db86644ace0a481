package portfolio

import (
	"io/fs"

	htmlrenderer "github.com/goliatone/go-portfolio/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in page template so callers can copy or
// extend it and pass the result back through htmlrenderer.WithTemplatesFS.
func EmbeddedTemplates() fs.FS {
	return htmlrenderer.TemplatesFS()
}
