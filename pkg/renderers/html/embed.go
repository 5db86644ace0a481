package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplateName is the page template inside the bundle.
const TemplateName = "templates/portfolio.tmpl"

// TemplatesFS exposes the embedded template bundle so callers can copy it as
// a starting point for their own layout.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
