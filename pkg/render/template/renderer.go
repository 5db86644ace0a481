package template

import (
	"io"
)

// TemplateRenderer is the seam page renderers use to execute templates. The
// pongo2-backed Engine in the gotemplate subpackage is the default
// implementation; tests may substitute their own.
type TemplateRenderer interface {
	// RenderTemplate executes a named template from the configured bundle.
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	// RenderString parses and executes an inline template.
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	// RegisterFilter installs a filter usable from every template.
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	// GlobalContext merges data into the context shared by every render.
	GlobalContext(data any) error
}
