package render

import (
	"context"

	"github.com/goliatone/go-portfolio/pkg/profile"
)

// Renderer converts a Profile into a byte representation (HTML, Markdown).
// Implementations must be pure: the same profile and options always produce
// the same bytes.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, p profile.Profile, options RenderOptions) ([]byte, error)
}
