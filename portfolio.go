// Package portfolio renders a developer profile as a self-contained HTML
// portfolio page.
//
// The root package re-exports the common entry points. The building blocks
// live under pkg/: profile (data model), store (state with persistence),
// storage (cache backends), renderers (html and markdown), export and
// orchestrator.
package portfolio

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-portfolio/pkg/export"
	"github.com/goliatone/go-portfolio/pkg/orchestrator"
	"github.com/goliatone/go-portfolio/pkg/profile"
	"github.com/goliatone/go-portfolio/pkg/render"
	htmlrenderer "github.com/goliatone/go-portfolio/pkg/renderers/html"
)

// Profile is the record rendered into a page.
type Profile = profile.Profile

// Project is a single portfolio entry.
type Project = profile.Project

// Contact groups the optional contact links.
type Contact = profile.Contact

// RenderOptions describes per-request rendering choices such as the escape
// policy and appearance.
type RenderOptions = render.RenderOptions

// Artifact is a rendered page ready to be saved.
type Artifact = export.Artifact

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders p with the built-in HTML renderer.
func GenerateHTML(ctx context.Context, p Profile, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Profile:       &p,
		Renderer:      htmlrenderer.Name,
		RenderOptions: opts,
	})
}

// Export renders p and names the artifact after the profile, e.g.
// jane_doe.html.
func Export(ctx context.Context, p Profile, opts RenderOptions, options ...orchestrator.Option) (Artifact, error) {
	gen := orchestrator.New(options...)
	return gen.Export(ctx, orchestrator.Request{
		Profile:       &p,
		Renderer:      htmlrenderer.Name,
		RenderOptions: opts,
	})
}

// ExportFilename derives the download name for a profile name.
func ExportFilename(name string) string {
	return export.Filename(name)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeProvider installs a selector with default theme and variant names.
func WithThemeProvider(selector theme.ThemeSelector, defaultTheme, defaultVariant string) orchestrator.Option {
	return orchestrator.WithThemeProvider(selector, defaultTheme, defaultVariant)
}
