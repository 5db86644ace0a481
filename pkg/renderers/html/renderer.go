package html

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-portfolio/pkg/palette"
	"github.com/goliatone/go-portfolio/pkg/profile"
	"github.com/goliatone/go-portfolio/pkg/render"
	rendertemplate "github.com/goliatone/go-portfolio/pkg/render/template"
	"github.com/goliatone/go-portfolio/pkg/render/template/gotemplate"
)

// Name is the registry key of the HTML renderer.
const Name = "html"

// ContentType of the exported document.
const ContentType = "text/html; charset=utf-8"

// Generator is exposed to templates as the "generator" global.
const Generator = "go-portfolio"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templatesDir     string
	templateName     string
	templateRenderer rendertemplate.TemplateRenderer
	selector         theme.ThemeSelector
	markdownBio      bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must contain TemplateName or the name set with WithTemplateName.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk. Templates missing
// from the directory are read from the template bundle.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templatesDir = path
	}
}

// WithTemplateName overrides the page template path inside the bundle.
func WithTemplateName(name string) Option {
	return func(cfg *config) {
		if name != "" {
			cfg.templateName = name
		}
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithThemeSelector swaps the manifest source used when RenderOptions carries
// no pre-resolved theme.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(cfg *config) {
		if selector != nil {
			cfg.selector = selector
		}
	}
}

// WithMarkdownBio renders the bio as sanitized Markdown for every call.
func WithMarkdownBio() Option {
	return func(cfg *config) {
		cfg.markdownBio = true
	}
}

// Renderer produces the self-contained portfolio page.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	templateName string
	selector     theme.ThemeSelector
	markdownBio  bool
	markdown     *markdownConverter
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:   TemplatesFS(),
		templateName: TemplateName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.selector == nil {
		cfg.selector = palette.NewSelector()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithBaseDir(cfg.templatesDir),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithGlobalData(map[string]any{"generator": Generator}),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:    renderer,
		templateName: cfg.templateName,
		selector:     cfg.selector,
		markdownBio:  cfg.markdownBio,
		markdown:     newMarkdownConverter(),
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return ContentType
}

// Render builds the page for p. It reads nothing from disk or network.
func (r *Renderer) Render(ctx context.Context, p profile.Profile, options render.RenderOptions) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, errors.New("html renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg, err := r.resolveTheme(p, options)
	if err != nil {
		return nil, err
	}

	view := buildView(p, cfg, options.EscapePolicyOrDefault())
	if r.markdownBio || options.MarkdownBio {
		bio, err := r.markdown.convert(p.Bio)
		if err != nil {
			return nil, fmt.Errorf("html renderer: convert bio: %w", err)
		}
		view.BioHTML = bio
	}

	result, err := r.templates.RenderTemplate(r.templateName, view)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) resolveTheme(p profile.Profile, options render.RenderOptions) (*theme.RendererConfig, error) {
	if options.Theme != nil {
		return options.Theme, nil
	}
	appearance, err := palette.ParseAppearance(options.Appearance)
	if err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}
	selection, err := r.selector.Select(palette.ThemeName, string(appearance))
	if err != nil {
		return nil, fmt.Errorf("html renderer: select theme: %w", err)
	}
	return palette.Resolve(selection.Manifest, appearance, p.ThemeColor), nil
}
