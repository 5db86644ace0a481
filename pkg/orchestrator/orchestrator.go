package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-portfolio/pkg/export"
	"github.com/goliatone/go-portfolio/pkg/palette"
	"github.com/goliatone/go-portfolio/pkg/profile"
	"github.com/goliatone/go-portfolio/pkg/render"
	htmlrenderer "github.com/goliatone/go-portfolio/pkg/renderers/html"
	"github.com/goliatone/go-portfolio/pkg/renderers/terminal"
	"github.com/goliatone/go-portfolio/pkg/storage"
)

const defaultRendererName = htmlrenderer.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithThemeSelector swaps the manifest source. Requests pick the theme and
// variant.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeProvider installs a selector together with the theme and variant
// used when a request names neither.
func WithThemeProvider(selector theme.ThemeSelector, name, variant string) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
		o.themeName = strings.TrimSpace(name)
		o.themeVariant = strings.TrimSpace(variant)
	}
}

// WithTransformer registers transformers that adjust the profile before it
// is rendered. They run in registration order on a copy of the profile.
func WithTransformer(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		for _, t := range transformers {
			if t != nil {
				o.transformers = append(o.transformers, t)
			}
		}
	}
}

// Orchestrator coordinates the pipeline from cached profile to rendered
// output. It applies defaults (HTML and Markdown renderers, built-in theme)
// while remaining open to dependency injection.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	themeSelector   theme.ThemeSelector
	themeName       string
	themeVariant    string
	transformers    []Transformer
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes a single render.
type Request struct {
	// Profile is rendered as given when set.
	Profile *profile.Profile

	// Source is loaded when Profile is nil. A missing entry renders the
	// default profile.
	Source storage.Adapter

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// ThemeName and ThemeVariant select the theme manifest. A blank variant
	// falls back to RenderOptions.Appearance, then the provider default.
	ThemeName    string
	ThemeVariant string

	RenderOptions render.RenderOptions

	// Transformers run after the orchestrator's own, for this request only.
	Transformers []Transformer
}

// Generate loads, transforms and renders the profile, returning the bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	renderer, p, opts, err := o.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	output, err := renderer.Render(ctx, p, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Export renders like Generate and packages the result as a named artifact.
func (o *Orchestrator) Export(ctx context.Context, req Request) (export.Artifact, error) {
	renderer, p, opts, err := o.prepare(ctx, req)
	if err != nil {
		return export.Artifact{}, err
	}
	artifact, err := export.Build(ctx, renderer, p, opts)
	if err != nil {
		return export.Artifact{}, fmt.Errorf("orchestrator: %w", err)
	}
	return artifact, nil
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

func (o *Orchestrator) prepare(ctx context.Context, req Request) (render.Renderer, profile.Profile, render.RenderOptions, error) {
	opts := req.RenderOptions
	if ctx == nil {
		return nil, profile.Profile{}, opts, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, profile.Profile{}, opts, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, profile.Profile{}, opts, err
	}

	p, err := o.resolveProfile(ctx, req)
	if err != nil {
		return nil, profile.Profile{}, opts, err
	}
	if err := applyTransformers(ctx, &p, o.transformers); err != nil {
		return nil, profile.Profile{}, opts, err
	}
	if err := applyTransformers(ctx, &p, req.Transformers); err != nil {
		return nil, profile.Profile{}, opts, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, profile.Profile{}, opts, err
	}

	if opts.Theme == nil {
		cfg, err := o.resolveTheme(req, p)
		if err != nil {
			return nil, profile.Profile{}, opts, err
		}
		opts.Theme = cfg
	}
	return renderer, p, opts, nil
}

func (o *Orchestrator) resolveProfile(ctx context.Context, req Request) (profile.Profile, error) {
	if req.Profile != nil {
		return req.Profile.Normalize(), nil
	}
	if req.Source == nil {
		return profile.Profile{}, errors.New("orchestrator: profile or source is required")
	}
	p, ok, err := req.Source.Load(ctx)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("orchestrator: load profile: %w", err)
	}
	if !ok {
		return profile.New(), nil
	}
	return p.Normalize(), nil
}

func applyTransformers(ctx context.Context, p *profile.Profile, transformers []Transformer) error {
	for _, t := range transformers {
		if t == nil {
			continue
		}
		if err := t.Transform(ctx, p); err != nil {
			return fmt.Errorf("orchestrator: transform profile: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) resolveTheme(req Request, p profile.Profile) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	name := firstNonEmpty(req.ThemeName, o.themeName, palette.ThemeName)
	variant := firstNonEmpty(req.ThemeVariant, req.RenderOptions.Appearance, o.themeVariant, string(palette.AppearanceLight))

	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	if selection == nil || selection.Manifest == nil {
		return nil, fmt.Errorf("orchestrator: theme %q returned no manifest", name)
	}

	cfg := palette.Resolve(selection.Manifest, palette.Appearance(selection.Variant), p.ThemeColor)
	if selection.Theme != "" {
		cfg.Theme = selection.Theme
	}
	return cfg, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.registry.Get(names[0])
}

func (o *Orchestrator) applyDefaults() {
	if o.registry == nil {
		registry, err := defaultRegistry()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderers: %w", err)
			return
		}
		o.registry = registry
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.themeSelector == nil {
		o.themeSelector = palette.NewSelector()
	}
}

func defaultRegistry() (*render.Registry, error) {
	page, err := htmlrenderer.New()
	if err != nil {
		return nil, err
	}
	return render.NewRegistry(page, terminal.New())
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
