package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-portfolio/pkg/orchestrator"
	"github.com/goliatone/go-portfolio/pkg/profile"
	"github.com/goliatone/go-portfolio/pkg/render"
	"github.com/goliatone/go-portfolio/pkg/storage"
	"github.com/goliatone/go-portfolio/pkg/testsupport"
)

func TestOrchestrator_DefaultRenderers(t *testing.T) {
	orch := orchestrator.New()
	if diff := cmp.Diff([]string{"html", "markdown"}, orch.Renderers()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_GenerateFromSource(t *testing.T) {
	adapter := storage.NewMemoryAdapter(storage.FormatJSON)
	if err := adapter.Save(testsupport.Context(), testsupport.SampleProfile()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	out, err := orchestrator.New().Generate(testsupport.Context(), orchestrator.Request{Source: adapter})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "<title>Jane Doe - Portfolio</title>") {
		t.Fatalf("expected rendered sample profile")
	}
}

func TestOrchestrator_GenerateEmptySourceUsesDefault(t *testing.T) {
	out, err := orchestrator.New().Generate(testsupport.Context(), orchestrator.Request{
		Source: storage.NewMemoryAdapter(storage.FormatJSON),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "#3b82f6dd") {
		t.Fatalf("expected default theme color in output")
	}
}

func TestOrchestrator_MarkdownRenderer(t *testing.T) {
	p := testsupport.SampleProfile()
	out, err := orchestrator.New().Generate(testsupport.Context(), orchestrator.Request{
		Profile:  &p,
		Renderer: "markdown",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasPrefix(string(out), "# Jane Doe") {
		t.Fatalf("expected markdown heading, got %q", out)
	}
}

func TestOrchestrator_Export(t *testing.T) {
	p := profile.New()
	p.Name = "Jane Doe"

	artifact, err := orchestrator.New().Export(testsupport.Context(), orchestrator.Request{Profile: &p})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if artifact.Filename != "jane_doe.html" {
		t.Fatalf("unexpected filename %q", artifact.Filename)
	}
	if artifact.ContentType != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", artifact.ContentType)
	}
}

func TestOrchestrator_Errors(t *testing.T) {
	orch := orchestrator.New()
	ctx := testsupport.Context()

	if _, err := orch.Generate(ctx, orchestrator.Request{}); err == nil {
		t.Fatalf("expected missing profile and source to fail")
	}

	p := profile.New()
	if _, err := orch.Generate(ctx, orchestrator.Request{Profile: &p, Renderer: "pdf"}); !errors.Is(err, render.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown renderer, got %v", err)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := orch.Generate(canceled, orchestrator.Request{Profile: &p}); err == nil {
		t.Fatalf("expected canceled context to fail")
	}
}

func TestOrchestrator_FallsBackToFirstRenderer(t *testing.T) {
	registry, err := render.NewRegistry(namedRenderer("zeta"), namedRenderer("alpha"))
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	orch := orchestrator.New(orchestrator.WithRegistry(registry), orchestrator.WithDefaultRenderer("missing"))

	p := profile.New()
	out, err := orch.Generate(testsupport.Context(), orchestrator.Request{Profile: &p})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(out) != "alpha" {
		t.Fatalf("expected first registered renderer by name, got %q", out)
	}
}

func TestOrchestrator_TransformersWorkOnACopy(t *testing.T) {
	orch := orchestrator.New(orchestrator.WithTransformer(
		orchestrator.TransformerFunc(func(_ context.Context, p *profile.Profile) error {
			p.Name = strings.ToUpper(p.Name)
			p.Skills = append(p.Skills, "Injected")
			return nil
		}),
	))

	p := testsupport.SampleProfile()
	out, err := orch.Generate(testsupport.Context(), orchestrator.Request{Profile: &p})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "JANE DOE") || !strings.Contains(string(out), `<span class="skill">Injected</span>`) {
		t.Fatalf("transformer output not rendered")
	}
	if p.Name != "Jane Doe" || len(p.Skills) != 3 {
		t.Fatalf("request profile mutated: %+v", p)
	}

	failing := orchestrator.New(orchestrator.WithTransformer(
		orchestrator.TransformerFunc(func(context.Context, *profile.Profile) error { return errors.New("nope") }),
	))
	if _, err := failing.Generate(testsupport.Context(), orchestrator.Request{Profile: &p}); err == nil {
		t.Fatalf("expected transformer error to propagate")
	}
}

func TestOrchestrator_RequestTransformersRunAfterConfigured(t *testing.T) {
	orch := orchestrator.New(orchestrator.WithTransformer(
		orchestrator.TransformerFunc(func(_ context.Context, p *profile.Profile) error {
			p.Title = "configured"
			return nil
		}),
	))
	preset, err := orchestrator.NewPresetTransformer([]byte(`{"override": true, "fields": {"title": "from preset"}}`))
	if err != nil {
		t.Fatalf("preset: %v", err)
	}

	p := testsupport.SampleProfile()
	out, err := orch.Generate(testsupport.Context(), orchestrator.Request{
		Profile:      &p,
		Transformers: []orchestrator.Transformer{nil, preset},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "from preset") || strings.Contains(string(out), "configured") {
		t.Fatalf("request transformer did not run last")
	}

	plain, err := orch.Generate(testsupport.Context(), orchestrator.Request{Profile: &p})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if strings.Contains(string(plain), "from preset") {
		t.Fatalf("request transformer leaked into a later request")
	}
}

type namedRenderer string

func (n namedRenderer) Name() string        { return string(n) }
func (n namedRenderer) ContentType() string { return "text/plain" }
func (n namedRenderer) Render(context.Context, profile.Profile, render.RenderOptions) ([]byte, error) {
	return []byte(n), nil
}
