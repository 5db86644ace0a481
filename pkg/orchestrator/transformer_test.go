package orchestrator_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-portfolio/pkg/orchestrator"
	"github.com/goliatone/go-portfolio/pkg/profile"
)

func TestPresetTransformer_FillsBlankFields(t *testing.T) {
	preset, err := orchestrator.NewPresetTransformer([]byte(`{
		"fields": {"title": "Engineer", "name": "Ignored", "themeColor": "#10b981"},
		"contact": {"website": "https://example.com", "email": "ignored@example.com"},
		"skills": ["Go", "Rust"]
	}`))
	if err != nil {
		t.Fatalf("new preset: %v", err)
	}

	p := profile.New()
	p.Name = "Jane"
	p.Contact.Email = "jane@example.com"
	p.Skills = []string{"Go"}

	if err := preset.Transform(context.Background(), &p); err != nil {
		t.Fatalf("transform: %v", err)
	}

	if p.Name != "Jane" || p.Title != "Engineer" || p.ThemeColor != "#10b981" {
		t.Fatalf("unexpected scalar fields: %+v", p)
	}
	want := profile.Contact{Email: "jane@example.com", Website: "https://example.com"}
	if diff := cmp.Diff(want, p.Contact); diff != "" {
		t.Fatalf("contact mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Go", "Rust"}, p.Skills); diff != "" {
		t.Fatalf("skills mismatch (-want +got):\n%s", diff)
	}
}

func TestPresetTransformer_OverrideFromYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"preset.yaml": {Data: []byte("override: true\nfields:\n  name: Preset Name\n  themeColor: \"#000000\"\n")},
	}
	preset, err := orchestrator.NewPresetTransformerFromFS(fsys, "preset.yaml")
	if err != nil {
		t.Fatalf("load preset: %v", err)
	}

	p := profile.New()
	p.Name = "Jane"
	p.ThemeColor = "#ff0000"
	if err := preset.Transform(context.Background(), &p); err != nil {
		t.Fatalf("transform: %v", err)
	}
	if p.Name != "Preset Name" || p.ThemeColor != "#000000" {
		t.Fatalf("override not applied: %+v", p)
	}
}

func TestPresetTransformer_Errors(t *testing.T) {
	if _, err := orchestrator.NewPresetTransformer([]byte("   ")); err == nil {
		t.Fatalf("expected empty document to fail")
	}
	if _, err := orchestrator.NewPresetTransformer([]byte("fields: [unclosed")); err == nil {
		t.Fatalf("expected malformed document to fail")
	}
	if _, err := orchestrator.NewPresetTransformerFromFS(nil, "x"); err == nil {
		t.Fatalf("expected nil fs to fail")
	}
	if _, err := orchestrator.NewPresetTransformerFromFS(fstest.MapFS{}, "missing.json"); err == nil {
		t.Fatalf("expected missing file to fail")
	}

	preset, err := orchestrator.NewPresetTransformer([]byte(`{"fields": {"nickname": "jd"}}`))
	if err != nil {
		t.Fatalf("new preset: %v", err)
	}
	p := profile.New()
	if err := preset.Transform(context.Background(), &p); !errors.Is(err, profile.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := preset.Transform(context.Background(), nil); err == nil {
		t.Fatalf("expected nil profile to fail")
	}
}
