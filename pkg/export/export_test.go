package export_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-portfolio/pkg/export"
	"github.com/goliatone/go-portfolio/pkg/profile"
	"github.com/goliatone/go-portfolio/pkg/render"
	htmlrenderer "github.com/goliatone/go-portfolio/pkg/renderers/html"
	"github.com/goliatone/go-portfolio/pkg/renderers/terminal"
	"github.com/goliatone/go-portfolio/pkg/testsupport"
)

func TestFilename(t *testing.T) {
	cases := map[string]string{
		"Jane Doe":            "jane_doe.html",
		"":                    "portfolio.html",
		"Ada  King\tLovelace": "ada_king_lovelace.html",
		" Jane ":              "_jane_.html",
		"ÉLODIE":              "élodie.html",
		"Jane\u00a0Doe":       "jane_doe.html",
		"Jane\vDoe":           "jane_doe.html",
		"Jane\u2003Doe":       "jane_doe.html",
		"Jane\u3000\ufeffDoe": "jane_doe.html",
	}
	for name, want := range cases {
		if got := export.Filename(name); got != want {
			t.Errorf("Filename(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestBuild_JaneDoe(t *testing.T) {
	renderer, err := htmlrenderer.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	p := profile.New()
	p.Name = "Jane Doe"

	artifact, err := export.Build(testsupport.Context(), renderer, p, render.RenderOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if artifact.Filename != "jane_doe.html" {
		t.Fatalf("unexpected filename %q", artifact.Filename)
	}
	if artifact.ContentType != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", artifact.ContentType)
	}
	if !strings.Contains(string(artifact.Body), "<title>Jane Doe - Portfolio</title>") {
		t.Fatalf("artifact body missing title")
	}

	dir := t.TempDir()
	path, err := artifact.WriteFile(dir)
	if err != nil {
		t.Fatalf("write file: %v", err)
	}
	if path != filepath.Join(dir, "jane_doe.html") {
		t.Fatalf("unexpected path %q", path)
	}
	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(written) != string(artifact.Body) {
		t.Fatalf("written body differs from artifact")
	}
}

func TestBuild_EmptyNameFallback(t *testing.T) {
	renderer, err := htmlrenderer.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	artifact, err := export.Build(testsupport.Context(), renderer, profile.New(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if artifact.Filename != "portfolio.html" {
		t.Fatalf("unexpected filename %q", artifact.Filename)
	}
}

type failingRenderer struct{}

func (failingRenderer) Name() string        { return "broken" }
func (failingRenderer) ContentType() string { return "text/plain" }
func (failingRenderer) Render(context.Context, profile.Profile, render.RenderOptions) ([]byte, error) {
	return nil, errors.New("boom")
}

func TestBuild_Errors(t *testing.T) {
	if _, err := export.Build(testsupport.Context(), nil, profile.New(), render.RenderOptions{}); err == nil {
		t.Fatalf("expected nil renderer to fail")
	}
	if _, err := export.Build(testsupport.Context(), failingRenderer{}, profile.New(), render.RenderOptions{}); err == nil {
		t.Fatalf("expected render failure to propagate")
	}
	if _, err := (export.Artifact{}).WriteFile(t.TempDir()); err == nil {
		t.Fatalf("expected empty filename to fail")
	}
}

func TestFilenameFor_ContentType(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		want        string
	}{
		{"Jane Doe", "text/html; charset=utf-8", "jane_doe.html"},
		{"Jane Doe", "text/markdown; charset=utf-8", "jane_doe.md"},
		{"Jane Doe", "text/plain", "jane_doe.txt"},
		{"Jane Doe", "application/pdf", "jane_doe.html"},
		{"Jane Doe", "", "jane_doe.html"},
		{"", "text/markdown", "portfolio.md"},
	}
	for _, tc := range cases {
		if got := export.FilenameFor(tc.name, tc.contentType); got != tc.want {
			t.Errorf("FilenameFor(%q, %q) = %q, want %q", tc.name, tc.contentType, got, tc.want)
		}
	}
}

func TestBuild_MarkdownRendererUsesMarkdownExtension(t *testing.T) {
	p := profile.New()
	p.Name = "Jane Doe"

	artifact, err := export.Build(testsupport.Context(), terminal.New(), p, render.RenderOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if artifact.Filename != "jane_doe.md" {
		t.Fatalf("unexpected filename %q", artifact.Filename)
	}

	artifact, err = export.Build(testsupport.Context(), terminal.New(), profile.New(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if artifact.Filename != "portfolio.md" {
		t.Fatalf("unexpected fallback filename %q", artifact.Filename)
	}
}
