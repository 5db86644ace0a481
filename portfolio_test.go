package portfolio_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	portfolio "github.com/goliatone/go-portfolio"
	"github.com/goliatone/go-portfolio/pkg/storage"
	"github.com/goliatone/go-portfolio/pkg/testsupport"
)

func TestGenerateHTML(t *testing.T) {
	out, err := portfolio.GenerateHTML(context.Background(), testsupport.SampleProfile(), portfolio.RenderOptions{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, want := range []string{"<title>Jane Doe - Portfolio</title>", "Ledger CLI", "#3b82f620"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output", want)
		}
	}
}

func TestExport(t *testing.T) {
	artifact, err := portfolio.Export(context.Background(), testsupport.SampleProfile(), portfolio.RenderOptions{})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if artifact.Filename != "jane_doe.html" {
		t.Fatalf("filename = %q", artifact.Filename)
	}
	if got := portfolio.ExportFilename(""); got != "portfolio.html" {
		t.Fatalf("fallback filename = %q", got)
	}
}

func TestOpenStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	adapter, err := portfolio.OpenStorage(storage.Config{Driver: storage.DriverFile, Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	s, err := portfolio.OpenStore(ctx, adapter)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if _, err := s.AddSkill(ctx, "Go"); err != nil {
		t.Fatalf("add skill: %v", err)
	}

	reopened, err := portfolio.OpenStore(ctx, adapter)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if skills := reopened.Profile().Skills; len(skills) != 1 || skills[0] != "Go" {
		t.Fatalf("skills = %v", skills)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	if _, err := fs.Stat(portfolio.EmbeddedTemplates(), "templates/portfolio.tmpl"); err != nil {
		t.Fatalf("template missing: %v", err)
	}
}
