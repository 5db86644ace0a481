package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-portfolio/pkg/profile"
)

// LoadProfile reads a JSON profile fixture.
func LoadProfile(path string) (profile.Profile, error) {
	if path == "" {
		return profile.Profile{}, errors.New("testsupport: profile path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("testsupport: read profile: %w", err)
	}
	var out profile.Profile
	if err := json.Unmarshal(data, &out); err != nil {
		return profile.Profile{}, fmt.Errorf("testsupport: unmarshal profile: %w", err)
	}
	return out, nil
}

// MustLoadProfile is LoadProfile failing the test on error.
func MustLoadProfile(t *testing.T, path string) profile.Profile {
	t.Helper()

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	return p
}

// SampleProfile returns a fully populated profile used across renderer and
// store tests.
func SampleProfile() profile.Profile {
	return profile.Profile{
		Name:         "Jane Doe",
		Title:        "Full Stack Developer",
		Bio:          "I build reliable tools for small teams.",
		ProfileImage: "https://example.com/jane.jpg",
		Skills:       []string{"Go", "Rust", "TypeScript"},
		Projects: []profile.Project{
			{
				ID:           1700000000000,
				Title:        "Ledger CLI",
				Description:  "Plain-text accounting helper.",
				Technologies: "Go, cobra",
				GitHubURL:    "https://github.com/jane/ledger",
				DemoURL:      "https://ledger.jane.dev",
			},
			{
				ID:          1700000000001,
				Title:       "Notes",
				Description: "Markdown notebook.",
			},
		},
		Contact: profile.Contact{
			Email:    "jane@example.com",
			Phone:    "+1 555 0100",
			LinkedIn: "https://linkedin.com/in/jane",
			GitHub:   "https://github.com/jane",
			Website:  "https://jane.dev",
		},
		ThemeColor: "#3b82f6",
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
