package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-portfolio/pkg/profile"
)

func runCLI(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	base := []string{
		"--storage", "file",
		"--storage-dir", dir,
		"--env-file", filepath.Join(dir, "missing.env"),
	}
	root.SetArgs(append(base, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, stderr, err := runCLI(t, dir, args...)
	require.NoError(t, err, "args %v, stderr %s", args, stderr)
	return out
}

func TestCLI_MutationsPersistAcrossInvocations(t *testing.T) {
	dir := t.TempDir()

	mustRun(t, dir, "set", "name", "Jane Doe")
	mustRun(t, dir, "set", "title", "Full Stack Developer")
	mustRun(t, dir, "contact", "email", "jane@example.com")
	mustRun(t, dir, "skill", "add", "Go", "Rust", "Go", " ")
	mustRun(t, dir, "skill", "remove", "Rust")
	out := mustRun(t, dir, "project", "add", "--title", "Ledger", "--tech", "Go", "--github", "https://github.com/jane/ledger")
	assert.Contains(t, out, "added project")
	mustRun(t, dir, "theme", "#FF0000")

	raw := mustRun(t, dir, "show", "--format", "json")
	var p profile.Profile
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, "Jane Doe", p.Name)
	assert.Equal(t, "Full Stack Developer", p.Title)
	assert.Equal(t, "jane@example.com", p.Contact.Email)
	assert.Equal(t, []string{"Go"}, p.Skills)
	require.Len(t, p.Projects, 1)
	assert.Equal(t, "Ledger", p.Projects[0].Title)
	assert.NotZero(t, p.Projects[0].ID)
	assert.Equal(t, "#ff0000", p.ThemeColor)

	list := mustRun(t, dir, "project", "list")
	assert.Contains(t, list, "Ledger")

	mustRun(t, dir, "project", "remove", strconv.FormatInt(p.Projects[0].ID, 10))
	raw = mustRun(t, dir, "show", "--format", "json")
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Empty(t, p.Projects)
}

func TestCLI_NoOpReportsNothingChanged(t *testing.T) {
	dir := t.TempDir()
	out := mustRun(t, dir, "skill", "remove", "Cobol")
	assert.Contains(t, out, "nothing changed")
	_, err := os.Stat(filepath.Join(dir, "portfolioData.json"))
	assert.True(t, os.IsNotExist(err), "no-op should not write the cache")
}

func TestCLI_ExportWritesNamedFile(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "site")

	mustRun(t, dir, "set", "name", "Jane Doe")
	mustRun(t, dir, "set", "bio", "<b>hi</b>")
	path := strings.TrimSpace(mustRun(t, dir, "export", "--dir", outDir))
	assert.Equal(t, filepath.Join(outDir, "jane_doe.html"), path)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "<title>Jane Doe - Portfolio</title>")
	assert.Contains(t, string(body), "&lt;b&gt;hi&lt;/b&gt;")
	assert.Contains(t, string(body), "#3b82f6dd")
}

func TestCLI_ExportFallbackFilename(t *testing.T) {
	dir := t.TempDir()
	path := strings.TrimSpace(mustRun(t, dir, "export", "--dir", dir))
	assert.Equal(t, filepath.Join(dir, "portfolio.html"), path)
}

func TestCLI_ExportMarkdownUsesMarkdownExtension(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "set", "name", "Jane Doe")

	path := strings.TrimSpace(mustRun(t, dir, "export", "--dir", dir, "--renderer", "markdown"))
	assert.Equal(t, filepath.Join(dir, "jane_doe.md"), path)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "# Jane Doe")
}

func TestCLI_PresetFillsBlankFieldsForRenderOnly(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "set", "name", "Jane Doe")

	preset := filepath.Join(dir, "preset.yaml")
	require.NoError(t, os.WriteFile(preset, []byte("fields:\n  title: Staff Engineer\n  name: Someone Else\nskills:\n  - Go\n"), 0o644))

	out := mustRun(t, dir, "preview", "--preset", preset)
	assert.Contains(t, out, "Staff Engineer")
	assert.Contains(t, out, "Jane Doe")
	assert.NotContains(t, out, "Someone Else")

	path := strings.TrimSpace(mustRun(t, dir, "export", "--dir", dir, "--preset", preset))
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Staff Engineer")

	raw := mustRun(t, dir, "show", "--format", "json")
	var p profile.Profile
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Empty(t, p.Title, "preset must not reach the cache")
	assert.Empty(t, p.Skills)

	_, _, err = runCLI(t, dir, "preview", "--preset", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestCLI_TemplatesDirOverridesPage(t *testing.T) {
	dir := t.TempDir()
	templates := filepath.Join(dir, "layout")
	require.NoError(t, os.MkdirAll(filepath.Join(templates, "templates"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(templates, "templates", "portfolio.tmpl"),
		[]byte("<h1>{{ name|emit:mode }}</h1> by {{ generator }}"),
		0o644,
	))
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("render:\n  templates_dir: "+templates+"\n"), 0o644))

	mustRun(t, dir, "set", "name", "Jane & Co")
	out := mustRun(t, dir, "--config", configFile, "preview")
	assert.Equal(t, "<h1>Jane &amp; Co</h1> by go-portfolio", out)
}

func TestCLI_PreviewMarkdown(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "set", "name", "Jane Doe")
	mustRun(t, dir, "skill", "add", "Go")

	out := mustRun(t, dir, "preview", "--markdown", "--plain")
	assert.Contains(t, out, "# Jane Doe")
	assert.Contains(t, out, "Go")

	html := mustRun(t, dir, "preview", "--appearance", "dark")
	assert.Contains(t, html, "<!DOCTYPE html>")
}

func TestCLI_Errors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := runCLI(t, dir, "theme", "blue")
	assert.Error(t, err)

	_, _, err = runCLI(t, dir, "project", "add", "--description", "no title")
	assert.Error(t, err)

	_, _, err = runCLI(t, dir, "set", "age", "42")
	assert.ErrorIs(t, err, profile.ErrUnknownField)

	_, _, err = runCLI(t, dir, "reset")
	assert.Error(t, err)

	_, _, err = runCLI(t, dir, "project", "remove", "abc")
	assert.Error(t, err)
}

func TestCLI_Reset(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "set", "name", "Jane Doe")
	mustRun(t, dir, "reset", "--yes")

	raw := mustRun(t, dir, "show", "--format", "json")
	var p profile.Profile
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Empty(t, p.Name)
	assert.Equal(t, profile.DefaultThemeColor, p.ThemeColor)
}

func TestCLI_YAMLStoragePath(t *testing.T) {
	dir := t.TempDir()
	cache := filepath.Join(dir, "me.yaml")
	mustRun(t, dir, "--storage-path", cache, "set", "name", "Jane Doe")

	data, err := os.ReadFile(cache)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Jane Doe")
}

func TestCLI_Version(t *testing.T) {
	out := mustRun(t, t.TempDir(), "version")
	assert.Contains(t, out, "portfolio "+Version)
}

func TestCLI_WatchNeedsFileDriver(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runCLI(t, dir, "--storage", "memory", "watch")
	assert.Error(t, err)
}
