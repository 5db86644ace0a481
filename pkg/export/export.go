// Package export packages a rendered portfolio as a downloadable file.
package export

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/goliatone/go-portfolio/pkg/profile"
	"github.com/goliatone/go-portfolio/pkg/render"
)

// FallbackFilename is used when the profile has no name.
const FallbackFilename = "portfolio.html"

const fallbackStem = "portfolio"

// whitespaceRun also covers \v, no-break and other Unicode spaces, and the BOM.
var whitespaceRun = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)

var extensions = map[string]string{
	"text/html":     ".html",
	"text/markdown": ".md",
	"text/plain":    ".txt",
}

// Filename derives the download name from a profile name: every whitespace
// run becomes "_", the result is lower-cased and ".html" is appended. Leading
// and trailing whitespace turn into underscores as well.
func Filename(name string) string {
	return FilenameFor(name, "")
}

// FilenameFor is Filename with the extension picked from contentType.
// Unknown or empty content types fall back to ".html".
func FilenameFor(name, contentType string) string {
	stem := fallbackStem
	if name != "" {
		stem = strings.ToLower(whitespaceRun.ReplaceAllString(name, "_"))
	}
	return stem + Extension(contentType)
}

// Extension maps a renderer content type to a file extension.
func Extension(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ".html"
	}
	if ext, ok := extensions[mediaType]; ok {
		return ext
	}
	return ".html"
}

// Artifact is a rendered document ready to be saved.
type Artifact struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Build renders p with renderer and names the result after the profile, using
// the extension that matches the renderer's content type.
func Build(ctx context.Context, renderer render.Renderer, p profile.Profile, options render.RenderOptions) (Artifact, error) {
	if renderer == nil {
		return Artifact{}, errors.New("export: renderer is required")
	}
	body, err := renderer.Render(ctx, p, options)
	if err != nil {
		return Artifact{}, fmt.Errorf("export: render %s: %w", renderer.Name(), err)
	}
	contentType := renderer.ContentType()
	return Artifact{
		Filename:    FilenameFor(p.Name, contentType),
		ContentType: contentType,
		Body:        body,
	}, nil
}

// WriteFile saves the artifact under dir and returns the written path. A blank
// dir means the working directory.
func (a Artifact) WriteFile(dir string) (string, error) {
	if a.Filename == "" {
		return "", errors.New("export: artifact filename is empty")
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: create dir: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(a.Filename))
	if err := os.WriteFile(path, a.Body, 0o644); err != nil {
		return "", fmt.Errorf("export: write %s: %w", path, err)
	}
	return path, nil
}
