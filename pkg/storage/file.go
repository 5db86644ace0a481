package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-portfolio/pkg/profile"
)

// FileOption configures a FileAdapter.
type FileOption func(*FileAdapter)

// WithFileKey overrides the cache key used as the file stem.
func WithFileKey(key string) FileOption {
	return func(a *FileAdapter) {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			a.key = trimmed
		}
	}
}

// WithFileFormat selects the encoding written to disk.
func WithFileFormat(format Format) FileOption {
	return func(a *FileAdapter) {
		if format != "" {
			a.format = format
		}
	}
}

// FileAdapter keeps the profile in a single file under a directory.
type FileAdapter struct {
	dir    string
	key    string
	ext    string
	format Format
}

var _ Adapter = (*FileAdapter)(nil)

// NewFileAdapter constructs a file-backed cache rooted at dir.
func NewFileAdapter(dir string, options ...FileOption) *FileAdapter {
	a := &FileAdapter{
		dir:    dir,
		key:    DefaultKey,
		format: FormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	return a
}

// NewFileAdapterForPath constructs an adapter for an explicit file path, with
// the format inferred from its extension.
func NewFileAdapterForPath(path string) *FileAdapter {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	format := FormatFromPath(path)
	if format == FormatAuto {
		format = FormatJSON
	}
	return &FileAdapter{
		dir:    filepath.Dir(path),
		key:    strings.TrimSuffix(base, ext),
		ext:    ext,
		format: format,
	}
}

// Path returns the file the adapter reads and writes.
func (a *FileAdapter) Path() string {
	ext := a.ext
	if ext == "" {
		ext = a.format.Extension()
	}
	return filepath.Join(a.dir, a.key+ext)
}

// Format reports the encoding used on disk.
func (a *FileAdapter) Format() Format {
	return a.format
}

// Load implements Adapter.
func (a *FileAdapter) Load(ctx context.Context) (profile.Profile, bool, error) {
	if err := ctx.Err(); err != nil {
		return profile.Profile{}, false, err
	}
	data, err := os.ReadFile(a.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return profile.Profile{}, false, nil
	}
	if err != nil {
		return profile.Profile{}, false, wrapErr("load", a.key, err)
	}
	p, err := Decode(a.format, data)
	if err != nil {
		return profile.Profile{}, false, wrapErr("load", a.key, err)
	}
	return p, true, nil
}

// Save implements Adapter. The payload is written to a temporary file first
// and renamed into place so readers never observe a partial document.
func (a *FileAdapter) Save(ctx context.Context, p profile.Profile) error {
	if err := ctx.Err(); err != nil {
		return wrapErr("save", a.key, err)
	}
	data, err := Encode(a.format, p)
	if err != nil {
		return wrapErr("save", a.key, err)
	}
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return wrapErr("save", a.key, err)
	}

	tmp, err := os.CreateTemp(a.dir, "."+a.key+"-*.tmp")
	if err != nil {
		return wrapErr("save", a.key, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return wrapErr("save", a.key, err)
	}
	if err := tmp.Close(); err != nil {
		return wrapErr("save", a.key, err)
	}
	if err := os.Rename(tmpName, a.Path()); err != nil {
		return wrapErr("save", a.key, err)
	}
	return nil
}
