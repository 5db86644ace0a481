package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-portfolio/pkg/profile"
)

// Transformer adjusts a profile before it is rendered. Implementations work
// on the orchestrator's copy, so the cached profile is never touched.
type Transformer interface {
	Transform(ctx context.Context, p *profile.Profile) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, p *profile.Profile) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, p *profile.Profile) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, p)
}

// PresetTransformer fills profile fields from a declarative JSON or YAML
// document. By default only blank fields are filled; set "override" to
// replace existing values:
//
//	{
//	  "override": false,
//	  "fields": {"title": "Software Engineer", "themeColor": "#10b981"},
//	  "contact": {"website": "https://example.com"},
//	  "skills": ["Go"]
//	}
//
// Skills are appended unless already present.
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Override bool              `json:"override" yaml:"override"`
	Fields   map[string]string `json:"fields" yaml:"fields"`
	Contact  map[string]string `json:"contact" yaml:"contact"`
	Skills   []string          `json:"skills" yaml:"skills"`
}

// NewPresetTransformer parses a preset document. JSON is tried first, then
// YAML.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := json.Unmarshal(data, &document); err != nil {
		if yamlErr := yaml.Unmarshal(data, &document); yamlErr != nil {
			return nil, fmt.Errorf("preset transformer: parse document: %w", errors.Join(err, yamlErr))
		}
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the preset onto p.
func (t *PresetTransformer) Transform(ctx context.Context, p *profile.Profile) error {
	if p == nil {
		return errors.New("preset transformer: profile is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	next := *p
	for _, field := range sortedKeys(t.document.Fields) {
		if !t.document.Override && !fieldUnset(next, field) {
			continue
		}
		updated, err := next.WithField(field, t.document.Fields[field])
		if err != nil {
			return fmt.Errorf("preset transformer: %w", err)
		}
		next = updated
	}

	for _, field := range sortedKeys(t.document.Contact) {
		if !t.document.Override && strings.TrimSpace(contactValue(next.Contact, field)) != "" {
			continue
		}
		updated, err := next.WithContactField(field, t.document.Contact[field])
		if err != nil {
			return fmt.Errorf("preset transformer: %w", err)
		}
		next = updated
	}

	for _, skill := range t.document.Skills {
		next, _ = next.AddSkill(skill)
	}

	*p = next
	return nil
}

// fieldUnset treats the default theme color as unset so presets can brand a
// fresh profile.
func fieldUnset(p profile.Profile, field string) bool {
	value := strings.TrimSpace(fieldValue(p, field))
	if field == profile.FieldThemeColor {
		return value == "" || value == profile.DefaultThemeColor
	}
	return value == ""
}

func fieldValue(p profile.Profile, field string) string {
	switch field {
	case profile.FieldName:
		return p.Name
	case profile.FieldTitle:
		return p.Title
	case profile.FieldBio:
		return p.Bio
	case profile.FieldProfileImage:
		return p.ProfileImage
	case profile.FieldThemeColor:
		return p.ThemeColor
	default:
		return ""
	}
}

func contactValue(c profile.Contact, field string) string {
	switch field {
	case profile.ContactEmail:
		return c.Email
	case profile.ContactPhone:
		return c.Phone
	case profile.ContactLinkedIn:
		return c.LinkedIn
	case profile.ContactGitHub:
		return c.GitHub
	case profile.ContactWebsite:
		return c.Website
	default:
		return ""
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
