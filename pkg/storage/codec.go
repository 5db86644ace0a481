package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-portfolio/pkg/profile"
)

// Format selects the structured text encoding used for cached profiles.
type Format string

const (
	// FormatJSON encodes profiles as JSON (the default).
	FormatJSON Format = "json"
	// FormatYAML encodes profiles as YAML.
	FormatYAML Format = "yaml"
	// FormatAuto encodes as JSON and decodes JSON first, then YAML.
	FormatAuto Format = "auto"
)

// ParseFormat maps user input to a Format. Blank input yields FormatJSON.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "auto":
		return FormatAuto, nil
	default:
		return "", fmt.Errorf("storage: unsupported format %q", raw)
	}
}

// FormatFromPath infers the format from a file extension, falling back to
// FormatAuto for unknown extensions.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// Extension returns the file extension written for the format.
func (f Format) Extension() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// Encode serialises the profile using the requested format.
func Encode(format Format, p profile.Profile) ([]byte, error) {
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("storage: encode yaml: %w", err)
		}
		return data, nil
	case FormatJSON, FormatAuto, "":
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("storage: encode json: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("storage: unsupported format %q", format)
	}
}

// Decode parses a cached profile. No schema validation is applied beyond what
// the decoder enforces; any parse failure is reported as ErrMalformed.
func Decode(format Format, data []byte) (profile.Profile, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return profile.Profile{}, fmt.Errorf("%w: empty payload", ErrMalformed)
	}

	var p profile.Profile
	switch format {
	case FormatJSON, "":
		if err := json.Unmarshal(data, &p); err != nil {
			return profile.Profile{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return profile.Profile{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	case FormatAuto:
		if err := json.Unmarshal(data, &p); err != nil {
			p = profile.Profile{}
			if yamlErr := yaml.Unmarshal(data, &p); yamlErr != nil {
				return profile.Profile{}, fmt.Errorf("%w: invalid JSON or YAML", ErrMalformed)
			}
		}
	default:
		return profile.Profile{}, fmt.Errorf("storage: unsupported format %q", format)
	}
	return p.Normalize(), nil
}
