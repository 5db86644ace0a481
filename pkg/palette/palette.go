package palette

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/goliatone/go-portfolio/pkg/profile"
)

// Appearance selects the page surface variant.
type Appearance string

const (
	// AppearanceLight is the default white-card layout.
	AppearanceLight Appearance = "light"
	// AppearanceDark swaps the surfaces for dark ones and lifts the accent.
	AppearanceDark Appearance = "dark"
)

// ThemeName is the built-in manifest name.
const ThemeName = "portfolio"

// ParseAppearance maps user input to an Appearance. Blank input is light.
func ParseAppearance(raw string) (Appearance, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "light":
		return AppearanceLight, nil
	case "dark":
		return AppearanceDark, nil
	default:
		return "", fmt.Errorf("palette: unknown appearance %q", raw)
	}
}

// NormalizeColor parses a hex color (#rgb or #rrggbb, case-insensitive) and
// returns it in canonical #rrggbb form. The boolean is false when the input
// is not a valid hex color.
func NormalizeColor(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	digits := strings.TrimPrefix(trimmed, "#")
	if len(digits) != 3 && len(digits) != 6 {
		return "", false
	}
	for _, r := range digits {
		if !isHexDigit(r) {
			return "", false
		}
	}
	c, err := colorful.Hex("#" + digits)
	if err != nil {
		return "", false
	}
	return c.Hex(), true
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// AccentFor returns the canonical accent for a profile theme color, falling
// back to the default color when the value does not parse.
func AccentFor(raw string) string {
	if color, ok := NormalizeColor(raw); ok {
		return color
	}
	color, _ := NormalizeColor(profile.DefaultThemeColor)
	return color
}

// Lighten blends a hex color toward white by amount (0..1) in Lab space.
func Lighten(hex string, amount float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	return c.BlendLab(white, amount).Clamped().Hex()
}

// Manifest returns the built-in theme manifest. Base tokens describe the
// light page; the dark variant overrides the surface tokens.
func Manifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    ThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"page-background": "linear-gradient(135deg, #667eea 0%, #764ba2 100%)",
			"surface":         "white",
			"text":            "#333",
			"muted":           "#666",
			"card":            "#f8f9fa",
			"card-border":     "#e9ecef",
			"link-surface":    "white",
			"heading":         "#333",
		},
		Variants: map[string]theme.Variant{
			string(AppearanceDark): {
				Tokens: map[string]string{
					"page-background": "linear-gradient(135deg, #111827 0%, #1f2937 100%)",
					"surface":         "#1f2937",
					"text":            "#e5e7eb",
					"muted":           "#9ca3af",
					"card":            "#111827",
					"card-border":     "#374151",
					"link-surface":    "#111827",
					"heading":         "#f9fafb",
				},
			},
		},
	}
}

// Resolve merges base and variant tokens for the requested appearance and
// injects the accent color, returning a go-theme renderer config. Tokens are
// also exposed as CSS custom properties under CSSVars.
func Resolve(manifest *theme.Manifest, appearance Appearance, themeColor string) *theme.RendererConfig {
	if manifest == nil {
		manifest = Manifest()
	}
	if appearance == "" {
		appearance = AppearanceLight
	}

	tokens := make(map[string]string, len(manifest.Tokens)+1)
	for key, value := range manifest.Tokens {
		tokens[key] = value
	}
	if variant, ok := manifest.Variants[string(appearance)]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
	}

	accent := AccentFor(themeColor)
	if appearance == AppearanceDark {
		accent = Lighten(accent, 0.15)
	}
	tokens["accent"] = accent

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:   manifest.Name,
		Variant: string(appearance),
		Tokens:  tokens,
		CSSVars: cssVars,
	}
}
