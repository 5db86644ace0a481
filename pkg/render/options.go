package render

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// EscapePolicy controls how user-supplied values reach the document.
type EscapePolicy string

const (
	// EscapeHTML escapes every field value. It is the default.
	EscapeHTML EscapePolicy = "escape"
	// EscapeRaw inserts values verbatim. Any markup in a field becomes live
	// markup in the page, so only use it with trusted input.
	EscapeRaw EscapePolicy = "raw"
)

// ParseEscapePolicy maps a config string to a policy. Unknown values resolve
// to EscapeHTML.
func ParseEscapePolicy(value string) EscapePolicy {
	if strings.EqualFold(strings.TrimSpace(value), string(EscapeRaw)) {
		return EscapeRaw
	}
	return EscapeHTML
}

// RenderOptions describe per-request choices that renderers can use to
// customise their output without touching the profile.
type RenderOptions struct {
	// Escape selects the escaping policy. The zero value escapes.
	Escape EscapePolicy
	// Appearance picks a theme variant ("light" or "dark"). Empty means light.
	Appearance string
	// MarkdownBio renders the bio as sanitized Markdown instead of plain text.
	MarkdownBio bool
	// Theme carries pre-resolved theme tokens. When nil the renderer resolves
	// its own from the profile theme color and Appearance.
	Theme *theme.RendererConfig
	// Styled asks text renderers for terminal styling.
	Styled bool
}

// EscapePolicyOrDefault returns the configured policy, defaulting to
// EscapeHTML.
func (o RenderOptions) EscapePolicyOrDefault() EscapePolicy {
	if o.Escape == "" {
		return EscapeHTML
	}
	return ParseEscapePolicy(string(o.Escape))
}
