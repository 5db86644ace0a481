// Package terminal renders a profile as Markdown, optionally styled with
// glamour for display in a terminal.
package terminal

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/goliatone/go-portfolio/pkg/profile"
	"github.com/goliatone/go-portfolio/pkg/render"
)

// Name is the registry key of the Markdown renderer.
const Name = "markdown"

const defaultWordWrap = 80

// Option configures the renderer.
type Option func(*Renderer)

// WithWordWrap sets the wrap column used for styled output.
func WithWordWrap(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.wordWrap = width
		}
	}
}

// WithStyle forces a glamour standard style ("dark", "light", "notty").
// Without it the style follows RenderOptions.Appearance.
func WithStyle(style string) Option {
	return func(r *Renderer) {
		r.style = strings.TrimSpace(style)
	}
}

// Renderer emits Markdown. Set RenderOptions.Styled for ANSI output.
type Renderer struct {
	wordWrap int
	style    string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{wordWrap: defaultWordWrap}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/markdown; charset=utf-8"
}

// Render writes the profile as Markdown. Sections follow the page layout and
// are skipped when empty, except Contact.
func (r *Renderer) Render(ctx context.Context, p profile.Profile, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	md := Markdown(p)
	if !options.Styled {
		return []byte(md), nil
	}

	styler, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.styleFor(options.Appearance)),
		glamour.WithWordWrap(r.wordWrap),
	)
	if err != nil {
		return nil, fmt.Errorf("terminal renderer: configure glamour: %w", err)
	}
	out, err := styler.Render(md)
	if err != nil {
		return nil, fmt.Errorf("terminal renderer: style markdown: %w", err)
	}
	return []byte(out), nil
}

func (r *Renderer) styleFor(appearance string) string {
	if r.style != "" {
		return r.style
	}
	if strings.EqualFold(strings.TrimSpace(appearance), "light") {
		return "light"
	}
	return "dark"
}

// Markdown converts a profile into a Markdown document.
func Markdown(p profile.Profile) string {
	var b strings.Builder

	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = "Portfolio"
	}
	fmt.Fprintf(&b, "# %s\n", name)
	if title := strings.TrimSpace(p.Title); title != "" {
		fmt.Fprintf(&b, "\n_%s_\n", title)
	}
	if image := strings.TrimSpace(p.ProfileImage); image != "" {
		fmt.Fprintf(&b, "\n![%s](%s)\n", name, image)
	}
	fmt.Fprintf(&b, "\nTheme: `%s`\n", p.ResolvedThemeColor())

	if bio := strings.TrimSpace(p.Bio); bio != "" {
		fmt.Fprintf(&b, "\n## About Me\n\n%s\n", bio)
	}

	if len(p.Skills) > 0 {
		b.WriteString("\n## Skills\n\n")
		for _, skill := range p.Skills {
			fmt.Fprintf(&b, "- %s\n", skill)
		}
	}

	if len(p.Projects) > 0 {
		b.WriteString("\n## Projects\n")
		for _, project := range p.Projects {
			fmt.Fprintf(&b, "\n### %s\n", project.Title)
			if desc := strings.TrimSpace(project.Description); desc != "" {
				fmt.Fprintf(&b, "\n%s\n", desc)
			}
			if tech := strings.TrimSpace(project.Technologies); tech != "" {
				fmt.Fprintf(&b, "\nTechnologies: %s\n", tech)
			}
			var links []string
			if project.GitHubURL != "" {
				links = append(links, fmt.Sprintf("[GitHub](%s)", project.GitHubURL))
			}
			if project.DemoURL != "" {
				links = append(links, fmt.Sprintf("[Live Demo](%s)", project.DemoURL))
			}
			if len(links) > 0 {
				fmt.Fprintf(&b, "\n%s\n", strings.Join(links, " · "))
			}
		}
	}

	b.WriteString("\n## Contact\n\nLet's connect and work together!\n")
	contact := []struct{ label, value string }{
		{"Email", p.Contact.Email},
		{"Phone", p.Contact.Phone},
		{"LinkedIn", p.Contact.LinkedIn},
		{"GitHub", p.Contact.GitHub},
		{"Website", p.Contact.Website},
	}
	first := true
	for _, entry := range contact {
		if strings.TrimSpace(entry.value) == "" {
			continue
		}
		if first {
			b.WriteString("\n")
			first = false
		}
		fmt.Fprintf(&b, "- %s: %s\n", entry.label, entry.value)
	}
	return b.String()
}
