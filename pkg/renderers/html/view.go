package html

import (
	"net/url"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-portfolio/pkg/palette"
	"github.com/goliatone/go-portfolio/pkg/profile"
	"github.com/goliatone/go-portfolio/pkg/render"
)

type pageView struct {
	Mode         string        `json:"mode"`
	Accent       string        `json:"accent"`
	Page         pageTokens    `json:"page"`
	Name         string        `json:"name"`
	Title        string        `json:"title"`
	Bio          string        `json:"bio"`
	BioHTML      string        `json:"bioHtml"`
	ProfileImage string        `json:"profileImage"`
	Skills       []string      `json:"skills"`
	Projects     []projectView `json:"projects"`
	Contact      contactView   `json:"contact"`
}

type pageTokens struct {
	Background  string `json:"background"`
	Surface     string `json:"surface"`
	Text        string `json:"text"`
	Muted       string `json:"muted"`
	Card        string `json:"card"`
	CardBorder  string `json:"cardBorder"`
	LinkSurface string `json:"linkSurface"`
	Heading     string `json:"heading"`
}

type projectView struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Technologies string `json:"technologies"`
	GitHubURL    string `json:"githubUrl"`
	DemoURL      string `json:"demoUrl"`
}

type contactView struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Website  string `json:"website"`
}

func buildView(p profile.Profile, cfg *theme.RendererConfig, policy render.EscapePolicy) pageView {
	link, image := safeURL, safeImageURL
	if policy == render.EscapeRaw {
		link = func(raw string) string { return raw }
		image = link
	}

	view := pageView{
		Mode:         string(policy),
		Accent:       accentFrom(cfg, p.ThemeColor),
		Page:         tokensFrom(cfg),
		Name:         p.Name,
		Title:        p.Title,
		Bio:          p.Bio,
		ProfileImage: image(p.ProfileImage),
		Skills:       append([]string(nil), p.Skills...),
		Contact: contactView{
			Email:    p.Contact.Email,
			Phone:    p.Contact.Phone,
			LinkedIn: link(p.Contact.LinkedIn),
			GitHub:   link(p.Contact.GitHub),
			Website:  link(p.Contact.Website),
		},
	}

	view.Projects = make([]projectView, 0, len(p.Projects))
	for _, project := range p.Projects {
		view.Projects = append(view.Projects, projectView{
			Title:        project.Title,
			Description:  project.Description,
			Technologies: project.Technologies,
			GitHubURL:    link(project.GitHubURL),
			DemoURL:      link(project.DemoURL),
		})
	}
	return view
}

func accentFrom(cfg *theme.RendererConfig, themeColor string) string {
	if cfg != nil {
		if accent, ok := palette.NormalizeColor(cfg.Tokens["accent"]); ok {
			return accent
		}
	}
	return palette.AccentFor(themeColor)
}

func tokensFrom(cfg *theme.RendererConfig) pageTokens {
	base := palette.Resolve(nil, palette.AppearanceLight, "").Tokens
	lookup := func(key string) string {
		if cfg != nil {
			if value := strings.TrimSpace(cfg.Tokens[key]); value != "" {
				return value
			}
		}
		return base[key]
	}
	return pageTokens{
		Background:  lookup("page-background"),
		Surface:     lookup("surface"),
		Text:        lookup("text"),
		Muted:       lookup("muted"),
		Card:        lookup("card"),
		CardBorder:  lookup("card-border"),
		LinkSurface: lookup("link-surface"),
		Heading:     lookup("heading"),
	}
}

// safeImageURL is safeURL that also keeps inline data:image/ sources.
func safeImageURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToLower(trimmed), "data:image/") {
		return trimmed
	}
	return safeURL(trimmed)
}

// safeURL drops links whose scheme could run script in the exported page.
// Relative references pass through.
func safeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "", "http", "https", "mailto", "tel":
		return trimmed
	default:
		return ""
	}
}
