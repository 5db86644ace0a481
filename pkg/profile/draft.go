package profile

import (
	"fmt"
	"strings"
)

// Draft field names accepted by ProjectDraft.WithField.
const (
	DraftTitle        = "title"
	DraftDescription  = "description"
	DraftTechnologies = "technologies"
	DraftGitHubURL    = "githubUrl"
	DraftDemoURL      = "demoUrl"
)

// ProjectDraft stages a project before it is committed to a profile.
type ProjectDraft struct {
	Title        string `json:"title" yaml:"title"`
	Description  string `json:"description" yaml:"description"`
	Technologies string `json:"technologies" yaml:"technologies"`
	GitHubURL    string `json:"githubUrl" yaml:"githubUrl"`
	DemoURL      string `json:"demoUrl" yaml:"demoUrl"`
}

// Empty reports whether the draft lacks the title required to add it.
func (d ProjectDraft) Empty() bool {
	return strings.TrimSpace(d.Title) == ""
}

// Project materialises the draft with the supplied id.
func (d ProjectDraft) Project(id int64) Project {
	return Project{
		ID:           id,
		Title:        d.Title,
		Description:  d.Description,
		Technologies: d.Technologies,
		GitHubURL:    d.GitHubURL,
		DemoURL:      d.DemoURL,
	}
}

// WithField sets a draft field by name.
func (d ProjectDraft) WithField(field, value string) (ProjectDraft, error) {
	switch field {
	case DraftTitle:
		d.Title = value
	case DraftDescription:
		d.Description = value
	case DraftTechnologies:
		d.Technologies = value
	case DraftGitHubURL:
		d.GitHubURL = value
	case DraftDemoURL:
		d.DemoURL = value
	default:
		return d, fmt.Errorf("%w: draft %q", ErrUnknownField, field)
	}
	return d, nil
}
