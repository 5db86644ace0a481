package profile

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultThemeColor is applied whenever a profile carries no theme color.
const DefaultThemeColor = "#3b82f6"

// ErrUnknownField is returned when a field name does not match any profile,
// contact, or draft attribute.
var ErrUnknownField = errors.New("profile: unknown field")

// Field names accepted by WithField.
const (
	FieldName         = "name"
	FieldTitle        = "title"
	FieldBio          = "bio"
	FieldProfileImage = "profileImage"
	FieldThemeColor   = "themeColor"
)

// Contact field names accepted by WithContactField.
const (
	ContactEmail    = "email"
	ContactPhone    = "phone"
	ContactLinkedIn = "linkedin"
	ContactGitHub   = "github"
	ContactWebsite  = "website"
)

// Contact groups the optional contact links rendered at the bottom of the
// portfolio page.
type Contact struct {
	Email    string `json:"email" yaml:"email"`
	Phone    string `json:"phone" yaml:"phone"`
	LinkedIn string `json:"linkedin" yaml:"linkedin"`
	GitHub   string `json:"github" yaml:"github"`
	Website  string `json:"website" yaml:"website"`
}

// Empty reports whether every contact field is blank.
func (c Contact) Empty() bool {
	return c == Contact{}
}

// Project is a single portfolio entry. ID is assigned when the project is
// added and is unique within its profile.
type Project struct {
	ID           int64  `json:"id" yaml:"id"`
	Title        string `json:"title" yaml:"title"`
	Description  string `json:"description" yaml:"description"`
	Technologies string `json:"technologies" yaml:"technologies"`
	GitHubURL    string `json:"githubUrl" yaml:"githubUrl"`
	DemoURL      string `json:"demoUrl" yaml:"demoUrl"`
}

// Profile is the root record edited by the store and consumed by renderers.
// Methods never mutate the receiver; they return an updated copy.
type Profile struct {
	Name         string    `json:"name" yaml:"name"`
	Title        string    `json:"title" yaml:"title"`
	Bio          string    `json:"bio" yaml:"bio"`
	ProfileImage string    `json:"profileImage" yaml:"profileImage"`
	Skills       []string  `json:"skills" yaml:"skills"`
	Projects     []Project `json:"projects" yaml:"projects"`
	Contact      Contact   `json:"contact" yaml:"contact"`
	ThemeColor   string    `json:"themeColor" yaml:"themeColor"`
}

// New returns the empty default profile used on first load.
func New() Profile {
	return Profile{
		Skills:     []string{},
		Projects:   []Project{},
		ThemeColor: DefaultThemeColor,
	}
}

// ResolvedThemeColor returns the theme color, substituting the default for
// blank values.
func (p Profile) ResolvedThemeColor() string {
	if color := strings.TrimSpace(p.ThemeColor); color != "" {
		return color
	}
	return DefaultThemeColor
}

// Clone returns a deep copy so callers cannot alias the skill or project
// slices of the original.
func (p Profile) Clone() Profile {
	out := p
	out.Skills = append(make([]string, 0, len(p.Skills)), p.Skills...)
	out.Projects = append(make([]Project, 0, len(p.Projects)), p.Projects...)
	return out
}

// Normalize fills the defaults a freshly decoded profile may be missing.
func (p Profile) Normalize() Profile {
	out := p.Clone()
	if strings.TrimSpace(out.ThemeColor) == "" {
		out.ThemeColor = DefaultThemeColor
	}
	return out
}

// Equal reports structural equality. Nil and empty collections compare equal.
func (p Profile) Equal(other Profile) bool {
	if p.Name != other.Name || p.Title != other.Title || p.Bio != other.Bio ||
		p.ProfileImage != other.ProfileImage || p.ThemeColor != other.ThemeColor ||
		p.Contact != other.Contact {
		return false
	}
	if len(p.Skills) != len(other.Skills) || len(p.Projects) != len(other.Projects) {
		return false
	}
	for i := range p.Skills {
		if p.Skills[i] != other.Skills[i] {
			return false
		}
	}
	for i := range p.Projects {
		if p.Projects[i] != other.Projects[i] {
			return false
		}
	}
	return true
}

// WithField sets one of the scalar profile fields by name.
func (p Profile) WithField(field, value string) (Profile, error) {
	out := p.Clone()
	switch field {
	case FieldName:
		out.Name = value
	case FieldTitle:
		out.Title = value
	case FieldBio:
		out.Bio = value
	case FieldProfileImage:
		out.ProfileImage = value
	case FieldThemeColor:
		if strings.TrimSpace(value) == "" {
			value = DefaultThemeColor
		}
		out.ThemeColor = value
	default:
		return p, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return out, nil
}

// WithContactField sets one of the nested contact fields by name.
func (p Profile) WithContactField(field, value string) (Profile, error) {
	out := p.Clone()
	switch field {
	case ContactEmail:
		out.Contact.Email = value
	case ContactPhone:
		out.Contact.Phone = value
	case ContactLinkedIn:
		out.Contact.LinkedIn = value
	case ContactGitHub:
		out.Contact.GitHub = value
	case ContactWebsite:
		out.Contact.Website = value
	default:
		return p, fmt.Errorf("%w: contact %q", ErrUnknownField, field)
	}
	return out, nil
}

// HasSkill reports whether skill is present using an exact, case-sensitive
// comparison.
func (p Profile) HasSkill(skill string) bool {
	for _, existing := range p.Skills {
		if existing == skill {
			return true
		}
	}
	return false
}

// AddSkill appends the trimmed skill. The boolean result is false when the
// call was a no-op (blank or duplicate skill).
func (p Profile) AddSkill(skill string) (Profile, bool) {
	trimmed := strings.TrimSpace(skill)
	if trimmed == "" || p.HasSkill(trimmed) {
		return p, false
	}
	out := p.Clone()
	out.Skills = append(out.Skills, trimmed)
	return out, true
}

// RemoveSkill drops the first exact match of skill.
func (p Profile) RemoveSkill(skill string) (Profile, bool) {
	for i, existing := range p.Skills {
		if existing != skill {
			continue
		}
		out := p.Clone()
		out.Skills = append(out.Skills[:i], out.Skills[i+1:]...)
		return out, true
	}
	return p, false
}

// Project returns the project with the given id.
func (p Profile) Project(id int64) (Project, bool) {
	for _, project := range p.Projects {
		if project.ID == id {
			return project, true
		}
	}
	return Project{}, false
}

// AddProject appends a project built from draft using id. Drafts with a blank
// title are ignored. Callers must supply an id not already in use; a clash
// is reported as a no-op.
func (p Profile) AddProject(draft ProjectDraft, id int64) (Profile, bool) {
	if draft.Empty() {
		return p, false
	}
	if _, exists := p.Project(id); exists {
		return p, false
	}
	out := p.Clone()
	out.Projects = append(out.Projects, draft.Project(id))
	return out, true
}

// RemoveProject drops the project with the matching id.
func (p Profile) RemoveProject(id int64) (Profile, bool) {
	for i, project := range p.Projects {
		if project.ID != id {
			continue
		}
		out := p.Clone()
		out.Projects = append(out.Projects[:i], out.Projects[i+1:]...)
		return out, true
	}
	return p, false
}
