// Package editor walks the user through the profile form groups (basic
// information, skills, projects, contact, theme color) and writes every
// answer through the store.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/pkg/palette"
	"github.com/goliatone/go-portfolio/pkg/profile"
	"github.com/goliatone/go-portfolio/pkg/store"
)

// Section names shown in the main menu, in walk order.
const (
	SectionBasic    = "Basic information"
	SectionSkills   = "Skills"
	SectionProjects = "Projects"
	SectionContact  = "Contact"
	SectionTheme    = "Theme color"
	SectionDone     = "Done"
)

var menu = []string{SectionBasic, SectionSkills, SectionProjects, SectionContact, SectionTheme, SectionDone}

// Option configures the editor.
type Option func(*Editor)

// WithPromptDriver overrides the prompt driver. Defaults to survey on stdout.
func WithPromptDriver(driver PromptDriver) Option {
	return func(e *Editor) {
		if driver != nil {
			e.driver = driver
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Editor drives a store from interactive prompts.
type Editor struct {
	store  *store.Store
	driver PromptDriver
	logger logging.Logger
}

// New builds an editor for s.
func New(s *store.Store, options ...Option) (*Editor, error) {
	if s == nil {
		return nil, errors.New("editor: store is required")
	}
	e := &Editor{store: s, logger: logging.Nop()}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if e.driver == nil {
		e.driver = NewSurveyDriver(nil)
	}
	return e, nil
}

// Run shows the section menu until the user picks Done.
func (e *Editor) Run(ctx context.Context) error {
	for {
		idx, err := e.driver.Select(ctx, SelectConfig{
			Message: "What would you like to edit?",
			Options: menu,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(menu) || menu[idx] == SectionDone {
			return nil
		}
		if err := e.EditSection(ctx, menu[idx]); err != nil {
			return err
		}
	}
}

// Walk visits every section once, in menu order.
func (e *Editor) Walk(ctx context.Context) error {
	for _, section := range menu {
		if section == SectionDone {
			continue
		}
		if err := e.EditSection(ctx, section); err != nil {
			return err
		}
	}
	return nil
}

// EditSection prompts for one section.
func (e *Editor) EditSection(ctx context.Context, section string) error {
	switch section {
	case SectionBasic:
		return e.editBasic(ctx)
	case SectionSkills:
		return e.editSkills(ctx)
	case SectionProjects:
		return e.editProjects(ctx)
	case SectionContact:
		return e.editContact(ctx)
	case SectionTheme:
		return e.editTheme(ctx)
	default:
		return fmt.Errorf("editor: unknown section %q", section)
	}
}

func (e *Editor) editBasic(ctx context.Context) error {
	current := e.store.Profile()
	prompts := []struct {
		field, message, current string
	}{
		{profile.FieldName, "Full name", current.Name},
		{profile.FieldTitle, "Professional title", current.Title},
		{profile.FieldProfileImage, "Profile image URL", current.ProfileImage},
	}
	for _, p := range prompts {
		value, err := e.driver.Input(ctx, InputConfig{Message: p.message, Default: p.current})
		if err != nil {
			return err
		}
		if _, err := e.store.UpdateField(ctx, p.field, value); err != nil {
			if werr := e.warn(ctx, err); werr != nil {
				return werr
			}
		}
	}

	bio, err := e.driver.TextArea(ctx, TextAreaConfig{Message: "Bio", Default: current.Bio})
	if err != nil {
		return err
	}
	_, err = e.store.UpdateField(ctx, profile.FieldBio, bio)
	return e.warn(ctx, err)
}

func (e *Editor) editSkills(ctx context.Context) error {
	current := e.store.Profile()
	if len(current.Skills) > 0 {
		remove, err := e.driver.MultiSelect(ctx, SelectConfig{
			Message: "Select skills to remove",
			Options: current.Skills,
		})
		if err != nil {
			return err
		}
		for _, idx := range remove {
			if idx < 0 || idx >= len(current.Skills) {
				continue
			}
			if _, err := e.store.RemoveSkill(ctx, current.Skills[idx]); err != nil {
				if werr := e.warn(ctx, err); werr != nil {
					return werr
				}
			}
		}
	}

	for {
		skill, err := e.driver.Input(ctx, InputConfig{
			Message: "Add a skill",
			Help:    "Leave blank to finish",
		})
		if err != nil {
			return err
		}
		if strings.TrimSpace(skill) == "" {
			return nil
		}
		if _, err := e.store.AddSkill(ctx, skill); err != nil {
			if werr := e.warn(ctx, err); werr != nil {
				return werr
			}
		}
	}
}

func (e *Editor) editProjects(ctx context.Context) error {
	current := e.store.Profile()
	if len(current.Projects) > 0 {
		titles := make([]string, len(current.Projects))
		for i, project := range current.Projects {
			titles[i] = fmt.Sprintf("%s (#%d)", project.Title, project.ID)
		}
		remove, err := e.driver.MultiSelect(ctx, SelectConfig{
			Message: "Select projects to remove",
			Options: titles,
		})
		if err != nil {
			return err
		}
		for _, idx := range remove {
			if idx < 0 || idx >= len(current.Projects) {
				continue
			}
			if _, err := e.store.RemoveProject(ctx, current.Projects[idx].ID); err != nil {
				if werr := e.warn(ctx, err); werr != nil {
					return werr
				}
			}
		}
	}

	for {
		more, err := e.driver.Confirm(ctx, ConfirmConfig{Message: "Add a project?"})
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		if err := e.promptDraft(ctx); err != nil {
			return err
		}
		project, added, err := e.store.AddProject(ctx)
		if err := e.warn(ctx, err); err != nil {
			return err
		}
		if !added {
			if err := e.driver.Info(ctx, "A project needs a title; draft kept."); err != nil {
				return err
			}
			continue
		}
		e.logger.Debug("project added", zap.Int64("id", project.ID))
	}
}

func (e *Editor) promptDraft(ctx context.Context) error {
	draft := e.store.Draft()
	inputs := []struct {
		field, message, current string
	}{
		{profile.DraftTitle, "Project title", draft.Title},
		{profile.DraftTechnologies, "Technologies used", draft.Technologies},
		{profile.DraftGitHubURL, "GitHub URL", draft.GitHubURL},
		{profile.DraftDemoURL, "Live demo URL", draft.DemoURL},
	}
	for i, in := range inputs {
		value, err := e.driver.Input(ctx, InputConfig{Message: in.message, Default: in.current})
		if err != nil {
			return err
		}
		if err := e.store.UpdateDraft(in.field, value); err != nil {
			return err
		}
		if i == 0 {
			desc, err := e.driver.TextArea(ctx, TextAreaConfig{Message: "Project description", Default: draft.Description})
			if err != nil {
				return err
			}
			if err := e.store.UpdateDraft(profile.DraftDescription, desc); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Editor) editContact(ctx context.Context) error {
	c := e.store.Profile().Contact
	prompts := []struct {
		field, message, current string
	}{
		{profile.ContactEmail, "Email", c.Email},
		{profile.ContactPhone, "Phone", c.Phone},
		{profile.ContactLinkedIn, "LinkedIn URL", c.LinkedIn},
		{profile.ContactGitHub, "GitHub URL", c.GitHub},
		{profile.ContactWebsite, "Website", c.Website},
	}
	for _, p := range prompts {
		value, err := e.driver.Input(ctx, InputConfig{Message: p.message, Default: p.current})
		if err != nil {
			return err
		}
		if _, err := e.store.UpdateContact(ctx, p.field, value); err != nil {
			if werr := e.warn(ctx, err); werr != nil {
				return werr
			}
		}
	}
	return nil
}

func (e *Editor) editTheme(ctx context.Context) error {
	value, err := e.driver.Input(ctx, InputConfig{
		Message:   "Theme color",
		Default:   e.store.Profile().ResolvedThemeColor(),
		Help:      "Hex color such as #3b82f6",
		Validator: ValidateColor,
	})
	if err != nil {
		return err
	}
	if color, ok := palette.NormalizeColor(value); ok {
		value = color
	}
	_, err = e.store.UpdateField(ctx, profile.FieldThemeColor, value)
	return e.warn(ctx, err)
}

// ValidateColor accepts blank input (reset to default) or a hex color.
func ValidateColor(value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if _, ok := palette.NormalizeColor(value); !ok {
		return fmt.Errorf("%q is not a hex color", value)
	}
	return nil
}

// warn surfaces persistence failures as a warning and keeps going. Other
// errors stop the flow.
func (e *Editor) warn(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrPersist) {
		return e.driver.Info(ctx, "Warning: changes could not be saved: "+err.Error())
	}
	return err
}
