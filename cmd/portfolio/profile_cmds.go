package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-portfolio/pkg/palette"
	"github.com/goliatone/go-portfolio/pkg/profile"
	"github.com/goliatone/go-portfolio/pkg/storage"
)

func newShowCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the cached profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := storage.ParseFormat(format)
			if err != nil {
				return err
			}
			data, err := storage.Encode(f, a.store.Profile())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(data), "\n"))
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: json or yaml")
	return cmd
}

func newSetCmd(a *app) *cobra.Command {
	fields := []string{profile.FieldName, profile.FieldTitle, profile.FieldBio, profile.FieldProfileImage, profile.FieldThemeColor}
	return &cobra.Command{
		Use:       "set FIELD VALUE",
		Short:     "Set a profile field (" + strings.Join(fields, ", ") + ")",
		Args:      cobra.ExactArgs(2),
		ValidArgs: fields,
		RunE: func(cmd *cobra.Command, args []string) error {
			changed, err := a.store.UpdateField(cmd.Context(), args[0], args[1])
			return a.settle(cmd, changed, err)
		},
	}
}

func newContactCmd(a *app) *cobra.Command {
	fields := []string{profile.ContactEmail, profile.ContactPhone, profile.ContactLinkedIn, profile.ContactGitHub, profile.ContactWebsite}
	return &cobra.Command{
		Use:       "contact FIELD VALUE",
		Short:     "Set a contact field (" + strings.Join(fields, ", ") + ")",
		Args:      cobra.ExactArgs(2),
		ValidArgs: fields,
		RunE: func(cmd *cobra.Command, args []string) error {
			changed, err := a.store.UpdateContact(cmd.Context(), args[0], args[1])
			return a.settle(cmd, changed, err)
		},
	}
}

func newSkillCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skill",
		Short: "Add or remove skills",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add SKILL...",
			Short: "Append skills, skipping blanks and duplicates",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				anyChanged := false
				for _, skill := range args {
					changed, err := a.store.AddSkill(cmd.Context(), skill)
					if err := a.settle(cmd, true, err); err != nil {
						return err
					}
					anyChanged = anyChanged || changed
				}
				return a.settle(cmd, anyChanged, nil)
			},
		},
		&cobra.Command{
			Use:   "remove SKILL",
			Short: "Remove a skill (exact match)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				changed, err := a.store.RemoveSkill(cmd.Context(), args[0])
				return a.settle(cmd, changed, err)
			},
		},
	)
	return cmd
}

func newProjectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Add, remove or list projects",
	}

	var draft profile.ProjectDraft
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a project; --title is required",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			project, added, err := a.store.AddProjectFrom(cmd.Context(), draft)
			if err := a.settle(cmd, true, err); err != nil {
				return err
			}
			if !added {
				return fmt.Errorf("project needs a title")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added project %d\n", project.ID)
			return nil
		},
	}
	add.Flags().StringVar(&draft.Title, "title", "", "project title")
	add.Flags().StringVar(&draft.Description, "description", "", "short description")
	add.Flags().StringVar(&draft.Technologies, "tech", "", "technologies used, free text")
	add.Flags().StringVar(&draft.GitHubURL, "github", "", "repository URL")
	add.Flags().StringVar(&draft.DemoURL, "demo", "", "live demo URL")

	remove := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a project by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}
			changed, err := a.store.RemoveProject(cmd.Context(), id)
			return a.settle(cmd, changed, err)
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tTECHNOLOGIES")
			for _, p := range a.store.Profile().Projects {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", p.ID, p.Title, p.Technologies)
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(add, remove, list)
	return cmd
}

func newThemeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "theme [COLOR]",
		Short: "Show or set the theme color (#rrggbb); an empty value restores " + profile.DefaultThemeColor,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), a.store.Profile().ResolvedThemeColor())
				return nil
			}
			value := strings.TrimSpace(args[0])
			if value != "" {
				color, ok := palette.NormalizeColor(value)
				if !ok {
					return fmt.Errorf("%q is not a hex color", args[0])
				}
				value = color
			}
			changed, err := a.store.UpdateField(cmd.Context(), profile.FieldThemeColor, value)
			return a.settle(cmd, changed, err)
		},
	}
}

func newResetCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the cached profile with an empty one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("reset discards the cached profile; pass --yes to confirm")
			}
			changed, err := a.store.Reset(cmd.Context())
			return a.settle(cmd, changed, err)
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
