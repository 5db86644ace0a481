package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-portfolio/internal/watch"
	"github.com/goliatone/go-portfolio/pkg/editor"
	"github.com/goliatone/go-portfolio/pkg/orchestrator"
	"github.com/goliatone/go-portfolio/pkg/profile"
	"github.com/goliatone/go-portfolio/pkg/render"
	htmlrenderer "github.com/goliatone/go-portfolio/pkg/renderers/html"
	"github.com/goliatone/go-portfolio/pkg/renderers/terminal"
	"github.com/goliatone/go-portfolio/pkg/storage"
)

type renderFlags struct {
	appearance string
	escape     string
	preset     string
}

func (f *renderFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.appearance, "appearance", "", "light or dark (defaults to config)")
	cmd.Flags().StringVar(&f.escape, "escape", "", "escape (default) or raw; raw inserts field values verbatim")
	cmd.Flags().StringVar(&f.preset, "preset", "", "JSON or YAML preset that fills blank fields for this render only")
}

// transformers loads the --preset document, if any.
func (f *renderFlags) transformers() ([]orchestrator.Transformer, error) {
	if f.preset == "" {
		return nil, nil
	}
	preset, err := orchestrator.NewPresetTransformerFromFS(os.DirFS(filepath.Dir(f.preset)), filepath.Base(f.preset))
	if err != nil {
		return nil, err
	}
	return []orchestrator.Transformer{preset}, nil
}

func (f *renderFlags) apply(opts render.RenderOptions) render.RenderOptions {
	if f.appearance != "" {
		opts.Appearance = f.appearance
	}
	if f.escape != "" {
		opts.Escape = render.ParseEscapePolicy(f.escape)
	}
	return opts
}

func newPreviewCmd(a *app) *cobra.Command {
	var (
		markdown bool
		plain    bool
		rf       renderFlags
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the rendered page (HTML, or Markdown with --markdown)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := a.store.Profile()
			opts := rf.apply(a.renderOptions())
			name := htmlrenderer.Name
			if markdown {
				name = terminal.Name
				opts.Styled = !plain
			}
			transformers, err := rf.transformers()
			if err != nil {
				return err
			}
			out, err := a.gen.Generate(cmd.Context(), orchestrator.Request{
				Profile:       &p,
				Renderer:      name,
				RenderOptions: opts,
				Transformers:  transformers,
			})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().BoolVar(&markdown, "markdown", false, "render Markdown for the terminal")
	cmd.Flags().BoolVar(&plain, "plain", false, "with --markdown, skip terminal styling")
	rf.bind(cmd)
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var (
		dir      string
		renderer string
		rf       renderFlags
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the portfolio to <name>.html, or <name>.md for markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := a.store.Profile()
			transformers, err := rf.transformers()
			if err != nil {
				return err
			}
			artifact, err := a.gen.Export(cmd.Context(), orchestrator.Request{
				Profile:       &p,
				Renderer:      renderer,
				RenderOptions: rf.apply(a.renderOptions()),
				Transformers:  transformers,
			})
			if err != nil {
				return err
			}
			target := dir
			if target == "" {
				target = a.cfg.Export.Dir
			}
			path, err := artifact.WriteFile(target)
			if err != nil {
				return err
			}
			a.logger.Info("portfolio exported", zap.String("path", path), zap.Int("bytes", len(artifact.Body)))
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "output directory (defaults to config export.dir)")
	cmd.Flags().StringVar(&renderer, "renderer", htmlrenderer.Name, "renderer name: html or markdown")
	rf.bind(cmd)
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the profile interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ed, err := editor.New(a.store,
				editor.WithPromptDriver(editor.NewSurveyDriver(cmd.OutOrStdout())),
				editor.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			if all {
				err = ed.Walk(cmd.Context())
			} else {
				err = ed.Run(cmd.Context())
			}
			if errors.Is(err, editor.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "edit aborted; answers given so far are kept")
				return nil
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "walk through every section in order")
	return cmd
}

func newWatchCmd(a *app) *cobra.Command {
	var (
		out string
		rf  renderFlags
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render a preview file whenever the cached profile changes",
		Long: `watch renders the profile to a preview file, then watches the cache file and
re-renders after every change, for example while editing in another terminal.
Only the file storage driver can be watched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, ok := a.adapter.(*storage.FileAdapter)
			if !ok {
				return fmt.Errorf("watch needs the file storage driver")
			}
			if out == "" {
				out = filepath.Join(a.cfg.Export.Dir, "preview.html")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := rf.apply(a.renderOptions())
			transformers, err := rf.transformers()
			if err != nil {
				return err
			}
			write := func(p profile.Profile) {
				if err := a.writePreview(ctx, p, out, opts, transformers...); err != nil {
					a.logger.Warn("preview not written", zap.Error(err))
					return
				}
				fmt.Fprintf(cmd.OutOrStdout(), "preview updated: %s\n", out)
			}
			write(a.store.Profile())
			unsubscribe := a.store.Subscribe(write)
			defer unsubscribe()

			w, err := watch.New(file.Path(), watch.Reload(a.adapter, a.store), watch.WithLogger(a.logger))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "watching %s (Ctrl+C to stop)\n", w.Path())
			return w.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "preview file (defaults to <export.dir>/preview.html)")
	rf.bind(cmd)
	return cmd
}

func (a *app) writePreview(ctx context.Context, p profile.Profile, path string, opts render.RenderOptions, transformers ...orchestrator.Transformer) error {
	body, err := a.gen.Generate(ctx, orchestrator.Request{Profile: &p, RenderOptions: opts, Transformers: transformers})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, body, 0o644)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipApp": "true"},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "portfolio %s (Commit: %s, Built: %s)\n", Version, GitCommit, BuildDate)
		},
	}
}
