package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-portfolio/internal/config"
	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/pkg/orchestrator"
	"github.com/goliatone/go-portfolio/pkg/render"
	htmlrenderer "github.com/goliatone/go-portfolio/pkg/renderers/html"
	"github.com/goliatone/go-portfolio/pkg/renderers/terminal"
	"github.com/goliatone/go-portfolio/pkg/storage"
	"github.com/goliatone/go-portfolio/pkg/store"
)

var (
	// Set via ldflags during build.
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

type rootFlags struct {
	configFile    string
	envFile       string
	storageDriver string
	storageDir    string
	storagePath   string
}

// app is built once per invocation by the root PersistentPreRunE.
type app struct {
	cfg     config.Config
	logger  logging.Logger
	adapter storage.Adapter
	store   *store.Store
	gen     *orchestrator.Orchestrator
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	a := &app{}

	root := &cobra.Command{
		Use:          "portfolio",
		Short:        "Fill in a profile and generate a one-page portfolio site.",
		Long:         `portfolio keeps your profile in a local cache and renders it as a self-contained HTML page you can download and host anywhere.`,
		Version:      fmt.Sprintf("%s (Commit: %s)", Version, GitCommit),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations["skipApp"] == "true" {
				return nil
			}
			return a.init(cmd.Context(), flags)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "config file (default ./config.yaml)")
	pf.StringVar(&flags.envFile, "env-file", "", "dotenv file loaded before reading PORTFOLIO_* variables (default .env)")
	pf.StringVar(&flags.storageDriver, "storage", "", "cache backend: file, redis or memory")
	pf.StringVar(&flags.storageDir, "storage-dir", "", "directory holding the file cache")
	pf.StringVar(&flags.storagePath, "storage-path", "", "explicit cache file path; .yaml/.yml selects YAML")

	root.CompletionOptions.HiddenDefaultCmd = true

	root.AddCommand(
		newShowCmd(a),
		newSetCmd(a),
		newContactCmd(a),
		newSkillCmd(a),
		newProjectCmd(a),
		newThemeCmd(a),
		newResetCmd(a),
		newPreviewCmd(a),
		newExportCmd(a),
		newEditCmd(a),
		newWatchCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) init(ctx context.Context, flags *rootFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(config.Options{ConfigFile: flags.configFile, EnvFile: flags.envFile})
	if err != nil {
		return err
	}
	if flags.storageDriver != "" {
		cfg.Storage.Driver = flags.storageDriver
	}
	if flags.storageDir != "" {
		cfg.Storage.Dir = flags.storageDir
	}
	if flags.storagePath != "" {
		cfg.Storage.Path = flags.storagePath
	}

	logger, err := logging.New(cfg.Log.Env)
	if err != nil {
		return fmt.Errorf("portfolio: logger: %w", err)
	}

	storageCfg, err := cfg.StorageConfig()
	if err != nil {
		return err
	}
	adapter, err := storage.NewDefaultRegistry().Open(storageCfg)
	if err != nil {
		return err
	}
	logger = logger.With(zap.String("storage", storageCfg.Driver))

	s, err := store.Open(ctx, adapter, store.WithLogger(logger))
	if err != nil {
		return err
	}
	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.adapter = adapter
	a.store = s
	a.gen = gen
	return nil
}

// newGenerator uses the built-in renderers, loading the page template from
// render.templates_dir when it is set.
func newGenerator(cfg config.Config) (*orchestrator.Orchestrator, error) {
	if cfg.Render.TemplatesDir == "" {
		return orchestrator.New(), nil
	}
	page, err := htmlrenderer.New(htmlrenderer.WithTemplatesDir(cfg.Render.TemplatesDir))
	if err != nil {
		return nil, fmt.Errorf("portfolio: templates dir: %w", err)
	}
	registry, err := render.NewRegistry(page, terminal.New())
	if err != nil {
		return nil, err
	}
	return orchestrator.New(orchestrator.WithRegistry(registry)), nil
}

// renderOptions maps config onto per-request options.
func (a *app) renderOptions() render.RenderOptions {
	return render.RenderOptions{
		Escape:      render.ParseEscapePolicy(a.cfg.Render.Escape),
		Appearance:  a.cfg.Render.Appearance,
		MarkdownBio: a.cfg.Render.MarkdownBio,
	}
}

// settle turns persistence failures into a printed warning. The change is
// still applied for the rest of the command.
func (a *app) settle(cmd *cobra.Command, changed bool, err error) error {
	if err != nil && !errors.Is(err, store.ErrPersist) {
		return err
	}
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: changes could not be saved: %v\n", err)
	}
	if !changed {
		fmt.Fprintln(cmd.OutOrStdout(), "nothing changed")
	}
	return nil
}
