// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/invowk/xdgmenu/internal/config"
	"github.com/invowk/xdgmenu/pkg/menu"
	"github.com/invowk/xdgmenu/pkg/xdg"
)

type (
	// App wires CLI services and shared dependencies. Every command handler
	// receives the App and goes through it for configuration and output.
	App struct {
		Config config.Provider
		stdout io.Writer
		stderr io.Writer

		colorScheme config.ColorScheme
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Stdout io.Writer
		Stderr io.Writer
	}

	// rootFlagValues holds the persistent flags shared by every subcommand.
	rootFlagValues struct {
		verbose    bool
		configPath string
		files      []string
		env        string
		prefix     string
	}

	// runContext is what a pipeline command needs after the configuration
	// was loaded and the flags were applied.
	runContext struct {
		cfg     *config.Config
		cfgPath string
		opts    menu.Options
		logger  *log.Logger
		verbose bool
	}
)

// NewApp builds an App, filling unset dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

// newLogger returns the CLI logger. It reports warnings unless verbose is
// set, in which case the absorbed degradations of the pipeline show up too.
func (a *App) newLogger(verbose bool) *log.Logger {
	logger := log.NewWithOptions(a.stderr, log.Options{Prefix: config.AppName, Level: log.WarnLevel})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// prepare loads the configuration and applies the global flags on top of it.
// Flags win over the file, which wins over the environment defaults.
func (a *App) prepare(cmd *cobra.Command, flags *rootFlagValues) (*runContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, cfgPath, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configPath})
	if err != nil {
		return nil, a.fail("load configuration", flags.configPath, err, false)
	}

	a.colorScheme = cfg.UI.ColorScheme
	verbose := flags.verbose || cfg.UI.Verbose
	if changed(cmd, "prefix") {
		cfg.MenuPrefix = flags.prefix
	}
	if changed(cmd, "env") {
		cfg.Environment = flags.env
	}
	if len(flags.files) > 0 {
		files := make([]string, 0, len(flags.files))
		for _, f := range flags.files {
			abs, absErr := filepath.Abs(f)
			if absErr != nil {
				return nil, usageError("invalid --file %q: %w", f, absErr)
			}
			files = append(files, abs)
		}
		cfg.MenuFiles = files
	}

	logger := a.newLogger(verbose)
	return &runContext{
		cfg:     cfg,
		cfgPath: cfgPath,
		opts:    cfg.MenuOptions(xdg.FromEnv(), logger),
		logger:  logger,
		verbose: verbose,
	}, nil
}

// loadTree runs the whole pipeline once.
func (a *App) loadTree(cmd *cobra.Command, flags *rootFlagValues) (*menu.Tree, *runContext, error) {
	rc, err := a.prepare(cmd, flags)
	if err != nil {
		return nil, nil, err
	}
	tree, err := menu.Load(cmd.Context(), rc.opts)
	if err != nil {
		return nil, nil, a.fail("load menu", menuResource(rc.opts), err, rc.verbose)
	}
	return tree, rc, nil
}

func changed(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

// menuResource names the root documents of opts for error messages.
func menuResource(opts menu.Options) string {
	switch len(opts.Files) {
	case 0:
		return filepath.Join(xdg.MenusDir, opts.Dirs.MenuPrefix+xdg.RootMenuName)
	case 1:
		return opts.Files[0]
	default:
		return opts.Files[len(opts.Files)-1]
	}
}
