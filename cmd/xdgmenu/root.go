// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand creates the root command with every subcommand attached.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "xdgmenu",
		Short: "Resolve freedesktop.org application menus",
		Long: TitleStyle.Render("xdgmenu") + SubtitleStyle.Render(" - Resolve freedesktop.org application menus") + `

xdgmenu reads the .menu documents of the Desktop Menu Specification,
follows their merges, allocates installed applications to menus and
applies the layout rules, printing the menu a desktop panel would show.

` + SubtitleStyle.Render("Search path:") + `
  Menus are looked up as menus/${XDG_MENU_PREFIX}applications.menu under
  $XDG_CONFIG_HOME and $XDG_CONFIG_DIRS; applications and directory
  entries come from $XDG_DATA_HOME and $XDG_DATA_DIRS.

` + SubtitleStyle.Render("Examples:") + `
  xdgmenu show                  Print the resolved menu
  xdgmenu show --env GNOME      Resolve as the GNOME desktop
  xdgmenu dump --format json    Export the menu as JSON
  xdgmenu raw --merged FILE     Print a document after merge resolution
  xdgmenu watch                 Re-print the menu whenever it changes`,
		SilenceUsage: true,
	}
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: ExitUsage, Err: err}
	})

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	pf.StringVar(&flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/xdgmenu/config.cue)")
	pf.StringArrayVarP(&flags.files, "file", "f", nil, "root menu file, repeatable; later files take precedence")
	pf.StringVar(&flags.env, "env", "", "desktop environment for OnlyShowIn/NotShowIn (default from $XDG_CURRENT_DESKTOP)")
	pf.StringVar(&flags.prefix, "prefix", "", "menu prefix (default from $XDG_MENU_PREFIX)")

	rootCmd.AddCommand(
		newShowCommand(app, flags),
		newDumpCommand(app, flags),
		newRawCommand(app, flags),
		newFilesCommand(app, flags),
		newAppsCommand(app, flags),
		newWatchCommand(app, flags),
		newConfigCommand(app, flags),
	)
	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// Run executes the CLI with os.Args and returns the process exit code.
func Run(ctx context.Context, app *App) int {
	err := fang.Execute(
		ctx,
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
	return exitCode(err)
}

// Main is the process entry point.
func Main() int {
	return Run(context.Background(), NewApp(Dependencies{}))
}

// Execute runs the CLI and exits the process.
func Execute() {
	os.Exit(Main())
}

// exitCode maps an error returned by the command tree to a process exit
// code. Errors not raised by a command handler come from argument parsing.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, context.Canceled) {
		return ExitOK
	}
	return ExitUsage
}
