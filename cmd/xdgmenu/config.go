// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/invowk/xdgmenu/internal/config"
)

// newConfigCommand creates the `xdgmenu config` command tree.
func newConfigCommand(app *App, flags *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage xdgmenu configuration",
		Long: `Manage xdgmenu configuration.

Configuration is stored in $XDG_CONFIG_HOME/xdgmenu/config.cue
(~/.config/xdgmenu/config.cue by default) and validated against a CUE
schema. Command-line flags take precedence over the file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := app.prepare(cmd, flags)
			if err != nil {
				return err
			}
			app.showConfig(rc)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			path, created, err := config.CreateDefaultConfig(flags.configPath)
			if err != nil {
				return app.fail("create configuration", flags.configPath, err, flags.verbose)
			}
			if !created {
				fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
				return nil
			}
			fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.showConfigPath(flags.configPath)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := app.prepare(cmd, flags)
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(rc.cfg))
			return nil
		},
	})

	return cfgCmd
}

func (a *App) showConfig(rc *runContext) {
	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	cfg := rc.cfg

	fmt.Fprintln(a.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(a.stdout)

	if rc.cfgPath != "" {
		fmt.Fprintf(a.stdout, "%s: %s\n", keyStyle.Render("Config file"), rc.cfgPath)
	} else {
		fmt.Fprintf(a.stdout, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(a.stdout)

	fmt.Fprintf(a.stdout, "%s: %s\n", keyStyle.Render("environment"), valueStyle.Render(orNone(cfg.Environment)))
	fmt.Fprintf(a.stdout, "%s: %s\n", keyStyle.Render("menu_prefix"), valueStyle.Render(orNone(cfg.MenuPrefix)))

	fmt.Fprintln(a.stdout)
	fmt.Fprintf(a.stdout, "%s:\n", keyStyle.Render("menu_files"))
	if len(cfg.MenuFiles) == 0 {
		fmt.Fprintf(a.stdout, "  %s\n", SubtitleStyle.Render("(discovered from the XDG config dirs)"))
	} else {
		for _, f := range cfg.MenuFiles {
			fmt.Fprintf(a.stdout, "  - %s\n", valueStyle.Render(f))
		}
	}

	fmt.Fprintln(a.stdout)
	fmt.Fprintf(a.stdout, "%s:\n", keyStyle.Render("merge"))
	fmt.Fprintf(a.stdout, "  max_depth: %s\n", valueStyle.Render(fmt.Sprint(cfg.Merge.MaxDepth)))

	fmt.Fprintln(a.stdout)
	fmt.Fprintf(a.stdout, "%s:\n", keyStyle.Render("layout"))
	fmt.Fprintf(a.stdout, "  sort_items: %s\n", valueStyle.Render(fmt.Sprint(cfg.Layout.SortItems)))
	fmt.Fprintf(a.stdout, "  locale: %s\n", valueStyle.Render(orNone(cfg.Layout.Locale)))

	fmt.Fprintln(a.stdout)
	fmt.Fprintf(a.stdout, "%s:\n", keyStyle.Render("watch"))
	fmt.Fprintf(a.stdout, "  debounce: %s\n", valueStyle.Render(cfg.Watch.Debounce.String()))

	fmt.Fprintln(a.stdout)
	fmt.Fprintf(a.stdout, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(a.stdout, "  verbose: %s\n", valueStyle.Render(fmt.Sprint(cfg.UI.Verbose)))
	fmt.Fprintf(a.stdout, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
}

func (a *App) showConfigPath(explicit string) error {
	if explicit != "" {
		fmt.Fprintf(a.stdout, "Config file: %s\n", explicit)
		return nil
	}
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return a.fail("resolve configuration directory", "", err, false)
	}
	path, err := config.ConfigFilePath()
	if err != nil {
		return a.fail("resolve configuration file", "", err, false)
	}
	fmt.Fprintf(a.stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(a.stdout, "Config file: %s\n", path)
	return nil
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(none)"
	}
	return s
}
