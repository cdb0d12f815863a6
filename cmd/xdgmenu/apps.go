// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/syntax"

	"github.com/invowk/xdgmenu/pkg/desktopentry"
)

func newAppsCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var unallocated, exec bool
	cmd := &cobra.Command{
		Use:   "apps",
		Short: "List applications and the menus they were allocated to",
		Long: `List every application found in the AppDirs of the merged tree, one
per line, followed by the paths of the menus it was allocated to.

Applications that no menu claimed are shown with "-". With --unallocated
only those are listed. With --exec the prepared command line of each
application is appended; nothing is run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tree, _, err := app.loadTree(cmd, flags)
			if err != nil {
				return err
			}

			var apps []*desktopentry.Application
			if unallocated {
				apps = tree.Allocation.Unallocated()
			} else {
				apps = tree.Allocation.Table().All()
			}
			for _, a := range apps {
				menus := tree.Allocation.Menus(a.DesktopID)
				where := SubtitleStyle.Render("-")
				if len(menus) > 0 {
					where = strings.Join(menus, ", ")
				}
				if !exec {
					fmt.Fprintf(app.stdout, "%s\t%s\n", a.DesktopID, where)
					continue
				}
				fmt.Fprintf(app.stdout, "%s\t%s\t%s\n", a.DesktopID, where, commandLine(a))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&unallocated, "unallocated", false, "list only applications no menu claimed")
	cmd.Flags().BoolVar(&exec, "exec", false, "append the command line with field codes removed")
	return cmd
}

// commandLine renders the argument vector of a as a shell-quoted line, or
// the reason it has none.
func commandLine(a *desktopentry.Application) string {
	argv, err := a.Command()
	if err != nil {
		return WarningStyle.Render(err.Error())
	}
	quoted := make([]string, 0, len(argv))
	for _, arg := range argv {
		q, err := syntax.Quote(arg, syntax.LangPOSIX)
		if err != nil {
			q = arg
		}
		quoted = append(quoted, q)
	}
	return strings.Join(quoted, " ")
}
