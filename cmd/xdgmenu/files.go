// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFilesCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var dirs bool
	cmd := &cobra.Command{
		Use:   "files",
		Short: "List the menu files consumed by the resolved tree",
		Long: `List every .menu file read while resolving the tree, in merge order.
Each root document comes before the files it merged.

With --dirs the directories the tree depends on are listed instead: those
of the menu documents, merge directories, application directories and
directory-entry directories. These are what 'xdgmenu watch' monitors.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tree, _, err := app.loadTree(cmd, flags)
			if err != nil {
				return err
			}
			list := tree.Files
			if dirs {
				list = tree.Dirs
			}
			for _, p := range list {
				fmt.Fprintln(app.stdout, p)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dirs, "dirs", false, "list watched directories instead of files")
	return cmd
}
