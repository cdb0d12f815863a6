// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/invowk/xdgmenu/internal/render"
	"github.com/invowk/xdgmenu/pkg/menu"
)

// showFlagValues selects the optional columns of the text tree.
type showFlagValues struct {
	ids      bool
	comments bool
	plain    bool
}

func newShowCommand(app *App, flags *rootFlagValues) *cobra.Command {
	sf := &showFlagValues{}
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved menu tree",
		Long: `Print the resolved menu tree.

The root menu documents are parsed and merged, installed applications are
allocated to menus and the layout rules are applied. Hidden entries and
empty menus are not shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tree, _, err := app.loadTree(cmd, flags)
			if err != nil {
				return err
			}
			return app.printTree(tree, sf)
		},
	}
	cmd.Flags().BoolVar(&sf.ids, "ids", false, "append the desktop id of each application")
	cmd.Flags().BoolVar(&sf.comments, "comments", false, "append the comment of each entry")
	cmd.Flags().BoolVar(&sf.plain, "plain", false, "disable colors")
	return cmd
}

func (a *App) printTree(tree *menu.Tree, sf *showFlagValues) error {
	opts := render.TextOptions{IDs: sf.ids, Comments: sf.comments}
	if !sf.plain {
		opts.Styles = treeStyles()
	}
	return render.Text(a.stdout, render.FromMenu(tree.Root), opts)
}
