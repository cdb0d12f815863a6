// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/invowk/xdgmenu/pkg/menufile"
	"github.com/invowk/xdgmenu/pkg/menumerge"
)

func newRawCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var merged bool
	cmd := &cobra.Command{
		Use:   "raw FILE",
		Short: "Print the syntax tree of a menu document",
		Long: `Print the syntax tree of a menu document as indented XML.

Without --merged the tree is printed as parsed. With --merged every
<MergeFile>, <MergeDir> and <DefaultMergeDirs> is replaced by the content it
refers to and the default directory elements are expanded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := app.prepare(cmd, flags)
			if err != nil {
				return err
			}
			path, err := filepath.Abs(args[0])
			if err != nil {
				return usageError("invalid path %q: %w", args[0], err)
			}

			var root *menufile.Node
			if merged {
				resolver := &menumerge.Resolver{Dirs: rc.opts.Dirs, Logger: rc.logger, MaxDepth: rc.opts.MaxDepth}
				res, resolveErr := resolver.ResolveFile(cmd.Context(), path)
				if resolveErr != nil {
					return app.fail("resolve menu merges", path, resolveErr, rc.verbose)
				}
				root = res.Root
			} else {
				root, err = menufile.ParseFile(path)
				if err != nil {
					return app.fail("parse menu", path, err, rc.verbose)
				}
			}
			return menufile.Fprint(app.stdout, root)
		},
	}
	cmd.Flags().BoolVar(&merged, "merged", false, "resolve merge directives before printing")
	return cmd
}
