// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/invowk/xdgmenu/internal/render"
)

func newDumpCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var (
		format string
		query  string
	)

	names := make([]string, 0, len(render.Formats()))
	for _, f := range render.Formats() {
		names = append(names, string(f))
	}

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Export the resolved menu tree",
		Long: `Export the resolved menu tree as YAML, TOML or JSON.

With --query the tree is filtered by a JSONPath expression and the matches
are printed as a JSON array, whatever --format says.`,
		Example: `  xdgmenu dump --format json
  xdgmenu dump --query '$..children[?(@.desktop_id == "firefox.desktop")].name'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return usageError("%w", err)
			}

			tree, rc, err := app.loadTree(cmd, flags)
			if err != nil {
				return err
			}
			root := render.FromMenu(tree.Root)

			if query != "" {
				if err := render.Query(app.stdout, root, query); err != nil {
					if errors.Is(err, render.ErrInvalidQuery) {
						return usageError("%w", err)
					}
					return app.fail("query menu", query, err, rc.verbose)
				}
				return nil
			}
			if err := render.Export(app.stdout, root, f); err != nil {
				return app.fail(fmt.Sprintf("export menu as %s", f), "", err, rc.verbose)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", string(render.FormatYAML), "output format: "+strings.Join(names, "|"))
	cmd.Flags().StringVar(&query, "query", "", "JSONPath expression selecting parts of the tree")
	return cmd
}
