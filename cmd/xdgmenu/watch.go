// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/invowk/xdgmenu/internal/issue"
	"github.com/invowk/xdgmenu/internal/watch"
	"github.com/invowk/xdgmenu/pkg/menu"
)

func newWatchCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var (
		sf          showFlagValues
		debounce    time.Duration
		clearScreen bool
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the menu tree and reprint it whenever it changes",
		Long: `Print the menu tree, then watch every directory it depends on and
reprint the tree after menu documents, application entries or directory
entries change. Directories that do not exist yet are picked up when they
are created.

A reload that fails keeps the previous tree and is logged. Press Ctrl+C to
stop.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := app.prepare(cmd, flags)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			session, err := menu.NewSession(ctx, rc.opts)
			if err != nil {
				return app.fail("load menu", menuResource(rc.opts), err, rc.verbose)
			}

			show := func(tree *menu.Tree) error {
				if err := app.printTree(tree, &sf); err != nil {
					return err
				}
				fmt.Fprintf(app.stdout, "\n%s Watching %d directories (Ctrl+C to stop)...\n",
					VerboseHighlightStyle.Render("→"), len(tree.Dirs))
				return nil
			}
			if err := show(session.Tree()); err != nil {
				return err
			}

			if !changed(cmd, "debounce") {
				debounce = rc.cfg.Watch.Debounce
			}
			if !changed(cmd, "clear") {
				clearScreen = app.stdout == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
			}
			err = watch.RunSession(ctx, session, watch.Config{
				Debounce:    debounce,
				ClearScreen: clearScreen,
				Stdout:      app.stdout,
				Logger:      rc.logger,
			}, show)
			if err != nil {
				return app.fail("watch menu directories", "", issue.NewErrorContext().
					WithOperation("watch menu directories").
					WithIssue(issue.WatchFailedId).
					Wrap(err).
					BuildError(), rc.verbose)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&sf.ids, "ids", false, "append the desktop id of each application")
	cmd.Flags().BoolVar(&sf.comments, "comments", false, "append the comment of each entry")
	cmd.Flags().BoolVar(&sf.plain, "plain", false, "disable colors")
	cmd.Flags().DurationVar(&debounce, "debounce", 0, "quiet period before reloading (default from config, 500ms)")
	cmd.Flags().BoolVar(&clearScreen, "clear", false, "clear the screen before each reprint (default when stdout is a terminal)")
	return cmd
}
