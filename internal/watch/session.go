// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"fmt"

	"github.com/invowk/xdgmenu/pkg/menu"
)

// RunSession watches the directories of s's current tree until ctx is
// cancelled. On each change it invalidates s, reloads it, starts tracking
// any directories the new tree added, and passes the tree to show. A failed
// reload is logged and leaves the previous tree in place. cfg.Roots and
// cfg.OnChange are replaced.
func RunSession(ctx context.Context, s *menu.Session, cfg Config, show func(*menu.Tree) error) error {
	var w *Watcher
	cfg.Roots = s.Tree().Dirs
	cfg.OnChange = func(ctx context.Context, changed []string) error {
		s.Invalidate()
		tree, err := s.Reload(ctx)
		if err != nil {
			return err
		}
		if err := w.Track(tree.Dirs...); err != nil {
			return fmt.Errorf("track reloaded directories: %w", err)
		}
		if show == nil {
			return nil
		}
		return show(tree)
	}

	w, err := New(cfg)
	if err != nil {
		return err
	}
	return w.Run(ctx)
}
