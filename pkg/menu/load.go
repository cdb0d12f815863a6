// SPDX-License-Identifier: MPL-2.0

package menu

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/invowk/xdgmenu/pkg/desktopentry"
	"github.com/invowk/xdgmenu/pkg/menumerge"
	"github.com/invowk/xdgmenu/pkg/menutree"
	"github.com/invowk/xdgmenu/pkg/xdg"
)

type (
	// Options configures Load.
	Options struct {
		Dirs xdg.Dirs
		// Files are the root menu documents, lowest precedence first. When
		// empty the root is looked up as menus/<prefix>applications.menu.
		Files []string
		// Environment is the active desktop, matched against OnlyShowIn and
		// NotShowIn. Empty shows everything.
		Environment string
		// Locale selects localized names, e.g. "de_DE.UTF-8".
		Locale string
		// SortItems orders the items of a menu by collated display name
		// instead of discovery order.
		SortItems bool
		// MaxDepth bounds merge nesting; zero uses menumerge.DefaultMaxDepth.
		MaxDepth int
		// NoDisplay forces the no-display flag of items by desktop id and of
		// menus by path.
		NoDisplay map[string]bool
		// Logger receives absorbed degradations at debug level. Nil discards.
		Logger *log.Logger
	}

	// Tree is one immutable result of the pipeline.
	Tree struct {
		// Root is the presentable root menu.
		Root *Menu
		// Entry is the merged semantic tree Root was resolved from.
		Entry *menutree.Entry
		// Allocation records which applications each menu received.
		Allocation *menutree.Allocation
		// Files lists every consumed menu document in merge order.
		Files []string
		// Dirs lists the directories the tree depends on: those of the menu
		// documents, merge directories, AppDirs and DirectoryDirs.
		Dirs []string

		reload chan struct{}
		once   sync.Once
	}
)

// Load runs the whole pipeline and returns a new Tree. Any error in a root
// document, a cycle or a malformed merged file aborts the load; optional
// inputs that are missing or unreadable are skipped.
func Load(ctx context.Context, opts Options) (*Tree, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	files := opts.Files
	if len(files) == 0 {
		root := opts.Dirs.LookupMenuFile()
		if root == "" {
			return nil, fmt.Errorf("%w: menus/%s%s", ErrNoMenuFile, opts.Dirs.MenuPrefix, xdg.RootMenuName)
		}
		files = []string{root}
	}

	resolver := &menumerge.Resolver{Dirs: opts.Dirs, Logger: logger, MaxDepth: opts.MaxDepth}
	builder := &menutree.Builder{Logger: logger}
	t := &Tree{reload: make(chan struct{})}
	trees := make([]*menutree.Entry, 0, len(files))
	for _, f := range files {
		res, err := resolver.ResolveFile(ctx, f)
		if err != nil {
			return nil, err
		}
		e, err := builder.Build(res.Root)
		if err != nil {
			return nil, err
		}
		trees = append(trees, e)
		t.Files = appendUnique(t.Files, res.Files()...)
		t.Dirs = appendUnique(t.Dirs, res.Dirs()...)
		logger.Debug("menu resolved", "file", res.File, "merged", len(res.Files())-1)
	}
	t.Entry = menutree.Merge(trees...)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loader := desktopentry.NewLoader(opts.Locale, logger)
	table, err := loader.Scan(ctx, AppDirs(t.Entry))
	if err != nil {
		return nil, err
	}
	logger.Debug("applications scanned", "count", table.Len())

	t.Allocation = menutree.Allocate(t.Entry, table, opts.Environment)
	t.Root = newLayoutResolver(t.Allocation, loader, &opts).root(t.Entry)
	return t, nil
}

// AppDirs returns the AppDirs of every menu of root, deduplicated, in the
// order first seen during a pre-order walk.
func AppDirs(root *menutree.Entry) []string {
	var out []string
	root.Walk(func(_ string, e *menutree.Entry) bool {
		out = appendUnique(out, e.AppDirs...)
		return true
	})
	return out
}

// ReloadRequired returns a channel closed once the tree is known to be stale.
func (t *Tree) ReloadRequired() <-chan struct{} {
	return t.reload
}

// Stale reports whether the tree has been invalidated.
func (t *Tree) Stale() bool {
	select {
	case <-t.reload:
		return true
	default:
		return false
	}
}

func (t *Tree) invalidate() {
	t.once.Do(func() { close(t.reload) })
}

func appendUnique(list []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(list, v) {
			list = append(list, v)
		}
	}
	return list
}
