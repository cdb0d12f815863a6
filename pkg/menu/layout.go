// SPDX-License-Identifier: MPL-2.0

package menu

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/invowk/xdgmenu/pkg/desktopentry"
	"github.com/invowk/xdgmenu/pkg/menufile"
	"github.com/invowk/xdgmenu/pkg/menutree"
)

// layoutResolver turns an allocated Entry tree into Menus.
type layoutResolver struct {
	alloc     *menutree.Allocation
	loader    *desktopentry.Loader
	env       string
	noDisplay map[string]bool
	collator  *collate.Collator
}

func newLayoutResolver(alloc *menutree.Allocation, loader *desktopentry.Loader, opts *Options) *layoutResolver {
	r := &layoutResolver{
		alloc:     alloc,
		loader:    loader,
		env:       opts.Environment,
		noDisplay: opts.NoDisplay,
	}
	if opts.SortItems {
		tag, err := desktopentry.LocaleTag(opts.Locale)
		if err != nil {
			tag = language.Und
		}
		r.collator = collate.New(tag, collate.IgnoreCase)
	}
	return r
}

// root resolves the root menu. The root is kept even when empty.
func (r *layoutResolver) root(e *menutree.Entry) *Menu {
	m, _ := r.menu(e, e.Name, nil)
	return m
}

// menu resolves e and reports whether it should appear in its parent: menus
// that are deleted, or have neither visible items nor visible submenus, are
// pruned.
func (r *layoutResolver) menu(e *menutree.Entry, path string, inherited *menutree.Layout) (*Menu, bool) {
	m := &Menu{entry: e, path: path, env: r.env}
	if dir, ok := r.loader.FindDirectoryOf(e.Directories, e.DirectoryDirs); ok {
		m.dir = dir
		m.noDisplay = dir.NoDisplay
	}
	if v, ok := r.noDisplay[path]; ok {
		m.noDisplay = v
	}
	if e.IsDeleted() {
		return m, false
	}

	defaults := inherited
	if e.DefaultLayout != nil {
		defaults = e.DefaultLayout
	}

	var natural []Element
	for _, c := range e.Children {
		if sub, keep := r.menu(c, path+"/"+c.Name, defaults); keep {
			natural = append(natural, sub)
		}
	}
	items := r.items(e)
	for _, it := range items {
		natural = append(natural, it)
	}

	layout := e.Layout
	if layout == nil {
		layout = defaults
	}
	ordered := natural
	if layout != nil {
		ordered = applyLayout(layout, natural)
	}

	m.elements = collapseSeparators(slices.DeleteFunc(ordered, func(el Element) bool { return !el.Visible() }))
	return m, hasContent(m.elements)
}

func (r *layoutResolver) items(e *menutree.Entry) []*Item {
	apps := r.alloc.Apps(e)
	items := make([]*Item, 0, len(apps))
	for _, app := range apps {
		it := &Item{app: app, env: r.env, noDisplay: app.NoDisplay}
		if v, ok := r.noDisplay[app.DesktopID]; ok {
			it.noDisplay = v
		}
		items = append(items, it)
	}
	if r.collator != nil {
		slices.SortStableFunc(items, func(a, b *Item) int {
			return r.collator.CompareString(a.Name(), b.Name())
		})
	}
	return items
}

// applyLayout orders natural by the directives of l. Explicit references to
// missing children are ignored; children never placed are appended in natural
// order.
func applyLayout(l *menutree.Layout, natural []Element) []Element {
	placed := make([]bool, len(natural))
	out := make([]Element, 0, len(natural))
	place := func(i int) {
		placed[i] = true
		out = append(out, natural[i])
	}
	for _, d := range l.Directives {
		switch d.Kind {
		case menutree.ShowMenu:
			if i := slices.IndexFunc(natural, func(el Element) bool {
				m, ok := el.(*Menu)
				return ok && m.entry.Name == d.Name
			}); i >= 0 && !placed[i] {
				place(i)
			}
		case menutree.ShowItem:
			if i := slices.IndexFunc(natural, func(el Element) bool {
				it, ok := el.(*Item)
				return ok && it.DesktopID() == d.Name
			}); i >= 0 && !placed[i] {
				place(i)
			}
		case menutree.ShowSeparator:
			out = append(out, Separator{})
		case menutree.MergeInsertion:
			for i, el := range natural {
				if !placed[i] && mergeMatches(d.Merge, el) {
					place(i)
				}
			}
		}
	}
	for i := range natural {
		if !placed[i] {
			place(i)
		}
	}
	return out
}

func mergeMatches(kind menufile.LayoutMergeType, el Element) bool {
	switch el.(type) {
	case *Menu:
		return kind != menufile.MergeFiles
	case *Item:
		return kind != menufile.MergeMenus
	default:
		return false
	}
}

// collapseSeparators drops leading, trailing and repeated separators.
func collapseSeparators(in []Element) []Element {
	out := in[:0]
	for _, el := range in {
		if _, sep := el.(Separator); sep {
			if len(out) == 0 {
				continue
			}
			if _, prev := out[len(out)-1].(Separator); prev {
				continue
			}
		}
		out = append(out, el)
	}
	if n := len(out); n > 0 {
		if _, sep := out[n-1].(Separator); sep {
			out = out[:n-1]
		}
	}
	return out
}

func hasContent(elements []Element) bool {
	return slices.ContainsFunc(elements, func(el Element) bool {
		_, sep := el.(Separator)
		return !sep
	})
}
