// SPDX-License-Identifier: MPL-2.0

package menutree

import "github.com/invowk/xdgmenu/pkg/rule"

// Merge combines trees ordered lowest precedence first into one tree. Menus
// are matched by path: rules are or-ed, search directories concatenated,
// flags and layouts taken from the latest tree that sets them, and children
// merged recursively by name. The roots are always merged with each other and
// the result carries the name of the last one. Inputs are not modified; nil
// trees are skipped and Merge of nothing is nil.
func Merge(trees ...*Entry) *Entry {
	var out *Entry
	for _, t := range trees {
		if t == nil {
			continue
		}
		if out == nil {
			out = t.Clone()
			continue
		}
		mergeInto(out, t.Clone())
	}
	return out
}

// mergeInto folds later into e. Both are owned by the caller.
func mergeInto(e, later *Entry) {
	e.Name = later.Name
	e.Directories = append(e.Directories, later.Directories...)
	e.Rule = rule.Union(e.Rule, later.Rule)
	e.AppDirs = appendDirs(e.AppDirs, later.AppDirs...)
	e.DirectoryDirs = appendDirs(e.DirectoryDirs, later.DirectoryDirs...)
	e.OnlyUnallocated = e.OnlyUnallocated.Then(later.OnlyUnallocated)
	e.Deleted = e.Deleted.Then(later.Deleted)
	if later.Layout != nil {
		e.Layout = later.Layout
	}
	if later.DefaultLayout != nil {
		e.DefaultLayout = later.DefaultLayout
	}
	for _, lc := range later.Children {
		if c := e.Child(lc.Name); c != nil {
			mergeInto(c, lc)
			continue
		}
		e.Children = append(e.Children, lc)
	}
}
