// SPDX-License-Identifier: MPL-2.0

package menutree

import (
	"slices"
	"strings"

	"github.com/invowk/xdgmenu/pkg/menufile"
	"github.com/invowk/xdgmenu/pkg/rule"
)

// Flag is a tri-state boolean. A menu that never mentions a directive leaves
// it Unset so a later tree can still decide.
type Flag int8

const (
	// Unset means no directive was seen.
	Unset Flag = iota
	// No records an explicit negative directive such as <NotDeleted/>.
	No
	// Yes records an explicit positive directive such as <Deleted/>.
	Yes
)

// DirectiveKind identifies a layout directive.
type DirectiveKind int

const (
	// ShowMenu places the submenu named by Directive.Name.
	ShowMenu DirectiveKind = iota + 1
	// ShowItem places the application whose desktop id is Directive.Name.
	ShowItem
	// ShowSeparator places a separator.
	ShowSeparator
	// MergeInsertion places every child not placed explicitly, filtered by
	// Directive.Merge.
	MergeInsertion
)

type (
	// Directive is one instruction of a layout.
	Directive struct {
		Kind  DirectiveKind
		Name  string
		Merge menufile.LayoutMergeType
	}

	// Layout is an ordered list of directives. A nil *Layout means natural
	// order.
	Layout struct {
		Directives []Directive
	}

	// Entry is one menu of the semantic tree.
	Entry struct {
		Name string
		// Directories lists the <Directory> references in document order;
		// presentation uses the last one that loads.
		Directories []string
		// Rule selects the applications the menu accepts.
		Rule rule.Expr
		// AppDirs and DirectoryDirs are ordered lowest precedence first and
		// include the directories inherited from ancestors.
		AppDirs         []string
		DirectoryDirs   []string
		OnlyUnallocated Flag
		Deleted         Flag
		Layout          *Layout
		DefaultLayout   *Layout
		// Children are the submenus in document order.
		Children []*Entry
	}
)

// Bool resolves the flag, returning def when it is Unset.
func (f Flag) Bool(def bool) bool {
	switch f {
	case Yes:
		return true
	case No:
		return false
	default:
		return def
	}
}

// Then returns later when it is set and f otherwise.
func (f Flag) Then(later Flag) Flag {
	if later != Unset {
		return later
	}
	return f
}

func (f Flag) String() string {
	switch f {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "unset"
	}
}

// IsDeleted reports whether the menu is excluded from output.
func (e *Entry) IsDeleted() bool { return e.Deleted.Bool(false) }

// IsOnlyUnallocated reports whether the menu claims applications exclusively.
// Menus claim exclusively unless marked <NotOnlyUnallocated/>.
func (e *Entry) IsOnlyUnallocated() bool { return e.OnlyUnallocated.Bool(true) }

// Child returns the direct submenu called name.
func (e *Entry) Child(name string) *Entry {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Find returns the descendant at the slash-separated path relative to e.
func (e *Entry) Find(path string) *Entry {
	cur := e
	for _, seg := range splitPath(path) {
		if cur = cur.Child(seg); cur == nil {
			return nil
		}
	}
	return cur
}

// Walk calls fn for e and every descendant in pre-order with the
// slash-separated path of each entry, starting with e.Name. Returning false
// skips the children of that entry.
func (e *Entry) Walk(fn func(path string, e *Entry) bool) {
	e.walk(e.Name, fn)
}

func (e *Entry) walk(path string, fn func(string, *Entry) bool) {
	if !fn(path, e) {
		return
	}
	for _, c := range e.Children {
		c.walk(path+"/"+c.Name, fn)
	}
}

// Clone returns a deep copy of the subtree rooted at e. Rules are immutable
// values and are shared.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	c := *e
	c.Directories = slices.Clone(e.Directories)
	c.AppDirs = slices.Clone(e.AppDirs)
	c.DirectoryDirs = slices.Clone(e.DirectoryDirs)
	c.Layout = e.Layout.Clone()
	c.DefaultLayout = e.DefaultLayout.Clone()
	c.Children = make([]*Entry, len(e.Children))
	for i, child := range e.Children {
		c.Children[i] = child.Clone()
	}
	return &c
}

// Clone returns a copy of l; a nil layout stays nil.
func (l *Layout) Clone() *Layout {
	if l == nil {
		return nil
	}
	return &Layout{Directives: slices.Clone(l.Directives)}
}

func splitPath(path string) []string {
	var out []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}
