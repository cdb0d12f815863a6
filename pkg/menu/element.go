// SPDX-License-Identifier: MPL-2.0

package menu

import (
	"slices"

	"github.com/invowk/xdgmenu/pkg/desktopentry"
	"github.com/invowk/xdgmenu/pkg/menutree"
)

type (
	// Element is a node of the presentable tree. The implementations are
	// *Menu, *Item and Separator.
	Element interface {
		Name() string
		Comment() string
		IconName() string
		// Visible combines the environment test of the tree, the Hidden
		// and NoDisplay flags and the caller's no-display overrides.
		Visible() bool
		// ShowIn reports whether the element is shown in desktop
		// environment env by its OnlyShowIn and NotShowIn lists.
		ShowIn(env string) bool

		element()
	}

	// Menu is a submenu with its ordered visible children.
	Menu struct {
		entry     *menutree.Entry
		path      string
		dir       *desktopentry.Directory
		env       string
		noDisplay bool
		elements  []Element
	}

	// Item is an application allocated to a menu.
	Item struct {
		app       *desktopentry.Application
		env       string
		noDisplay bool
	}

	// Separator is a layout separator. It carries no data.
	Separator struct{}
)

func (*Menu) element()     {}
func (*Item) element()     {}
func (Separator) element() {}

// Name returns the directory entry name, falling back to the menu name.
func (m *Menu) Name() string {
	if m.dir != nil && m.dir.Name != "" {
		return m.dir.Name
	}
	return m.entry.Name
}

func (m *Menu) Comment() string {
	if m.dir == nil {
		return ""
	}
	return m.dir.Comment
}

func (m *Menu) IconName() string {
	if m.dir == nil {
		return ""
	}
	return m.dir.Icon
}

func (m *Menu) Visible() bool {
	if m.noDisplay {
		return false
	}
	return m.dir == nil || (!m.dir.Hidden && m.dir.ShowIn(m.env))
}

func (m *Menu) ShowIn(env string) bool {
	return m.dir == nil || m.dir.ShowIn(env)
}

// NoDisplay reports the effective no-display flag of the menu.
func (m *Menu) NoDisplay() bool { return m.noDisplay }

// Path returns the slash-separated path of menu names from the root,
// e.g. "Applications/Games".
func (m *Menu) Path() string { return m.path }

// Directory returns the loaded directory entry, or nil.
func (m *Menu) Directory() *desktopentry.Directory { return m.dir }

// Entry returns the semantic menu the element was resolved from.
func (m *Menu) Entry() *menutree.Entry { return m.entry }

// Elements returns the ordered visible children.
func (m *Menu) Elements() []Element { return slices.Clone(m.elements) }

// Len returns the number of children.
func (m *Menu) Len() int { return len(m.elements) }

func (i *Item) Name() string     { return i.app.Name }
func (i *Item) Comment() string  { return i.app.Comment }
func (i *Item) IconName() string { return i.app.Icon }

func (i *Item) Visible() bool {
	return !i.noDisplay && !i.app.Hidden && i.app.ShowIn(i.env)
}

func (i *Item) ShowIn(env string) bool { return i.app.ShowIn(env) }

// NoDisplay reports the effective no-display flag of the item.
func (i *Item) NoDisplay() bool { return i.noDisplay }

// DesktopID returns the desktop id of the application.
func (i *Item) DesktopID() string { return i.app.DesktopID }

// Application returns the underlying application record.
func (i *Item) Application() *desktopentry.Application { return i.app }

func (Separator) Name() string       { return "" }
func (Separator) Comment() string    { return "" }
func (Separator) IconName() string   { return "" }
func (Separator) Visible() bool      { return true }
func (Separator) ShowIn(string) bool { return true }

// Walk calls fn for every element below m in pre-order with its depth,
// starting at 0 for the direct children. Returning false skips the children
// of a menu.
func (m *Menu) Walk(fn func(e Element, depth int) bool) {
	m.walk(0, fn)
}

func (m *Menu) walk(depth int, fn func(Element, int) bool) {
	for _, e := range m.elements {
		if !fn(e, depth) {
			continue
		}
		if sub, ok := e.(*Menu); ok {
			sub.walk(depth+1, fn)
		}
	}
}
