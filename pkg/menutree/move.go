// SPDX-License-Identifier: MPL-2.0

package menutree

import (
	"slices"

	"github.com/invowk/xdgmenu/pkg/menufile"
)

// applyMoves applies the <Move> directives of n in document order. Old and New
// are paths relative to n. A Move whose Old does not exist is a no-op; when
// New already exists the moved menu is merged into it.
func (b *Builder) applyMoves(n *menufile.Node, path string) {
	for _, mv := range n.ChildrenOf(menufile.NodeMove) {
		oldPath := mv.Child(menufile.NodeOld).Text
		newPath := mv.Child(menufile.NodeNew).Text
		if Move(n, oldPath, newPath) {
			continue
		}
		b.logger().Debug("move has no effect", "path", path, "old", oldPath, "new", newPath, "file", mv.Source)
	}
}

// Move relocates the submenu of scope at oldPath to newPath, creating
// intermediate menus as needed. It reports whether anything moved.
func Move(scope *menufile.Node, oldPath, newPath string) bool {
	oldSegs, newSegs := splitPath(oldPath), splitPath(newPath)
	if len(oldSegs) == 0 || len(newSegs) == 0 {
		return false
	}
	if slices.Equal(oldSegs, newSegs) {
		return findMenu(scope, oldSegs) != nil
	}
	oldParent := findMenu(scope, oldSegs[:len(oldSegs)-1])
	if oldParent == nil {
		return false
	}
	idx := slices.IndexFunc(oldParent.Children, func(c *menufile.Node) bool {
		return isMenuNamed(c, oldSegs[len(oldSegs)-1])
	})
	if idx < 0 {
		return false
	}
	moved := oldParent.Children[idx]
	oldParent.Children = slices.Delete(oldParent.Children, idx, idx+1)

	target := scope
	for _, seg := range newSegs[:len(newSegs)-1] {
		next := childMenu(target, seg)
		if next == nil {
			next = newMenu(seg, moved)
			target.Children = append(target.Children, next)
		}
		target = next
	}

	last := newSegs[len(newSegs)-1]
	rename(moved, last)
	if existing := childMenu(target, last); existing != nil {
		existing.Children = append(existing.Children, moved.Children...)
		mergeDuplicates(existing)
		return true
	}
	target.Children = append(target.Children, moved)
	return true
}

func findMenu(scope *menufile.Node, segs []string) *menufile.Node {
	cur := scope
	for _, seg := range segs {
		if cur = childMenu(cur, seg); cur == nil {
			return nil
		}
	}
	return cur
}

func childMenu(n *menufile.Node, name string) *menufile.Node {
	for _, c := range n.Children {
		if isMenuNamed(c, name) {
			return c
		}
	}
	return nil
}

func isMenuNamed(n *menufile.Node, name string) bool {
	if n.Type != menufile.NodeMenu {
		return false
	}
	nm := n.Child(menufile.NodeName)
	return nm != nil && nm.Text == name
}

func newMenu(name string, like *menufile.Node) *menufile.Node {
	return &menufile.Node{
		Type:     menufile.NodeMenu,
		Source:   like.Source,
		Children: []*menufile.Node{{Type: menufile.NodeName, Text: name, Source: like.Source}},
	}
}

// rename drops every <Name> of n and gives it name.
func rename(n *menufile.Node, name string) {
	n.Children = slices.DeleteFunc(n.Children, func(c *menufile.Node) bool { return c.Type == menufile.NodeName })
	n.Children = slices.Insert(n.Children, 0, &menufile.Node{Type: menufile.NodeName, Text: name, Source: n.Source})
}
