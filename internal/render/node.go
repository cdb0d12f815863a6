// SPDX-License-Identifier: MPL-2.0

package render

import "github.com/invowk/xdgmenu/pkg/menu"

// Node is the exported form of one presentation element. Menus carry
// Children, items carry DesktopID, and separators set only Separator.
type Node struct {
	Name      string  `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Comment   string  `json:"comment,omitempty" yaml:"comment,omitempty" toml:"comment,omitempty"`
	Icon      string  `json:"icon,omitempty" yaml:"icon,omitempty" toml:"icon,omitempty"`
	DesktopID string  `json:"desktop_id,omitempty" yaml:"desktop_id,omitempty" toml:"desktop_id,omitempty"`
	Separator bool    `json:"separator,omitempty" yaml:"separator,omitempty" toml:"separator,omitempty"`
	Children  []*Node `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`

	menu bool
}

// FromMenu converts m and its elements, depth first.
func FromMenu(m *menu.Menu) *Node {
	n := &Node{
		Name:    m.Name(),
		Comment: m.Comment(),
		Icon:    m.IconName(),
		menu:    true,
	}
	for _, el := range m.Elements() {
		n.Children = append(n.Children, fromElement(el))
	}
	return n
}

func fromElement(el menu.Element) *Node {
	switch e := el.(type) {
	case *menu.Menu:
		return FromMenu(e)
	case *menu.Item:
		return &Node{
			Name:      e.Name(),
			Comment:   e.Comment(),
			Icon:      e.IconName(),
			DesktopID: e.DesktopID(),
		}
	default:
		return &Node{Separator: true}
	}
}

// IsMenu reports whether n was built from a menu.
func (n *Node) IsMenu() bool { return n.menu }

// generic converts n to maps and slices, the form ojg encodes and queries.
func (n *Node) generic() map[string]any {
	m := make(map[string]any, 6)
	if n.Separator {
		m["separator"] = true
		return m
	}
	put := func(k, v string) {
		if v != "" {
			m[k] = v
		}
	}
	put("name", n.Name)
	put("comment", n.Comment)
	put("icon", n.Icon)
	put("desktop_id", n.DesktopID)
	if len(n.Children) > 0 {
		children := make([]any, len(n.Children))
		for i, c := range n.Children {
			children[i] = c.generic()
		}
		m["children"] = children
	}
	return m
}
