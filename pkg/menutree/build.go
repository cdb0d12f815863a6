// SPDX-License-Identifier: MPL-2.0

package menutree

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/invowk/xdgmenu/pkg/menufile"
	"github.com/invowk/xdgmenu/pkg/rule"
)

// Builder converts resolved raw trees into Entry trees.
type Builder struct {
	// Logger receives Move directives that had no effect. Nil discards.
	Logger *log.Logger
}

// Build converts root with a zero Builder.
func Build(root *menufile.Node) (*Entry, error) {
	return (&Builder{}).Build(root)
}

// Build converts root, a raw tree without merge directives, into an Entry
// tree. Sibling menus of the same name are merged and <Move> directives are
// applied before the submenus are built. root is not modified.
func (b *Builder) Build(root *menufile.Node) (*Entry, error) {
	if root == nil || root.Type != menufile.NodeMenu {
		return nil, &BuildError{Reason: "root element is not a <Menu>"}
	}
	n := root.Clone()
	mergeDuplicates(n)
	return b.build(n, nil, "")
}

func (b *Builder) logger() *log.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return log.New(io.Discard)
}

func (b *Builder) build(n *menufile.Node, parent *Entry, parentPath string) (*Entry, error) {
	nameNode := n.Child(menufile.NodeName)
	if nameNode == nil {
		return nil, &BuildError{Path: parentPath, Source: n.Source, Line: n.Line, Reason: "<Menu> has no <Name>"}
	}
	e := &Entry{Name: nameNode.Text}
	path := e.Name
	if parentPath != "" {
		path = parentPath + "/" + e.Name
	}
	if parent != nil {
		e.AppDirs = slices.Clone(parent.AppDirs)
		e.DirectoryDirs = slices.Clone(parent.DirectoryDirs)
	}

	b.applyMoves(n, path)

	var includes, excludes []rule.Expr
	var submenus []*menufile.Node
	for _, c := range n.Children {
		switch c.Type {
		case menufile.NodeDirectory:
			e.Directories = append(e.Directories, c.Text)
		case menufile.NodeAppDir:
			e.AppDirs = appendDirs(e.AppDirs, c.Text)
		case menufile.NodeDirectoryDir:
			e.DirectoryDirs = appendDirs(e.DirectoryDirs, c.Text)
		case menufile.NodeOnlyUnallocated:
			e.OnlyUnallocated = Yes
		case menufile.NodeNotOnlyUnallocated:
			e.OnlyUnallocated = No
		case menufile.NodeDeleted:
			e.Deleted = Yes
		case menufile.NodeNotDeleted:
			e.Deleted = No
		case menufile.NodeInclude:
			includes = append(includes, compileList(c.Children)...)
		case menufile.NodeExclude:
			excludes = append(excludes, compileList(c.Children)...)
		case menufile.NodeLayout:
			e.Layout = compileLayout(c)
		case menufile.NodeDefaultLayout:
			e.DefaultLayout = compileLayout(c)
		case menufile.NodeMenu:
			submenus = append(submenus, c)
		}
	}
	e.Rule = rule.Compile(includes, excludes)

	for _, c := range submenus {
		child, err := b.build(c, e, path)
		if err != nil {
			return nil, err
		}
		e.Children = append(e.Children, child)
	}
	return e, nil
}

// appendDirs appends dirs, moving an already present directory to the end so
// the latest mention takes precedence.
func appendDirs(list []string, dirs ...string) []string {
	for _, d := range dirs {
		list = slices.DeleteFunc(list, func(v string) bool { return v == d })
		list = append(list, d)
	}
	return list
}

func compileList(nodes []*menufile.Node) []rule.Expr {
	var out []rule.Expr
	for _, n := range nodes {
		if x := compile(n); x != nil {
			out = append(out, x)
		}
	}
	return out
}

func compile(n *menufile.Node) rule.Expr {
	switch n.Type {
	case menufile.NodeAll:
		return rule.All{}
	case menufile.NodeCategory:
		return rule.Category(n.Text)
	case menufile.NodeFilename:
		return rule.Filename(n.Text)
	case menufile.NodeAnd:
		return rule.And(compileList(n.Children))
	case menufile.NodeOr:
		return rule.Or(compileList(n.Children))
	case menufile.NodeNot:
		// The operands of <Not> are implicitly or-ed.
		return rule.Not{X: rule.Union(compileList(n.Children)...)}
	default:
		return nil
	}
}

func compileLayout(n *menufile.Node) *Layout {
	l := &Layout{}
	for _, c := range n.Children {
		switch c.Type {
		case menufile.NodeFilename:
			l.Directives = append(l.Directives, Directive{Kind: ShowItem, Name: c.Text})
		case menufile.NodeMenuname:
			l.Directives = append(l.Directives, Directive{Kind: ShowMenu, Name: c.Text})
		case menufile.NodeSeparator:
			l.Directives = append(l.Directives, Directive{Kind: ShowSeparator})
		case menufile.NodeMerge:
			l.Directives = append(l.Directives, Directive{Kind: MergeInsertion, Merge: c.LayoutMerge})
		}
	}
	return l
}

// mergeDuplicates folds sibling menus of the same name into the first
// occurrence, appending the contents of later ones, throughout the subtree.
func mergeDuplicates(n *menufile.Node) {
	seen := make(map[string]*menufile.Node)
	out := n.Children[:0]
	for _, c := range n.Children {
		if c.Type == menufile.NodeMenu {
			if name := c.Child(menufile.NodeName); name != nil {
				if first, ok := seen[name.Text]; ok {
					first.Children = append(first.Children, c.Children...)
					continue
				}
				seen[name.Text] = c
			}
		}
		out = append(out, c)
	}
	clear(n.Children[len(out):])
	n.Children = out
	for _, c := range n.Children {
		if c.Type == menufile.NodeMenu {
			mergeDuplicates(c)
		}
	}
}
