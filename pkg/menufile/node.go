// SPDX-License-Identifier: MPL-2.0

package menufile

import "fmt"

// Node types, one per element of the menu document format. Rule containers
// (Include, Exclude, And, Or, Not) hold Category, Filename, All and nested
// containers; Layout and DefaultLayout hold Filename, Menuname, Separator
// and Merge.
const (
	// NodeMenu is a <Menu> element; the document root is always one.
	NodeMenu NodeType = iota + 1
	NodeName
	NodeDirectory
	NodeDirectoryDir
	NodeDefaultDirectoryDirs
	NodeAppDir
	NodeDefaultAppDirs
	NodeOnlyUnallocated
	NodeNotOnlyUnallocated
	NodeDeleted
	NodeNotDeleted
	NodeInclude
	NodeExclude
	NodeAnd
	NodeOr
	NodeNot
	NodeAll
	NodeFilename
	NodeCategory
	// NodeMove holds NodeOld/NodeNew pairs.
	NodeMove
	NodeOld
	NodeNew
	NodeLayout
	NodeDefaultLayout
	NodeMenuname
	NodeSeparator
	// NodeMerge is a layout insertion point; see Node.LayoutMerge.
	NodeMerge
	// NodeMergeFile splices another document; see Node.MergeFile.
	NodeMergeFile
	NodeMergeDir
	NodeDefaultMergeDirs
)

const (
	// MergeAll inserts all remaining submenus and items.
	MergeAll LayoutMergeType = iota
	// MergeMenus inserts remaining submenus only.
	MergeMenus
	// MergeFiles inserts remaining items only.
	MergeFiles
)

const (
	// MergeFilePath splices the file named by the element text.
	MergeFilePath MergeFileType = iota
	// MergeFileParent splices the next file with the same relative path
	// further down the menu search path.
	MergeFileParent
)

type (
	// NodeType identifies the grammar element a Node was parsed from.
	NodeType int

	// LayoutMergeType is the type attribute of a layout <Merge> element.
	LayoutMergeType int

	// MergeFileType is the type attribute of a <MergeFile> element.
	MergeFileType int

	// Node is one element of a raw menu syntax tree. Parents own their
	// children; the tree has no back edges.
	Node struct {
		Type NodeType
		// Text is the trimmed character data of text elements (Name, AppDir,
		// Category, MergeFile with type="path", ...). Empty for containers.
		Text string
		// LayoutMerge is only meaningful for NodeMerge.
		LayoutMerge LayoutMergeType
		// MergeFile is only meaningful for NodeMergeFile.
		MergeFile MergeFileType
		// Source is the file the element was read from. Relative paths in the
		// element text are resolved against its directory.
		Source string
		// Line is the 1-based line of the start tag, 0 when synthesized.
		Line     int
		Children []*Node
	}
)

// elementNames maps element names to node types. The boolean reports whether
// the element carries required text content.
var elementNames = map[string]struct {
	typ  NodeType
	text bool
}{
	"Menu":                 {NodeMenu, false},
	"Name":                 {NodeName, true},
	"Directory":            {NodeDirectory, true},
	"DirectoryDir":         {NodeDirectoryDir, true},
	"DefaultDirectoryDirs": {NodeDefaultDirectoryDirs, false},
	"AppDir":               {NodeAppDir, true},
	"DefaultAppDirs":       {NodeDefaultAppDirs, false},
	"OnlyUnallocated":      {NodeOnlyUnallocated, false},
	"NotOnlyUnallocated":   {NodeNotOnlyUnallocated, false},
	"Deleted":              {NodeDeleted, false},
	"NotDeleted":           {NodeNotDeleted, false},
	"Include":              {NodeInclude, false},
	"Exclude":              {NodeExclude, false},
	"And":                  {NodeAnd, false},
	"Or":                   {NodeOr, false},
	"Not":                  {NodeNot, false},
	"All":                  {NodeAll, false},
	"Filename":             {NodeFilename, true},
	"Category":             {NodeCategory, true},
	"Move":                 {NodeMove, false},
	"Old":                  {NodeOld, true},
	"New":                  {NodeNew, true},
	"Layout":               {NodeLayout, false},
	"DefaultLayout":        {NodeDefaultLayout, false},
	"Menuname":             {NodeMenuname, true},
	"Separator":            {NodeSeparator, false},
	"Merge":                {NodeMerge, false},
	"MergeFile":            {NodeMergeFile, false},
	"MergeDir":             {NodeMergeDir, true},
	"DefaultMergeDirs":     {NodeDefaultMergeDirs, false},
}

// String returns the element name of the node type.
func (t NodeType) String() string {
	for name, e := range elementNames {
		if e.typ == t {
			return name
		}
	}
	return fmt.Sprintf("NodeType(%d)", int(t))
}

// String returns the attribute value spelling of the merge type.
func (m LayoutMergeType) String() string {
	switch m {
	case MergeMenus:
		return "menus"
	case MergeFiles:
		return "files"
	default:
		return "all"
	}
}

// String returns the attribute value spelling of the merge file type.
func (m MergeFileType) String() string {
	if m == MergeFileParent {
		return "parent"
	}
	return "path"
}

// Child returns the last direct child of the given type, or nil. The last
// occurrence wins wherever the grammar allows repetition of a singular element.
func (n *Node) Child(t NodeType) *Node {
	for i := len(n.Children) - 1; i >= 0; i-- {
		if n.Children[i].Type == t {
			return n.Children[i]
		}
	}
	return nil
}

// ChildrenOf returns the direct children of the given type in document order.
func (n *Node) ChildrenOf(t NodeType) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return &c
}

// Walk calls fn for n and every descendant in pre-order. Returning false
// from fn skips the children of that node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
