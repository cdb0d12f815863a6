// SPDX-License-Identifier: MPL-2.0

package menumerge

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/invowk/xdgmenu/internal/dag"
	"github.com/invowk/xdgmenu/pkg/menufile"
	"github.com/invowk/xdgmenu/pkg/xdg"
)

// DefaultMaxDepth bounds merge nesting when Resolver.MaxDepth is zero.
const DefaultMaxDepth = 32

type (
	// Resolver resolves merge directives against an XDG search context.
	Resolver struct {
		Dirs xdg.Dirs
		// Logger receives the merges that were dropped. Nil discards.
		Logger *log.Logger
		// MaxDepth limits how many files may be open on the merge stack.
		MaxDepth int
	}

	// Resolved is a fully merged raw tree.
	Resolved struct {
		// Root is the root <Menu> with no merge directives left.
		Root *menufile.Node
		// File is the canonical path of the root document.
		File string

		graph *dag.Graph
		dirs  []string
	}

	// resolution carries the state of one Resolve call.
	resolution struct {
		r        *Resolver
		ctx      context.Context
		logger   *log.Logger
		rootFile string
		stack    []string
		graph    *dag.Graph
		dirs     []string
	}
)

// ResolveFile parses the root document at path and resolves it. Failing to
// read the root document is fatal.
func (r *Resolver) ResolveFile(ctx context.Context, path string) (*Resolved, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root, err := menufile.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return r.Resolve(ctx, root, path)
}

// Resolve returns a copy of root with every merge directive replaced. path
// names the file root was parsed from; it anchors relative paths and the
// <DefaultMergeDirs/> basename. The input tree is not modified.
func (r *Resolver) Resolve(ctx context.Context, root *menufile.Node, path string) (*Resolved, error) {
	file := canonical(path)
	res := &resolution{
		r:        r,
		ctx:      ctx,
		logger:   r.logger(),
		rootFile: file,
		stack:    []string{file},
		graph:    dag.New(),
	}
	res.graph.AddNode(file)
	res.watch(filepath.Dir(file))

	out := root.Clone()
	if err := res.menu(out); err != nil {
		return nil, err
	}
	return &Resolved{Root: out, File: file, graph: res.graph, dirs: res.dirs}, nil
}

func (r *Resolver) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.New(io.Discard)
}

func (r *Resolver) maxDepth() int {
	if r.MaxDepth > 0 {
		return r.MaxDepth
	}
	return DefaultMaxDepth
}

// Files returns the canonical path of every consumed menu file. The root
// comes first and every file precedes the files it merged.
func (r *Resolved) Files() []string {
	order, err := r.graph.TopologicalSort()
	if err != nil {
		return r.graph.Nodes()
	}
	return order
}

// MergedBy returns the files merged directly by file, in merge order.
func (r *Resolved) MergedBy(file string) []string {
	return r.graph.Successors(file)
}

// Dirs returns every directory the resolved tree depends on: the directories
// of the consumed files, merge directories and AppDir and DirectoryDir
// entries. Directories that did not exist at resolution time are included.
func (r *Resolved) Dirs() []string {
	return slices.Clone(r.dirs)
}

// menu resolves the children of a <Menu> in place.
func (res *resolution) menu(n *menufile.Node) error {
	out := make([]*menufile.Node, 0, len(n.Children))
	for _, c := range n.Children {
		switch c.Type {
		case menufile.NodeMenu:
			if err := res.menu(c); err != nil {
				return err
			}
			out = append(out, c)
		case menufile.NodeAppDir, menufile.NodeDirectoryDir:
			c.Text = absolute(c)
			res.watch(c.Text)
			out = append(out, c)
		case menufile.NodeDefaultAppDirs:
			out = append(out, res.synthesize(c, menufile.NodeAppDir, res.r.Dirs.AppDirs())...)
		case menufile.NodeDefaultDirectoryDirs:
			out = append(out, res.synthesize(c, menufile.NodeDirectoryDir, res.r.Dirs.DirectoryDirs())...)
		case menufile.NodeMergeFile:
			spliced, err := res.mergeFile(c)
			if err != nil {
				return err
			}
			out = append(out, spliced...)
		case menufile.NodeMergeDir:
			spliced, err := res.mergeDir(c.Source, absolute(c))
			if err != nil {
				return err
			}
			out = append(out, spliced...)
		case menufile.NodeDefaultMergeDirs:
			for _, dir := range res.r.Dirs.MergeDirs(res.rootFile) {
				spliced, err := res.mergeDir(c.Source, dir)
				if err != nil {
					return err
				}
				out = append(out, spliced...)
			}
		default:
			out = append(out, c)
		}
	}
	n.Children = out
	return nil
}

func (res *resolution) synthesize(at *menufile.Node, typ menufile.NodeType, dirs []string) []*menufile.Node {
	out := make([]*menufile.Node, 0, len(dirs))
	for _, d := range dirs {
		res.watch(d)
		out = append(out, &menufile.Node{Type: typ, Text: d, Source: at.Source, Line: at.Line})
	}
	return out
}

func (res *resolution) mergeFile(n *menufile.Node) ([]*menufile.Node, error) {
	var target string
	switch n.MergeFile {
	case menufile.MergeFileParent:
		target = res.r.Dirs.NextMenuFile(res.current())
		if target == "" {
			res.logger.Debug("no parent menu to merge", "file", res.current())
			return nil, nil
		}
	default:
		target = absolute(n)
	}
	return res.load(target)
}

func (res *resolution) mergeDir(source, dir string) ([]*menufile.Node, error) {
	res.watch(dir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		res.logger.Debug("skipping merge directory", "path", dir, "file", source, "error", err)
		return nil, nil
	}
	var out []*menufile.Node
	// os.ReadDir returns entries sorted by file name.
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".menu" {
			continue
		}
		spliced, err := res.load(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, spliced...)
	}
	return out, nil
}

// load parses target, resolves it recursively and returns the children of
// its root <Menu> except <Name>.
func (res *resolution) load(target string) ([]*menufile.Node, error) {
	if err := res.ctx.Err(); err != nil {
		return nil, err
	}
	file := canonical(target)
	if i := slices.Index(res.stack, file); i >= 0 {
		chain := append(slices.Clone(res.stack[i:]), file)
		return nil, &CyclicMergeError{Chain: chain}
	}
	if limit := res.r.maxDepth(); len(res.stack) >= limit {
		return nil, &MergeDepthError{File: file, Limit: limit}
	}

	root, err := menufile.ParseFile(file)
	if err != nil {
		if errors.Is(err, menufile.ErrIO) {
			res.logger.Debug("skipping missing merge target", "file", file, "error", err)
			return nil, nil
		}
		return nil, err
	}

	res.graph.AddEdge(res.current(), file)
	res.watch(filepath.Dir(file))
	res.stack = append(res.stack, file)
	defer func() { res.stack = res.stack[:len(res.stack)-1] }()

	if err := res.menu(root); err != nil {
		return nil, err
	}
	out := make([]*menufile.Node, 0, len(root.Children))
	for _, c := range root.Children {
		if c.Type != menufile.NodeName {
			out = append(out, c)
		}
	}
	return out, nil
}

func (res *resolution) current() string {
	return res.stack[len(res.stack)-1]
}

func (res *resolution) watch(dir string) {
	if !slices.Contains(res.dirs, dir) {
		res.dirs = append(res.dirs, dir)
	}
}

// absolute resolves the text of n against the directory of its source file.
func absolute(n *menufile.Node) string {
	p := n.Text
	if !filepath.IsAbs(p) && n.Source != "" {
		p = filepath.Join(filepath.Dir(n.Source), p)
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// canonical returns an absolute, symlink-free form of path when it can be
// computed, falling back to the cleaned absolute path.
func canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
