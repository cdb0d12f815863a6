// SPDX-License-Identifier: MPL-2.0

// Package xdg resolves the XDG base directories that define where menu
// documents, application entries and directory entries are searched.
package xdg

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// MenusDir is the subdirectory of every config dir holding .menu files.
	MenusDir = "menus"
	// ApplicationsDir is the subdirectory of every data dir holding .desktop files.
	ApplicationsDir = "applications"
	// DirectoriesDir is the subdirectory of every data dir holding .directory files.
	DirectoriesDir = "desktop-directories"
	// RootMenuName is the base name of the root menu document before prefixing.
	RootMenuName = "applications.menu"
)

// Dirs is the search context used by the merge resolver and root lookup.
// Home directories take precedence over the system lists; within a list,
// earlier entries take precedence over later ones.
type Dirs struct {
	ConfigHome string
	ConfigDirs []string
	DataHome   string
	DataDirs   []string
	// MenuPrefix is $XDG_MENU_PREFIX, e.g. "xfce-".
	MenuPrefix string
}

// FromEnv builds Dirs from the process environment with the defaults of the
// base directory specification.
func FromEnv() Dirs {
	return fromLookup(os.Getenv)
}

func fromLookup(getenv func(string) string) Dirs {
	home := getenv("HOME")

	d := Dirs{
		ConfigHome: getenv("XDG_CONFIG_HOME"),
		DataHome:   getenv("XDG_DATA_HOME"),
		ConfigDirs: splitList(getenv("XDG_CONFIG_DIRS")),
		DataDirs:   splitList(getenv("XDG_DATA_DIRS")),
		MenuPrefix: getenv("XDG_MENU_PREFIX"),
	}
	if d.ConfigHome == "" && home != "" {
		d.ConfigHome = filepath.Join(home, ".config")
	}
	if d.DataHome == "" && home != "" {
		d.DataHome = filepath.Join(home, ".local", "share")
	}
	if len(d.ConfigDirs) == 0 {
		d.ConfigDirs = []string{"/etc/xdg"}
	}
	if len(d.DataDirs) == 0 {
		d.DataDirs = []string{"/usr/local/share", "/usr/share"}
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, p := range filepath.SplitList(v) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, filepath.Clean(p))
		}
	}
	return out
}

// ConfigSearch returns the config directories in precedence order,
// highest first.
func (d Dirs) ConfigSearch() []string {
	return prepend(d.ConfigHome, d.ConfigDirs)
}

// DataSearch returns the data directories in precedence order, highest first.
func (d Dirs) DataSearch() []string {
	return prepend(d.DataHome, d.DataDirs)
}

// MenuDirs returns every "menus" directory in precedence order, highest first.
func (d Dirs) MenuDirs() []string {
	return under(d.ConfigSearch(), MenusDir)
}

// AppDirs returns every "applications" directory ordered lowest precedence
// first, the order in which <DefaultAppDirs/> expands so later entries win.
func (d Dirs) AppDirs() []string {
	return reversed(under(d.DataSearch(), ApplicationsDir))
}

// DirectoryDirs returns every "desktop-directories" directory ordered lowest
// precedence first, the order in which <DefaultDirectoryDirs/> expands.
func (d Dirs) DirectoryDirs() []string {
	return reversed(under(d.DataSearch(), DirectoriesDir))
}

// MergeDirs returns the "<basename>-merged" directories for a root menu file,
// lowest precedence first. The basename drops the .menu extension and the
// menu prefix, so xfce-applications.menu yields applications-merged.
func (d Dirs) MergeDirs(rootFile string) []string {
	base := strings.TrimSuffix(filepath.Base(rootFile), ".menu")
	if d.MenuPrefix != "" {
		base = strings.TrimPrefix(base, d.MenuPrefix)
	}
	return reversed(under(d.MenuDirs(), base+"-merged"))
}

// LookupMenuFile returns the first existing "menus/<prefix>applications.menu"
// along the config search path, or "" if none exists.
func (d Dirs) LookupMenuFile() string {
	return d.Lookup(d.MenuPrefix + RootMenuName)
}

// Lookup returns the first existing file named rel under a menus directory,
// highest precedence first, or "" if none exists.
func (d Dirs) Lookup(rel string) string {
	for _, dir := range d.MenuDirs() {
		p := filepath.Join(dir, rel)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// NextMenuFile finds the file that a <MergeFile type="parent"/> inside
// current refers to: the same path relative to its menus directory, looked up
// in the menus directories of lower precedence. When current lies outside
// every menus directory, all of them are searched. Paths are compared after
// resolving symlinks, and current itself is never returned. Returns "" if
// none exists.
func (d Dirs) NextMenuFile(current string) string {
	dirs := d.MenuDirs()
	cur := realPath(current)
	rel := filepath.Base(current)
	start := 0
	for i, dir := range dirs {
		r, ok := within(dir, current)
		if !ok {
			r, ok = within(realPath(dir), cur)
		}
		if ok {
			rel, start = r, i+1
			break
		}
	}
	for _, dir := range dirs[start:] {
		p := filepath.Join(dir, rel)
		if info, err := os.Stat(p); err == nil && !info.IsDir() && realPath(p) != cur {
			return p
		}
	}
	return ""
}

// realPath returns path made absolute with symlinks resolved, or the cleaned
// path when it cannot be resolved.
func realPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

func within(dir, path string) (string, bool) {
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || rel == ".." {
		return "", false
	}
	return rel, true
}

func prepend(first string, rest []string) []string {
	out := make([]string, 0, len(rest)+1)
	if first != "" {
		out = append(out, filepath.Clean(first))
	}
	return append(out, rest...)
}

func under(dirs []string, sub string) []string {
	out := make([]string, len(dirs))
	for i, d := range dirs {
		out[i] = filepath.Join(d, sub)
	}
	return out
}

func reversed(in []string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}
