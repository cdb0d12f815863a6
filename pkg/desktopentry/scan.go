// SPDX-License-Identifier: MPL-2.0

package desktopentry

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const applicationExt = ".desktop"

// Table is an immutable set of applications keyed by desktop id. Every
// application has a dense index in [0, Len()) usable as a bitmap position.
type Table struct {
	apps  []*Application
	index map[string]int
}

// NewTable builds a table from apps. A later application with an id already
// present replaces the earlier one in its slot.
func NewTable(apps ...*Application) *Table {
	t := &Table{index: make(map[string]int, len(apps))}
	for _, a := range apps {
		t.put(a)
	}
	return t
}

func (t *Table) put(a *Application) {
	if i, ok := t.index[a.DesktopID]; ok {
		t.apps[i] = a
		return
	}
	t.index[a.DesktopID] = len(t.apps)
	t.apps = append(t.apps, a)
}

// Get returns the application with the given desktop id.
func (t *Table) Get(id string) (*Application, bool) {
	i, ok := t.index[id]
	if !ok {
		return nil, false
	}
	return t.apps[i], true
}

// Index returns the dense index of id, or -1.
func (t *Table) Index(id string) int {
	if i, ok := t.index[id]; ok {
		return i
	}
	return -1
}

// At returns the application at index i.
func (t *Table) At(i int) *Application { return t.apps[i] }

// Len returns the number of applications.
func (t *Table) Len() int { return len(t.apps) }

// All returns the applications in discovery order. The slice must not be
// modified.
func (t *Table) All() []*Application { return t.apps }

// DesktopID derives the desktop id of the file at rel, a slash or
// OS-separated path relative to its AppDir.
func DesktopID(rel string) string {
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", "-")
}

// Scan reads every .desktop file under dirs, ordered lowest precedence first.
// An id found in a later directory overrides the earlier record. Missing
// directories and unreadable or malformed files are skipped. A directory that
// is a symlink is walked at its target.
func (l *Loader) Scan(ctx context.Context, dirs []string) (*Table, error) {
	t := NewTable()
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		root := dir
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			root = resolved
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root && errors.Is(err, fs.ErrNotExist) {
					return fs.SkipAll
				}
				l.logger.Debug("skipping unreadable path", "path", path, "error", err)
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || filepath.Ext(path) != applicationExt {
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return nil
			}
			app, err := l.LoadApplication(path, DesktopID(rel))
			if err != nil {
				l.logger.Debug("skipping desktop entry", "file", path, "error", err)
				return nil
			}
			t.put(app)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

// FindDirectory loads the .directory file named name from dirs, searching the
// highest precedence (last) directory first. It reports false when no
// directory holds a loadable file of that name.
func (l *Loader) FindDirectory(name string, dirs []string) (*Directory, bool) {
	if filepath.IsAbs(name) {
		return l.loadDirectoryQuiet(name)
	}
	for i := len(dirs) - 1; i >= 0; i-- {
		if d, ok := l.loadDirectoryQuiet(filepath.Join(dirs[i], name)); ok {
			return d, true
		}
	}
	return nil, false
}

// FindDirectoryOf resolves the <Directory> references of a menu: the last
// name that loads from dirs wins.
func (l *Loader) FindDirectoryOf(names, dirs []string) (*Directory, bool) {
	for i := len(names) - 1; i >= 0; i-- {
		if d, ok := l.FindDirectory(names[i], dirs); ok {
			return d, true
		}
	}
	return nil, false
}

func (l *Loader) loadDirectoryQuiet(path string) (*Directory, bool) {
	if _, err := os.Stat(path); err != nil {
		return nil, false
	}
	d, err := l.LoadDirectory(path)
	if err != nil {
		l.logger.Debug("skipping directory entry", "file", path, "error", err)
		return nil, false
	}
	return d, true
}
