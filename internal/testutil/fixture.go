// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/invowk/xdgmenu/pkg/xdg"
)

// WriteTree writes files under root. Keys are slash-separated paths relative
// to root; parent directories are created as needed. Paths are written in
// sorted order so failures are reproducible.
func WriteTree(t testing.TB, root string, files map[string]string) {
	t.Helper()
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		MustMkdirAll(t, filepath.Dir(full), 0o755)
		if err := os.WriteFile(full, []byte(files[p]), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", full, err)
		}
	}
}

// MenuDoc wraps body in a <Menu> root carrying the standard doctype.
func MenuDoc(body ...string) string {
	return `<!DOCTYPE Menu PUBLIC "-//freedesktop//DTD Menu 1.0//EN"
 "http://www.freedesktop.org/standards/menu-spec/1.0/menu.dtd">
<Menu>
` + strings.Join(body, "\n") + `
</Menu>
`
}

// DesktopFile renders a minimal application entry named name in categories.
func DesktopFile(name string, categories ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[Desktop Entry]\nType=Application\nName=%s\nExec=%s\n", name, strings.ToLower(name))
	if len(categories) > 0 {
		fmt.Fprintf(&b, "Categories=%s;\n", strings.Join(categories, ";"))
	}
	return b.String()
}

// DirectoryFile renders a minimal directory entry.
func DirectoryFile(name, icon string) string {
	return fmt.Sprintf("[Desktop Entry]\nType=Directory\nName=%s\nIcon=%s\n", name, icon)
}

// XDGRoot writes files under a fresh temporary root laid out like a
// filesystem (etc/xdg, usr/share, home/config, home/data) and returns the
// search context pointing at it. The root has symlinks resolved so paths
// compare equal to canonicalized ones.
func XDGRoot(t testing.TB, files map[string]string) xdg.Dirs {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("EvalSymlinks() error = %v", err)
	}
	WriteTree(t, root, files)
	return xdg.Dirs{
		ConfigHome: filepath.Join(root, "home", "config"),
		ConfigDirs: []string{filepath.Join(root, "etc", "xdg")},
		DataHome:   filepath.Join(root, "home", "data"),
		DataDirs:   []string{filepath.Join(root, "usr", "share")},
	}
}
