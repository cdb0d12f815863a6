// SPDX-License-Identifier: MPL-2.0

package desktopentry

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/invowk/xdgmenu/internal/testutil"
)

func TestDesktopID(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"firefox.desktop":               "firefox.desktop",
		"kde/konsole.desktop":           "kde-konsole.desktop",
		"a/b/c.desktop":                 "a-b-c.desktop",
		filepath.Join("x", "y.desktop"): "x-y.desktop",
	}
	for in, want := range tests {
		if got := DesktopID(in); got != want {
			t.Errorf("DesktopID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestScan(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"system/chess.desktop":       testutil.DesktopFile("Chess", "Game"),
		"system/kde/konsole.desktop": testutil.DesktopFile("Konsole", "System"),
		"system/broken.desktop":      "not a key file",
		"system/link.desktop":        "[Desktop Entry]\nType=Link\nName=Web\nURL=https://example.com\n",
		"system/readme.txt":          "ignored",
		"user/chess.desktop":         testutil.DesktopFile("Better Chess", "Game", "BoardGame"),
	})
	dirs := []string{
		filepath.Join(root, "system"),
		filepath.Join(root, "missing"),
		filepath.Join(root, "user"),
	}

	table, err := NewLoader("", nil).Scan(context.Background(), dirs)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2: %v", table.Len(), table.All())
	}

	chess, ok := table.Get("chess.desktop")
	if !ok {
		t.Fatal("chess.desktop not found")
	}
	if chess.Name != "Better Chess" {
		t.Errorf("chess name = %q, want the user override", chess.Name)
	}
	if !chess.HasCategory("BoardGame") {
		t.Errorf("categories = %v", chess.Categories)
	}
	if _, ok := table.Get("kde-konsole.desktop"); !ok {
		t.Error("kde-konsole.desktop not found")
	}
	if i := table.Index("chess.desktop"); i < 0 || table.At(i) != chess {
		t.Errorf("Index/At mismatch for chess.desktop: %d", i)
	}
	if table.Index("link.desktop") != -1 {
		t.Error("link entries must be skipped")
	}
}

func TestScan_SymlinkedDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"store/share/applications/firefox.desktop":    testutil.DesktopFile("Firefox", "Network"),
		"store/share/applications/gnome/maps.desktop": testutil.DesktopFile("Maps", "Utility"),
	})
	link := filepath.Join(root, "profile-applications")
	if err := os.Symlink(filepath.Join(root, "store", "share", "applications"), link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	table, err := NewLoader("", nil).Scan(context.Background(), []string{link})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	for _, id := range []string{"firefox.desktop", "gnome-maps.desktop"} {
		if _, ok := table.Get(id); !ok {
			t.Errorf("%s not found through symlinked AppDir: %v", id, table.All())
		}
	}
}

func TestScan_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLoader("", nil).Scan(ctx, []string{t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Scan() error = %v, want context.Canceled", err)
	}
}

func TestNewTable_OverrideKeepsSlot(t *testing.T) {
	t.Parallel()

	a := &Application{DesktopID: "a.desktop", Name: "A"}
	b := &Application{DesktopID: "b.desktop", Name: "B"}
	a2 := &Application{DesktopID: "a.desktop", Name: "A2"}

	table := NewTable(a, b, a2)
	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}
	if table.At(0) != a2 || table.At(1) != b {
		t.Errorf("All() = %v", table.All())
	}
}

func TestFindDirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"low/Games.directory":  testutil.DirectoryFile("Games", "low-icon"),
		"high/Games.directory": testutil.DirectoryFile("Fun", "high-icon"),
		"low/Only.directory":   testutil.DirectoryFile("Only", "only"),
		"high/Bad.directory":   "garbage",
	})
	dirs := []string{filepath.Join(root, "low"), filepath.Join(root, "high")}
	l := NewLoader("", nil)

	d, ok := l.FindDirectory("Games.directory", dirs)
	if !ok || d.Name != "Fun" {
		t.Errorf("FindDirectory(Games) = %+v, %v; want the later dir to win", d, ok)
	}
	if d, ok := l.FindDirectory("Only.directory", dirs); !ok || d.Icon != "only" {
		t.Errorf("FindDirectory(Only) = %+v, %v", d, ok)
	}
	if _, ok := l.FindDirectory("Bad.directory", dirs); ok {
		t.Error("malformed directory file must not be found")
	}
	if _, ok := l.FindDirectory("None.directory", dirs); ok {
		t.Error("missing directory file must not be found")
	}
	abs := filepath.Join(root, "low", "Games.directory")
	if d, ok := l.FindDirectory(abs, nil); !ok || d.Name != "Games" {
		t.Errorf("FindDirectory(abs) = %+v, %v", d, ok)
	}
}

func TestFindDirectoryOf(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"dirs/First.directory": testutil.DirectoryFile("First", "first"),
	})
	dirs := []string{filepath.Join(root, "dirs")}
	l := NewLoader("", nil)

	d, ok := l.FindDirectoryOf([]string{"First.directory", "Missing.directory"}, dirs)
	if !ok || d.Name != "First" {
		t.Errorf("FindDirectoryOf() = %+v, %v; want the last loadable reference", d, ok)
	}
	if _, ok := l.FindDirectoryOf(nil, dirs); ok {
		t.Error("no references must not resolve")
	}
}
