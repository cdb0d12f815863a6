// SPDX-License-Identifier: MPL-2.0

package menu

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/invowk/xdgmenu/internal/testutil"
	"github.com/invowk/xdgmenu/pkg/menufile"
	"github.com/invowk/xdgmenu/pkg/menumerge"
	"github.com/invowk/xdgmenu/pkg/menutree"
	"github.com/invowk/xdgmenu/pkg/xdg"
)

func fixture(t *testing.T, files map[string]string) xdg.Dirs {
	t.Helper()
	return testutil.XDGRoot(t, files)
}

func load(t *testing.T, opts Options) *Tree {
	t.Helper()
	tree, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return tree
}

// outline renders the tree as indented labels, one per element.
func outline(m *Menu) []string {
	var out []string
	m.Walk(func(el Element, depth int) bool {
		prefix := ""
		for range depth {
			prefix += "  "
		}
		switch e := el.(type) {
		case *Menu:
			out = append(out, prefix+e.Name()+"/")
		case *Item:
			out = append(out, prefix+e.DesktopID())
		case Separator:
			out = append(out, prefix+"-")
		}
		return true
	})
	return out
}

const gamesMenu = `<Name>Applications</Name>
<DefaultAppDirs/>
<DefaultDirectoryDirs/>
<Menu>
  <Name>Games</Name>
  <Directory>Games.directory</Directory>
  <Include><Category>Game</Category></Include>
</Menu>`

func TestLoad_GamesScenario(t *testing.T) {
	t.Parallel()

	dirs := fixture(t, map[string]string{
		"etc/xdg/menus/applications.menu":               testutil.MenuDoc(gamesMenu),
		"usr/share/applications/chess.desktop":          testutil.DesktopFile("Chess", "Game"),
		"usr/share/applications/writer.desktop":         testutil.DesktopFile("Writer", "Office"),
		"usr/share/desktop-directories/Games.directory": testutil.DirectoryFile("Games", "applications-games"),
	})

	tree := load(t, Options{Dirs: dirs})

	if got, want := outline(tree.Root), []string{"Games/", "  chess.desktop"}; !slices.Equal(got, want) {
		t.Fatalf("outline = %v, want %v", got, want)
	}
	games := tree.Root.Elements()[0].(*Menu)
	if games.IconName() != "applications-games" || !games.Visible() || games.Path() != "Applications/Games" {
		t.Errorf("Games = %q visible=%v path=%q", games.IconName(), games.Visible(), games.Path())
	}
	if games.Directory() == nil || games.Entry().Name != "Games" {
		t.Error("Games should carry its directory and entry")
	}
	if len(tree.Files) != 1 || tree.Stale() {
		t.Errorf("Files = %v, Stale = %v", tree.Files, tree.Stale())
	}
	if !slices.Contains(tree.Dirs, filepath.Join(dirs.DataDirs[0], "applications")) {
		t.Errorf("Dirs = %v, want the application directory", tree.Dirs)
	}
}

func TestLoad_MergedRootsAndDeletion(t *testing.T) {
	t.Parallel()

	dirs := fixture(t, map[string]string{
		"etc/xdg/menus/applications.menu": testutil.MenuDoc(
			"<Name>Applications</Name>",
			"<DefaultAppDirs/>",
			"<Menu><Name>Games</Name><Include><Category>Game</Category></Include></Menu>",
			"<Menu><Name>Office</Name><Include><Category>Office</Category></Include></Menu>",
		),
		"home/config/user.menu": testutil.MenuDoc(
			"<Name>Applications</Name>",
			"<Menu><Name>Office</Name><Deleted/></Menu>",
			"<Menu><Name>Games</Name><Include><Category>Puzzle</Category></Include></Menu>",
		),
		"usr/share/applications/chess.desktop":  testutil.DesktopFile("Chess", "Game"),
		"usr/share/applications/sudoku.desktop": testutil.DesktopFile("Sudoku", "Puzzle"),
		"usr/share/applications/writer.desktop": testutil.DesktopFile("Writer", "Office"),
	})

	tree := load(t, Options{
		Dirs: dirs,
		Files: []string{
			filepath.Join(dirs.ConfigDirs[0], "menus", "applications.menu"),
			filepath.Join(dirs.ConfigHome, "user.menu"),
		},
	})

	want := []string{"Games/", "  chess.desktop", "  sudoku.desktop"}
	if got := outline(tree.Root); !slices.Equal(got, want) {
		t.Errorf("outline = %v, want %v", got, want)
	}
	if len(tree.Files) != 2 {
		t.Errorf("Files = %v", tree.Files)
	}
}

func TestLoad_LayoutAndPruning(t *testing.T) {
	t.Parallel()

	dirs := fixture(t, map[string]string{
		"etc/xdg/menus/applications.menu": testutil.MenuDoc(
			"<Name>Applications</Name>",
			"<DefaultAppDirs/>",
			`<DefaultLayout><Merge type="files"/><Separator/><Merge type="menus"/></DefaultLayout>`,
			"<Menu><Name>Empty</Name><Include><Category>Nothing</Category></Include></Menu>",
			"<Menu><Name>Holder</Name><Menu><Name>Inner</Name><Include><Category>Game</Category></Include></Menu></Menu>",
			"<Menu><Name>Ordered</Name>",
			"  <Include><Category>Office</Category></Include>",
			"  <Layout><Filename>b.desktop</Filename><Separator/><Separator/><Merge type=\"all\"/><Separator/></Layout>",
			"</Menu>",
			"<Include><Filename>top.desktop</Filename></Include>",
		),
		"usr/share/applications/top.desktop":  testutil.DesktopFile("Top"),
		"usr/share/applications/game.desktop": testutil.DesktopFile("Game", "Game"),
		"usr/share/applications/a.desktop":    testutil.DesktopFile("A", "Office"),
		"usr/share/applications/b.desktop":    testutil.DesktopFile("B", "Office"),
	})

	tree := load(t, Options{Dirs: dirs})

	want := []string{
		"top.desktop",
		"-",
		"Holder/",
		"  Inner/",
		"    game.desktop",
		"Ordered/",
		"  b.desktop",
		"  -",
		"  a.desktop",
	}
	if got := outline(tree.Root); !slices.Equal(got, want) {
		t.Errorf("outline =\n%v\nwant\n%v", got, want)
	}
}

func TestLoad_NoDisplayAndSorting(t *testing.T) {
	t.Parallel()

	dirs := fixture(t, map[string]string{
		"etc/xdg/menus/applications.menu": testutil.MenuDoc(
			"<Name>Applications</Name>",
			"<DefaultAppDirs/>",
			"<DefaultDirectoryDirs/>",
			"<Menu><Name>Tools</Name><Directory>Tools.directory</Directory><Include><All/></Include></Menu>",
		),
		"usr/share/desktop-directories/Tools.directory": "[Desktop Entry]\nType=Directory\nName=Tools\nNoDisplay=true\n",
		"usr/share/applications/zeta.desktop":           testutil.DesktopFile("apple"),
		"usr/share/applications/alpha.desktop":          testutil.DesktopFile("Alpha"),
		"usr/share/applications/mid.desktop":            "[Desktop Entry]\nType=Application\nName=Zz Last\nNoDisplay=true\n",
	})

	hidden := load(t, Options{Dirs: dirs})
	if got := outline(hidden.Root); len(got) != 0 {
		t.Errorf("a NoDisplay directory must hide its menu: %v", got)
	}

	tree := load(t, Options{
		Dirs:      dirs,
		SortItems: true,
		Locale:    "en_US.UTF-8",
		NoDisplay: map[string]bool{"Applications/Tools": false, "mid.desktop": false, "alpha.desktop": true},
	})
	want := []string{"Tools/", "  zeta.desktop", "  mid.desktop"}
	if got := outline(tree.Root); !slices.Equal(got, want) {
		t.Errorf("outline = %v, want %v", got, want)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	dirs := fixture(t, map[string]string{
		"etc/xdg/menus/cycle.menu":  testutil.MenuDoc("<Name>C</Name>", "<MergeFile>cycle.menu</MergeFile>"),
		"etc/xdg/menus/bad.menu":    "<Menu>",
		"etc/xdg/menus/noname.menu": testutil.MenuDoc("<Menu/>"),
	})
	menus := filepath.Join(dirs.ConfigDirs[0], "menus")

	tests := []struct {
		name  string
		files []string
		want  error
	}{
		{"no root", nil, ErrNoMenuFile},
		{"unreadable root", []string{filepath.Join(menus, "missing.menu")}, menufile.ErrIO},
		{"malformed root", []string{filepath.Join(menus, "bad.menu")}, menufile.ErrParse},
		{"cycle", []string{filepath.Join(menus, "cycle.menu")}, menumerge.ErrCyclicMerge},
		{"build error", []string{filepath.Join(menus, "noname.menu")}, menutree.ErrBuild},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(context.Background(), Options{Dirs: dirs, Files: tt.files})
			if !errors.Is(err, tt.want) {
				t.Errorf("Load() error = %v, want %v", err, tt.want)
			}
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx, Options{Dirs: dirs, Files: []string{filepath.Join(menus, "cycle.menu")}}); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled Load() error = %v", err)
	}
}
