// SPDX-License-Identifier: MPL-2.0

package menutree

import (
	"slices"
	"testing"

	"github.com/invowk/xdgmenu/pkg/desktopentry"
)

func app(id string, categories ...string) *desktopentry.Application {
	return &desktopentry.Application{DesktopID: id, Name: id, Categories: categories}
}

func ids(apps []*desktopentry.Application) []string {
	var out []string
	for _, a := range apps {
		out = append(out, a.DesktopID)
	}
	return out
}

func TestAllocate_GamesScenario(t *testing.T) {
	t.Parallel()

	root := build(t,
		"<Name>Applications</Name>",
		"<Menu><Name>Games</Name><Directory>Games.directory</Directory><Include><Category>Game</Category></Include></Menu>",
	)
	table := desktopentry.NewTable(app("chess.desktop", "Game"), app("writer.desktop", "Office"))

	a := Allocate(root, table, "")
	games := root.Child("Games")
	if got := ids(a.Apps(games)); !slices.Equal(got, []string{"chess.desktop"}) {
		t.Errorf("Games = %v, want [chess.desktop]", got)
	}
	if a.Count(root) != 0 {
		t.Errorf("root received %v", ids(a.Apps(root)))
	}
	if got := ids(a.Unallocated()); !slices.Equal(got, []string{"writer.desktop"}) {
		t.Errorf("Unallocated = %v", got)
	}
	if !a.Has(games, "chess.desktop") || a.Has(games, "writer.desktop") || a.Has(games, "nope") {
		t.Error("Has() mismatch")
	}
	if got := a.Menus("chess.desktop"); !slices.Equal(got, []string{"Applications/Games"}) {
		t.Errorf("Menus() = %v", got)
	}
	if a.Table() != table || a.Path(games) != "Applications/Games" {
		t.Error("Table/Path mismatch")
	}
}

func TestAllocate_OnlyUnallocated(t *testing.T) {
	t.Parallel()

	root := build(t,
		"<Name>Root</Name>",
		"<Menu><Name>First</Name><Include><Category>Game</Category></Include></Menu>",
		"<Menu><Name>Second</Name><Include><Category>Game</Category><Category>Office</Category></Include></Menu>",
		"<Menu><Name>Everything</Name><Include><All/></Include></Menu>",
	)
	table := desktopentry.NewTable(app("g.desktop", "Game"), app("o.desktop", "Office"), app("x.desktop"))

	a := Allocate(root, table, "")
	want := map[string][]string{
		"First":      {"g.desktop"},
		"Second":     {"o.desktop"},
		"Everything": {"x.desktop"},
	}
	for name, w := range want {
		if got := ids(a.Apps(root.Child(name))); !slices.Equal(got, w) {
			t.Errorf("%s = %v, want %v", name, got, w)
		}
	}
}

func TestAllocate_NotOnlyUnallocatedShares(t *testing.T) {
	t.Parallel()

	root := build(t,
		"<Name>Root</Name>",
		"<Menu><Name>Favorites</Name><NotOnlyUnallocated/><Include><Filename>g.desktop</Filename></Include></Menu>",
		"<Menu><Name>Games</Name><Include><Category>Game</Category></Include></Menu>",
		"<Menu><Name>Late</Name><NotOnlyUnallocated/><Include><Category>Game</Category></Include></Menu>",
	)
	table := desktopentry.NewTable(app("g.desktop", "Game"))

	a := Allocate(root, table, "")
	if got := a.Menus("g.desktop"); !slices.Equal(got, []string{"Root/Favorites", "Root/Games"}) {
		t.Errorf("Menus() = %v, want shared by Favorites and Games only", got)
	}
}

func TestAllocate_EnvironmentAndHidden(t *testing.T) {
	t.Parallel()

	root := build(t, "<Name>Root</Name>", "<Menu><Name>All</Name><Include><All/></Include></Menu>")
	kde := app("kde.desktop")
	kde.OnlyShowIn = []string{"KDE"}
	notGnome := app("ng.desktop")
	notGnome.NotShowIn = []string{"GNOME"}
	hidden := app("hidden.desktop")
	hidden.Hidden = true
	nodisplay := app("nd.desktop")
	nodisplay.NoDisplay = true
	table := desktopentry.NewTable(kde, notGnome, hidden, nodisplay)

	gnome := Allocate(root, table, "GNOME")
	if got := ids(gnome.Apps(root.Child("All"))); !slices.Equal(got, []string{"nd.desktop"}) {
		t.Errorf("GNOME = %v, want [nd.desktop]", got)
	}
	kdeAlloc := Allocate(root, table, "KDE")
	if got := ids(kdeAlloc.Apps(root.Child("All"))); !slices.Equal(got, []string{"kde.desktop", "ng.desktop", "nd.desktop"}) {
		t.Errorf("KDE = %v", got)
	}
	if got := gnome.Unallocated(); len(got) != 0 {
		t.Errorf("environment-excluded apps must not count as unallocated: %v", ids(got))
	}
}

func TestAllocate_DeletedMenusClaimNothing(t *testing.T) {
	t.Parallel()

	root := build(t,
		"<Name>Root</Name>",
		"<Menu><Name>Gone</Name><Deleted/><Include><All/></Include><Menu><Name>Child</Name><Include><All/></Include></Menu></Menu>",
		"<Menu><Name>Kept</Name><Include><All/></Include></Menu>",
	)
	table := desktopentry.NewTable(app("a.desktop"))

	a := Allocate(root, table, "")
	if got := a.Menus("a.desktop"); !slices.Equal(got, []string{"Root/Kept"}) {
		t.Errorf("Menus() = %v, want [Root/Kept]", got)
	}
	if a.Count(root.Child("Gone")) != 0 || a.Count(root.Find("Gone/Child")) != 0 {
		t.Error("deleted subtree received applications")
	}
}

func TestAllocate_Properties(t *testing.T) {
	t.Parallel()

	root := build(t,
		"<Name>Root</Name>",
		"<Include><Filename>root.desktop</Filename></Include>",
		"<Menu><Name>A</Name><Include><Category>A</Category></Include>",
		"  <Menu><Name>A2</Name><Include><Category>A</Category><Category>B</Category></Include></Menu>",
		"</Menu>",
		"<Menu><Name>B</Name><Include><Or><Category>B</Category><Category>C</Category></Or></Include>",
		"  <Exclude><Category>Hidden</Category></Exclude></Menu>",
	)
	table := desktopentry.NewTable(
		app("root.desktop", "A"),
		app("a.desktop", "A"),
		app("ab.desktop", "A", "B"),
		app("b.desktop", "B"),
		app("c.desktop", "C"),
		app("bh.desktop", "B", "Hidden"),
		app("none.desktop", "Z"),
	)

	a := Allocate(root, table, "")

	// Every application appears in at most one menu.
	seen := map[string]int{}
	root.Walk(func(_ string, e *Entry) bool {
		for _, x := range a.Apps(e) {
			seen[x.DesktopID]++
		}
		return true
	})
	for id, n := range seen {
		if n > 1 {
			t.Errorf("%s allocated %d times", id, n)
		}
	}

	// The union of allocations is exactly the set matched by some menu.
	var matched []string
	for _, x := range table.All() {
		hit := false
		root.Walk(func(_ string, e *Entry) bool {
			hit = hit || e.Rule.Match(x)
			return true
		})
		if hit {
			matched = append(matched, x.DesktopID)
		}
	}
	var union []string
	for _, x := range table.All() {
		if seen[x.DesktopID] > 0 {
			union = append(union, x.DesktopID)
		}
	}
	if !slices.Equal(union, matched) {
		t.Errorf("union = %v, matched = %v", union, matched)
	}

	// Allocation is idempotent.
	if !a.Equal(Allocate(root, table, "")) {
		t.Error("re-running allocation changed the result")
	}
	if a.Equal(Allocate(root, desktopentry.NewTable(), "")) {
		t.Error("Equal() must detect differences")
	}
}
