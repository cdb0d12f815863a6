// SPDX-License-Identifier: MPL-2.0

package menutree

import (
	"slices"
	"testing"

	"github.com/invowk/xdgmenu/pkg/desktopentry"
	"github.com/invowk/xdgmenu/pkg/rule"
)

func TestMerge_OrsRules(t *testing.T) {
	t.Parallel()

	t1 := build(t, "<Name>Applications</Name>", "<Menu><Name>X</Name><Include><Category>A</Category></Include></Menu>")
	t2 := build(t, "<Name>Applications</Name>", "<Menu><Name>X</Name><Include><Category>B</Category></Include></Menu>")

	m := Merge(t1, t2)
	x := m.Child("X")
	if x == nil {
		t.Fatal("merged tree lost X")
	}
	a := &desktopentry.Application{Categories: []string{"A"}}
	b := &desktopentry.Application{Categories: []string{"B"}}
	c := &desktopentry.Application{Categories: []string{"C"}}
	if !rule.Evaluate(x.Rule, a) || !rule.Evaluate(x.Rule, b) || rule.Evaluate(x.Rule, c) {
		t.Errorf("merged rule %s must match A or B", rule.String(x.Rule))
	}
	if got := rule.String(t1.Child("X").Rule); got != "category(A)" {
		t.Errorf("input modified: %s", got)
	}
}

func TestMerge_DeletedAndResurrection(t *testing.T) {
	t.Parallel()

	base := build(t, "<Name>Applications</Name>", "<Menu><Name>Games</Name></Menu>", "<Menu><Name>Office</Name><Deleted/></Menu>")
	user := build(t, "<Name>Applications</Name>", "<Menu><Name>Games</Name><Deleted/></Menu>")
	omit := build(t, "<Name>Applications</Name>")
	revive := build(t, "<Name>Applications</Name>", "<Menu><Name>Office</Name><NotDeleted/></Menu>")

	m := Merge(base, user)
	if !m.Child("Games").IsDeleted() {
		t.Error("a later Deleted must remove Games")
	}
	if !Merge(base, omit).Child("Office").IsDeleted() {
		t.Error("omission must not resurrect Office")
	}
	if Merge(base, revive).Child("Office").IsDeleted() {
		t.Error("NotDeleted must resurrect Office")
	}
}

func TestMerge_Concatenation(t *testing.T) {
	t.Parallel()

	t1 := build(t,
		"<Name>Base</Name>",
		"<AppDir>/usr/share/applications</AppDir>",
		"<Directory>a.directory</Directory>",
		"<Layout><Merge type=\"all\"/></Layout>",
		"<Menu><Name>A</Name></Menu>",
		"<Menu><Name>B</Name><NotOnlyUnallocated/></Menu>",
	)
	t2 := build(t,
		"<Name>User</Name>",
		"<AppDir>/home/u/apps</AppDir>",
		"<Directory>b.directory</Directory>",
		"<Menu><Name>C</Name></Menu>",
		"<Menu><Name>B</Name></Menu>",
	)

	m := Merge(nil, t1, t2)
	if m.Name != "User" {
		t.Errorf("Name = %q, want the later root name", m.Name)
	}
	if want := []string{"/usr/share/applications", "/home/u/apps"}; !slices.Equal(m.AppDirs, want) {
		t.Errorf("AppDirs = %v, want %v", m.AppDirs, want)
	}
	if want := []string{"a.directory", "b.directory"}; !slices.Equal(m.Directories, want) {
		t.Errorf("Directories = %v", m.Directories)
	}
	if m.Layout == nil {
		t.Error("Layout of the earlier tree must survive when the later one has none")
	}
	if got := childNames(m); !slices.Equal(got, []string{"A", "B", "C"}) {
		t.Errorf("children = %v, want [A B C]", got)
	}
	if m.Child("B").IsOnlyUnallocated() {
		t.Error("an unset flag in the later tree must keep NotOnlyUnallocated")
	}
	if Merge() != nil || Merge(nil) != nil {
		t.Error("Merge of nothing should be nil")
	}
}
