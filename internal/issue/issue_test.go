// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	ids := []Id{
		RootMenuNotFoundId,
		MenuParseErrorId,
		MergeCycleId,
		MergeDepthId,
		MenuBuildErrorId,
		ConfigLoadFailedId,
		WatchFailedId,
		PermissionDeniedId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	if RootMenuNotFoundId != 1 {
		t.Errorf("RootMenuNotFoundId = %d, want 1", RootMenuNotFoundId)
	}
	if len(issues) != len(ids) {
		t.Errorf("catalog has %d entries, want %d", len(issues), len(ids))
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		id       Id
		wantNil  bool
		contains string
	}{
		{RootMenuNotFoundId, false, "No root menu file found"},
		{MenuParseErrorId, false, "Failed to parse a menu file"},
		{MergeCycleId, false, "Cyclic menu merge"},
		{MergeDepthId, false, "max_depth"},
		{MenuBuildErrorId, false, "Invalid menu structure"},
		{ConfigLoadFailedId, false, "xdgmenu config init"},
		{WatchFailedId, false, "inotify"},
		{PermissionDeniedId, false, "Permission denied"},
		{Id(0), true, ""},
		{Id(9999), true, ""},
	}

	for _, tt := range tests {
		got := Get(tt.id)
		if tt.wantNil {
			if got != nil {
				t.Errorf("Get(%d) = %v, want nil", tt.id, got)
			}
			continue
		}
		if got == nil {
			t.Fatalf("Get(%d) returned nil", tt.id)
		}
		if got.Id() != tt.id {
			t.Errorf("Get(%d).Id() = %d", tt.id, got.Id())
		}
		if !strings.Contains(string(got.MarkdownMsg()), tt.contains) {
			t.Errorf("Get(%d) message should contain %q", tt.id, tt.contains)
		}
	}
}

func TestValues(t *testing.T) {
	values := Values()
	if len(values) != len(issues) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), len(issues))
	}
	for i := 1; i < len(values); i++ {
		if values[i-1].Id() >= values[i].Id() {
			t.Errorf("Values() not ordered by Id at %d", i)
		}
	}
}

func TestIssue_LinksAreCopies(t *testing.T) {
	issue := Get(MergeCycleId)
	links := issue.DocLinks()
	if len(links) == 0 {
		t.Fatal("DocLinks() is empty")
	}
	links[0] = "changed"
	if issue.DocLinks()[0] == "changed" {
		t.Error("DocLinks() exposes internal slice")
	}
	if ext := issue.ExtLinks(); len(ext) != 0 {
		t.Errorf("ExtLinks() = %v, want none", ext)
	}
}

func TestAllIssuesHaveDocLinks(t *testing.T) {
	for _, issue := range Values() {
		if len(issue.DocLinks()) == 0 {
			t.Errorf("issue %d has no doc links", issue.Id())
		}
		if strings.TrimSpace(string(issue.MarkdownMsg())) == "" {
			t.Errorf("issue %d has empty markdown", issue.Id())
		}
	}
}

func TestIssue_Render_WithLinks(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	var gotStyle string
	render = func(in string, stylePath string) (string, error) {
		gotStyle = stylePath
		return in, nil
	}

	testIssue := &Issue{
		id:       Id(9999),
		mdMsg:    "# Test Issue\n\nThis is a test.",
		docLinks: []HttpLink{"https://docs.example.com"},
		extLinks: []HttpLink{"https://external.example.com"},
	}

	rendered, err := testIssue.Render("dark")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	for _, want := range []string{"## See also", "- <https://docs.example.com>", "- <https://external.example.com>"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("Render() output missing %q:\n%s", want, rendered)
		}
	}
	if gotStyle != "dark" {
		t.Errorf("style = %q, want dark", gotStyle)
	}
}

func TestIssue_Render_NoLinks(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}

	testIssue := &Issue{
		id:    Id(9998),
		mdMsg: "# Test Issue\n\nNo links here.",
	}

	rendered, err := testIssue.Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if strings.Contains(rendered, "See also") {
		t.Error("Render() without links should not contain 'See also'")
	}
}

func TestAllIssuesAreRenderable(t *testing.T) {
	for _, issue := range Values() {
		out, err := issue.Render("notty")
		if err != nil {
			t.Errorf("issue %d: Render() error: %v", issue.Id(), err)
			continue
		}
		if strings.TrimSpace(out) == "" {
			t.Errorf("issue %d rendered empty output", issue.Id())
		}
	}
}
