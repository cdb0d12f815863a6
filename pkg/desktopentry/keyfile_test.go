// SPDX-License-Identifier: MPL-2.0

package desktopentry

import (
	"errors"
	"slices"
	"testing"
)

func TestParseDesktopGroup(t *testing.T) {
	t.Parallel()

	data := []byte(`# comment
[Desktop Entry]
Name=Terminal
Name[de]=Konsole
Categories=System;TerminalEmulator;
Comment=Run\scommands\nhere

[Desktop Action new-window]
Name=New Window
`)
	g, err := parseDesktopGroup(data)
	if err != nil {
		t.Fatalf("parseDesktopGroup() error = %v", err)
	}
	if got := g.string("Name"); got != "Terminal" {
		t.Errorf("Name = %q, want Terminal (action group must not override)", got)
	}
	if got := g.string("Comment"); got != "Run commands\nhere" {
		t.Errorf("Comment = %q", got)
	}
	if got := g.list("Categories"); !slices.Equal(got, []string{"System", "TerminalEmulator"}) {
		t.Errorf("Categories = %v", got)
	}
}

func TestParseDesktopGroup_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want error
	}{
		{"no group", "Name=x\n", ErrMalformed},
		{"missing desktop group", "[Other]\nName=x\n", ErrNoDesktopGroup},
		{"unterminated header", "[Desktop Entry\nName=x\n", ErrMalformed},
		{"no equals", "[Desktop Entry]\nName\n", ErrMalformed},
		{"duplicate group", "[Desktop Entry]\n[Desktop Entry]\n", ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := parseDesktopGroup([]byte(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGroupList_EscapedSeparator(t *testing.T) {
	t.Parallel()

	g := group{"Keywords": `a\;b;c;;`}
	if got := g.list("Keywords"); !slices.Equal(got, []string{"a;b", "c"}) {
		t.Errorf("list() = %v", got)
	}
	if got := g.list("Missing"); got != nil {
		t.Errorf("list(missing) = %v, want nil", got)
	}
}

func TestGroupBool(t *testing.T) {
	t.Parallel()

	g := group{"Hidden": "true", "NoDisplay": "false", "Terminal": "yes"}
	if !g.bool("Hidden") {
		t.Error("Hidden = false, want true")
	}
	if g.bool("NoDisplay") {
		t.Error("NoDisplay = true, want false")
	}
	if g.bool("Terminal") {
		t.Error("non-boolean value must read as false")
	}
}

func TestGroupLocalized(t *testing.T) {
	t.Parallel()

	g := group{
		"Name":        "Files",
		"Name[de]":    "Dateien",
		"Name[fr]":    "Fichiers",
		"Name[pt_BR]": "Arquivos",
	}
	tests := []struct {
		locale string
		want   string
	}{
		{"", "Files"},
		{"C", "Files"},
		{"de_DE.UTF-8", "Dateien"},
		{"de", "Dateien"},
		{"fr_CA@euro", "Fichiers"},
		{"pt_BR", "Arquivos"},
		{"ja_JP", "Files"},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			t.Parallel()
			l := NewLoader(tt.locale, nil)
			if got := g.localized("Name", l.locale); got != tt.want {
				t.Errorf("localized(%q) = %q, want %q", tt.locale, got, tt.want)
			}
		})
	}
}

func TestParseLocale(t *testing.T) {
	t.Parallel()

	for _, bad := range []string{"", "C", "POSIX", "C.UTF-8"} {
		if _, err := parseLocale(bad); err == nil {
			t.Errorf("parseLocale(%q) error = nil, want error", bad)
		}
	}
	tag, err := parseLocale("sr_RS@latin")
	if err != nil {
		t.Fatalf("parseLocale() error = %v", err)
	}
	if got := tag.String(); got != "sr-RS" {
		t.Errorf("tag = %q, want sr-RS", got)
	}
}
