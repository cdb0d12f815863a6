// SPDX-License-Identifier: MPL-2.0

package desktopentry

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/invowk/xdgmenu/internal/testutil"
)

func TestShowIn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		env  string
		only []string
		not  []string
		want bool
	}{
		{"no env", "", []string{"KDE"}, nil, true},
		{"no lists", "GNOME", nil, nil, true},
		{"only match", "KDE", []string{"KDE"}, nil, true},
		{"only case-insensitive", "kde", []string{"KDE"}, nil, true},
		{"only miss", "GNOME", []string{"KDE"}, nil, false},
		{"not match", "GNOME", nil, []string{"GNOME"}, false},
		{"not miss", "XFCE", nil, []string{"GNOME"}, true},
		{"only wins over not", "KDE", []string{"KDE"}, []string{"KDE"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			app := &Application{OnlyShowIn: tt.only, NotShowIn: tt.not}
			if got := app.ShowIn(tt.env); got != tt.want {
				t.Errorf("ShowIn(%q) = %v, want %v", tt.env, got, tt.want)
			}
		})
	}
}

func TestDirectoryVisible(t *testing.T) {
	t.Parallel()

	if !(&Directory{}).Visible("GNOME") {
		t.Error("plain directory should be visible")
	}
	if (&Directory{NoDisplay: true}).Visible("") {
		t.Error("NoDisplay directory should be invisible")
	}
	if (&Directory{Hidden: true}).Visible("") {
		t.Error("Hidden directory should be invisible")
	}
	if (&Directory{NotShowIn: []string{"GNOME"}}).Visible("GNOME") {
		t.Error("NotShowIn directory should be invisible in GNOME")
	}
}

func TestLoadApplication(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"app.desktop": `[Desktop Entry]
Type=Application
Name=Editor
Name[de]=Bearbeiter
GenericName=Text Editor
Icon=accessories-text-editor
Categories=Utility;TextEditor;
OnlyShowIn=GNOME;XFCE;
NoDisplay=true
`,
		"dir.desktop":    "[Desktop Entry]\nType=Directory\nName=Dir\n",
		"noname.desktop": "[Desktop Entry]\nType=Application\n",
	})

	app, err := NewLoader("de_AT", nil).LoadApplication(filepath.Join(root, "app.desktop"), "app.desktop")
	if err != nil {
		t.Fatalf("LoadApplication() error = %v", err)
	}
	if app.Name != "Bearbeiter" || app.GenericName != "Text Editor" || app.Icon != "accessories-text-editor" {
		t.Errorf("app = %+v", app)
	}
	if !app.NoDisplay || app.Hidden {
		t.Errorf("flags NoDisplay=%v Hidden=%v", app.NoDisplay, app.Hidden)
	}
	if app.ShowIn("KDE") || !app.ShowIn("XFCE") {
		t.Errorf("OnlyShowIn = %v", app.OnlyShowIn)
	}

	l := NewLoader("", nil)
	if _, err := l.LoadApplication(filepath.Join(root, "dir.desktop"), "dir.desktop"); !errors.Is(err, ErrNotApplication) {
		t.Errorf("Type=Directory error = %v, want ErrNotApplication", err)
	}
	if _, err := l.LoadApplication(filepath.Join(root, "noname.desktop"), "noname.desktop"); !errors.Is(err, ErrMalformed) {
		t.Errorf("missing Name error = %v, want ErrMalformed", err)
	}
}

func TestLocaleFromEnv(t *testing.T) {
	// Not parallel: mutates the process environment.
	testutil.SetEnv(t, "LC_ALL", "", "LC_MESSAGES", "fr_FR.UTF-8", "LANG", "en_US.UTF-8")

	if got := LocaleFromEnv(); got != "fr_FR.UTF-8" {
		t.Errorf("LocaleFromEnv() = %q, want fr_FR.UTF-8", got)
	}
}
