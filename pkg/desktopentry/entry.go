// SPDX-License-Identifier: MPL-2.0

package desktopentry

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
)

// ErrNotApplication is returned for .desktop files whose Type is not
// Application (links, directories).
var ErrNotApplication = errors.New("entry is not an application")

type (
	// Application is the flat record of one .desktop file.
	Application struct {
		// DesktopID is the file path relative to its AppDir with "/"
		// replaced by "-", e.g. "kde-konsole.desktop".
		DesktopID   string
		Path        string
		Name        string
		GenericName string
		Comment     string
		Icon        string
		Categories  []string
		OnlyShowIn  []string
		NotShowIn   []string
		Hidden      bool
		NoDisplay   bool
		// Exec is the raw command line; see Command.
		Exec     string
		TryExec  string
		Terminal bool
	}

	// Directory is the flat record of one .directory file, used for submenu
	// metadata.
	Directory struct {
		Path       string
		Name       string
		Comment    string
		Icon       string
		OnlyShowIn []string
		NotShowIn  []string
		Hidden     bool
		NoDisplay  bool
	}

	// Loader decodes entries for one preferred locale. The zero value reads
	// unlocalized keys only.
	Loader struct {
		locale *language.Tag
		logger *log.Logger
	}
)

// NewLoader returns a Loader preferring locale, a POSIX locale string such as
// "de_DE.UTF-8". An empty or unparsable locale selects unlocalized keys.
// A nil logger discards.
func NewLoader(locale string, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	l := &Loader{logger: logger}
	if tag, err := parseLocale(locale); err == nil {
		l.locale = &tag
	}
	return l
}

// LocaleFromEnv returns the message locale from LC_ALL, LC_MESSAGES or LANG,
// in that order.
func LocaleFromEnv() string {
	for _, k := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// LoadApplication reads the .desktop file at path and assigns it desktopID.
func (l *Loader) LoadApplication(path, desktopID string) (*Application, error) {
	g, err := readGroup(path)
	if err != nil {
		return nil, err
	}
	if t := g.string("Type"); t != "" && t != "Application" {
		return nil, fmt.Errorf("%s: %w (Type=%s)", path, ErrNotApplication, t)
	}
	app := &Application{
		DesktopID:   desktopID,
		Path:        path,
		Name:        g.localized("Name", l.locale),
		GenericName: g.localized("GenericName", l.locale),
		Comment:     g.localized("Comment", l.locale),
		Icon:        g.localized("Icon", l.locale),
		Categories:  g.list("Categories"),
		OnlyShowIn:  g.list("OnlyShowIn"),
		NotShowIn:   g.list("NotShowIn"),
		Hidden:      g.bool("Hidden"),
		NoDisplay:   g.bool("NoDisplay"),
		Exec:        g.string("Exec"),
		TryExec:     g.string("TryExec"),
		Terminal:    g.bool("Terminal"),
	}
	if app.Name == "" {
		return nil, fmt.Errorf("%s: %w: missing Name", path, ErrMalformed)
	}
	return app, nil
}

// LoadDirectory reads the .directory file at path.
func (l *Loader) LoadDirectory(path string) (*Directory, error) {
	g, err := readGroup(path)
	if err != nil {
		return nil, err
	}
	return &Directory{
		Path:       path,
		Name:       g.localized("Name", l.locale),
		Comment:    g.localized("Comment", l.locale),
		Icon:       g.localized("Icon", l.locale),
		OnlyShowIn: g.list("OnlyShowIn"),
		NotShowIn:  g.list("NotShowIn"),
		Hidden:     g.bool("Hidden"),
		NoDisplay:  g.bool("NoDisplay"),
	}, nil
}

func readGroup(path string) (group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g, err := parseDesktopGroup(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// HasCategory reports whether the application lists category c.
func (a *Application) HasCategory(c string) bool {
	return slices.Contains(a.Categories, c)
}

// ShowIn reports whether the application is shown in desktop environment env.
func (a *Application) ShowIn(env string) bool {
	return showIn(env, a.OnlyShowIn, a.NotShowIn)
}

// ShowIn reports whether the directory is shown in desktop environment env.
func (d *Directory) ShowIn(env string) bool {
	return showIn(env, d.OnlyShowIn, d.NotShowIn)
}

// Visible combines the environment test with the Hidden and NoDisplay flags.
func (d *Directory) Visible(env string) bool {
	return d.ShowIn(env) && !d.Hidden && !d.NoDisplay
}

// showIn applies OnlyShowIn/NotShowIn. An empty environment shows
// everything; OnlyShowIn takes priority when both lists are present.
func showIn(env string, only, not []string) bool {
	if env == "" {
		return true
	}
	if len(only) > 0 {
		return containsFold(only, env)
	}
	return !containsFold(not, env)
}

func containsFold(list []string, s string) bool {
	return slices.ContainsFunc(list, func(v string) bool { return strings.EqualFold(v, s) })
}
