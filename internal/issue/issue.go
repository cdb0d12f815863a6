// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"slices"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

type Id int

const (
	RootMenuNotFoundId Id = iota + 1
	MenuParseErrorId
	MergeCycleId
	MergeDepthId
	MenuBuildErrorId
	ConfigLoadFailedId
	WatchFailedId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, every issue type is documented
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render returns the issue as terminal-styled markdown. stylePath is a
// glamour style name ("dark", "light", "notty") or a JSON style file.
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range i.docLinks {
			md += "\n- <" + string(link) + ">"
		}
		for _, link := range i.extLinks {
			md += "\n- <" + string(link) + ">"
		}
	}
	return render(md, stylePath)
}

const menuSpecLink HttpLink = "https://specifications.freedesktop.org/menu-spec/latest/"

var (
	render = glamour.Render

	rootMenuNotFoundIssue = &Issue{
		id: RootMenuNotFoundId,
		mdMsg: `
# No root menu file found!

xdgmenu looked for ` + "`menus/${XDG_MENU_PREFIX}applications.menu`" + ` and found nothing.

## Search locations (in order of precedence):
1. ` + "`$XDG_CONFIG_HOME/menus`" + ` (default ` + "`~/.config/menus`" + `)
2. Each entry of ` + "`$XDG_CONFIG_DIRS`" + ` followed by ` + "`/menus`" + ` (default ` + "`/etc/xdg/menus`" + `)

## Things you can try:
- Check the prefix your desktop uses:
~~~
$ echo $XDG_MENU_PREFIX
$ ls /etc/xdg/menus
~~~

- Point xdgmenu at a file explicitly:
~~~
$ xdgmenu show --file /etc/xdg/menus/gnome-applications.menu
~~~`,
		docLinks: []HttpLink{menuSpecLink + "paths.html"},
	}

	menuParseErrorIssue = &Issue{
		id: MenuParseErrorId,
		mdMsg: `
# Failed to parse a menu file!

A ` + "`.menu`" + ` document is not well-formed XML or does not follow the menu grammar.

## Common issues:
- The root element is not ` + "`<Menu>`" + `
- A ` + "`<Menu>`" + ` or ` + "`<Move>`" + ` lacks its required ` + "`<Name>`" + `, ` + "`<Old>`" + ` or ` + "`<New>`" + ` child
- ` + "`<Merge type=\"...\">`" + ` uses a value other than menus, files or all
- Unclosed tags or stray characters

## Things you can try:
- Inspect the raw syntax tree:
~~~
$ xdgmenu raw /path/to/file.menu
~~~

- Check the document with an XML linter:
~~~
$ xmllint --noout /path/to/file.menu
~~~`,
		docLinks: []HttpLink{menuSpecLink + "menu-file-format.html"},
	}

	mergeCycleIssue = &Issue{
		id: MergeCycleId,
		mdMsg: `
# Cyclic menu merge!

A ` + "`<MergeFile>`" + `, ` + "`<MergeDir>`" + ` or ` + "`<DefaultMergeDirs>`" + ` chain leads back to a file that is
already being merged.

## Example of a cycle:
~~~xml
<!-- a.menu -->
<Menu><Name>Applications</Name><MergeFile>b.menu</MergeFile></Menu>
<!-- b.menu -->
<Menu><Name>Applications</Name><MergeFile>a.menu</MergeFile></Menu>
~~~

## Things you can try:
- Follow the chain printed above and remove one of the merge elements
- List the files xdgmenu consumed on a working setup:
~~~
$ xdgmenu files
~~~`,
		docLinks: []HttpLink{menuSpecLink + "merge-algorithm.html"},
	}

	mergeDepthIssue = &Issue{
		id: MergeDepthId,
		mdMsg: `
# Menu merges nest too deeply!

The chain of merged files exceeded the configured depth limit.

## Things you can try:
- Flatten the merge hierarchy
- Raise the limit in your config file:
~~~cue
merge: max_depth: 64
~~~`,
		docLinks: []HttpLink{menuSpecLink + "merge-algorithm.html"},
	}

	menuBuildErrorIssue = &Issue{
		id: MenuBuildErrorId,
		mdMsg: `
# Invalid menu structure!

The merged document parsed, but a menu could not be built from it.

## Things you can try:
- Give every ` + "`<Menu>`" + ` a ` + "`<Name>`" + ` that does not contain a slash
- Compare the raw and merged trees:
~~~
$ xdgmenu raw --merged /etc/xdg/menus/applications.menu
~~~`,
		docLinks: []HttpLink{menuSpecLink + "menu-file-format.html"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The xdgmenu configuration file could not be read or does not match the schema.

## Things you can try:
- Show the file location and the effective values:
~~~
$ xdgmenu config path
$ xdgmenu config show
~~~

- Start over from the defaults:
~~~
$ xdgmenu config init
~~~

## Example configuration:
~~~cue
environment: "GNOME"
layout: {
	sort_items: true
}
watch: debounce: "250ms"
~~~`,
		docLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	watchFailedIssue = &Issue{
		id: WatchFailedId,
		mdMsg: `
# Failed to watch menu directories!

The file system watcher could not be started.

## Things you can try:
- Raise the inotify watch limit:
~~~
$ sudo sysctl fs.inotify.max_user_watches=524288
~~~

- Re-run ` + "`xdgmenu show`" + ` manually after editing menu files`,
		docLinks: []HttpLink{"https://github.com/fsnotify/fsnotify"},
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

A menu file or directory could not be read.

## Things you can try:
- Check file and directory permissions along the search path
- Run xdgmenu as the user whose menus you want to inspect`,
		docLinks: []HttpLink{menuSpecLink + "paths.html"},
	}

	issues = map[Id]*Issue{
		rootMenuNotFoundIssue.Id(): rootMenuNotFoundIssue,
		menuParseErrorIssue.Id():   menuParseErrorIssue,
		mergeCycleIssue.Id():       mergeCycleIssue,
		mergeDepthIssue.Id():       mergeDepthIssue,
		menuBuildErrorIssue.Id():   menuBuildErrorIssue,
		configLoadFailedIssue.Id(): configLoadFailedIssue,
		watchFailedIssue.Id():      watchFailedIssue,
		permissionDeniedIssue.Id(): permissionDeniedIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	out := maps.Values(issues)
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
