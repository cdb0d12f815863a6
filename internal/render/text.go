// SPDX-License-Identifier: MPL-2.0

package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const separatorLabel = "────"

type (
	// Styles styles the parts of a text tree.
	Styles struct {
		Root      lipgloss.Style
		Menu      lipgloss.Style
		Item      lipgloss.Style
		ID        lipgloss.Style
		Comment   lipgloss.Style
		Separator lipgloss.Style
		Branch    lipgloss.Style
	}

	// TextOptions selects what Text prints besides names.
	TextOptions struct {
		// IDs appends each item's desktop id.
		IDs bool
		// Comments appends each element's comment.
		Comments bool
		// Styles defaults to PlainStyles when zero.
		Styles *Styles
	}
)

// PlainStyles renders without any decoration.
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{Root: s, Menu: s, Item: s, ID: s, Comment: s, Separator: s, Branch: s}
}

// DefaultStyles colors menus, ids and tree branches from palette.
func DefaultStyles(palette Palette) Styles {
	return Styles{
		Root:      lipgloss.NewStyle().Bold(true).Foreground(palette.Primary),
		Menu:      lipgloss.NewStyle().Bold(true).Foreground(palette.Highlight),
		Item:      lipgloss.NewStyle(),
		ID:        lipgloss.NewStyle().Foreground(palette.Muted),
		Comment:   lipgloss.NewStyle().Italic(true).Foreground(palette.Muted),
		Separator: lipgloss.NewStyle().Foreground(palette.Muted),
		Branch:    lipgloss.NewStyle().Foreground(palette.Muted),
	}
}

// Palette holds the colors DefaultStyles draws from.
type Palette struct {
	Primary   lipgloss.TerminalColor
	Highlight lipgloss.TerminalColor
	Muted     lipgloss.TerminalColor
}

// Text writes n as an indented tree, one element per line:
//
//	Applications
//	├── Games
//	│   ├── Chess
//	│   ├── ────
//	│   └── Tetris
//	└── Writer
func Text(w io.Writer, n *Node, opts TextOptions) error {
	styles := PlainStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}
	t := textWriter{opts: opts, styles: styles}
	t.sb.WriteString(t.label(n, styles.Root))
	t.sb.WriteByte('\n')
	t.children(n, "")
	_, err := io.WriteString(w, t.sb.String())
	return err
}

type textWriter struct {
	sb     strings.Builder
	opts   TextOptions
	styles Styles
}

func (t *textWriter) children(n *Node, indent string) {
	for i, c := range n.Children {
		last := i == len(n.Children)-1
		branch, next := "├── ", "│   "
		if last {
			branch, next = "└── ", "    "
		}
		t.sb.WriteString(t.styles.Branch.Render(indent + branch))
		switch {
		case c.Separator:
			t.sb.WriteString(t.styles.Separator.Render(separatorLabel))
		case c.IsMenu():
			t.sb.WriteString(t.label(c, t.styles.Menu))
		default:
			t.sb.WriteString(t.label(c, t.styles.Item))
		}
		t.sb.WriteByte('\n')
		if c.IsMenu() {
			t.children(c, indent+next)
		}
	}
}

func (t *textWriter) label(n *Node, style lipgloss.Style) string {
	out := style.Render(n.Name)
	if t.opts.IDs && n.DesktopID != "" {
		out += " " + t.styles.ID.Render("("+n.DesktopID+")")
	}
	if t.opts.Comments && n.Comment != "" {
		out += " " + t.styles.Comment.Render("- "+n.Comment)
	}
	return out
}
