// SPDX-License-Identifier: MPL-2.0

package menufile

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Fprint writes the subtree rooted at n as indented pseudo-XML, two spaces
// per level. The output is meant for inspection, not for re-parsing: merge
// directives and attributes are printed in canonical form and unknown
// elements are already gone.
func Fprint(w io.Writer, n *Node) error {
	pw := &printer{w: w}
	pw.node(n, 0)
	return pw.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(depth int, format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s"+format+"\n", append([]any{strings.Repeat(" ", depth)}, args...)...)
}

func (p *printer) node(n *Node, depth int) {
	name := n.Type.String()
	switch n.Type {
	case NodeMerge:
		p.printf(depth, "<Merge type=%q/>", n.LayoutMerge.String())
	case NodeMergeFile:
		if n.MergeFile == MergeFileParent {
			p.printf(depth, "<MergeFile type=\"parent\"/>")
		} else {
			p.printf(depth, "<MergeFile type=\"path\">%s</MergeFile>", escape(n.Text))
		}
	default:
		switch {
		case n.Text != "":
			p.printf(depth, "<%s>%s</%s>", name, escape(n.Text), name)
		case len(n.Children) == 0:
			p.printf(depth, "<%s/>", name)
		default:
			p.printf(depth, "<%s>", name)
			for _, c := range n.Children {
				p.node(c, depth+2)
			}
			p.printf(depth, "</%s>", name)
		}
	}
}

func escape(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}
