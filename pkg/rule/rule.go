// SPDX-License-Identifier: MPL-2.0

package rule

import (
	"strconv"
	"strings"

	"github.com/invowk/xdgmenu/pkg/desktopentry"
)

type (
	// Expr is a rule expression. The set of implementations is closed.
	Expr interface {
		// Match reports whether app satisfies the expression.
		Match(app *desktopentry.Application) bool
		write(b *strings.Builder)
	}

	// All matches every application.
	All struct{}

	// Category matches applications listing the category.
	Category string

	// Filename matches the application with the given desktop id.
	Filename string

	// And matches when every operand matches. An empty And matches everything.
	And []Expr

	// Or matches when any operand matches. An empty Or matches nothing.
	Or []Expr

	// Not negates its operand.
	Not struct{ X Expr }
)

// None matches no application.
var None Expr = Or(nil)

func (All) Match(*desktopentry.Application) bool { return true }

func (c Category) Match(app *desktopentry.Application) bool { return app.HasCategory(string(c)) }

func (f Filename) Match(app *desktopentry.Application) bool { return app.DesktopID == string(f) }

func (a And) Match(app *desktopentry.Application) bool {
	for _, x := range a {
		if !x.Match(app) {
			return false
		}
	}
	return true
}

func (o Or) Match(app *desktopentry.Application) bool {
	for _, x := range o {
		if x.Match(app) {
			return true
		}
	}
	return false
}

func (n Not) Match(app *desktopentry.Application) bool { return !n.X.Match(app) }

// Evaluate reports whether app satisfies e. A nil expression matches nothing.
func Evaluate(e Expr, app *desktopentry.Application) bool {
	if e == nil {
		return false
	}
	return e.Match(app)
}

// Union returns an expression matching whatever any of exprs matches. Nested
// Or operands are flattened and nil operands are dropped.
func Union(exprs ...Expr) Expr {
	var out Or
	for _, e := range exprs {
		switch x := e.(type) {
		case nil:
		case Or:
			out = append(out, x...)
		default:
			out = append(out, x)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

// Compile combines the Include and Exclude clauses of a menu into
// (OR includes) AND NOT (OR excludes).
func Compile(includes, excludes []Expr) Expr {
	inc := Union(includes...)
	if len(excludes) == 0 {
		return inc
	}
	return And{inc, Not{Union(excludes...)}}
}

// String renders e in a compact prefix form, e.g.
// and(or(category(Game)), not(filename(x.desktop))).
func String(e Expr) string {
	if e == nil {
		return "none"
	}
	var b strings.Builder
	e.write(&b)
	return b.String()
}

func (All) write(b *strings.Builder) { b.WriteString("all") }

func (c Category) write(b *strings.Builder) { writeLeaf(b, "category", string(c)) }

func (f Filename) write(b *strings.Builder) { writeLeaf(b, "filename", string(f)) }

func (a And) write(b *strings.Builder) { writeList(b, "and", a) }

func (o Or) write(b *strings.Builder) { writeList(b, "or", o) }

func (n Not) write(b *strings.Builder) {
	b.WriteString("not(")
	n.X.write(b)
	b.WriteByte(')')
}

func writeLeaf(b *strings.Builder, op, arg string) {
	b.WriteString(op)
	b.WriteByte('(')
	if strings.ContainsAny(arg, "(), \t\"") {
		arg = strconv.Quote(arg)
	}
	b.WriteString(arg)
	b.WriteByte(')')
}

func writeList(b *strings.Builder, op string, xs []Expr) {
	b.WriteString(op)
	b.WriteByte('(')
	for i, x := range xs {
		if i > 0 {
			b.WriteString(", ")
		}
		x.write(b)
	}
	b.WriteByte(')')
}
