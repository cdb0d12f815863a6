// SPDX-License-Identifier: MPL-2.0

package desktopentry

import (
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// ErrInvalidExec is returned when an Exec value is not a single command line
// of literal words.
var ErrInvalidExec = errors.New("invalid Exec value")

// Command returns the argument vector of the Exec key with its field codes
// expanded. Nothing is executed.
//
// files are the paths or URLs the application is asked to open: %f and %u
// take the first, %F and %U take all of them and must stand alone as an
// argument. %i becomes "--icon" and the icon name, %c the name, %k the path
// of the entry and %% a literal percent sign. Deprecated and unknown codes
// are removed.
func (a *Application) Command(files ...string) ([]string, error) {
	words, err := splitExec(a.Exec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.DesktopID, err)
	}

	argv := make([]string, 0, len(words)+len(files))
	for _, w := range words {
		switch w {
		case "%F", "%U":
			argv = append(argv, files...)
		case "%f", "%u":
			if len(files) > 0 {
				argv = append(argv, files[0])
			}
		case "%i":
			if a.Icon != "" {
				argv = append(argv, "--icon", a.Icon)
			}
		default:
			if s := a.expandCodes(w, files); s != "" || !strings.Contains(w, "%") {
				argv = append(argv, s)
			}
		}
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("%s: %w: no program", a.DesktopID, ErrInvalidExec)
	}
	return argv, nil
}

// expandCodes replaces the field codes embedded in one argument.
func (a *Application) expandCodes(w string, files []string) string {
	var b strings.Builder
	for i := 0; i < len(w); i++ {
		if w[i] != '%' || i == len(w)-1 {
			b.WriteByte(w[i])
			continue
		}
		i++
		switch w[i] {
		case '%':
			b.WriteByte('%')
		case 'f', 'u':
			if len(files) > 0 {
				b.WriteString(files[0])
			}
		case 'c':
			b.WriteString(a.Name)
		case 'k':
			b.WriteString(a.Path)
		case 'i':
			b.WriteString(a.Icon)
		}
	}
	return b.String()
}

// splitExec splits an Exec value into words with shell quoting rules.
// Anything that would only be known at run time, such as parameter
// expansion or command substitution, is rejected.
func splitExec(exec string) ([]string, error) {
	if strings.TrimSpace(exec) == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidExec)
	}
	f, err := syntax.NewParser().Parse(strings.NewReader(exec), "Exec")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidExec, err)
	}
	if len(f.Stmts) != 1 {
		return nil, fmt.Errorf("%w: %q is not a single command", ErrInvalidExec, exec)
	}
	st := f.Stmts[0]
	call, ok := st.Cmd.(*syntax.CallExpr)
	if !ok || len(call.Assigns) > 0 || len(st.Redirs) > 0 || st.Background || st.Negated || st.Coprocess {
		return nil, fmt.Errorf("%w: %q is not a simple command", ErrInvalidExec, exec)
	}

	cfg := &expand.Config{}
	out := make([]string, 0, len(call.Args))
	for _, word := range call.Args {
		dynamic := false
		syntax.Walk(word, func(n syntax.Node) bool {
			switch n.(type) {
			case *syntax.ParamExp, *syntax.CmdSubst, *syntax.ArithmExp, *syntax.ProcSubst, *syntax.ExtGlob, *syntax.BraceExp:
				dynamic = true
			}
			return !dynamic
		})
		if dynamic {
			return nil, fmt.Errorf("%w: %q expands at run time", ErrInvalidExec, exec)
		}
		s, err := expand.Literal(cfg, word)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidExec, err)
		}
		out = append(out, s)
	}
	return out, nil
}
