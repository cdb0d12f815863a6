// SPDX-License-Identifier: MPL-2.0

package menutree

import (
	"errors"
	"fmt"
)

// ErrBuild is the sentinel wrapped by every *BuildError.
var ErrBuild = errors.New("invalid menu")

// BuildError reports a structurally invalid menu. Path is the slash-separated
// menu path of the innermost named ancestor.
type BuildError struct {
	Path   string
	Source string
	Line   int
	Reason string
}

func (e *BuildError) Error() string {
	loc := e.Source
	if loc != "" && e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.Source, e.Line)
	}
	if loc == "" {
		return fmt.Sprintf("%s %q: %s", ErrBuild, e.Path, e.Reason)
	}
	return fmt.Sprintf("%s: %s %q: %s", loc, ErrBuild, e.Path, e.Reason)
}

// Unwrap returns ErrBuild for errors.Is() compatibility.
func (e *BuildError) Unwrap() error {
	return ErrBuild
}
