// SPDX-License-Identifier: MPL-2.0

package menumerge

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMerge is the umbrella sentinel for merge resolution failures.
	ErrMerge = errors.New("menu merge failed")
	// ErrCyclicMerge is returned when a file transitively merges itself.
	ErrCyclicMerge = errors.New("cyclic menu merge")
	// ErrMergeDepth is returned when merges nest deeper than the resolver allows.
	ErrMergeDepth = errors.New("menu merge nested too deeply")
)

type (
	// CyclicMergeError reports the chain of files that forms a merge cycle.
	// The first and last entries are the same file.
	CyclicMergeError struct {
		Chain []string
	}

	// MergeDepthError reports the file whose merge exceeded the nesting limit.
	MergeDepthError struct {
		File  string
		Limit int
	}
)

func (e *CyclicMergeError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCyclicMerge, strings.Join(e.Chain, " -> "))
}

func (e *CyclicMergeError) Unwrap() []error {
	return []error{ErrMerge, ErrCyclicMerge}
}

func (e *MergeDepthError) Error() string {
	return fmt.Sprintf("%s: %s exceeds %d levels", ErrMergeDepth, e.File, e.Limit)
}

func (e *MergeDepthError) Unwrap() []error {
	return []error{ErrMerge, ErrMergeDepth}
}
