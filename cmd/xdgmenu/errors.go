// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/invowk/xdgmenu/internal/config"
	"github.com/invowk/xdgmenu/internal/issue"
	"github.com/invowk/xdgmenu/pkg/menu"
	"github.com/invowk/xdgmenu/pkg/menufile"
	"github.com/invowk/xdgmenu/pkg/menumerge"
	"github.com/invowk/xdgmenu/pkg/menutree"
)

// classifyError maps a pipeline failure to its issue catalog entry. ok is
// false for errors the catalog does not document.
func classifyError(err error) (id issue.Id, ok bool) {
	switch {
	case errors.Is(err, menu.ErrNoMenuFile):
		return issue.RootMenuNotFoundId, true
	case errors.Is(err, menumerge.ErrCyclicMerge):
		return issue.MergeCycleId, true
	case errors.Is(err, menumerge.ErrMergeDepth):
		return issue.MergeDepthId, true
	case errors.Is(err, fs.ErrPermission):
		return issue.PermissionDeniedId, true
	case errors.Is(err, menufile.ErrParse):
		return issue.MenuParseErrorId, true
	case errors.Is(err, menutree.ErrBuild):
		return issue.MenuBuildErrorId, true
	case errors.Is(err, config.ErrConfigNotFound), errors.Is(err, config.ErrInvalidConfig):
		return issue.ConfigLoadFailedId, true
	}
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		if ae.Issue != 0 {
			return ae.Issue, true
		}
		if ae.Operation == "load configuration" {
			return issue.ConfigLoadFailedId, true
		}
	}
	return 0, false
}

// suggestionsFor returns remedies for errors that carry no catalog entry.
func suggestionsFor(err error) []string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return []string{"Check the path passed with --file or set in menu_files"}
	case errors.Is(err, menufile.ErrIO):
		return []string{"Check that the menu file is readable"}
	}
	return nil
}

// fail reports err on stderr and returns it as a pipeline ExitError. Errors
// documented in the issue catalog print the rendered entry, and suggestions
// are listed below it. Verbose output adds the full error chain.
func (a *App) fail(operation, resource string, err error, verbose bool) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	id, documented := classifyError(err)
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		ectx := issue.NewErrorContext().
			WithOperation(operation).
			WithResource(resource).
			WithSuggestions(suggestionsFor(err)...).
			Wrap(err)
		if documented {
			ectx = ectx.WithIssue(id)
		}
		ae = ectx.Build()
		err = ae
	}

	if documented {
		if rendered, renderErr := issue.Get(id).Render(a.issueStyle()); renderErr == nil {
			fmt.Fprint(a.stderr, rendered)
		}
	}
	if verbose || ae.HasSuggestions() {
		fmt.Fprintf(a.stderr, "\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
	}
	return &ExitError{Code: ExitPipeline, Err: err}
}

// issueStyle returns the glamour style matching the configured color scheme.
func (a *App) issueStyle() string {
	switch a.colorScheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
