// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands for xdgmenu.
//
// The root command loads the configuration, builds the menu pipeline options
// from it and the global flags, and hands them to subcommands that print the
// resolved tree, export it, inspect raw documents or watch for changes.
package cmd
