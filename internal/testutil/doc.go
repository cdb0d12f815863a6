// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers that fail the test on error instead of
// returning it.
//
// Fixture helpers write trees of menu, desktop and directory files (WriteTree,
// MenuDoc, DesktopFile, DirectoryFile) and complete XDG layouts (XDGRoot).
// The rest cover the process environment (SetEnv), directories (MustMkdirAll)
// and cleanup (MustClose).
package testutil
