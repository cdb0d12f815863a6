// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors for the xdgmenu CLI and a catalog
// of Markdown guidance, rendered with glamour, for the failures users most
// often hit: a missing root menu, malformed or cyclic menu files, and broken
// configuration.
package issue
