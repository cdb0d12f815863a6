// SPDX-License-Identifier: MPL-2.0

// Package desktopentry reads application (.desktop) and directory
// (.directory) entries into the flat records the menu pipeline consumes.
//
// Only the keys the menu pipeline needs are decoded: names, comment, icon,
// categories, the OnlyShowIn/NotShowIn environment lists and the Hidden and
// NoDisplay flags. Localized keys (Name[de]) are resolved against a single
// preferred locale with golang.org/x/text/language.
//
// The Exec key is kept raw. Application.Command splits it with shell quoting
// rules and expands its field codes, which is as far as this package goes
// towards launching.
package desktopentry
