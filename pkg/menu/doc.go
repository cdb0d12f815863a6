// SPDX-License-Identifier: MPL-2.0

// Package menu produces the presentable menu tree.
//
// Load runs the whole pipeline: merge resolution and tree building for each
// root document, tree merging, application discovery, allocation and layout.
// The result is an immutable Tree of Elements. An Element is one of *Menu,
// *Item or Separator; consumers dispatch with a type switch.
//
// Session keeps the current Tree and rebuilds it on Reload, swapping the
// published snapshot only when the whole pipeline succeeds.
package menu
