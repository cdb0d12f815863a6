// SPDX-License-Identifier: MPL-2.0

// Package menufile parses freedesktop.org `.menu` documents into a raw syntax tree.
//
// The tree mirrors the document grammar one element per Node and performs no
// semantic resolution: MergeFile/MergeDir directives are left in place for
// pkg/menumerge, and rule elements are compiled later by pkg/menutree.
// Unknown elements are skipped so newer documents keep parsing.
package menufile
