// SPDX-License-Identifier: MPL-2.0

// Package render turns a resolved menu into output: an indented, styled text
// tree for terminals and YAML, TOML or JSON documents for other programs.
// All formats share the Node document model built by FromMenu.
package render
