// SPDX-License-Identifier: MPL-2.0

// Package menutree turns a resolved raw menu tree into a semantic Entry tree
// and computes which applications each menu receives.
//
// The pipeline is Build for each root document, Merge to combine the trees
// of several root documents (lowest precedence first), and Allocate to
// distribute applications over the merged tree. Entries are never shared
// between trees: Merge and Move work on copies.
package menutree
