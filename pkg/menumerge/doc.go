// SPDX-License-Identifier: MPL-2.0

// Package menumerge resolves the merge directives of a raw menu tree.
//
// Resolve walks a tree produced by menufile.Parse and replaces, in document
// order:
//
//   - <MergeFile> with the children of the referenced file's root <Menu>
//     (type="parent" picks the next file of the same name further down the
//     XDG menu search path)
//   - <MergeDir> and <DefaultMergeDirs/> with every *.menu file of the
//     directory in lexical order
//   - <DefaultAppDirs/> and <DefaultDirectoryDirs/> with the XDG data
//     directories, lowest precedence first
//
// Relative AppDir, DirectoryDir, MergeDir and MergeFile paths are resolved
// against the directory of the file that contains them. Missing merge
// targets are dropped. A file that transitively merges itself fails with a
// CyclicMergeError.
package menumerge
