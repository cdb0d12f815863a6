// SPDX-License-Identifier: MPL-2.0

// Package watch turns filesystem changes under the directories a menu tree
// depends on into debounced reload callbacks.
//
// The menu library never polls: a consumer that wants live menus runs a
// Watcher over Tree.Dirs and calls Session.Invalidate and Session.Reload
// when it fires. Roots that do not exist yet are watched through their
// nearest existing ancestor so that creating, say, ~/.local/share/applications
// is noticed.
package watch
