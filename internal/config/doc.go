// SPDX-License-Identifier: MPL-2.0

// Package config loads xdgmenu's configuration from a CUE file validated
// against an embedded schema and merged over defaults with Viper.
//
// The file lives at $XDG_CONFIG_HOME/xdgmenu/config.cue unless a path is
// given explicitly. A missing file is not an error: defaults derived from
// the environment ($XDG_CURRENT_DESKTOP, $XDG_MENU_PREFIX, $LANG) apply.
package config
