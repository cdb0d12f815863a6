// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
	"time"
)

func TestColorScheme_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value ColorScheme
		want  bool
	}{
		{ColorSchemeAuto, true},
		{ColorSchemeDark, true},
		{ColorSchemeLight, true},
		{"", false},
		{"neon", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			t.Parallel()

			valid, errs := tt.value.IsValid()
			if valid != tt.want {
				t.Fatalf("IsValid() = %v, want %v", valid, tt.want)
			}
			if !valid && !errors.Is(errs[0], ErrInvalidColorScheme) {
				t.Errorf("error %v does not wrap ErrInvalidColorScheme", errs[0])
			}
		})
	}
}

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	base := func() Config { return *defaultsFrom(func(string) string { return "" }) }

	tests := []struct {
		name   string
		mutate func(*Config)
		wantIs []error
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "zero depth", mutate: func(c *Config) { c.Merge.MaxDepth = 0 }, wantIs: []error{ErrInvalidMaxDepth}},
		{name: "negative debounce", mutate: func(c *Config) { c.Watch.Debounce = -time.Second }, wantIs: []error{ErrInvalidDebounce}},
		{name: "blank file", mutate: func(c *Config) { c.MenuFiles = []string{"a.menu", " "} }, wantIs: []error{ErrInvalidMenuFile}},
		{
			name: "several fields",
			mutate: func(c *Config) {
				c.Merge.MaxDepth = -1
				c.UI.ColorScheme = "neon"
			},
			wantIs: []error{ErrInvalidMaxDepth, ErrInvalidColorScheme},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := base()
			tt.mutate(&cfg)
			valid, errs := cfg.IsValid()
			if valid != (len(tt.wantIs) == 0) {
				t.Fatalf("IsValid() = %v, errs = %v", valid, errs)
			}
			if valid {
				return
			}
			if !errors.Is(errs[0], ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", errs[0])
			}
			for _, want := range tt.wantIs {
				if !errors.Is(errs[0], want) {
					t.Errorf("error %v does not wrap %v", errs[0], want)
				}
			}
		})
	}
}

func TestDefaultsFrom(t *testing.T) {
	t.Parallel()

	cfg := defaultsFrom(func(k string) string {
		if k == "XDG_CURRENT_DESKTOP" {
			return "ubuntu:GNOME"
		}
		return ""
	})
	if cfg.Environment != "ubuntu" {
		t.Errorf("Environment = %q, want ubuntu", cfg.Environment)
	}
	if cfg.MenuPrefix != "" {
		t.Errorf("MenuPrefix = %q, want empty", cfg.MenuPrefix)
	}
}
