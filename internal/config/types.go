// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/invowk/xdgmenu/pkg/desktopentry"
	"github.com/invowk/xdgmenu/pkg/menu"
	"github.com/invowk/xdgmenu/pkg/menumerge"
	"github.com/invowk/xdgmenu/pkg/xdg"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultDebounce is the quiet period the watcher waits for before
	// reloading.
	DefaultDebounce = 500 * time.Millisecond
)

var (
	// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
	ErrConfigNotFound = errors.New("config file not found")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidMaxDepth is returned when merge.max_depth is not positive.
	ErrInvalidMaxDepth = errors.New("invalid merge depth")
	// ErrInvalidDebounce is returned when watch.debounce is negative.
	ErrInvalidDebounce = errors.New("invalid debounce")
	// ErrInvalidMenuFile is returned when a menu_files entry is whitespace-only.
	ErrInvalidMenuFile = errors.New("invalid menu file")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidFieldError reports an out-of-range scalar field.
	InvalidFieldError struct {
		Field string
		Value any
		Err   error
	}

	// InvalidConfigError collects field-level validation errors.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Environment is the active desktop matched against OnlyShowIn and NotShowIn.
		Environment string `json:"environment" mapstructure:"environment"`
		// MenuPrefix selects <prefix>applications.menu.
		MenuPrefix string `json:"menu_prefix" mapstructure:"menu_prefix"`
		// MenuFiles are explicit root documents, lowest precedence first.
		MenuFiles []string `json:"menu_files" mapstructure:"menu_files"`
		// Merge configures the merge resolver.
		Merge MergeConfig `json:"merge" mapstructure:"merge"`
		// Layout configures presentation.
		Layout LayoutConfig `json:"layout" mapstructure:"layout"`
		// Watch configures `xdgmenu watch`.
		Watch WatchConfig `json:"watch" mapstructure:"watch"`
		// UI configures terminal output.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// MergeConfig configures merge resolution.
	MergeConfig struct {
		MaxDepth int `json:"max_depth" mapstructure:"max_depth"`
	}

	// LayoutConfig configures the layout resolver.
	LayoutConfig struct {
		SortItems bool   `json:"sort_items" mapstructure:"sort_items"`
		Locale    string `json:"locale" mapstructure:"locale"`
	}

	// WatchConfig configures the file watcher.
	WatchConfig struct {
		Debounce time.Duration `json:"debounce" mapstructure:"debounce"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		Verbose     bool        `json:"verbose" mapstructure:"verbose"`
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
	}
)

// DefaultConfig returns the configuration used when no file sets a value.
// Environment and MenuPrefix come from the process environment. An empty
// Layout.Locale defers to $LC_ALL, $LC_MESSAGES and $LANG at load time.
func DefaultConfig() *Config {
	return defaultsFrom(os.Getenv)
}

func defaultsFrom(getenv func(string) string) *Config {
	env, _, _ := strings.Cut(getenv("XDG_CURRENT_DESKTOP"), ":")
	return &Config{
		Environment: env,
		MenuPrefix:  getenv("XDG_MENU_PREFIX"),
		MenuFiles:   []string{},
		Merge:       MergeConfig{MaxDepth: menumerge.DefaultMaxDepth},
		Watch:       WatchConfig{Debounce: DefaultDebounce},
		UI:          UIConfig{ColorScheme: ColorSchemeAuto},
	}
}

// MenuOptions translates the configuration into pipeline options. dirs is
// the search context; its MenuPrefix is replaced by c.MenuPrefix.
func (c *Config) MenuOptions(dirs xdg.Dirs, logger *log.Logger) menu.Options {
	dirs.MenuPrefix = c.MenuPrefix
	locale := c.Layout.Locale
	if locale == "" {
		locale = desktopentry.LocaleFromEnv()
	}
	return menu.Options{
		Dirs:        dirs,
		Files:       append([]string(nil), c.MenuFiles...),
		Environment: c.Environment,
		Locale:      locale,
		SortItems:   c.Layout.SortItems,
		MaxDepth:    c.Merge.MaxDepth,
		Logger:      logger,
	}
}

// IsValid returns whether the Config has valid fields, and the field errors
// wrapped in an InvalidConfigError if not.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if c.Merge.MaxDepth < 1 {
		errs = append(errs, &InvalidFieldError{Field: "merge.max_depth", Value: c.Merge.MaxDepth, Err: ErrInvalidMaxDepth})
	}
	if c.Watch.Debounce < 0 {
		errs = append(errs, &InvalidFieldError{Field: "watch.debounce", Value: c.Watch.Debounce, Err: ErrInvalidDebounce})
	}
	for i, f := range c.MenuFiles {
		if strings.TrimSpace(f) == "" {
			errs = append(errs, &InvalidFieldError{Field: fmt.Sprintf("menu_files[%d]", i), Value: f, Err: ErrInvalidMenuFile})
		}
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig and the field errors.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// Error implements the error interface for InvalidFieldError.
func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Field, e.Value, e.Err)
}

// Unwrap returns the field's sentinel error.
func (e *InvalidFieldError) Unwrap() error { return e.Err }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}
