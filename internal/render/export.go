// SPDX-License-Identifier: MPL-2.0

package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	// FormatYAML encodes with gopkg.in/yaml.v3.
	FormatYAML Format = "yaml"
	// FormatTOML encodes with go-toml.
	FormatTOML Format = "toml"
	// FormatJSON encodes with ojg.
	FormatJSON Format = "json"
)

var (
	// ErrUnknownFormat is returned for a format name other than yaml, toml or json.
	ErrUnknownFormat = errors.New("unknown export format")
	// ErrInvalidQuery is returned when a JSONPath expression does not parse.
	ErrInvalidQuery = errors.New("invalid query")

	jsonOptions = ojg.Options{Indent: 2, Sort: true}
)

// Format names an export encoding.
type Format string

// Formats lists the supported export formats.
func Formats() []Format { return []Format{FormatYAML, FormatTOML, FormatJSON} }

// ParseFormat returns the Format named s, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatYAML, FormatTOML, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("%w %q (valid: yaml, toml, json)", ErrUnknownFormat, s)
}

// Export writes n to w in format f.
func Export(w io.Writer, n *Node, f Format) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(n); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		if err := enc.Encode(n); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	case FormatJSON:
		return writeJSON(w, n.generic())
	}
	return fmt.Errorf("%w %q", ErrUnknownFormat, f)
}

// Query evaluates the JSONPath expression expr against the JSON form of n
// and writes the matches as a JSON array, e.g. "$..desktop_id" lists the
// desktop id of every item.
func Query(w io.Writer, n *Node, expr string) error {
	x, err := jp.ParseString(expr)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidQuery, expr, err)
	}
	results := x.Get(n.generic())
	if results == nil {
		results = []any{}
	}
	return writeJSON(w, results)
}

func writeJSON(w io.Writer, v any) error {
	opts := jsonOptions
	if _, err := io.WriteString(w, oj.JSON(v, &opts)+"\n"); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
