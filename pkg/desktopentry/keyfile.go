// SPDX-License-Identifier: MPL-2.0

package desktopentry

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

const desktopGroup = "Desktop Entry"

var (
	// ErrMalformed is returned for entries that are not valid key files.
	ErrMalformed = errors.New("malformed desktop entry")
	// ErrNoDesktopGroup is returned when the [Desktop Entry] group is absent.
	ErrNoDesktopGroup = errors.New("missing [Desktop Entry] group")
)

// group holds the raw key/value pairs of [Desktop Entry]. Localized keys are
// stored verbatim, e.g. "Name[de_DE]".
type group map[string]string

func parseDesktopGroup(data []byte) (group, error) {
	var (
		g       group
		current string
		lineNo  int
	)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return nil, fmt.Errorf("%w: line %d: unterminated group header", ErrMalformed, lineNo)
			}
			current = line[1 : len(line)-1]
			if current == desktopGroup {
				if g != nil {
					return nil, fmt.Errorf("%w: line %d: duplicate [%s] group", ErrMalformed, lineNo, desktopGroup)
				}
				g = group{}
			}
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: expected key=value", ErrMalformed, lineNo)
		}
		if current == "" {
			return nil, fmt.Errorf("%w: line %d: key outside of a group", ErrMalformed, lineNo)
		}
		if current == desktopGroup {
			g[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if g == nil {
		return nil, ErrNoDesktopGroup
	}
	return g, nil
}

func (g group) string(key string) string {
	return unescape(g[key])
}

func (g group) bool(key string) bool {
	v, err := strconv.ParseBool(g[key])
	return err == nil && v
}

func (g group) list(key string) []string {
	raw, ok := g[key]
	if !ok {
		return nil
	}
	var (
		out []string
		cur strings.Builder
	)
	for i := 0; i < len(raw); i++ {
		switch {
		case raw[i] == '\\' && i+1 < len(raw) && raw[i+1] == ';':
			cur.WriteByte(';')
			i++
		case raw[i] == ';':
			if s := strings.TrimSpace(cur.String()); s != "" {
				out = append(out, unescape(s))
			}
			cur.Reset()
		default:
			cur.WriteByte(raw[i])
		}
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		out = append(out, unescape(s))
	}
	return out
}

// localized returns the value of key for the preferred locale, falling back
// to the unlocalized key when no variant matches.
func (g group) localized(key string, pref *language.Tag) string {
	if pref == nil {
		return g.string(key)
	}
	prefix := key + "["
	var candidates []string
	for k := range g {
		if strings.HasPrefix(k, prefix) && strings.HasSuffix(k, "]") {
			candidates = append(candidates, k)
		}
	}
	// Map iteration order is random; sort for a deterministic matcher.
	slices.Sort(candidates)

	var (
		tags []language.Tag
		keys []string
	)
	for _, k := range candidates {
		tag, err := parseLocale(k[len(prefix) : len(k)-1])
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		keys = append(keys, k)
	}
	if len(tags) == 0 {
		return g.string(key)
	}
	_, idx, conf := language.NewMatcher(tags).Match(*pref)
	if conf == language.No {
		return g.string(key)
	}
	return g.string(keys[idx])
}

// LocaleTag converts a POSIX locale such as "de_DE.UTF-8" into a language
// tag. "C", "POSIX" and the empty locale have no language and fail.
func LocaleTag(locale string) (language.Tag, error) {
	return parseLocale(locale)
}

// parseLocale converts a POSIX locale (lang_COUNTRY.ENCODING@MODIFIER) into
// a BCP 47 tag. The encoding and modifier are dropped.
func parseLocale(s string) (language.Tag, error) {
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "" || s == "C" || s == "POSIX" {
		return language.Und, fmt.Errorf("no language in locale %q", s)
	}
	return language.Parse(strings.ReplaceAll(s, "_", "-"))
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 's':
			b.WriteByte(' ')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
