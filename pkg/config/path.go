package config

import (
	"fmt"
	"strings"
)

// PathSeparator joins key segments into a dotted path.
const PathSeparator = "."

// PathEscape marks a separator or another escape that belongs to a key
// rather than to the path.
const PathEscape = `\`

var keyEscaper = strings.NewReplacer(PathEscape, PathEscape+PathEscape, PathSeparator, PathEscape+PathSeparator)

// EscapeKey returns key as a single path segment. A separator inside the key
// is written as `\.` and a backslash as `\\`.
func EscapeKey(key string) string {
	if !strings.ContainsAny(key, PathEscape+PathSeparator) {
		return key
	}
	return keyEscaper.Replace(key)
}

// JoinPath appends key to parent. An empty parent denotes the document root.
// key is a raw key and is escaped; parent is already a path.
func JoinPath(parent, key string) string {
	key = EscapeKey(key)
	if parent == "" {
		return key
	}
	return parent + PathSeparator + key
}

// SplitPath splits a dotted path into its raw key segments, undoing
// EscapeKey. The root path "" yields no segments.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	if !strings.Contains(path, PathEscape) {
		return strings.Split(path, PathSeparator)
	}

	var (
		segs []string
		seg  strings.Builder
	)
	for i := 0; i < len(path); i++ {
		switch c := path[i]; {
		case c == PathEscape[0] && i+1 < len(path):
			i++
			seg.WriteByte(path[i])
		case c == PathSeparator[0]:
			segs = append(segs, seg.String())
			seg.Reset()
		default:
			seg.WriteByte(c)
		}
	}
	return append(segs, seg.String())
}

// checkPath rejects paths with empty segments such as "a..b" or ".a".
func checkPath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	for _, seg := range SplitPath(path) {
		if seg == "" {
			return fmt.Errorf("%w: %q has an empty segment", ErrInvalidPath, path)
		}
	}
	return nil
}
