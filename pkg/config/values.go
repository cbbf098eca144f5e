package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value returns the value at path converted to T. When the path is missing
// the default is stored there and returned, so that a following save writes
// every setting the program asked for. When the stored value cannot be
// converted the default is returned and the stored value is left alone.
func Value[T any](n *Node, path string, def T) T {
	v, ok := n.Get(path)
	if !ok {
		// An invalid path cannot hold the default; it is still returned.
		_ = n.Set(path, def)
		return def
	}
	if out, ok := convertValue[T](v); ok {
		return out
	}
	return def
}

// GetString returns the string at path, storing def when missing.
func (n *Node) GetString(path, def string) string {
	return Value(n, path, def)
}

// GetInt returns the integer at path, storing def when missing.
func (n *Node) GetInt(path string, def int) int {
	return Value(n, path, def)
}

// GetFloat returns the number at path, storing def when missing.
func (n *Node) GetFloat(path string, def float64) float64 {
	return Value(n, path, def)
}

// GetBool returns the boolean at path, storing def when missing.
func (n *Node) GetBool(path string, def bool) bool {
	return Value(n, path, def)
}

// GetStrings returns the list at path as strings. A single scalar is
// returned as a one-element list. Nothing is stored when missing.
func (n *Node) GetStrings(path string) []string {
	v, ok := n.Get(path)
	if !ok {
		return nil
	}
	out, _ := convertValue[[]string](v)
	return out
}

// GetText returns the string at path. A list of strings is joined with
// newlines, which undoes the split applied to multi-line strings on save.
func (n *Node) GetText(path string) string {
	v, ok := n.Get(path)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	lines, ok := convertValue[[]string](v)
	if !ok {
		return ""
	}
	return strings.Join(lines, "\n")
}

func convertValue[T any](v any) (T, bool) {
	var out T
	if t, ok := v.(T); ok {
		return t, true
	}
	var ok bool
	switch p := any(&out).(type) {
	case *string:
		*p, ok = asString(v)
	case *int:
		var i int64
		i, ok = asInt(v)
		*p = int(i)
	case *int64:
		*p, ok = asInt(v)
	case *float64:
		*p, ok = asFloat(v)
	case *bool:
		*p, ok = asBool(v)
	case *[]string:
		*p, ok = asStrings(v)
	}
	return out, ok
}

func asString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case int, int64, float64, bool:
		return fmt.Sprint(val), true
	}
	return "", false
}

func asInt(v any) (int64, bool) {
	switch val := v.(type) {
	case int:
		return int64(val), true
	case int64:
		return val, true
	case uint64:
		if val > math.MaxInt64 {
			return 0, false
		}
		return int64(val), true
	case float64:
		if val != math.Trunc(val) {
			return 0, false
		}
		return int64(val), true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		return i, err == nil
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	}
	return 0, false
}

func asBool(v any) (bool, bool) {
	switch val := v.(type) {
	case bool:
		return val, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		return b, err == nil
	}
	return false, false
}

func asStrings(v any) ([]string, bool) {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := asString(item)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		s, ok := asString(val)
		if !ok {
			return nil, false
		}
		return []string{s}, true
	}
}
