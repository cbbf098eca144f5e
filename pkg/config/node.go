package config

import (
	"fmt"
	"reflect"
	"slices"
	"sort"
)

// Node is an ordered map of key to value. A value is a scalar, a []any list
// or a nested *Node. Keys keep their insertion order, which is also the order
// they are written in.
//
// Nodes are not safe for concurrent use.
type Node struct {
	keys   []string
	values map[string]any
}

// NewNode creates an empty node.
func NewNode() *Node {
	return &Node{values: make(map[string]any)}
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	return len(n.keys)
}

// Keys returns the raw direct child keys in insertion order.
func (n *Node) Keys() []string {
	return slices.Clone(n.keys)
}

// AllKeys returns the paths of the direct children, or with deep set the
// path of every key below this node, depth first and in insertion order.
// Lists are not descended into.
func (n *Node) AllKeys(deep bool) []string {
	if !deep {
		out := make([]string, len(n.keys))
		for i, key := range n.keys {
			out[i] = EscapeKey(key)
		}
		return out
	}
	var out []string
	n.walkKeys("", &out)
	return out
}

func (n *Node) walkKeys(prefix string, out *[]string) {
	for _, key := range n.keys {
		path := JoinPath(prefix, key)
		*out = append(*out, path)
		if child, ok := n.values[key].(*Node); ok {
			child.walkKeys(path, out)
		}
	}
}

// Child returns the direct child stored under key. The key is not split on
// the path separator.
func (n *Node) Child(key string) (any, bool) {
	v, ok := n.values[key]
	return v, ok
}

// Get returns the value at path.
func (n *Node) Get(path string) (any, bool) {
	if path == "" {
		return n, true
	}
	cur := n
	segs := SplitPath(path)
	for i, seg := range segs {
		v, ok := cur.values[seg]
		if !ok {
			return nil, false
		}
		if i == len(segs)-1 {
			return v, true
		}
		child, ok := v.(*Node)
		if !ok {
			return nil, false
		}
		cur = child
	}
	return nil, false
}

// Contains reports whether a value exists at path.
func (n *Node) Contains(path string) bool {
	_, ok := n.Get(path)
	return ok
}

// IsNode reports whether path holds a nested node.
func (n *Node) IsNode(path string) bool {
	v, ok := n.Get(path)
	if !ok {
		return false
	}
	_, isNode := v.(*Node)
	return isNode
}

// Set stores value at path, creating intermediate nodes and replacing any
// scalar in the way. A nil value removes the path.
func (n *Node) Set(path string, value any) error {
	if err := checkPath(path); err != nil {
		return err
	}
	if value == nil {
		n.Remove(path)
		return nil
	}
	segs := SplitPath(path)
	last := len(segs) - 1
	n.ensureNode(segs[:last]).put(segs[last], normalizeValue(value))
	return nil
}

// Section returns the nested node at path, creating it (and any parents)
// when missing. The empty path returns n itself.
func (n *Node) Section(path string) *Node {
	if path == "" {
		return n
	}
	return n.ensureNode(SplitPath(path))
}

func (n *Node) ensureNode(segs []string) *Node {
	cur := n
	for _, seg := range segs {
		child, ok := cur.values[seg].(*Node)
		if !ok {
			child = NewNode()
			cur.put(seg, child)
		}
		cur = child
	}
	return cur
}

// Remove deletes the value at path. Nodes left without children by the
// removal are removed as well. It reports whether anything was removed.
func (n *Node) Remove(path string) bool {
	segs := SplitPath(path)
	if len(segs) == 0 {
		return false
	}
	return n.remove(segs)
}

func (n *Node) remove(segs []string) bool {
	if len(segs) == 1 {
		return n.delete(segs[0])
	}
	child, ok := n.values[segs[0]].(*Node)
	if !ok {
		return false
	}
	removed := child.remove(segs[1:])
	if removed && child.Len() == 0 {
		n.delete(segs[0])
	}
	return removed
}

// Clear removes every child.
func (n *Node) Clear() {
	n.keys = n.keys[:0]
	clear(n.values)
}

// replaceWith takes over the contents of other in place, so that pointers to
// n held elsewhere see the new values.
func (n *Node) replaceWith(other *Node) {
	n.keys = other.keys
	n.values = other.values
}

// Clone returns a deep copy.
func (n *Node) Clone() *Node {
	out := NewNode()
	for _, key := range n.keys {
		out.put(key, cloneValue(n.values[key]))
	}
	return out
}

// Equal reports whether both nodes hold the same keys, in the same order,
// with equal values.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if !slices.Equal(n.keys, other.keys) {
		return false
	}
	for _, key := range n.keys {
		if !valuesEqual(n.values[key], other.values[key]) {
			return false
		}
	}
	return true
}

// Map converts the node into plain nested maps and slices. Key order is lost.
func (n *Node) Map() map[string]any {
	out := make(map[string]any, len(n.keys))
	for _, key := range n.keys {
		out[key] = Plain(n.values[key])
	}
	return out
}

// String renders the node for debugging.
func (n *Node) String() string {
	return fmt.Sprintf("%v", n.Map())
}

func (n *Node) put(key string, value any) {
	if _, exists := n.values[key]; !exists {
		n.keys = append(n.keys, key)
	}
	n.values[key] = value
}

func (n *Node) delete(key string) bool {
	if _, exists := n.values[key]; !exists {
		return false
	}
	delete(n.values, key)
	n.keys = slices.DeleteFunc(n.keys, func(k string) bool { return k == key })
	return true
}

// normalizeValue converts maps to nodes and typed slices to []any so that
// the tree only ever holds scalars, []any and *Node.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case *Node:
		return val
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeValue(item)
		}
		return out
	case map[string]any:
		node := NewNode()
		for _, key := range sortedKeys(val) {
			node.put(key, normalizeValue(val[key]))
		}
		return node
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = normalizeValue(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return normalizeValue(m)
	}
	return v
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case *Node:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	}
	return v
}

func valuesEqual(a, b any) bool {
	switch av := a.(type) {
	case *Node:
		bv, ok := b.(*Node)
		return ok && av.Equal(bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valuesEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

// Plain converts a value taken from the tree into plain maps and slices,
// suitable for encoding/json and similar encoders.
func Plain(v any) any {
	switch val := v.(type) {
	case *Node:
		return val.Map()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Plain(item)
		}
		return out
	}
	return v
}
