package config

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DocumentHeaderPrefix starts every line of the document header.
	DocumentHeaderPrefix = "#> "
	// CommentPrefix starts every line of a node header.
	CommentPrefix = "# "
)

// LineKind classifies a single line of the file format.
type LineKind int

const (
	// LineOther covers list items, scalar continuations and blank lines.
	LineOther LineKind = iota
	// LineComment is an ordinary "#" comment.
	LineComment
	// LineDocumentHeader is a "#> " banner line.
	LineDocumentHeader
	// LineNode defines a key.
	LineNode
)

// String returns a short name for the kind.
func (k LineKind) String() string {
	switch k {
	case LineComment:
		return "comment"
	case LineDocumentHeader:
		return "document-header"
	case LineNode:
		return "node"
	default:
		return "other"
	}
}

// Line is the result of classifying one raw line.
type Line struct {
	Kind   LineKind
	Indent int
	// Key is the unescaped key token of a node line.
	Key string
	// Text is the comment text with its marker removed.
	Text string
	Raw  string
	// BlockScalar reports that the line opens a literal or folded block
	// that continues on the following, deeper indented lines.
	BlockScalar bool
	// InBlock marks a line that belongs to an open block scalar. Only a
	// scanner that has seen the opening line can set it.
	InBlock bool
	// blockIndent is the column the block's lines must be indented past.
	blockIndent int
}

// Blank reports whether the line holds only whitespace.
func (l Line) Blank() bool {
	return strings.TrimSpace(l.Raw) == ""
}

var (
	singleQuotedKeyRe = regexp.MustCompile(`^'((?:[^']|'')*)'[ \t]*:(?:[ \t]|$)`)
	doubleQuotedKeyRe = regexp.MustCompile(`^"((?:[^"\\]|\\.)*)"[ \t]*:(?:[ \t]|$)`)
	plainKeyRe        = regexp.MustCompile("^((?:[^\\s\\-?:,\\[\\]{}#&*!|>'\"%@`]|[\\-?:]\\S).*?)[ \\t]*:(?:[ \\t]|$)")

	// blockScalarRe matches a block scalar indicator with optional chomping
	// and indentation indicators, and an optional trailing comment.
	blockScalarRe = regexp.MustCompile(`^[|>][1-9+\-]{0,2}(?:[ \t]+#.*)?$`)
)

// countIndent returns the number of leading space characters.
func countIndent(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}

// ClassifyLine decides what a raw line is. Document header lines win over
// comments, comments over key lines; everything else is LineOther.
func ClassifyLine(raw string) Line {
	indent := countIndent(raw)
	trimmed := strings.TrimRight(raw[indent:], " \t\r")
	line := Line{Kind: LineOther, Indent: indent, Raw: raw}

	switch {
	case trimmed == strings.TrimSpace(DocumentHeaderPrefix):
		line.Kind = LineDocumentHeader
		return line
	case strings.HasPrefix(trimmed, DocumentHeaderPrefix):
		line.Kind = LineDocumentHeader
		line.Text = trimmed[len(DocumentHeaderPrefix):]
		return line
	case strings.HasPrefix(trimmed, "#"):
		line.Kind = LineComment
		text := trimmed[1:]
		text = strings.TrimPrefix(text, " ")
		line.Text = text
		return line
	}

	if key, rest, ok := matchKey(trimmed); ok {
		line.Kind = LineNode
		line.Key = key
		line.BlockScalar = isBlockIndicator(rest)
		line.blockIndent = indent
		return line
	}

	// Keys too long for the inline form are written as "? key" with the
	// value on a following ": value" line. A mapping value starts on that
	// line, so its first key sits right after the indicator.
	if key, ok := matchExplicitKey(trimmed); ok {
		line.Kind = LineNode
		line.Key = key
		return line
	}
	if item, ok := strings.CutPrefix(trimmed, ": "); ok {
		item = strings.TrimLeft(item, " ")
		contentCol := indent + len(trimmed) - len(item)
		if isBlockIndicator(item) {
			line.BlockScalar, line.blockIndent = true, indent
			return line
		}
		if key, rest, ok := matchKey(item); ok {
			line.Kind = LineNode
			line.Indent = contentCol
			line.Key = key
			line.BlockScalar = isBlockIndicator(rest)
			line.blockIndent = contentCol
			return line
		}
		trimmed, indent = item, contentCol
	}

	// List items stay LineOther but may still open a block scalar, either
	// directly ("- |") or through a mapping inside the item ("- key: |").
	if item, dashCol, contentCol, ok := stripListItem(trimmed, indent); ok {
		if isBlockIndicator(item) {
			line.BlockScalar, line.blockIndent = true, dashCol
		} else if _, rest, ok := matchKey(item); ok && isBlockIndicator(rest) {
			line.BlockScalar, line.blockIndent = true, contentCol
		}
	}
	return line
}

func isBlockIndicator(s string) bool {
	return blockScalarRe.MatchString(strings.TrimSpace(s))
}

// stripListItem removes one or more "- " markers from the start of s.
// dashCol is the column of the last marker and contentCol the column of what
// follows it.
func stripListItem(s string, indent int) (item string, dashCol, contentCol int, ok bool) {
	dashCol = -1
	for strings.HasPrefix(s, "- ") || s == "-" {
		dashCol = indent
		rest := strings.TrimLeft(s[1:], " ")
		indent += len(s) - len(rest)
		s = rest
	}
	return s, dashCol, indent, dashCol >= 0
}

// matchKey extracts and unescapes the key token at the start of s.
// rest is whatever follows the colon.
func matchKey(s string) (key, rest string, ok bool) {
	if m := singleQuotedKeyRe.FindStringSubmatch(s); m != nil {
		return strings.ReplaceAll(m[1], "''", "'"), s[len(m[0]):], true
	}
	if m := doubleQuotedKeyRe.FindStringSubmatch(s); m != nil {
		return unquoteDouble(m[1]), s[len(m[0]):], true
	}
	if m := plainKeyRe.FindStringSubmatch(s); m != nil {
		return m[1], s[len(m[0]):], true
	}
	return "", "", false
}

// matchExplicitKey extracts the key of a "? key" line. Block scalar keys
// span several lines and are not recognised.
func matchExplicitKey(s string) (string, bool) {
	key, ok := strings.CutPrefix(s, "? ")
	if !ok {
		return "", false
	}
	key = strings.TrimSpace(key)
	switch {
	case key == "" || isBlockIndicator(key):
		return "", false
	case len(key) >= 2 && key[0] == '\'' && key[len(key)-1] == '\'':
		return strings.ReplaceAll(key[1:len(key)-1], "''", "'"), true
	case len(key) >= 2 && key[0] == '"' && key[len(key)-1] == '"':
		return unquoteDouble(key[1 : len(key)-1]), true
	}
	return key, true
}

// unquoteDouble decodes YAML double-quoted escapes through the codec so the
// key matches what the value tree holds.
func unquoteDouble(inner string) string {
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(`"`+inner+`"`), &node); err != nil {
		return inner
	}
	if len(node.Content) == 0 {
		return inner
	}
	return node.Content[0].Value
}
