package config

import (
	"fmt"
	"strings"
)

const (
	// DefaultIndent is the indentation width of nested nodes.
	DefaultIndent = 2
	// MinIndent and MaxIndent bound the widths the YAML emitter honours.
	MinIndent = 2
	MaxIndent = 9
)

// Document is a value tree together with the comment headers attached to
// its paths. The header store and the tree share the dotted path space but
// are otherwise independent: headers survive for paths that do not exist
// and are only written for paths that do.
type Document struct {
	*Node

	headers *HeaderStore
	indent  int
	escapes EscapeTable
}

// NewDocument creates an empty document with default indentation and the
// default escape table.
func NewDocument() *Document {
	return &Document{
		Node:    NewNode(),
		headers: NewHeaderStore(),
		indent:  DefaultIndent,
		escapes: DefaultEscapes,
	}
}

// SetHeader sets the document header. Empty text removes it.
func (d *Document) SetHeader(text string) {
	d.headers.Set("", text)
}

// Header returns the document header.
func (d *Document) Header() string {
	text, _ := d.headers.Get("")
	return text
}

// SetNodeHeader sets the header written above the key at path. Empty text
// removes it. The path does not need to exist yet.
func (d *Document) SetNodeHeader(path, text string) {
	d.headers.Set(path, text)
}

// NodeHeader returns the header of path.
func (d *Document) NodeHeader(path string) string {
	text, _ := d.headers.Get(path)
	return text
}

// AddHeader appends one line to the header of path.
func (d *Document) AddHeader(path, line string) {
	d.headers.Add(path, line)
}

// RemoveHeader removes the header of path.
func (d *Document) RemoveHeader(path string) {
	d.headers.Remove(path)
}

// Headers exposes the header store.
func (d *Document) Headers() *HeaderStore {
	return d.headers
}

// OrphanHeaders returns the paths holding a node header but no value.
// These headers are kept in memory and are not written.
func (d *Document) OrphanHeaders() []string {
	var orphans []string
	for _, path := range d.headers.Paths() {
		if path != "" && !d.Contains(path) {
			orphans = append(orphans, path)
		}
	}
	return orphans
}

// SetIndent sets the indentation width used when saving.
func (d *Document) SetIndent(width int) error {
	if width < MinIndent || width > MaxIndent {
		return fmt.Errorf("%w: %d is outside %d..%d", ErrInvalidIndent, width, MinIndent, MaxIndent)
	}
	d.indent = width
	return nil
}

// Indent returns the indentation width used when saving.
func (d *Document) Indent() int {
	return d.indent
}

// SetEscapes replaces the escape table used by Decode and Encode.
func (d *Document) SetEscapes(t EscapeTable) {
	d.escapes = t
}

// LoadString decodes text into the document.
func (d *Document) LoadString(text string) error {
	return d.Decode(strings.NewReader(text))
}

// SaveString encodes the document to text.
func (d *Document) SaveString() (string, error) {
	var sb strings.Builder
	if err := d.Encode(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
