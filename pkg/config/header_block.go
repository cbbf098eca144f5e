package config

import "strings"

// HeaderBlock accumulates contiguous comment lines into one header text.
//
// Blank comment lines are kept as empty segments so paragraphs survive a
// round trip. Blank source lines inside a pending block are kept the same
// way, while blank lines at the end of a block are dropped.
type HeaderBlock struct {
	segments []string
	// blanks counts blank source lines not yet followed by another comment.
	blanks int
}

// Handle consumes a comment line and reports whether it was consumed.
// Blank lines are consumed only while a block is pending.
func (b *HeaderBlock) Handle(line Line) bool {
	switch {
	case line.Kind == LineComment || line.Kind == LineDocumentHeader:
		b.Append(line.Text)
		return true
	case line.Kind == LineOther && line.Blank() && b.HasHeader():
		b.blanks++
		return true
	}
	return false
}

// Append adds one segment, committing any pending blank lines first.
func (b *HeaderBlock) Append(text string) {
	for ; b.blanks > 0; b.blanks-- {
		b.segments = append(b.segments, "")
	}
	b.segments = append(b.segments, text)
}

// HasHeader reports whether any comment line has been consumed.
func (b *HeaderBlock) HasHeader() bool {
	return len(b.segments) > 0
}

// Header returns the accumulated text without trailing empty segments.
func (b *HeaderBlock) Header() string {
	end := len(b.segments)
	for end > 0 && b.segments[end-1] == "" {
		end--
	}
	return strings.Join(b.segments[:end], "\n")
}

// Clear resets the block.
func (b *HeaderBlock) Clear() {
	b.segments = b.segments[:0]
	b.blanks = 0
}
