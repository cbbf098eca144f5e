package config

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineSize bounds a single line of input.
const maxLineSize = 1 << 20

type loadState int

const (
	// stateDocumentHeader: no key line seen yet, "#> " lines form the
	// document header.
	stateDocumentHeader loadState = iota
	// stateBody: "#> " lines are node headers like any other comment.
	stateBody
	stateDone
)

// loader is the streaming half of Decode. It strips header lines out of the
// input, records them against the path of the key that follows, and buffers
// everything else for the codec.
type loader struct {
	doc        *Document
	state      loadState
	scanner    *lineScanner
	docHeader  HeaderBlock
	nodeHeader HeaderBlock
	buf        strings.Builder
}

// Decode reads a document from r. The value tree is replaced by what r
// holds. Headers found in r are stored; headers already in the document for
// paths that r does not mention are kept.
//
// When the YAML body is malformed the headers read so far are kept and the
// value tree is left untouched.
func (d *Document) Decode(r io.Reader) error {
	l := &loader{doc: d, scanner: newLineScanner()}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		l.handle(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}
	return l.finish()
}

func (l *loader) handle(raw string) {
	raw = l.doc.escapes.Load(raw)
	line, path := l.scanner.next(raw)

	if line.Kind == LineDocumentHeader && l.state == stateDocumentHeader {
		l.docHeader.Append(line.Text)
		return
	}
	if !line.InBlock && l.nodeHeader.Handle(line) {
		return
	}
	switch {
	case line.Kind == LineNode:
		l.state = stateBody
		if l.nodeHeader.HasHeader() {
			l.doc.headers.Set(path, l.nodeHeader.Header())
			l.nodeHeader.Clear()
		}
	case !line.Blank():
		// Comments above list items or scalar continuations have no key of
		// their own and are not carried over to the next one.
		l.nodeHeader.Clear()
	}

	l.buf.WriteString(raw)
	l.buf.WriteByte('\n')
}

func (l *loader) finish() error {
	l.state = stateDone
	if l.docHeader.HasHeader() {
		l.doc.headers.Set("", l.docHeader.Header())
	}

	tree, err := decodeTree(l.buf.String())
	if err != nil {
		return err
	}
	l.doc.Node.replaceWith(tree)
	return nil
}
