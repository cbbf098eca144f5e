package config

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Encode writes the document to w: the document header first, then the
// YAML body with each stored node header placed above its key at the key's
// indentation.
//
// Strings containing newlines are replaced in the tree by a list of their
// lines before encoding, since a line-oriented scalar cannot carry them.
// The change is visible in the document after Encode returns.
func (d *Document) Encode(w io.Writer) error {
	splitMultiline(d.Node)

	body, err := encodeTree(d.Node, d.indent)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if header, ok := d.headers.Get(""); ok {
		d.writeDocumentHeader(bw, header)
	}

	scanner := newLineScanner()
	for _, raw := range splitLines(body) {
		line, path := scanner.next(raw)
		if line.Kind == LineNode {
			if header, ok := d.headers.Get(path); ok {
				d.writeNodeHeader(bw, header, line.Indent)
			}
		}
		bw.WriteString(d.escapes.Save(raw))
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}
	return nil
}

func (d *Document) writeDocumentHeader(w *bufio.Writer, header string) {
	for _, line := range strings.Split(d.escapes.SaveText(header), "\n") {
		if line == "" {
			w.WriteString(strings.TrimSpace(DocumentHeaderPrefix))
		} else {
			w.WriteString(DocumentHeaderPrefix)
			w.WriteString(line)
		}
		w.WriteByte('\n')
	}
	w.WriteByte('\n')
}

func (d *Document) writeNodeHeader(w *bufio.Writer, header string, indent int) {
	pad := strings.Repeat(" ", indent)
	for _, line := range strings.Split(d.escapes.SaveText(header), "\n") {
		if strings.TrimSpace(line) != "" {
			w.WriteString(pad)
			w.WriteString(CommentPrefix)
			w.WriteString(line)
		}
		w.WriteByte('\n')
	}
}

// splitMultiline replaces every string value holding a newline with the list
// of its lines. Lists are left alone.
func splitMultiline(n *Node) {
	for _, key := range n.keys {
		switch v := n.values[key].(type) {
		case *Node:
			splitMultiline(v)
		case string:
			if strings.Contains(v, "\n") {
				lines := strings.Split(v, "\n")
				items := make([]any, len(lines))
				for i, line := range lines {
					items[i] = line
				}
				n.values[key] = items
			}
		}
	}
}

// splitLines splits codec output into lines, dropping the final newline.
func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
