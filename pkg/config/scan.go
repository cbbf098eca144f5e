package config

// lineScanner classifies a stream of lines and resolves the path of every
// key line. Both the loader and the saver drive one, so a path computed while
// saving is the path the loader computes when the file is read back.
type lineScanner struct {
	tracker IndentTracker
	// blockIndent is the indentation of the key owning an open block
	// scalar, or -1 outside of one.
	blockIndent int
}

func newLineScanner() *lineScanner {
	return &lineScanner{blockIndent: -1}
}

// next classifies raw. For key lines the returned path is the full dotted
// path of the key. Lines inside a block scalar are always LineOther.
func (s *lineScanner) next(raw string) (Line, string) {
	line := ClassifyLine(raw)

	if s.blockIndent >= 0 {
		if line.Blank() || line.Indent > s.blockIndent {
			return Line{Kind: LineOther, Indent: line.Indent, Raw: raw, InBlock: true}, ""
		}
		s.blockIndent = -1
	}

	if line.BlockScalar {
		s.blockIndent = line.blockIndent
	}
	if line.Kind != LineNode {
		return line, ""
	}
	return line, s.tracker.Advance(line.Indent, line.Key)
}
