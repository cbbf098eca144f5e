package config

// indentFrame records the key active at one indentation width.
type indentFrame struct {
	width  int
	key    string
	parent string
}

// path returns the dotted path of the frame itself.
func (f indentFrame) path() string {
	return JoinPath(f.parent, f.key)
}

// IndentTracker derives the dotted path of key lines from their indentation.
//
// Frames on the stack strictly increase in width from bottom to top. Each
// call to Advance drops every frame that is not a parent of the new line, so
// siblings at equal width and dedents of any depth are handled in one step.
// Indentation is taken at face value: badly indented input yields a plausible
// path rather than an error.
type IndentTracker struct {
	frames []indentFrame
}

// Advance records a key line at the given indentation width and returns its
// fully-qualified path. The key must already be unescaped.
func (t *IndentTracker) Advance(width int, key string) string {
	if width <= 0 {
		t.frames = t.frames[:0]
	}
	for len(t.frames) > 0 && t.frames[len(t.frames)-1].width >= width {
		t.frames = t.frames[:len(t.frames)-1]
	}

	frame := indentFrame{width: width, key: key}
	if len(t.frames) > 0 {
		frame.parent = t.frames[len(t.frames)-1].path()
	}
	t.frames = append(t.frames, frame)
	return frame.path()
}

// Path returns the path of the most recent key line, or "" before any.
func (t *IndentTracker) Path() string {
	if len(t.frames) == 0 {
		return ""
	}
	return t.frames[len(t.frames)-1].path()
}

// Depth is the number of frames currently on the stack.
func (t *IndentTracker) Depth() int {
	return len(t.frames)
}

// Reset empties the stack.
func (t *IndentTracker) Reset() {
	t.frames = t.frames[:0]
}
