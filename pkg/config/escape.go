package config

import "strings"

// colorCodes are the characters that may follow a colour marker.
const colorCodes = "0123456789abcdefklmnorABCDEFKLMNOR"

const (
	// ColorEscapeFile introduces a colour code in files on disk.
	ColorEscapeFile = "&"
	// ColorEscapeCodec introduces a colour code in memory.
	ColorEscapeCodec = "§"
)

// Escape maps a token as written in the file to the form handed to the codec.
type Escape struct {
	File  string
	Codec string
	// Key restricts the entry to a key token at the start of a line.
	// Other entries are substituted anywhere in the line.
	Key bool
}

// EscapeTable is the single bidirectional mapping consulted by both the
// loader (file to codec) and the saver (codec to file).
type EscapeTable struct {
	keys []Escape
	load *strings.Replacer
	save *strings.Replacer
}

// NewEscapeTable builds a table from the given entries.
func NewEscapeTable(entries ...Escape) EscapeTable {
	var t EscapeTable
	var load, save []string
	for _, e := range entries {
		if e.Key {
			t.keys = append(t.keys, e)
			continue
		}
		load = append(load, e.File, e.Codec)
		save = append(save, e.Codec, e.File)
	}
	if len(load) > 0 {
		t.load = strings.NewReplacer(load...)
		t.save = strings.NewReplacer(save...)
	}
	return t
}

// WildcardEscape quotes a lone "*" key so the codec does not read it as an alias.
var WildcardEscape = Escape{File: "*", Codec: "'*'", Key: true}

// ColorEscapes returns one entry per colour code.
func ColorEscapes() []Escape {
	entries := make([]Escape, 0, len(colorCodes))
	for _, c := range colorCodes {
		entries = append(entries, Escape{
			File:  ColorEscapeFile + string(c),
			Codec: ColorEscapeCodec + string(c),
		})
	}
	return entries
}

var (
	// DefaultEscapes handles the wildcard key and colour codes.
	DefaultEscapes = NewEscapeTable(append([]Escape{WildcardEscape}, ColorEscapes()...)...)

	// NoColorEscapes only handles the wildcard key.
	NoColorEscapes = NewEscapeTable(WildcardEscape)
)

// Load rewrites a line read from a file into the form the codec expects.
func (t EscapeTable) Load(line string) string {
	if t.load != nil {
		line = t.load.Replace(line)
	}
	for _, e := range t.keys {
		line = swapKey(line, e.File, e.Codec)
	}
	return line
}

// Save rewrites a line produced by the codec into the form written to file.
func (t EscapeTable) Save(line string) string {
	for _, e := range t.keys {
		line = swapKey(line, e.Codec, e.File)
	}
	if t.save != nil {
		line = t.save.Replace(line)
	}
	return line
}

// LoadText applies the substring entries only. It is used for header text,
// which never carries key tokens.
func (t EscapeTable) LoadText(text string) string {
	if t.load == nil {
		return text
	}
	return t.load.Replace(text)
}

// SaveText is the inverse of LoadText.
func (t EscapeTable) SaveText(text string) string {
	if t.save == nil {
		return text
	}
	return t.save.Replace(text)
}

// swapKey replaces from with to when from is the whole key token of line.
func swapKey(line, from, to string) string {
	indent := countIndent(line)
	rest := line[indent:]
	if !strings.HasPrefix(rest, from+":") {
		return line
	}
	after := rest[len(from)+1:]
	if after != "" && after[0] != ' ' && after[0] != '\t' {
		return line
	}
	return line[:indent] + to + ":" + after
}
