package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const annotatedYAML = `#> My plugin
#> second line

# Root comment
server:
  # The port
  port: 8080
  host: localhost
`

func TestDocument_LoadSavePreservesHeaders(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.LoadString(annotatedYAML))

	assert.Equal(t, "My plugin\nsecond line", doc.Header())
	assert.Equal(t, "Root comment", doc.NodeHeader("server"))
	assert.Equal(t, "The port", doc.NodeHeader("server.port"))
	assert.Equal(t, 8080, doc.GetInt("server.port", 0))

	out, err := doc.SaveString()
	require.NoError(t, err)
	assert.Equal(t, annotatedYAML, out)
}

func TestDocument_RoundTrip(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.Set("name", "shop"))
	require.NoError(t, doc.Set("numbers.int", 3))
	require.NoError(t, doc.Set("numbers.float", 1.5))
	require.NoError(t, doc.Set("numbers.quoted", "123"))
	require.NoError(t, doc.Set("flags.enabled", true))
	require.NoError(t, doc.Set("flags.*", "wildcard"))
	require.NoError(t, doc.Set("list", []any{"a", 2, map[string]any{"k": "v"}}))
	require.NoError(t, doc.Set("nested.deep.deeper.value", "x: y"))
	doc.Section("empty")

	text, err := doc.SaveString()
	require.NoError(t, err)

	loaded := NewDocument()
	require.NoError(t, loaded.LoadString(text))

	if diff := cmp.Diff(doc.Map(), loaded.Map()); diff != "" {
		t.Errorf("round trip mismatch (-saved +loaded):\n%s", diff)
	}
	assert.Equal(t, doc.AllKeys(true), loaded.AllKeys(true), "key order")
	assert.True(t, doc.Equal(loaded.Node))

	again, err := loaded.SaveString()
	require.NoError(t, err)
	assert.Equal(t, text, again, "saving is idempotent")
}

func TestDocument_HeaderStableAcrossSiblingChanges(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.Set("a.b", 1))
	require.NoError(t, doc.Set("a.c", 2))
	doc.SetNodeHeader("a.b", "About b\n\nSecond paragraph")

	require.NoError(t, doc.Set("a.before", 0))
	doc.Remove("a.c")

	text, err := doc.SaveString()
	require.NoError(t, err)

	fresh := NewDocument()
	require.NoError(t, fresh.LoadString(text))
	assert.Equal(t, "About b\n\nSecond paragraph", fresh.NodeHeader("a.b"))
	assert.Equal(t, []string{"a.b"}, fresh.Headers().Paths())

	// Insert a sibling in the file text itself and reload.
	edited := strings.Replace(text, "a:\n", "a:\n  first: true\n", 1)
	fresh = NewDocument()
	require.NoError(t, fresh.LoadString(edited))
	assert.Equal(t, "About b\n\nSecond paragraph", fresh.NodeHeader("a.b"))
}

func TestDocument_DocumentHeaderPrecedence(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.LoadString("#> Banner\n\n#> still banner\na: 1\n#> not banner\nb: 2\n"))

	assert.Equal(t, "Banner\nstill banner", doc.Header())
	assert.Equal(t, "not banner", doc.NodeHeader("b"))
	assert.Equal(t, 2, doc.GetInt("b", 0))
}

func TestDocument_WildcardKey(t *testing.T) {
	input := "perms:\n  *:\n    allow: true\n"

	doc := NewDocument()
	require.NoError(t, doc.LoadString(input))

	v, ok := doc.Get("perms.*.allow")
	require.True(t, ok)
	assert.Equal(t, true, v)
	assert.Equal(t, []string{"*"}, doc.Section("perms").Keys())

	doc.SetNodeHeader("perms.*", "Applies to everyone")
	out, err := doc.SaveString()
	require.NoError(t, err)
	assert.Equal(t, "perms:\n  # Applies to everyone\n  *:\n    allow: true\n", out)

	quoted := NewDocument()
	require.NoError(t, quoted.LoadString("perms:\n  '*':\n    allow: true\n"))
	assert.True(t, doc.Equal(quoted.Node))
}

func TestDocument_MultilineStringsBecomeLists(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.Set("motd", "line1\nline2"))

	text, err := doc.SaveString()
	require.NoError(t, err)

	loaded := NewDocument()
	require.NoError(t, loaded.LoadString(text))

	v, ok := loaded.Get("motd")
	require.True(t, ok)
	assert.Equal(t, []any{"line1", "line2"}, v)
	assert.Equal(t, "line1\nline2", loaded.GetText("motd"))
}

func TestDocument_BlockScalarContentIsNotParsedAsHeaders(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.LoadString("script: |\n  # not a comment\n  key: value\nafter: 1\n"))

	assert.Equal(t, "# not a comment\nkey: value\n", doc.GetText("script"))
	assert.Equal(t, 0, doc.Headers().Len())
	assert.Equal(t, 1, doc.GetInt("after", 0))
}

func TestDocument_BlankLinesInsideBlockScalarsSurvive(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.LoadString("k:\n  # c\n  - |\n    para1\n\n    para2\nj: 1\n"))

	v, ok := doc.Get("k")
	require.True(t, ok)
	assert.Equal(t, []any{"para1\n\npara2\n"}, v)
	assert.Equal(t, 1, doc.GetInt("j", 0))
	// The comment sits above a list item, not above j.
	assert.Empty(t, doc.NodeHeader("j"))
	assert.Equal(t, 0, doc.Headers().Len())

	text, err := doc.SaveString()
	require.NoError(t, err)
	loaded := NewDocument()
	require.NoError(t, loaded.LoadString(text))
	assert.True(t, doc.Equal(loaded.Node), cmp.Diff(Plain(doc.Node), Plain(loaded.Node)))
}

func TestDocument_BlankLinesInsideBlockScalarAfterHeader(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.LoadString("# About the script\nscript: |\n  one\n\n  two\n"))

	assert.Equal(t, "About the script", doc.NodeHeader("script"))
	assert.Equal(t, "one\n\ntwo\n", doc.GetText("script"))
}

func TestDocument_KeysContainingSeparator(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.LoadString("a.b: 1\na:\n  b: 2\n"))

	assert.Equal(t, 1, doc.GetInt(`a\.b`, 0))
	assert.Equal(t, 2, doc.GetInt("a.b", 0))

	doc.SetNodeHeader("a.b", "nested only")
	text, err := doc.SaveString()
	require.NoError(t, err)
	assert.Equal(t, "a.b: 1\na:\n  # nested only\n  b: 2\n", text)

	doc.SetNodeHeader(`a\.b`, "literal key")
	text, err = doc.SaveString()
	require.NoError(t, err)
	assert.Equal(t, "# literal key\na.b: 1\na:\n  # nested only\n  b: 2\n", text)

	loaded := NewDocument()
	require.NoError(t, loaded.LoadString(text))
	assert.Equal(t, "literal key", loaded.NodeHeader(`a\.b`))
	assert.Equal(t, "nested only", loaded.NodeHeader("a.b"))
}

func TestDocument_LongKeysKeepTheirHeaders(t *testing.T) {
	long := strings.Repeat("k", 140)
	section := strings.Repeat("s", 140)

	doc := NewDocument()
	require.NoError(t, doc.Set(long, 1))
	require.NoError(t, doc.Set(section+".inner", 2))
	require.NoError(t, doc.Set(section+".other", 3))
	doc.SetNodeHeader(long, "h")
	doc.SetNodeHeader(section, "outer")
	doc.SetNodeHeader(section+".inner", "first")
	doc.SetNodeHeader(section+".other", "second")

	text, err := doc.SaveString()
	require.NoError(t, err)
	assert.Contains(t, text, "# h\n? "+long+"\n")

	loaded := NewDocument()
	require.NoError(t, loaded.LoadString(text))
	assert.Equal(t, 1, loaded.GetInt(long, 0))
	assert.Equal(t, 2, loaded.GetInt(section+".inner", 0))
	assert.Equal(t, 3, loaded.GetInt(section+".other", 0))
	assert.Equal(t, "h", loaded.NodeHeader(long))
	assert.Equal(t, "outer", loaded.NodeHeader(section))
	assert.Equal(t, "first", loaded.NodeHeader(section+".inner"))
	assert.Equal(t, "second", loaded.NodeHeader(section+".other"))

	again, err := loaded.SaveString()
	require.NoError(t, err)
	assert.Equal(t, text, again)
}

func TestDocument_ColorCodes(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.LoadString("# &cWarning\nmsg: '&aHello'\n"))

	assert.Equal(t, "§aHello", doc.GetString("msg", ""))
	assert.Equal(t, "§cWarning", doc.NodeHeader("msg"))

	out, err := doc.SaveString()
	require.NoError(t, err)
	assert.Equal(t, "# &cWarning\nmsg: &aHello\n", out)

	reloaded := NewDocument()
	require.NoError(t, reloaded.LoadString(out))
	assert.Equal(t, "§aHello", reloaded.GetString("msg", ""))
}

func TestDocument_OrphanHeaders(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.Set("present", 1))
	doc.SetNodeHeader("present", "here")
	doc.SetNodeHeader("future.key", "not yet")

	assert.Equal(t, []string{"future.key"}, doc.OrphanHeaders())

	out, err := doc.SaveString()
	require.NoError(t, err)
	assert.Equal(t, "# here\npresent: 1\n", out)

	require.NoError(t, doc.Set("future.key", "now"))
	out, err = doc.SaveString()
	require.NoError(t, err)
	assert.Equal(t, "# here\npresent: 1\nfuture:\n  # not yet\n  key: now\n", out)
	assert.Empty(t, doc.OrphanHeaders())
}

func TestDocument_LoadKeepsUnrelatedHeaders(t *testing.T) {
	doc := NewDocument()
	doc.SetNodeHeader("elsewhere", "kept")
	require.NoError(t, doc.LoadString("# new\na: 1\n"))

	assert.Equal(t, "kept", doc.NodeHeader("elsewhere"))
	assert.Equal(t, "new", doc.NodeHeader("a"))
}

func TestDocument_Indent(t *testing.T) {
	doc := NewDocument()
	assert.Equal(t, DefaultIndent, doc.Indent())

	require.NoError(t, doc.SetIndent(4))
	require.NoError(t, doc.Set("a.b", 1))
	doc.SetNodeHeader("a.b", "deep")

	out, err := doc.SaveString()
	require.NoError(t, err)
	assert.Equal(t, "a:\n    # deep\n    b: 1\n", out)

	err = doc.SetIndent(1)
	assert.True(t, errors.Is(err, ErrInvalidIndent))
	assert.Equal(t, 4, doc.Indent())
}

func TestDocument_EmptyDocument(t *testing.T) {
	doc := NewDocument()
	out, err := doc.SaveString()
	require.NoError(t, err)
	assert.Equal(t, "", out)

	doc.SetHeader("Only a banner\n\nwith a gap")
	out, err = doc.SaveString()
	require.NoError(t, err)
	assert.Equal(t, "#> Only a banner\n#>\n#> with a gap\n\n", out)

	loaded := NewDocument()
	require.NoError(t, loaded.LoadString(out))
	assert.Equal(t, "Only a banner\n\nwith a gap", loaded.Header())
	assert.Equal(t, 0, loaded.Len())
}

func TestDocument_LoadErrors(t *testing.T) {
	t.Run("malformed YAML keeps headers and values", func(t *testing.T) {
		doc := NewDocument()
		require.NoError(t, doc.Set("old", 1))

		err := doc.LoadString("# header\nkey: [unclosed\n")
		require.Error(t, err)
		assert.Contains(t, strings.ToLower(err.Error()), "parse")
		assert.Equal(t, "header", doc.NodeHeader("key"))
		assert.True(t, doc.Contains("old"))
	})

	t.Run("root must be a mapping", func(t *testing.T) {
		doc := NewDocument()
		err := doc.LoadString("- a\n- b\n")
		assert.True(t, errors.Is(err, ErrNotMapping))
	})

	t.Run("null document is empty", func(t *testing.T) {
		doc := NewDocument()
		require.NoError(t, doc.LoadString("---\n"))
		assert.Equal(t, 0, doc.Len())
	})
}

func TestDocument_AliasesAndMergeKeys(t *testing.T) {
	// "&b" would be read as a colour code.
	doc := NewDocument()
	doc.SetEscapes(NoColorEscapes)
	require.NoError(t, doc.LoadString(`base: &base
  host: localhost
  port: 1
prod:
  <<: *base
  port: 2
`))

	assert.Equal(t, "localhost", doc.GetString("prod.host", ""))
	assert.Equal(t, 2, doc.GetInt("prod.port", 0))
	assert.Equal(t, []string{"host", "port"}, doc.Section("prod").Keys())
}
