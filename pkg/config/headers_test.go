package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderBlock(t *testing.T) {
	t.Run("joins comment lines", func(t *testing.T) {
		var block HeaderBlock
		assert.False(t, block.HasHeader())

		assert.True(t, block.Handle(ClassifyLine("# first")))
		assert.True(t, block.Handle(ClassifyLine("  #second")))
		assert.True(t, block.HasHeader())
		assert.Equal(t, "first\nsecond", block.Header())
	})

	t.Run("key line is not consumed", func(t *testing.T) {
		var block HeaderBlock
		block.Handle(ClassifyLine("# text"))
		assert.False(t, block.Handle(ClassifyLine("key: 1")))
		assert.Equal(t, "text", block.Header())
	})

	t.Run("blank comment lines become empty segments", func(t *testing.T) {
		var block HeaderBlock
		for _, raw := range []string{"# one", "#", "# two"} {
			block.Handle(ClassifyLine(raw))
		}
		assert.Equal(t, "one\n\ntwo", block.Header())
	})

	t.Run("blank lines inside a block are kept, trailing ones dropped", func(t *testing.T) {
		var block HeaderBlock
		assert.False(t, block.Handle(ClassifyLine("")), "blank line before any comment")

		for _, raw := range []string{"# one", "", "# two", "", ""} {
			assert.True(t, block.Handle(ClassifyLine(raw)), raw)
		}
		assert.Equal(t, "one\n\ntwo", block.Header())
	})

	t.Run("clear resets", func(t *testing.T) {
		var block HeaderBlock
		block.Handle(ClassifyLine("# one"))
		block.Handle(ClassifyLine(""))
		block.Clear()

		assert.False(t, block.HasHeader())
		block.Handle(ClassifyLine("# two"))
		assert.Equal(t, "two", block.Header())
	})
}

func TestHeaderStore(t *testing.T) {
	store := NewHeaderStore()

	store.Set("", "document")
	store.Set("b.c", "node")
	store.Set("a", "first")

	text, ok := store.Get("b.c")
	require.True(t, ok)
	assert.Equal(t, "node", text)

	_, ok = store.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"", "a", "b.c"}, store.Paths())
	assert.Equal(t, 3, store.Len())

	t.Run("empty text removes", func(t *testing.T) {
		s := store.Clone()
		s.Set("a", "")
		_, ok := s.Get("a")
		assert.False(t, ok)
		assert.Equal(t, 3, store.Len(), "clone is independent")
	})

	t.Run("add appends lines", func(t *testing.T) {
		s := NewHeaderStore()
		s.Add("x", "one")
		s.Add("x", "two")
		text, _ := s.Get("x")
		assert.Equal(t, "one\ntwo", text)

		s.Add("y", "")
		assert.Equal(t, 1, s.Len())
	})

	t.Run("remove and clear", func(t *testing.T) {
		s := store.Clone()
		s.Remove("b.c")
		assert.Equal(t, []string{"", "a"}, s.Paths())
		s.Clear()
		assert.Equal(t, 0, s.Len())
	})
}
