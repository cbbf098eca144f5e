package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{key: "plain", want: "plain"},
		{key: "a.b", want: `a\.b`},
		{key: `c:\dir`, want: `c:\\dir`},
		{key: `x\.y`, want: `x\\\.y`},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeKey(tt.key))
			assert.Equal(t, []string{tt.key}, SplitPath(EscapeKey(tt.key)))
		})
	}
}

func TestSplitPath(t *testing.T) {
	assert.Nil(t, SplitPath(""))
	assert.Equal(t, []string{"a", "b", "c"}, SplitPath("a.b.c"))
	assert.Equal(t, []string{"a.b", "c"}, SplitPath(`a\.b.c`))
	assert.Equal(t, []string{"a", `b\`, "c"}, SplitPath(`a.b\\.c`))
	assert.Equal(t, []string{"a", ""}, SplitPath("a."))
	// A trailing escape has nothing to escape and is kept.
	assert.Equal(t, []string{`a\`}, SplitPath(`a\`))
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "a", JoinPath("", "a"))
	assert.Equal(t, "a.b", JoinPath("a", "b"))
	assert.Equal(t, `a.b\.c`, JoinPath("a", "b.c"))
	assert.Equal(t, []string{"a", "b.c"}, SplitPath(JoinPath("a", "b.c")))
}

func TestCheckPath(t *testing.T) {
	assert.NoError(t, checkPath("a.b"))
	assert.NoError(t, checkPath(`a\.b`))
	assert.ErrorIs(t, checkPath(""), ErrInvalidPath)
	assert.ErrorIs(t, checkPath("a..b"), ErrInvalidPath)
	assert.ErrorIs(t, checkPath(".a"), ErrInvalidPath)
}
