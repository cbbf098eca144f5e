package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects reported events.
type recorder struct {
	events []Event
}

func (r *recorder) Report(e Event) {
	r.events = append(r.events, e)
}

func (r *recorder) count(kind EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func newTestFile(t *testing.T, path string) (*File, *recorder) {
	t.Helper()
	rec := &recorder{}
	f, err := NewFile(path, WithReporter(rec))
	require.NoError(t, err)
	return f, rec
}

func TestFile_LoadMissingFile(t *testing.T) {
	f, rec := newTestFile(t, filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, f.Set("stale", 1))

	assert.False(t, f.Exists())
	f.Load()

	assert.NoError(t, f.Err())
	assert.Equal(t, 0, f.Len())
	assert.Empty(t, rec.events)
}

func TestFile_SaveReportsGeneratedOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yml")
	f, rec := newTestFile(t, path)

	f.SetHeader("Generated config")
	assert.Equal(t, 10, f.GetInt("shop.price", 10))
	f.SetNodeHeader("shop.price", "Price of one item")

	f.Save()
	require.NoError(t, f.Err())
	assert.True(t, f.Exists())
	assert.Equal(t, 1, rec.count(EventGenerated))

	f.Save()
	require.NoError(t, f.Err())
	assert.Equal(t, 1, rec.count(EventGenerated), "second save does not report again")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#> Generated config\n\nshop:\n  # Price of one item\n  price: 10\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestFile_LoadAfterSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	f, _ := newTestFile(t, path)
	require.NoError(t, f.Set("a.b", "value"))
	f.SetNodeHeader("a.b", "header of b")
	f.Save()
	require.NoError(t, f.Err())

	g, rec := newTestFile(t, path)
	g.Load()
	require.NoError(t, g.Err())
	assert.Empty(t, rec.events)
	assert.Equal(t, "value", g.GetString("a.b", ""))
	assert.Equal(t, "header of b", g.NodeHeader("a.b"))
}

func TestFile_LoadFailureIsReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yml")
	require.NoError(t, os.WriteFile(path, []byte("# kept\nkey: [oops\n"), 0o644))

	f, rec := newTestFile(t, path)
	f.Load()

	require.Error(t, f.Err())
	assert.Contains(t, f.Err().Error(), path)
	require.Len(t, rec.events, 1)
	assert.Equal(t, EventLoadFailed, rec.events[0].Kind)
	assert.Equal(t, path, rec.events[0].Path)
	assert.Equal(t, "kept", f.NodeHeader("key"), "partial state is kept")
}

func TestFile_SaveFailureIsReported(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	f, rec := newTestFile(t, filepath.Join(blocker, "config.yml"))
	require.NoError(t, f.Set("a", 1))
	f.Save()

	require.Error(t, f.Err())
	require.Len(t, rec.events, 1)
	assert.Equal(t, EventSaveFailed, rec.events[0].Kind)
}

func TestFile_SaveKeepsFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\n"), 0o600))

	f, rec := newTestFile(t, path)
	f.Load()
	require.NoError(t, f.Set("b", 2))
	f.Save()
	require.NoError(t, f.Err())
	assert.Zero(t, rec.count(EventGenerated))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestNewFileIn(t *testing.T) {
	base := t.TempDir()

	f, err := NewFileIn(base, "plugins/shop.yml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "plugins", "shop.yml"), f.Path())

	abs := filepath.Join(t.TempDir(), "abs.yml")
	f, err = NewFileIn(base, abs)
	require.NoError(t, err)
	assert.Equal(t, abs, f.Path())
}

func TestNewFile_Options(t *testing.T) {
	t.Run("indent", func(t *testing.T) {
		f, err := NewFile("x.yml", WithIndent(4))
		require.NoError(t, err)
		assert.Equal(t, 4, f.Indent())
	})

	t.Run("invalid indent", func(t *testing.T) {
		_, err := NewFile("x.yml", WithIndent(12))
		assert.Error(t, err)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := NewFile("")
		assert.Error(t, err)
	})

	t.Run("nil reporter", func(t *testing.T) {
		_, err := NewFile("x.yml", WithReporter(nil))
		assert.Error(t, err)
	})

	t.Run("escapes", func(t *testing.T) {
		f, err := NewFile("x.yml", WithEscapes(NoColorEscapes))
		require.NoError(t, err)
		require.NoError(t, f.LoadString("msg: '&aHi'\n"))
		assert.Equal(t, "&aHi", f.GetString("msg", ""))
	})
}

func TestSlogReporter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	path := filepath.Join(t.TempDir(), "config.yml")
	f, err := NewFile(path, WithReporter(NewSlogReporter(logger)))
	require.NoError(t, err)
	require.NoError(t, f.Set("a", 1))
	f.Save()

	assert.Contains(t, buf.String(), "configuration generated")
	assert.Contains(t, buf.String(), path)
}

func TestReporterFunc(t *testing.T) {
	var got []EventKind
	r := ReporterFunc(func(e Event) { got = append(got, e.Kind) })
	r.Report(Event{Kind: EventSaveFailed})
	NopReporter.Report(Event{Kind: EventSaveFailed})

	assert.Equal(t, []EventKind{EventSaveFailed}, got)
	assert.Equal(t, "save-failed", EventSaveFailed.String())
}
