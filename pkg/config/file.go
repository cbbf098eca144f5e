package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File is a Document bound to a path on disk.
//
// Load and Save perform the full I/O every time and never return an error:
// a missing file loads as an empty document, and every other failure is
// passed to the Reporter. Err returns the failure of the last call for
// callers that need to act on it. A File must not be used concurrently.
type File struct {
	*Document

	path     string
	reporter Reporter
	err      error
}

// NewFile creates a File for path.
func NewFile(path string, opts ...Option) (*File, error) {
	settings := defaultSettings(path)
	for _, opt := range opts {
		opt(&settings)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	doc := NewDocument()
	doc.indent = settings.Indent
	doc.escapes = settings.Escapes

	return &File{
		Document: doc,
		path:     settings.Path,
		reporter: settings.Reporter,
	}, nil
}

// NewFileIn creates a File for name, resolved against baseDir unless name is
// already absolute.
func NewFileIn(baseDir, name string, opts ...Option) (*File, error) {
	if !filepath.IsAbs(name) {
		name = filepath.Join(baseDir, name)
	}
	return NewFile(name, opts...)
}

// Path returns the file location.
func (f *File) Path() string {
	return f.path
}

// Exists reports whether the file is present on disk.
func (f *File) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// Err returns the failure of the last Load or Save, or nil.
func (f *File) Err() error {
	return f.err
}

// Load reads the file into the document. A missing file leaves an empty
// value tree. On any other failure the document keeps whatever was read
// before the failure and an EventLoadFailed is reported.
func (f *File) Load() {
	f.err = f.load()
	if f.err != nil {
		f.reporter.Report(Event{Kind: EventLoadFailed, Path: f.path, Err: f.err})
	}
}

func (f *File) load() error {
	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		f.Node.Clear()
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open configuration file %s: %w", f.path, err)
	}
	defer file.Close()

	if err := f.Decode(file); err != nil {
		return fmt.Errorf("failed to load configuration file %s: %w", f.path, err)
	}
	return nil
}

// Save writes the document to the file, creating parent directories as
// needed. The content is written to a temporary file next to the target
// and renamed over it, so a failed save leaves the previous file intact.
// Saving a file that did not exist reports EventGenerated.
func (f *File) Save() {
	generated := !f.Exists()

	f.err = f.save()
	if f.err != nil {
		f.reporter.Report(Event{Kind: EventSaveFailed, Path: f.path, Err: f.err})
		return
	}
	if generated {
		f.reporter.Report(Event{Kind: EventGenerated, Path: f.path})
	}
}

func (f *File) save() (err error) {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(f.path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := f.Encode(tmp); err != nil {
		return fmt.Errorf("failed to save configuration file %s: %w", f.path, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return fmt.Errorf("failed to set mode of %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace configuration file %s: %w", f.path, err)
	}
	return nil
}
