// Package cli implements the confstore commands on top of pkg/config.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nauticalab/confstore/pkg/config"
)

// ErrNotFound is returned when a command addresses a path without a value.
var ErrNotFound = errors.New("not found")

// Options holds the settings shared by every command
type Options struct {
	// File is the configuration file, relative to BaseDir unless absolute
	File    string
	BaseDir string
	Indent  int
	Verbose bool
	// Reporter receives file events; nil discards them
	Reporter config.Reporter
	// Out receives command output; nil means os.Stdout
	Out io.Writer
}

func (o Options) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

// OpenFile creates the configured file and loads it. A missing file is not
// an error.
func OpenFile(opts Options) (*config.File, error) {
	if opts.File == "" {
		return nil, fmt.Errorf("no configuration file given")
	}

	fileOpts := []config.Option{}
	if opts.Reporter != nil {
		fileOpts = append(fileOpts, config.WithReporter(opts.Reporter))
	} else {
		fileOpts = append(fileOpts, config.WithReporter(config.NopReporter))
	}
	if opts.Indent != 0 {
		fileOpts = append(fileOpts, config.WithIndent(opts.Indent))
	}

	f, err := config.NewFileIn(opts.BaseDir, opts.File, fileOpts...)
	if err != nil {
		return nil, err
	}
	f.Load()
	if err := f.Err(); err != nil {
		return nil, err
	}
	return f, nil
}

func save(f *config.File, opts Options) error {
	f.Save()
	if err := f.Err(); err != nil {
		return err
	}
	if opts.Verbose {
		fmt.Fprintf(opts.out(), "Saved %s\n", f.Path())
	}
	return nil
}

// RunGet prints the value at path. Sections are printed as YAML with their
// headers, lists as YAML and scalars as plain text.
func RunGet(opts Options, path string) error {
	f, err := OpenFile(opts)
	if err != nil {
		return err
	}

	v, ok := f.Get(path)
	if !ok {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}

	text, err := formatValue(f.Document, path, v)
	if err != nil {
		return err
	}
	fmt.Fprint(opts.out(), text)
	return nil
}

func formatValue(doc *config.Document, path string, v any) (string, error) {
	switch val := v.(type) {
	case *config.Node:
		section := config.NewDocument()
		section.Node = val.Clone()
		if err := section.SetIndent(doc.Indent()); err != nil {
			return "", err
		}
		prefix := path + config.PathSeparator
		for _, p := range doc.Headers().Paths() {
			if rel, ok := strings.CutPrefix(p, prefix); ok {
				section.SetNodeHeader(rel, doc.NodeHeader(p))
			}
		}
		return section.SaveString()
	case []any:
		data, err := yaml.Marshal(config.Plain(val))
		if err != nil {
			return "", fmt.Errorf("failed to format %s: %w", path, err)
		}
		return string(data), nil
	}
	return fmt.Sprintln(v), nil
}

// RunSet parses raw as a YAML value, stores it at path and saves the file.
func RunSet(opts Options, path, raw string) error {
	value, err := config.ParseValue(raw)
	if err != nil {
		return fmt.Errorf("failed to parse value %q: %w", raw, err)
	}
	if value == nil {
		return fmt.Errorf("empty value for %s; use unset to remove it", path)
	}

	f, err := OpenFile(opts)
	if err != nil {
		return err
	}
	if err := f.Set(path, value); err != nil {
		return err
	}
	return save(f, opts)
}

// RunUnset removes the value at path and saves the file. The saved file
// loses the header of the path too.
func RunUnset(opts Options, path string) error {
	f, err := OpenFile(opts)
	if err != nil {
		return err
	}
	if !f.Remove(path) {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return save(f, opts)
}

// RunKeys prints the top-level keys, or every path when deep is set.
func RunKeys(opts Options, deep bool) error {
	f, err := OpenFile(opts)
	if err != nil {
		return err
	}
	for _, key := range f.AllKeys(deep) {
		fmt.Fprintln(opts.out(), key)
	}
	return nil
}

// HeaderOptions selects what RunHeader does
type HeaderOptions struct {
	// Path is the key the header belongs to; empty means the document header
	Path string
	// Text replaces the header when set
	Text string
	// Remove deletes the header
	Remove bool
}

// RunHeader prints, sets or removes a header. Changes are saved.
func RunHeader(opts Options, hopts HeaderOptions) error {
	f, err := OpenFile(opts)
	if err != nil {
		return err
	}

	switch {
	case hopts.Remove:
		f.RemoveHeader(hopts.Path)
		return save(f, opts)
	case hopts.Text != "":
		if hopts.Path == "" {
			f.SetHeader(hopts.Text)
		} else {
			f.SetNodeHeader(hopts.Path, hopts.Text)
		}
		return save(f, opts)
	}

	text, ok := f.Headers().Get(hopts.Path)
	if !ok {
		return fmt.Errorf("header of %q: %w", hopts.Path, ErrNotFound)
	}
	fmt.Fprintln(opts.out(), text)
	return nil
}

// RunFmt loads and saves the file, which normalizes its layout. An indent
// other than zero replaces the configured one.
func RunFmt(opts Options, indent int) error {
	f, err := OpenFile(opts)
	if err != nil {
		return err
	}
	if indent != 0 {
		if err := f.SetIndent(indent); err != nil {
			return err
		}
	}
	if !f.Exists() && f.Len() == 0 {
		return fmt.Errorf("%s: %w", f.Path(), ErrNotFound)
	}
	return save(f, opts)
}
