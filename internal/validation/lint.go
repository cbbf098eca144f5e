// Package validation checks configuration files for content that will not
// survive a load and save cycle unchanged.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/nauticalab/confstore/pkg/config"
)

// Error and warning types reported by the Linter.
const (
	TypeUnreadable      = "unreadable"
	TypeSeparatorInKey  = "separator_in_key"
	TypeOrphanHeader    = "orphan_header"
	TypeMultilineString = "multiline_string"
	TypeNoConfigs       = "no_configs"
)

// LintResult contains all lint results
type LintResult struct {
	// Errors is a list of problems that make part of the file unusable
	Errors []LintError
	// Warnings is a list of content that will be rewritten on save
	Warnings []LintWarning
	// IsValid indicates if the lint passed (no errors)
	IsValid bool
}

// LintError represents a lint failure
type LintError struct {
	// Type is the category of error (e.g., "unreadable", "separator_in_key")
	Type string
	// Key is the dotted path involved in the error (if applicable)
	Key string
	// Message is a human-readable error description
	Message string
	// FilePath is the path to the configuration file causing the error
	FilePath string
}

// LintWarning represents a non-fatal lint issue
type LintWarning struct {
	// Type is the category of warning
	Type string
	// Key is the dotted path the warning is about (if applicable)
	Key string
	// Message is a human-readable warning description
	Message string
	// FilePath is the path to the configuration file
	FilePath string
}

// Linter checks configuration files.
type Linter struct {
	opts []config.Option
}

// NewLinter creates a linter. The options are used to open every file, so
// a custom escape table changes what the linter sees.
func NewLinter(opts ...config.Option) *Linter {
	return &Linter{opts: opts}
}

func newResult() *LintResult {
	return &LintResult{
		Errors:   []LintError{},
		Warnings: []LintWarning{},
		IsValid:  true,
	}
}

func (r *LintResult) addError(e LintError) {
	r.Errors = append(r.Errors, e)
	r.IsValid = false
}

func (r *LintResult) merge(other *LintResult) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.IsValid = r.IsValid && other.IsValid
}

// LintFile loads the file at path and checks it. The returned error is only
// set when the file cannot be opened with the linter's options; problems
// with the file content end up in the result.
func (l *Linter) LintFile(path string) (*LintResult, error) {
	var loadErr error
	opts := append(slices.Clone(l.opts), config.WithReporter(config.ReporterFunc(func(e config.Event) {
		if e.Kind == config.EventLoadFailed {
			loadErr = e.Err
		}
	})))

	f, err := config.NewFile(path, opts...)
	if err != nil {
		return nil, err
	}

	result := newResult()
	if _, err := os.Stat(path); err != nil {
		result.addError(LintError{
			Type:     TypeUnreadable,
			Message:  fmt.Sprintf("Cannot read file: %v", err),
			FilePath: path,
		})
		return result, nil
	}

	f.Load()
	if loadErr != nil {
		result.addError(LintError{
			Type:     TypeUnreadable,
			Message:  fmt.Sprintf("Failed to load config: %v", loadErr),
			FilePath: path,
		})
		return result, nil
	}

	result.merge(l.LintDocument(f.Document, path))
	return result, nil
}

// LintDocument checks a loaded document. filePath is only used to label
// the findings.
func (l *Linter) LintDocument(doc *config.Document, filePath string) *LintResult {
	result := newResult()

	lintNode(doc.Node, "", filePath, result)

	for _, path := range doc.OrphanHeaders() {
		result.Warnings = append(result.Warnings, LintWarning{
			Type:     TypeOrphanHeader,
			Key:      path,
			Message:  fmt.Sprintf("Header of %s has no value and will not be written", path),
			FilePath: filePath,
		})
	}

	return result
}

func lintNode(n *config.Node, prefix, filePath string, result *LintResult) {
	for _, key := range n.Keys() {
		path := config.JoinPath(prefix, key)
		if strings.Contains(key, config.PathSeparator) {
			result.Warnings = append(result.Warnings, LintWarning{
				Type:     TypeSeparatorInKey,
				Key:      path,
				Message:  fmt.Sprintf("Key %q contains %q; address it as %s", key, config.PathSeparator, path),
				FilePath: filePath,
			})
		}

		v, _ := n.Child(key)
		switch v := v.(type) {
		case *config.Node:
			lintNode(v, path, filePath, result)
		case string:
			if strings.Contains(v, "\n") {
				result.Warnings = append(result.Warnings, LintWarning{
					Type:     TypeMultilineString,
					Key:      path,
					Message:  fmt.Sprintf("Value of %s spans several lines and will be saved as a list", path),
					FilePath: filePath,
				})
			}
		}
	}
}

// LintDir checks every .yml and .yaml file directly inside dir.
func (l *Linter) LintDir(dir string) (*LintResult, error) {
	files, err := findConfigFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan configuration files in %s: %w", dir, err)
	}

	result := newResult()
	if len(files) == 0 {
		result.Warnings = append(result.Warnings, LintWarning{
			Type:    TypeNoConfigs,
			Message: fmt.Sprintf("No configuration files found in %s", dir),
		})
		return result, nil
	}

	for _, path := range files {
		fileResult, err := l.LintFile(path)
		if err != nil {
			return nil, err
		}
		result.merge(fileResult)
	}
	return result, nil
}

func findConfigFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".yml", ".yaml":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}
