package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/nauticalab/confstore/internal/validation"
	"github.com/nauticalab/confstore/pkg/config"
)

// ErrLintFailed is returned by RunLint when the lint found errors.
var ErrLintFailed = errors.New("lint failed")

// LintOptions holds configuration for the lint command
type LintOptions struct {
	// Dir lints every configuration file in a directory instead of Options.File
	Dir string
}

// RunLint lints the configured file, or every file in lopts.Dir.
func RunLint(opts Options, lopts LintOptions) error {
	var linterOpts []config.Option
	if opts.Indent != 0 {
		linterOpts = append(linterOpts, config.WithIndent(opts.Indent))
	}
	linter := validation.NewLinter(linterOpts...)

	var (
		result *validation.LintResult
		err    error
		target string
	)
	if lopts.Dir != "" {
		target = lopts.Dir
		fmt.Fprintf(opts.out(), "🔍 Linting configuration files in %s...\n", target)
		result, err = linter.LintDir(lopts.Dir)
	} else {
		if opts.File == "" {
			return fmt.Errorf("no configuration file given")
		}
		f, ferr := config.NewFileIn(opts.BaseDir, opts.File)
		if ferr != nil {
			return ferr
		}
		target = f.Path()
		fmt.Fprintf(opts.out(), "🔍 Linting %s...\n", target)
		result, err = linter.LintFile(target)
	}
	if err != nil {
		return fmt.Errorf("lint of %s failed: %w", target, err)
	}

	printLintResult(opts.out(), result, opts.Verbose)

	if !result.IsValid {
		return ErrLintFailed
	}
	return nil
}

// printLintResult prints the lint results in a user-friendly format
func printLintResult(w io.Writer, result *validation.LintResult, verbose bool) {
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "⚠️  Warning: %s\n", warning.Message)
		if warning.FilePath != "" && verbose {
			fmt.Fprintf(w, "   File: %s\n", warning.FilePath)
		}
	}

	for _, err := range result.Errors {
		switch err.Type {
		case validation.TypeUnreadable:
			fmt.Fprintf(w, "❌ Configuration Error: %s\n", err.Message)
		default:
			fmt.Fprintf(w, "❌ Error: %s\n", err.Message)
		}
		if verbose && err.FilePath != "" {
			fmt.Fprintf(w, "   File: %s\n", err.FilePath)
		}
	}

	switch {
	case len(result.Errors) == 0 && len(result.Warnings) == 0:
		fmt.Fprintln(w, "✅ Configuration is clean!")
	case result.IsValid:
		fmt.Fprintf(w, "✅ Configuration is valid (%d warnings)\n", len(result.Warnings))
	default:
		fmt.Fprintf(w, "❌ Lint failed with %d errors and %d warnings\n", len(result.Errors), len(result.Warnings))
	}
}
