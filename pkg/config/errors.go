package config

import "errors"

var (
	// ErrNotMapping is returned when a document's root is not a mapping.
	ErrNotMapping = errors.New("document root is not a mapping")

	// ErrInvalidPath is returned for empty paths or paths with empty segments.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidIndent is returned when an indentation width is out of range.
	ErrInvalidIndent = errors.New("invalid indent")
)
