package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Package-level validator used by Settings.Validate.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Settings holds the construction parameters of a File.
type Settings struct {
	Path     string      `validate:"required"`
	Indent   int         `validate:"min=2,max=9"`
	Reporter Reporter    `validate:"required"`
	Escapes  EscapeTable `validate:"-"`
}

// Option configures a File.
type Option func(*Settings)

// WithReporter sets the sink for load, save and generation events.
func WithReporter(r Reporter) Option {
	return func(s *Settings) {
		s.Reporter = r
	}
}

// WithIndent sets the indentation width of nested nodes.
func WithIndent(width int) Option {
	return func(s *Settings) {
		s.Indent = width
	}
}

// WithEscapes replaces the escape table.
func WithEscapes(t EscapeTable) Option {
	return func(s *Settings) {
		s.Escapes = t
	}
}

func defaultSettings(path string) Settings {
	return Settings{
		Path:     path,
		Indent:   DefaultIndent,
		Reporter: NewSlogReporter(nil),
		Escapes:  DefaultEscapes,
	}
}

// Validate checks the settings.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}
