package config

import "errors"

// Configuration errors.
// Validate and Resolve return these (possibly wrapped) so callers can use errors.Is.
var (
	// ErrNoInput is returned when no input directory is specified.
	ErrNoInput = errors.New("no input directory specified")

	// ErrEmptyOutput is returned when the output directory is set to an empty string.
	ErrEmptyOutput = errors.New("invalid output directory: must not be empty")

	// ErrConflictingManifestFormats is returned when both --json and --markdown
	// are specified. Only one manifest format can be used at a time.
	ErrConflictingManifestFormats = errors.New("conflicting manifest formats: --json and --markdown cannot be used together")

	// ErrInvalidInput is returned when the input path does not exist or is not a directory.
	ErrInvalidInput = errors.New("invalid input")
)
