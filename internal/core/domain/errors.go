package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMissingRequired indicates a record's front matter is missing
	// one or more required keys. Fatal for the record's source.
	ErrMissingRequired = errors.New("missing required front matter fields")

	// ErrMissingSourcePathMapping indicates the source configuration has
	// no sourcePath mapping expression.
	ErrMissingSourcePathMapping = errors.New("missing mapping.sourcePath")

	// ErrEmptySourcePath indicates the sourcePath mapping resolved to an
	// empty or non-string value for a record.
	ErrEmptySourcePath = errors.New("sourcePath mapping returned empty value")

	// ErrInvalidOutputTemplate indicates the export file name template
	// resolved to an unusable value.
	ErrInvalidOutputTemplate = errors.New("invalid output file name template")

	// ErrPathEscapesOutputDir indicates a resolved export path would
	// land outside the configured output directory.
	ErrPathEscapesOutputDir = errors.New("export path escapes output directory")

	// ErrStopTraversal is a sentinel returned by item handlers to stop
	// a page traversal early without reporting a failure.
	ErrStopTraversal = errors.New("stop traversal")
)
