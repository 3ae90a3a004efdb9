package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrSchema indicates a structural or type violation in a pipeline
	// configuration document.
	ErrSchema = errors.New("schema error")

	// ErrPath indicates a referenced dataset or image path is missing or
	// unreadable.
	ErrPath = errors.New("path error")

	// ErrRegistry indicates a named backbone, metric, or transform could not
	// be resolved.
	ErrRegistry = errors.New("registry error")

	// ErrNotFound indicates a file or resource was not found.
	ErrNotFound = errors.New("not found")
)
