// Package errors provides sentinel errors for the tabrec CLI.
package errors

import (
	"fmt"
	"strings"
)

// DetailError captures structured error information for user-facing output.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file path (optional).
	Location string

	// Field is the dotted field path for schema errors (optional).
	Field string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	if e.Field != "" {
		b.WriteString("  Field: ")
		b.WriteString(e.Field)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewSchemaError creates a schema error for the given field path.
func NewSchemaError(field, message string) error {
	return &DetailError{
		Type:    "schema violation",
		Message: message,
		Field:   field,
		Cause:   ErrSchema,
	}
}

// NewPathError creates a path error for a missing or unreadable resource.
func NewPathError(field, location, message string) error {
	return &DetailError{
		Type:     "path not usable",
		Message:  message,
		Location: location,
		Field:    field,
		Cause:    ErrPath,
	}
}

// NewRegistryError creates a registry resolution error.
// valid lists the known entries and is rendered as a hint.
func NewRegistryError(field, name string, valid []string) error {
	return &DetailError{
		Type:    "unknown registry entry",
		Message: fmt.Sprintf("%q is not registered", name),
		Field:   field,
		Hint:    "Valid entries: " + strings.Join(valid, ", "),
		Cause:   ErrRegistry,
	}
}

// Wrap wraps a sentinel error with a contextual message.
func Wrap(sentinel error, msg string) error {
	return fmt.Errorf("%s: %w", msg, sentinel)
}
