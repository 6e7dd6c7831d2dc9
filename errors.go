package xsdgen

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors returned by decode routines.
var (
	// ErrNotFound is returned when a requested child, attribute or value
	// does not exist at the cursor position.
	ErrNotFound = errors.New("xsdgen: node not found")

	// ErrNoUniqueMatch is returned when an enum decode finds zero or
	// more than one matching case.
	ErrNoUniqueMatch = errors.New("xsdgen: no unique match")

	// ErrShapeMismatch is returned when a node exists but its content does
	// not have the expected shape (literal mismatch, unparsable value).
	ErrShapeMismatch = errors.New("xsdgen: shape mismatch")
)

// NotFoundError represents an error when a child element, an attribute or a
// leaf value is not found.
type NotFoundError struct {
	kind string // "child", "attribute" or "value"
	name string
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	if e.name != "" {
		return fmt.Sprintf("xsdgen: %s %q not found", e.kind, e.name)
	}
	return fmt.Sprintf("xsdgen: %s not found", e.kind)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(notFoundErr, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Kind returns the kind of node that was searched for.
func (e *NotFoundError) Kind() string {
	return e.kind
}

// Name returns the name that was searched for.
func (e *NotFoundError) Name() string {
	return e.name
}

// NewNotFoundError returns a new NotFoundError for the given node kind and name.
func NewNotFoundError(kind, name string) *NotFoundError {
	return &NotFoundError{kind: kind, name: name}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// NoUniqueMatchError represents an enum decode that did not resolve to
// exactly one case.
type NoUniqueMatchError struct {
	enum    string
	matches []string // names of the matching cases, empty when none matched
}

// Error returns the error string.
func (e *NoUniqueMatchError) Error() string {
	if len(e.matches) == 0 {
		return fmt.Sprintf("xsdgen: %s: no unique match (got 0 matches, expected 1)", e.enum)
	}
	return fmt.Sprintf("xsdgen: %s: no unique match (got %d matches, expected 1): %s",
		e.enum, len(e.matches), strings.Join(e.matches, ", "))
}

// Is reports whether the target error matches NoUniqueMatchError.
func (e *NoUniqueMatchError) Is(err error) bool {
	return err == ErrNoUniqueMatch
}

// Enum returns the enum name.
func (e *NoUniqueMatchError) Enum() string {
	return e.enum
}

// Count returns the number of matching cases.
func (e *NoUniqueMatchError) Count() int {
	return len(e.matches)
}

// Matches returns the names of the matching cases.
func (e *NoUniqueMatchError) Matches() []string {
	return e.matches
}

// NewNoUniqueMatchError returns a new NoUniqueMatchError for the given enum.
func NewNoUniqueMatchError(enum string, matches ...string) *NoUniqueMatchError {
	return &NoUniqueMatchError{enum: enum, matches: matches}
}

// IsNoUniqueMatch returns true if the error is a NoUniqueMatchError.
func IsNoUniqueMatch(err error) bool {
	if err == nil {
		return false
	}
	var e *NoUniqueMatchError
	return errors.As(err, &e) || errors.Is(err, ErrNoUniqueMatch)
}

// ShapeError represents a node whose content does not have the expected shape.
type ShapeError struct {
	Expected string // Expected literal or type
	Got      string // Raw value found
	Err      error  // Underlying parse error, if any
}

// Error returns the error string.
func (e *ShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("xsdgen: cannot read %q as %s: %v", e.Got, e.Expected, e.Err)
	}
	return fmt.Sprintf("xsdgen: expected %q, got %q", e.Expected, e.Got)
}

// Unwrap returns the underlying error.
func (e *ShapeError) Unwrap() error {
	return e.Err
}

// Is reports whether the target error matches ShapeError.
func (e *ShapeError) Is(err error) bool {
	return err == ErrShapeMismatch
}

// NewShapeError returns a new ShapeError.
func NewShapeError(expected, got string, err error) *ShapeError {
	return &ShapeError{Expected: expected, Got: got, Err: err}
}

// IsShapeMismatch returns true if the error is a ShapeError.
func IsShapeMismatch(err error) bool {
	if err == nil {
		return false
	}
	var e *ShapeError
	return errors.As(err, &e) || errors.Is(err, ErrShapeMismatch)
}

// DecodeError wraps a decode failure with the type and field being read.
type DecodeError struct {
	Type  string // Generated type name
	Field string // XML name of the field (empty for whole-type failures)
	Err   error  // Underlying error
}

// Error returns the error string.
func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("xsdgen: decoding %s.%s: %v", e.Type, e.Field, e.Err)
	}
	return fmt.Sprintf("xsdgen: decoding %s: %v", e.Type, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// FieldError returns a new DecodeError for the given type and field.
// Generated decode routines use it to report which field failed.
func FieldError(typ, field string, err error) error {
	return &DecodeError{Type: typ, Field: field, Err: err}
}

// IsDecodeError returns true if the error is a DecodeError.
func IsDecodeError(err error) bool {
	if err == nil {
		return false
	}
	var e *DecodeError
	return errors.As(err, &e)
}
