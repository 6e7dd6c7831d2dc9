package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrUnresolvedReference indicates a base, group or attribute-group
	// reference naming nothing in the schema.
	ErrUnresolvedReference = errors.New("xsdgen: unresolved reference")
	// ErrCyclicReference indicates a group, attribute-group or base type
	// that includes itself.
	ErrCyclicReference = errors.New("xsdgen: cyclic reference")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("xsdgen: missing configuration")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("xsdgen: code generation failed")
)

// RefKind names the kind of reference a ResolveError is about.
type RefKind string

// Reference kinds.
const (
	RefBase           RefKind = "base type"
	RefGroup          RefKind = "group"
	RefAttributeGroup RefKind = "attribute group"
)

// ResolveError reports a reference that names no known entity.
type ResolveError struct {
	Owner string // struct holding the reference
	Ref   string
	Kind  RefKind
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	return fmt.Sprintf("xsdgen: %s %q referenced by %s is not defined", e.Kind, e.Ref, e.Owner)
}

// Is reports whether the target matches the sentinel error for ResolveError.
func (e *ResolveError) Is(target error) bool {
	return target == ErrUnresolvedReference
}

// NewResolveError creates a new ResolveError.
func NewResolveError(owner, ref string, kind RefKind) *ResolveError {
	return &ResolveError{Owner: owner, Ref: ref, Kind: kind}
}

// CycleError reports a reference cycle. Path starts and ends with the same
// name.
type CycleError struct {
	Kind RefKind
	Path []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("xsdgen: %s cycle: %s", e.Kind, strings.Join(e.Path, " -> "))
}

// Is reports whether the target matches the sentinel error for CycleError.
func (e *CycleError) Is(target error) bool {
	return target == ErrCyclicReference
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("xsdgen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("xsdgen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// GenerationError represents a code generation error.
type GenerationError struct {
	Entity  string
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("xsdgen: generation error")
	if e.Entity != "" {
		b.WriteString(" for ")
		b.WriteString(e.Entity)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(entity, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Entity:  entity,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// AggregateError represents multiple errors collected during resolution.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "xsdgen: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("xsdgen: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// Unwrap returns the collected errors.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// NewAggregateError returns a new AggregateError if there are errors,
// otherwise returns nil. A single error is returned as is.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	switch len(filtered) {
	case 0:
		return nil
	case 1:
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}

// IsResolveError reports whether the error is a ResolveError.
func IsResolveError(err error) bool {
	var resolveErr *ResolveError
	return errors.As(err, &resolveErr)
}

// IsCycleError reports whether the error is a CycleError.
func IsCycleError(err error) bool {
	var cycleErr *CycleError
	return errors.As(err, &cycleErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
