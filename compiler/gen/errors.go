package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidSchema indicates a type definition error.
	ErrInvalidSchema = errors.New("modelgen: invalid schema")
	// ErrUnresolvedReference indicates a relationship to a type missing from the registry.
	ErrUnresolvedReference = errors.New("modelgen: unresolved reference")
	// ErrMissingArgument indicates an annotation used without its literal argument.
	ErrMissingArgument = errors.New("modelgen: missing annotation argument")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("modelgen: missing configuration")
	// ErrGenerationFailed indicates a rendering or writing failure.
	ErrGenerationFailed = errors.New("modelgen: code generation failed")
)

// SchemaError represents a type definition error.
type SchemaError struct {
	Type    string // Type name as declared
	Field   string // Field name (if applicable)
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("modelgen: schema error")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
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
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(typeName, fieldName, message string, cause error) *SchemaError {
	return &SchemaError{
		Type:    typeName,
		Field:   fieldName,
		Message: message,
		Cause:   cause,
	}
}

// EdgeError reports a relationship field whose referenced type
// could not be found, neither by its exact name nor by its plural.
type EdgeError struct {
	From  string // Declaring type
	To    string // Referenced type name as declared on the field
	Edge  string // Field name
	Tried []string
}

// Error implements the error interface.
func (e *EdgeError) Error() string {
	var b strings.Builder
	b.WriteString("modelgen: edge error")
	if e.Edge != "" {
		b.WriteString(" on field ")
		b.WriteString(e.Edge)
	}
	if e.From != "" && e.To != "" {
		fmt.Fprintf(&b, " (%s -> %s)", e.From, e.To)
	} else if e.From != "" {
		b.WriteString(" from ")
		b.WriteString(e.From)
	}
	b.WriteString(": referenced type not found")
	if len(e.Tried) > 0 {
		fmt.Fprintf(&b, " (tried %s)", strings.Join(e.Tried, ", "))
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for EdgeError.
func (e *EdgeError) Is(target error) bool {
	return target == ErrUnresolvedReference
}

// NewEdgeError creates a new EdgeError.
func NewEdgeError(from, to, field string, tried ...string) *EdgeError {
	return &EdgeError{
		From:  from,
		To:    to,
		Edge:  field,
		Tried: tried,
	}
}

// AnnotationError reports an annotation that is present without its argument.
type AnnotationError struct {
	Type       string
	Field      string
	Annotation string
}

// Error implements the error interface.
func (e *AnnotationError) Error() string {
	return fmt.Sprintf("modelgen: annotation error on type %s field %s: @%s requires a literal argument", e.Type, e.Field, e.Annotation)
}

// Is reports whether the target matches the sentinel error for AnnotationError.
func (e *AnnotationError) Is(target error) bool {
	return target == ErrMissingArgument
}

// NewAnnotationError creates a new AnnotationError.
func NewAnnotationError(typeName, field, annotation string) *AnnotationError {
	return &AnnotationError{
		Type:       typeName,
		Field:      field,
		Annotation: annotation,
	}
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
		return fmt.Sprintf("modelgen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("modelgen: config error for %q: %s", e.Option, e.Message)
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

// GenerationError represents a rendering or file writing error.
type GenerationError struct {
	Phase   string // Generator name, or "write"
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("modelgen: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
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
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsSchemaError reports whether the error is a SchemaError.
func IsSchemaError(err error) bool {
	var schemaErr *SchemaError
	return errors.As(err, &schemaErr)
}

// IsEdgeError reports whether the error is an EdgeError.
func IsEdgeError(err error) bool {
	var edgeErr *EdgeError
	return errors.As(err, &edgeErr)
}

// IsAnnotationError reports whether the error is an AnnotationError.
func IsAnnotationError(err error) bool {
	var anErr *AnnotationError
	return errors.As(err, &anErr)
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
