package skill

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// NoFrontMatterError indicates a description file without the leading
// front matter block delimited by three dashes.
type NoFrontMatterError struct {
	Path string
}

func (e *NoFrontMatterError) Error() string {
	return fmt.Sprintf("%s: no front matter block found", e.Path)
}

// IsNoFrontMatter checks if an error is a NoFrontMatterError using error
// unwrapping.
func IsNoFrontMatter(err error) bool {
	var target *NoFrontMatterError
	return errors.As(err, &target)
}

// FrontMatterNotMapError indicates front matter whose top-level YAML node
// is not a mapping (e.g. a scalar or a sequence).
type FrontMatterNotMapError struct {
	Path string
}

func (e *FrontMatterNotMapError) Error() string {
	return fmt.Sprintf("%s: front matter is not a key/value mapping", e.Path)
}

// IsFrontMatterNotMap checks if an error is a FrontMatterNotMapError.
func IsFrontMatterNotMap(err error) bool {
	var target *FrontMatterNotMapError
	return errors.As(err, &target)
}

// FrontMatterParseError indicates front matter that could not be parsed
// as YAML. The underlying parser error is preserved for logs.
type FrontMatterParseError struct {
	Path string
	Err  error
}

func (e *FrontMatterParseError) Error() string {
	return fmt.Sprintf("%s: malformed front matter: %v", e.Path, e.Err)
}

func (e *FrontMatterParseError) Unwrap() error { return e.Err }

// IsFrontMatterParseError checks if an error is a FrontMatterParseError.
func IsFrontMatterParseError(err error) bool {
	var target *FrontMatterParseError
	return errors.As(err, &target)
}

// FileReadError indicates the description file could not be read at all.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("%s: cannot read file: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// IsFileReadError checks if an error is a FileReadError.
func IsFileReadError(err error) bool {
	var target *FileReadError
	return errors.As(err, &target)
}

// InvalidDefinitionError indicates a file that parsed cleanly but failed
// semantic validation (missing name, bad name format, reserved action,
// missing description or body).
type InvalidDefinitionError struct {
	Path   string
	Name   string
	Errors ValidationErrors
}

func (e *InvalidDefinitionError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: invalid definition '%s': %s", e.Path, e.Name, e.Errors.Error())
	}
	return fmt.Sprintf("%s: invalid definition: %s", e.Path, e.Errors.Error())
}

// IsInvalidDefinition checks if an error is an InvalidDefinitionError.
func IsInvalidDefinition(err error) bool {
	var target *InvalidDefinitionError
	return errors.As(err, &target)
}
