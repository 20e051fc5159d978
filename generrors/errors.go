package generrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrSchema indicates the model builder metadata could not be used.
	ErrSchema = errors.New("schema error")

	// ErrUnsupportedType indicates a parameter type has no literal rendering.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrCustomization indicates an invalid customization.
	ErrCustomization = errors.New("customization error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// SchemaError represents a failure to load or interpret model builder metadata.
type SchemaError struct {
	// Source is the file path, URL, or source identifier
	Source string
	// Algorithm is the model builder the problem belongs to (empty if document-level)
	Algorithm string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *SchemaError) Error() string {
	msg := "schema error"
	if e.Source != "" {
		msg += " in " + e.Source
	}
	if e.Algorithm != "" {
		msg += " for " + e.Algorithm
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// UnsupportedTypeError is returned when a parameter's type tag cannot be
// serialized as an R literal. Generation stops rather than emit invalid code.
type UnsupportedTypeError struct {
	// Algorithm is the model builder being generated (may be empty)
	Algorithm string
	// Parameter is the parameter name (may be empty)
	Parameter string
	// Type is the offending type tag
	Type string
}

// Error returns a human-readable error message.
func (e *UnsupportedTypeError) Error() string {
	msg := fmt.Sprintf("unsupported type %q", e.Type)
	switch {
	case e.Algorithm != "" && e.Parameter != "":
		msg += fmt.Sprintf(" for parameter %s.%s", e.Algorithm, e.Parameter)
	case e.Parameter != "":
		msg += " for parameter " + e.Parameter
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// CustomizationError represents an invalid customization value.
type CustomizationError struct {
	// File is the customization file (empty when built in code)
	File string
	// Algorithm is the algorithm the customization applies to ("defaults" for shared ones)
	Algorithm string
	// Property is the dotted property path, e.g. "extensions.extra_params"
	Property string
	// Message describes the problem
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *CustomizationError) Error() string {
	msg := "customization error"
	if e.File != "" {
		msg += " in " + e.File
	}
	if e.Algorithm != "" {
		msg += " for " + e.Algorithm
	}
	if e.Property != "" {
		msg += " at " + e.Property
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *CustomizationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *CustomizationError) Is(target error) bool {
	return target == ErrCustomization
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
