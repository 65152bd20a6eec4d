// Package errors defines the categorized error type used across the
// analyzer. Errors carry a category, a stable code, an optional suggestion
// for the operator, and structured context, plus a stack trace captured at
// construction time.
package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategoryInput     ErrorCategory = "input"
	CategoryReference ErrorCategory = "reference"
	CategoryAnalysis  ErrorCategory = "analysis"
	CategoryConfig    ErrorCategory = "configuration"
	CategoryInternal  ErrorCategory = "internal"
)

// ErrorCode represents specific error codes within categories
type ErrorCode string

const (
	// Input errors
	CodeEmptyInput   ErrorCode = "empty_input"
	CodeInvalidInput ErrorCode = "invalid_input"

	// Reference data errors
	CodeInvalidReference ErrorCode = "invalid_reference"
	CodeMissingReference ErrorCode = "missing_reference"

	// Analysis errors
	CodeExtractionFailed ErrorCode = "extraction_failed"
	CodeMatchingFailed   ErrorCode = "matching_failed"

	// Configuration errors
	CodeInvalidConfig ErrorCode = "invalid_config"

	// Internal errors
	CodeUnexpectedError ErrorCode = "unexpected_error"
)

// AnalyzerError is the base error type for all application errors
type AnalyzerError struct {
	Category   ErrorCategory     `json:"category"`
	Code       ErrorCode         `json:"code"`
	Message    string            `json:"message"`
	Suggestion string            `json:"suggestion,omitempty"`
	Context    Context           `json:"context,omitempty"`
	Cause      error             `json:"-"`
	StackTrace errors.StackTrace `json:"-"`
}

// Context provides additional information about the error
type Context map[string]interface{}

// Error implements the error interface
func (e *AnalyzerError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (suggestion: %s)", e.Message, e.Suggestion)
	}
	return e.Message
}

// Unwrap returns the underlying cause error
func (e *AnalyzerError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *AnalyzerError) WithContext(key string, value interface{}) *AnalyzerError {
	if e.Context == nil {
		e.Context = make(Context)
	}
	e.Context[key] = value
	return e
}

// WithSuggestion adds a suggestion for fixing the error
func (e *AnalyzerError) WithSuggestion(suggestion string) *AnalyzerError {
	e.Suggestion = suggestion
	return e
}

// stackTracer interface for extracting stack traces
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// New creates a new AnalyzerError
func New(category ErrorCategory, code ErrorCode, message string) *AnalyzerError {
	return &AnalyzerError{
		Category:   category,
		Code:       code,
		Message:    message,
		StackTrace: errors.New("").(stackTracer).StackTrace(),
	}
}

// Wrap wraps an existing error with AnalyzerError context
func Wrap(err error, category ErrorCategory, code ErrorCode, message string) *AnalyzerError {
	if err == nil {
		return nil
	}

	return &AnalyzerError{
		Category:   category,
		Code:       code,
		Message:    message,
		Cause:      err,
		StackTrace: errors.WithStack(err).(stackTracer).StackTrace(),
	}
}

// InputError creates an invalid-input error
func InputError(code ErrorCode, detail string) *AnalyzerError {
	var message, suggestion string

	switch code {
	case CodeEmptyInput:
		message = "input text is empty"
		suggestion = "provide a non-empty notification message"
	default:
		message = fmt.Sprintf("invalid input: %s", detail)
		suggestion = "check that the input is a plain UTF-8 text string"
	}

	return New(CategoryInput, code, message).
		WithSuggestion(suggestion).
		WithContext("detail", detail)
}

// ReferenceError creates a reference-data error
func ReferenceError(code ErrorCode, entity string, err error) *AnalyzerError {
	var message, suggestion string

	switch code {
	case CodeInvalidReference:
		message = fmt.Sprintf("invalid reference data: %s", entity)
		suggestion = "validate the reference data before passing it to the analyzer"
	case CodeMissingReference:
		message = fmt.Sprintf("missing reference data: %s", entity)
		suggestion = "supply the reference collection when constructing the analyzer"
	default:
		message = fmt.Sprintf("reference data error: %s", entity)
		suggestion = "check the reference data supplied by the host application"
	}

	var result *AnalyzerError
	if err != nil {
		result = Wrap(err, CategoryReference, code, message)
	} else {
		result = New(CategoryReference, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("entity", entity)
}

// ConfigError creates a configuration error
func ConfigError(setting string, value interface{}, err error) *AnalyzerError {
	message := fmt.Sprintf("invalid configuration for '%s': %v", setting, value)

	var result *AnalyzerError
	if err != nil {
		result = Wrap(err, CategoryConfig, CodeInvalidConfig, message)
	} else {
		result = New(CategoryConfig, CodeInvalidConfig, message)
	}

	return result.
		WithSuggestion("check the configuration documentation for valid values").
		WithContext("setting", setting).
		WithContext("value", value)
}

// InternalError creates an internal error for unexpected faults
func InternalError(operation string, err error) *AnalyzerError {
	message := fmt.Sprintf("unexpected error during %s", operation)

	var result *AnalyzerError
	if err != nil {
		result = Wrap(err, CategoryInternal, CodeUnexpectedError, message)
	} else {
		result = New(CategoryInternal, CodeUnexpectedError, message)
	}

	return result.
		WithSuggestion("this is likely a bug - please report it with the error details").
		WithContext("operation", operation)
}

// IsAnalyzerError checks if an error is an AnalyzerError
func IsAnalyzerError(err error) bool {
	_, ok := err.(*AnalyzerError)
	return ok
}

// AsAnalyzerError extracts an AnalyzerError from an error chain
func AsAnalyzerError(err error) (*AnalyzerError, bool) {
	var analyzerErr *AnalyzerError
	if errors.As(err, &analyzerErr) {
		return analyzerErr, true
	}
	return nil, false
}
