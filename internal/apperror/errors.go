package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Sentinel errors for common cases
var (
	ErrNotFound   = errors.New("resource not found")
	ErrBadRequest = errors.New("bad request")
	ErrConflict   = errors.New("conflict")
	ErrInternal   = errors.New("internal server error")
	ErrValidation = errors.New("validation error")
)

// AppError wraps errors with HTTP status and user-friendly message
type AppError struct {
	Err        error  // Original error (for logging)
	Message    string // User-friendly message
	StatusCode int    // HTTP status code
	Field      string // Optional field name for validation errors
}

func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Constructor functions for common errors

func NotFound(resource string) *AppError {
	return &AppError{
		Err:        ErrNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: http.StatusNotFound,
	}
}

func BadRequest(message string) *AppError {
	return &AppError{
		Err:        ErrBadRequest,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func ValidationError(field, message string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Field:      field,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Err:        ErrConflict,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Err:        err,
		Message:    "an internal error occurred",
		StatusCode: http.StatusInternalServerError,
	}
}

func Wrap(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}

// ValidationErrors collects per-field validation failures for a single
// request. A nil or empty map means the input is valid.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, v[f]))
	}
	return strings.Join(parts, "; ")
}

// Add records a failure for a field, keeping only the first message per field.
func (v ValidationErrors) Add(field, message string) {
	if _, exists := v[field]; !exists {
		v[field] = message
	}
}

// AsError returns v as an error if it holds any failures, nil otherwise.
func (v ValidationErrors) AsError() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// GetStatusCode extracts HTTP status from error, defaults to 500
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	var valErrs ValidationErrors
	if errors.As(err, &valErrs) {
		return http.StatusBadRequest
	}

	// Check sentinel errors
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// GetMessage extracts user message from error
func GetMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
