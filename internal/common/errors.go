package common

import (
	"errors"
	"fmt"
)

// Stable error codes for the extraction flow. These are part of the API
// surface: handlers map them to HTTP statuses and clients branch on them.
const (
	CodeUnsupportedType    = "UNSUPPORTED_TYPE"
	CodeTooLarge           = "TOO_LARGE"
	CodeBackendUnavailable = "BACKEND_UNAVAILABLE"
	CodeSchemaViolation    = "SCHEMA_VIOLATION"
	CodeEmptyExtraction    = "EMPTY_EXTRACTION"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeNotFound           = "NOT_FOUND"
	CodeInternal           = "INTERNAL"
)

// AppError represents application-specific errors.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError builds an AppError with the given code.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

// ErrorCode returns the AppError code carried by err, or CodeInternal when
// err is not an AppError.
func ErrorCode(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeInternal
}

// IsCode reports whether err carries the given AppError code.
func IsCode(err error, code string) bool {
	return err != nil && ErrorCode(err) == code
}
