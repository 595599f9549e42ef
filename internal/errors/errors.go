package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeDecode     ErrorType = "decode"
	ErrorTypeNoSheet    ErrorType = "no_sheet"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeStorage    ErrorType = "storage"
	ErrorTypeInternal   ErrorType = "internal"
)

// Messages reported to callers under the "error" field of a failed grading.
const (
	MessageInvalidImage  = "invalid image"
	MessageNoSheetFound  = "no sheet contour found"
	MessageConfigInvalid = "template/answer key missing or invalid"
	MessageStorageFailed = "failed to persist artifacts"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"status_code"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewDecodeError reports bytes that could not be decoded into a non-empty image
func NewDecodeError(cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeDecode,
		Message:    MessageInvalidImage,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewNoSheetError reports a binarized photo without any contour
func NewNoSheetError(cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeNoSheet,
		Message:    MessageNoSheetFound,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewConfigError reports a missing, unreadable or malformed template or answer key.
// The cause is folded into the message so callers see what went wrong.
func NewConfigError(cause error) *AppError {
	message := MessageConfigInvalid
	if cause != nil {
		message = fmt.Sprintf("%s: %v", MessageConfigInvalid, cause)
	}
	return &AppError{
		Type:       ErrorTypeConfig,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewStorageError reports an artifact that could not be written
func NewStorageError(cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeStorage,
		Message:    MessageStorageFailed,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode extracts the HTTP status code from an error
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// GetMessage extracts the caller-facing message from an error
func GetMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
