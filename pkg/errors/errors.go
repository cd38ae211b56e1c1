package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Filesystem and process I/O
	ErrIO ErrorCode = "IO"

	// Discovery errors
	ErrConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrManifestNotFound ErrorCode = "MANIFEST_NOT_FOUND"

	// Parse errors
	ErrUnsupportedConfigValue ErrorCode = "UNSUPPORTED_CONFIG_VALUE"
	ErrMalformedManifest      ErrorCode = "MALFORMED_MANIFEST"
	ErrConfigParse            ErrorCode = "CONFIG_PARSE"
	ErrNoParentDirectory      ErrorCode = "NO_PARENT_DIRECTORY"

	// Tool settings
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"

	// Subprocess errors
	ErrSpawn ErrorCode = "SPAWN_FAILURE"
)

// XfmtError represents a structured error with code and details
type XfmtError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *XfmtError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *XfmtError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *XfmtError) Is(target error) bool {
	var targetErr *XfmtError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new XfmtError with the given code and message
func New(code ErrorCode, message string) *XfmtError {
	return &XfmtError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new XfmtError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *XfmtError {
	return &XfmtError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an XfmtError
func Wrap(err error, code ErrorCode, message string) *XfmtError {
	if err == nil {
		return nil
	}
	return &XfmtError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *XfmtError {
	if err == nil {
		return nil
	}
	return &XfmtError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *XfmtError) WithDetail(key string, value interface{}) *XfmtError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var xfmtErr *XfmtError
	if errors.As(err, &xfmtErr) {
		return xfmtErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an XfmtError
func GetErrorCode(err error) ErrorCode {
	var xfmtErr *XfmtError
	if errors.As(err, &xfmtErr) {
		return xfmtErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an XfmtError
func GetErrorDetails(err error) map[string]interface{} {
	var xfmtErr *XfmtError
	if errors.As(err, &xfmtErr) {
		return xfmtErr.Details
	}
	return nil
}
