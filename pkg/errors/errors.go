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

	// Configuration errors (fatal, surface before any mutation)
	ErrConfigLoad      ErrorCode = "CONFIG_LOAD"
	ErrConfigParse     ErrorCode = "CONFIG_PARSE"
	ErrModlistNotFound ErrorCode = "MODLIST_NOT_FOUND"
	ErrOutputUnsafe    ErrorCode = "OUTPUT_UNSAFE"
	ErrGameNotFound    ErrorCode = "GAME_NOT_FOUND"

	// Per-source errors (recoverable, skip and continue)
	ErrSourceMissing ErrorCode = "SOURCE_MISSING"

	// Per-file errors (recoverable, counted and deferred to the report)
	ErrOriginVanished ErrorCode = "ORIGIN_VANISHED"
	ErrLinkFailed     ErrorCode = "LINK_FAILED"
	ErrDirCreate      ErrorCode = "DIR_CREATE"

	// Auxiliary operation errors (recoverable, never block the main build)
	ErrCacheSync     ErrorCode = "CACHE_SYNC"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrOutputReset   ErrorCode = "OUTPUT_RESET"
)

// ModdeckError represents a structured error with code and details
type ModdeckError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ModdeckError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ModdeckError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ModdeckError) Is(target error) bool {
	var targetErr *ModdeckError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ModdeckError with the given code and message
func New(code ErrorCode, message string) *ModdeckError {
	return &ModdeckError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ModdeckError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ModdeckError {
	return &ModdeckError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ModdeckError
func Wrap(err error, code ErrorCode, message string) *ModdeckError {
	if err == nil {
		return nil
	}
	return &ModdeckError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ModdeckError {
	if err == nil {
		return nil
	}
	return &ModdeckError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ModdeckError) WithDetail(key string, value interface{}) *ModdeckError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var mdErr *ModdeckError
	if errors.As(err, &mdErr) {
		return mdErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ModdeckError
func GetErrorCode(err error) ErrorCode {
	var mdErr *ModdeckError
	if errors.As(err, &mdErr) {
		return mdErr.Code
	}
	return ErrUnknown
}
