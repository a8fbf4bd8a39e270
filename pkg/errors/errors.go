package errors

import "fmt"

// ErrorType classifies the failures a harvest run can hit
type ErrorType string

const (
	ErrorTypeTransport      ErrorType = "transport"
	ErrorTypeDecode         ErrorType = "decode"
	ErrorTypeTimestampParse ErrorType = "timestamp_parse"
	ErrorTypeNavigation     ErrorType = "navigation"
	ErrorTypeCapture        ErrorType = "capture"
	ErrorTypePersist        ErrorType = "persist"
	ErrorTypeUnknown        ErrorType = "unknown"
)

// Error is a typed harvest error with an optional HTTP status code
type Error struct {
	Type    ErrorType
	Message string
	Code    int
	Err     error
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a typed error without an underlying cause
func New(t ErrorType, message string) *Error {
	return &Error{Type: t, Message: message}
}

// Wrap creates a typed error around an underlying cause
func Wrap(t ErrorType, message string, err error) *Error {
	return &Error{Type: t, Message: message, Err: err}
}

// IsRetryable checks if an error type should be retried. Only transient
// I/O failures qualify; malformed upstream data and filesystem failures
// never resolve on their own.
func IsRetryable(errorType ErrorType) bool {
	switch errorType {
	case ErrorTypeTransport, ErrorTypeNavigation:
		return true
	default:
		return false
	}
}

// IsRetryableStatusCode checks if an HTTP status code indicates a retryable error
func IsRetryableStatusCode(statusCode int) bool {
	switch statusCode {
	case 0: // Network error
		return true
	case 429: // Too Many Requests
		return true
	case 401, 403, 404:
		return false
	default:
		return statusCode >= 500
	}
}
