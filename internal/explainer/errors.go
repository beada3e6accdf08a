package explainer

import (
	"fmt"
	"strings"
)

// ErrorType represents the type of client-side error
type ErrorType string

const (
	// ErrTypeValidation indicates input validation errors caught
	// before any network call
	ErrTypeValidation ErrorType = "validation"

	// ErrTypeProtocol indicates a response with a non-2xx status
	ErrTypeProtocol ErrorType = "protocol"

	// ErrTypeTransport indicates the request could not complete
	// (connectivity, timeout, or an unparseable response body)
	ErrTypeTransport ErrorType = "transport"

	// ErrTypeConfiguration indicates client configuration errors
	ErrTypeConfiguration ErrorType = "configuration"
)

// ClientError represents errors from the explain request cycle
type ClientError struct {
	// Type categorizes the error
	Type ErrorType `json:"type"`

	// Message provides a human-readable error description
	Message string `json:"message"`

	// StatusCode for protocol errors
	StatusCode int `json:"status_code,omitempty"`

	// Underlying error that caused this error
	Cause error `json:"-"`
}

// Error implements the error interface
func (e *ClientError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("type=%s", e.Type))

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error type
func (e *ClientError) Is(target error) bool {
	if ce, ok := target.(*ClientError); ok {
		return e.Type == ce.Type
	}
	return false
}

// ValidationError represents a submit precondition failure
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// Error constructors for the three failure kinds

// NewValidationError creates a validation error naming the missing field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewProtocolError creates an error for a non-2xx response. The message
// embeds the status code and status text; the body is not interpreted.
func NewProtocolError(statusCode int, status string) *ClientError {
	return &ClientError{
		Type:       ErrTypeProtocol,
		Message:    fmt.Sprintf("server returned %s", status),
		StatusCode: statusCode,
	}
}

// NewTransportError creates an error for a request that never produced
// a usable response
func NewTransportError(message string) *ClientError {
	return &ClientError{
		Type:    ErrTypeTransport,
		Message: message,
	}
}

// NewTransportErrorWithCause creates a transport error wrapping the
// underlying fault
func NewTransportErrorWithCause(message string, cause error) *ClientError {
	return &ClientError{
		Type:    ErrTypeTransport,
		Message: message,
		Cause:   cause,
	}
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(field, message string) *ClientError {
	return &ClientError{
		Type:    ErrTypeConfiguration,
		Message: fmt.Sprintf("field '%s': %s", field, message),
	}
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	if ce, ok := err.(*ClientError); ok {
		return ce.Type == ErrTypeValidation
	}
	if _, ok := err.(*ValidationError); ok {
		return true
	}
	return false
}

// IsProtocolError checks if an error is a protocol error
func IsProtocolError(err error) bool {
	if ce, ok := err.(*ClientError); ok {
		return ce.Type == ErrTypeProtocol
	}
	return false
}

// IsTransportError checks if an error is a transport error
func IsTransportError(err error) bool {
	if ce, ok := err.(*ClientError); ok {
		return ce.Type == ErrTypeTransport
	}
	return false
}
