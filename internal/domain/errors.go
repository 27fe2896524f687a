package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a machine-readable error code
type ErrorCode string

const (
	// Configuration and Input Errors
	ErrorCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	ErrorCodeInvalidInput  ErrorCode = "INVALID_INPUT"

	// Remote API Errors (REMOTE_*)
	ErrorCodeRemoteInvalidRequest ErrorCode = "REMOTE_INVALID_REQUEST"
	ErrorCodeRemoteCard           ErrorCode = "REMOTE_CARD_ERROR"
	ErrorCodeRemoteAuthentication ErrorCode = "REMOTE_AUTHENTICATION_ERROR"
	ErrorCodeRemoteGeneral        ErrorCode = "REMOTE_GENERAL_ERROR"

	// Operation Errors
	ErrorCodeUnsupportedOperation ErrorCode = "UNSUPPORTED_OPERATION"
)

// User-facing messages that never depend on remote-supplied text
const (
	MessageAuthenticationFailed = "The gateway could not authenticate."
	MessageGeneralFailure       = "An internal error occurred, or the server did not respond to the request."
	MessageUnsupported          = "The gateway does not support this action."
)

// FieldErrors is the structured field-level error record handed to the host:
// error type -> error key -> message
type FieldErrors map[string]map[string]string

// Add records a single field-level error
func (f FieldErrors) Add(errorType, key, message string) {
	if f[errorType] == nil {
		f[errorType] = make(map[string]string)
	}
	f[errorType][key] = message
}

// Empty reports whether no errors are recorded
func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// GatewayError is a structured gateway error with error code and field-level detail
type GatewayError struct {
	Err     error
	Fields  FieldErrors
	Code    ErrorCode
	Message string

	// RemoteType and RemoteCode echo the processor's error type and reason code
	// when the failure originated remotely
	RemoteType string
	RemoteCode string
}

// Error implements the error interface
func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *GatewayError) Unwrap() error {
	return e.Err
}

// IsCardDeclined reports whether the processor declined the card
func (e *GatewayError) IsCardDeclined() bool {
	return e != nil && e.RemoteCode == RemoteCodeCardDeclined
}

// RemoteCodeCardDeclined is the processor's reason code for a declined card
const RemoteCodeCardDeclined = "card_declined"

// NewGatewayError creates a new gateway error
func NewGatewayError(code ErrorCode, message string) *GatewayError {
	return &GatewayError{
		Code:    code,
		Message: message,
		Fields:  make(FieldErrors),
	}
}

// WrapError wraps an existing error with a gateway error code
func WrapError(code ErrorCode, message string, err error) *GatewayError {
	return &GatewayError{
		Code:    code,
		Message: message,
		Fields:  make(FieldErrors),
		Err:     err,
	}
}

// NewConfigurationError reports missing or invalid gateway settings
func NewConfigurationError(fields FieldErrors) *GatewayError {
	return &GatewayError{
		Code:    ErrorCodeConfiguration,
		Message: "invalid gateway configuration",
		Fields:  fields,
	}
}

// NewInvalidInputError reports a missing or malformed argument detected before
// any remote call
func NewInvalidInputError(field, message string) *GatewayError {
	e := NewGatewayError(ErrorCodeInvalidInput, message)
	e.Fields.Add(field, "invalid", message)
	return e
}

// NewUnsupportedError reports an operation the gateway does not offer
func NewUnsupportedError(operation string) *GatewayError {
	e := NewGatewayError(ErrorCodeUnsupportedOperation, MessageUnsupported)
	e.Fields.Add("unsupported", operation, MessageUnsupported)
	return e
}

// NewGeneralError reports an opaque failure. The underlying error is kept for
// local diagnostics only and never surfaced in Message.
func NewGeneralError(err error) *GatewayError {
	e := WrapError(ErrorCodeRemoteGeneral, MessageGeneralFailure, err)
	e.Fields.Add("general", "general", MessageGeneralFailure)
	return e
}

// AsGatewayError extracts a *GatewayError from err
func AsGatewayError(err error) (*GatewayError, bool) {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr, true
	}
	return nil, false
}

// IsGatewayError checks if an error is a GatewayError with the given code
func IsGatewayError(err error, code ErrorCode) bool {
	gwErr, ok := AsGatewayError(err)
	return ok && gwErr.Code == code
}

// GetErrorCode extracts the error code from an error, returns empty string if not a GatewayError
func GetErrorCode(err error) ErrorCode {
	if gwErr, ok := AsGatewayError(err); ok {
		return gwErr.Code
	}
	return ""
}

// IsRemoteError checks if an error originated at the remote processor
func IsRemoteError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeRemoteInvalidRequest ||
		code == ErrorCodeRemoteCard ||
		code == ErrorCodeRemoteAuthentication ||
		code == ErrorCodeRemoteGeneral
}
