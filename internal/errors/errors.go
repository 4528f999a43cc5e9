package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Auth errors (AUTH-001 to AUTH-099)
	ErrCodeAuthLoginFailed    ErrorCode = "AUTH-001"
	ErrCodeAuthLogoutFailed   ErrorCode = "AUTH-002"
	ErrCodeAuthNoSession      ErrorCode = "AUTH-003"
	ErrCodeAuthGoogleFailed   ErrorCode = "AUTH-004"
	ErrCodeAuthResetFailed    ErrorCode = "AUTH-005"

	// Validation errors (VALIDATION-001 to VALIDATION-099)
	ErrCodeValidationSignup           ErrorCode = "VALIDATION-001"
	ErrCodeValidationPasswordMismatch ErrorCode = "VALIDATION-002"
	ErrCodeValidationResetConfirm     ErrorCode = "VALIDATION-003"

	// Transport errors (TRANSPORT-001 to TRANSPORT-099)
	ErrCodeTransportRequest ErrorCode = "TRANSPORT-001"
	ErrCodeTransportDecode  ErrorCode = "TRANSPORT-002"

	// Config errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigNotFound ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG-002"

	// OAuth errors (OAUTH-001 to OAUTH-099)
	ErrCodeOAuthListener ErrorCode = "OAUTH-001"
	ErrCodeOAuthExchange ErrorCode = "OAUTH-002"
	ErrCodeOAuthDenied   ErrorCode = "OAUTH-003"
)

// JobmeetError represents an enhanced error with code, suggestions, and documentation
type JobmeetError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *JobmeetError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *JobmeetError) Unwrap() error {
	return e.Cause
}

// New creates a new JobmeetError
func New(code ErrorCode, message string) *JobmeetError {
	return &JobmeetError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new JobmeetError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *JobmeetError {
	return &JobmeetError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *JobmeetError) WithSuggestion(suggestion string) *JobmeetError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *JobmeetError) WithSuggestions(suggestions ...string) *JobmeetError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *JobmeetError) WithDocs(url string) *JobmeetError {
	e.DocsURL = url
	return e
}

// CodeOf returns the error code carried by err, or "" for plain errors.
func CodeOf(err error) ErrorCode {
	var je *JobmeetError
	if errors.As(err, &je) {
		return je.Code
	}
	return ""
}

// IsValidation reports whether err carries a VALIDATION-xxx code.
func IsValidation(err error) bool {
	return strings.HasPrefix(string(CodeOf(err)), "VALIDATION-")
}

// IsAuth reports whether err carries an AUTH-xxx code.
func IsAuth(err error) bool {
	return strings.HasPrefix(string(CodeOf(err)), "AUTH-")
}

// IsTransport reports whether err carries a TRANSPORT-xxx code.
func IsTransport(err error) bool {
	return strings.HasPrefix(string(CodeOf(err)), "TRANSPORT-")
}

// Common error constructors for frequently used errors

// NewLoginFailedError creates a credential rejection error
func NewLoginFailedError(message string) *JobmeetError {
	return New(ErrCodeAuthLoginFailed, message).
		WithSuggestion("Check your email and password").
		WithSuggestion("Use 'jobmeet reset-password request' if you forgot your password")
}

// NewSignupRejectedError creates a field-level signup rejection error
func NewSignupRejectedError(message string) *JobmeetError {
	return New(ErrCodeValidationSignup, message).
		WithSuggestion("Check the rejected field and try again")
}

// NewPasswordMismatchError creates a local password confirmation error
func NewPasswordMismatchError() *JobmeetError {
	return New(ErrCodeValidationPasswordMismatch, "passwords don't match").
		WithSuggestion("Enter the same password in both fields")
}

// NewBackendUnreachableError creates a transport failure error
func NewBackendUnreachableError(baseURL string, cause error) *JobmeetError {
	return Wrap(ErrCodeTransportRequest, fmt.Sprintf("backend unreachable: %s", baseURL), cause).
		WithSuggestion("Check that the JobMeet backend is running").
		WithSuggestion("Verify the server address in ~/.jobmeet/config.yaml")
}

// NewConfigInvalidError creates a config parse error
func NewConfigInvalidError(path string, cause error) *JobmeetError {
	return Wrap(ErrCodeConfigInvalid, fmt.Sprintf("invalid config file: %s", path), cause).
		WithSuggestion("Check the YAML syntax").
		WithSuggestion("Delete the file to fall back to defaults")
}
