package error

import "errors"

// Session domain errors.
var (
	// ErrMissingSessionToken is returned when a request carries no bearer token.
	ErrMissingSessionToken = errors.New("missing session token")

	// ErrInvalidSessionToken is returned when a token is malformed, expired or badly signed.
	ErrInvalidSessionToken = errors.New("invalid session token")

	// ErrSessionTokenGeneration is returned when a token cannot be signed.
	ErrSessionTokenGeneration = errors.New("failed to generate session token")

	// ErrTooManySessions is returned when a client creates sessions too quickly.
	ErrTooManySessions = errors.New("too many session requests")
)

// SessionErrorCode defines error codes for session errors.
// Format: SES-XXYYYY where XX is category and YYYY is specific error.
type SessionErrorCode string

const (
	// Token errors (01XXXX)
	ErrCodeMissingSessionToken    SessionErrorCode = "SES-010001"
	ErrCodeInvalidSessionToken    SessionErrorCode = "SES-010002"
	ErrCodeSessionTokenGeneration SessionErrorCode = "SES-010003"

	// Rate limiting (02XXXX)
	ErrCodeTooManySessions SessionErrorCode = "SES-020001"
)

// SessionError represents a session error with code and message.
type SessionError struct {
	Code    SessionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SessionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SessionError) Unwrap() error {
	return e.Err
}

// NewSessionError creates a new SessionError with the given code and message.
func NewSessionError(code SessionErrorCode, message string, err error) *SessionError {
	return &SessionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
