package error

import "errors"

// Email domain errors.
var (
	// ErrEmailQueueFailed is returned when a digest email cannot be queued.
	ErrEmailQueueFailed = errors.New("failed to queue email")

	// ErrPermanentEmailFailure is returned when the provider rejects an email for good.
	ErrPermanentEmailFailure = errors.New("permanent email failure")

	// ErrTemporaryEmailFailure is returned when a send may succeed on retry.
	ErrTemporaryEmailFailure = errors.New("temporary email failure")

	// ErrUnknownTemplate is returned when a job names a template that is not embedded.
	ErrUnknownTemplate = errors.New("unknown email template")

	// ErrTemplateRenderFailed is returned when template execution fails.
	ErrTemplateRenderFailed = errors.New("failed to render email template")
)

// EmailErrorCode defines error codes for email errors.
// Format: EMAIL-XXYYYY where XX is category and YYYY is specific error.
type EmailErrorCode string

const (
	// Queue errors (01XXXX)
	ErrCodeEmailQueueFailed EmailErrorCode = "EMAIL-010001"

	// Send errors (02XXXX)
	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-020001"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-020002"

	// Template errors (03XXXX)
	ErrCodeUnknownTemplate      EmailErrorCode = "EMAIL-030001"
	ErrCodeTemplateRenderFailed EmailErrorCode = "EMAIL-030002"
)

// EmailError represents an email error with code and message.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *EmailError) Unwrap() error {
	return e.Err
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsPermanentEmailError reports whether err carries the permanent failure code.
func IsPermanentEmailError(err error) bool {
	var emailErr *EmailError
	if errors.As(err, &emailErr) {
		return emailErr.Code == ErrCodePermanentEmailFailure
	}
	return false
}
