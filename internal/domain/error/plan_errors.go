// Package error defines domain-specific errors for the MealSync application.
package error

import "errors"

// Plan domain errors.
var (
	// ErrPlanNotFound is returned when a plan is not found in the system.
	ErrPlanNotFound = errors.New("plan not found")

	// ErrInvalidWeek is returned when a week is outside 1..4.
	ErrInvalidWeek = errors.New("invalid week")

	// ErrInvalidDay is returned when a day is outside 0..6.
	ErrInvalidDay = errors.New("invalid day")

	// ErrInvalidMealType is returned for an unknown meal type.
	ErrInvalidMealType = errors.New("invalid meal type")

	// ErrSlotUnavailable is returned when a slot does not exist, such as Sunday breakfast.
	ErrSlotUnavailable = errors.New("slot unavailable")

	// ErrInvalidChoice is returned for a malformed selection choice.
	ErrInvalidChoice = errors.New("invalid choice")

	// ErrInvalidBudgetKey is returned for an unknown budget key.
	ErrInvalidBudgetKey = errors.New("invalid budget key")

	// ErrInvalidBudgetAmount is returned when a budget amount is negative or too large.
	ErrInvalidBudgetAmount = errors.New("invalid budget amount")

	// ErrMainMealFixed is returned when toggling the main meal of Sunday.
	ErrMainMealFixed = errors.New("main meal is fixed on sunday")

	// ErrInvalidDigestEmail is returned when the digest address is malformed.
	ErrInvalidDigestEmail = errors.New("invalid digest email")

	// ErrDigestNotConfigured is returned when sending a digest for a plan without address.
	ErrDigestNotConfigured = errors.New("digest email not configured")

	// ErrInvalidSnapshot is returned when a persisted plan state cannot be decoded.
	ErrInvalidSnapshot = errors.New("invalid plan snapshot")

	// ErrInvalidCatalog is returned when a catalog file fails validation.
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// PlanErrorCode defines error codes for plan errors.
// Format: PLN-XXYYYY where XX is category and YYYY is specific error.
type PlanErrorCode string

const (
	// Lookup errors (01XXXX)
	ErrCodePlanNotFound    PlanErrorCode = "PLN-010001"
	ErrCodeInvalidSnapshot PlanErrorCode = "PLN-010002"

	// Validation errors (02XXXX)
	ErrCodeInvalidWeek         PlanErrorCode = "PLN-020001"
	ErrCodeInvalidDay          PlanErrorCode = "PLN-020002"
	ErrCodeInvalidMealType     PlanErrorCode = "PLN-020003"
	ErrCodeSlotUnavailable     PlanErrorCode = "PLN-020004"
	ErrCodeInvalidChoice       PlanErrorCode = "PLN-020005"
	ErrCodeInvalidBudgetKey    PlanErrorCode = "PLN-020006"
	ErrCodeInvalidBudgetAmount PlanErrorCode = "PLN-020007"
	ErrCodeMainMealFixed       PlanErrorCode = "PLN-020008"
	ErrCodeInvalidDigestEmail  PlanErrorCode = "PLN-020009"
	ErrCodeMissingPlanFields   PlanErrorCode = "PLN-020010"

	// Digest errors (03XXXX)
	ErrCodeDigestNotConfigured PlanErrorCode = "PLN-030001"
	ErrCodeDigestRateLimited   PlanErrorCode = "PLN-030002"
)

// PlanError represents a plan error with code and message.
type PlanError struct {
	Code    PlanErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PlanError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PlanError) Unwrap() error {
	return e.Err
}

// NewPlanError creates a new PlanError with the given code and message.
func NewPlanError(code PlanErrorCode, message string, err error) *PlanError {
	return &PlanError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
