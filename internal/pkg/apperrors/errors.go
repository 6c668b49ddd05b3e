package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")

	ErrUserBlocked = errors.New("user is blocked")

	ErrUnauthorized = errors.New("unauthorized")

	ErrNotFound = errors.New("resource not found")

	ErrExceedsEligibleAmount = errors.New("requested amount exceeds eligible amount")

	ErrInsufficientSalary = errors.New("insufficient salary")

	ErrPeriodNotAllowed = errors.New("loan period not allowed")

	ErrInvalidLoanPeriod = errors.New("invalid loan period")

	ErrInvalidTransition = errors.New("invalid loan status transition")

	ErrLoanNotAcceptedOrNotOwned = errors.New("loan not found, not accepted or not owned by caller")

	ErrPricingUnavailable = errors.New("pricing service unavailable")

	// ErrDatabase is the persistence-unavailable kind.
	ErrDatabase = errors.New("database error")

	ErrInvalidArgument = errors.New("invalid argument")

	ErrValidation = errors.New("validation failed")

	ErrAlreadyExists = errors.New("resource already exists")

	ErrConflict = errors.New("resource conflict")

	ErrInternalServer = errors.New("internal server error")
)

// IsRetryable reports whether err came from an external collaborator that may succeed on retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrPricingUnavailable) || errors.Is(err, ErrDatabase)
}

// EligibilityError is an eligibility policy violation carrying the limit the caller ran into.
type EligibilityError struct {
	Kind   error
	Limit  decimal.Decimal
	Detail string
}

func (e *EligibilityError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (limit %s): %s", e.Kind, e.Limit.StringFixed(2), e.Detail)
	}
	return fmt.Sprintf("%s (limit %s)", e.Kind, e.Limit.StringFixed(2))
}

func (e *EligibilityError) Unwrap() error {
	return e.Kind
}

func NewExceedsEligibleAmount(limit decimal.Decimal) error {
	return &EligibilityError{Kind: ErrExceedsEligibleAmount, Limit: limit}
}

func NewInsufficientSalary(requiredSalary decimal.Decimal, detail string) error {
	return &EligibilityError{Kind: ErrInsufficientSalary, Limit: requiredSalary, Detail: detail}
}

func NewPeriodNotAllowed(detail string) error {
	return &EligibilityError{Kind: ErrPeriodNotAllowed, Limit: decimal.Zero, Detail: detail}
}

type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func NewValidationError(field, message string) error {
	return fmt.Errorf("%w: %w", ErrValidation, &ValidationError{Field: field, Message: message})
}

type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func WrapDatabaseError(cause error, message string) error {
	return &AppError{
		Code:    "DB_ERROR",
		Message: message,
		Cause:   fmt.Errorf("%w: %w", ErrDatabase, cause),
	}
}
