// Package error defines domain-specific errors for the GigLedger application.
package error

import "errors"

// Expense domain errors.
var (
	// ErrExpenseNotFound is returned when an expense is not found in the system.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrUnauthorizedExpenseAccess is returned when a user accesses another user's expense.
	ErrUnauthorizedExpenseAccess = errors.New("unauthorized access to expense")

	// ErrExpenseRejected is returned when an expense fails entry validation.
	ErrExpenseRejected = errors.New("expense rejected by validation")

	// ErrExpenseNotDeleted is returned when a recycle-bin operation targets a live expense.
	ErrExpenseNotDeleted = errors.New("expense is not in the recycle bin")

	// ErrExpenseAlreadyDeleted is returned when deleting an expense that is already in the recycle bin.
	ErrExpenseAlreadyDeleted = errors.New("expense is already deleted")
)

// ExpenseErrorCode defines error codes for expense errors.
// Format: EXP-XXYYYY where XX is category and YYYY is specific error.
type ExpenseErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeExpenseNotFound          ExpenseErrorCode = "EXP-010001"
	ErrCodeUnauthorizedExpense      ExpenseErrorCode = "EXP-010002"
	ErrCodeExpenseRejected          ExpenseErrorCode = "EXP-010003"
	ErrCodeMissingExpenseFields     ExpenseErrorCode = "EXP-010004"
	ErrCodeInvalidExpenseDate       ExpenseErrorCode = "EXP-010005"
	ErrCodeExpenseNotDeleted        ExpenseErrorCode = "EXP-010006"
	ErrCodeExpenseAlreadyDeleted    ExpenseErrorCode = "EXP-010007"
	ErrCodeInvalidExpenseListFilter ExpenseErrorCode = "EXP-010008"
	ErrCodeExpenseShiftNotFound     ExpenseErrorCode = "EXP-010009"
)

// ExpenseError represents an expense error with code and message.
type ExpenseError struct {
	Code    ExpenseErrorCode
	Message string
	Reason  string // Validation rejection reason, empty for other errors
	Err     error
}

// Error implements the error interface.
func (e *ExpenseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExpenseError) Unwrap() error {
	return e.Err
}

// NewExpenseError creates a new ExpenseError with the given code and message.
func NewExpenseError(code ExpenseErrorCode, message string, err error) *ExpenseError {
	return &ExpenseError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewExpenseRejectedError creates an ExpenseError carrying a validation reason.
func NewExpenseRejectedError(reason string) *ExpenseError {
	return &ExpenseError{
		Code:    ErrCodeExpenseRejected,
		Message: "expense rejected: " + reason,
		Reason:  reason,
		Err:     ErrExpenseRejected,
	}
}
