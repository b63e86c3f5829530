// Package error defines domain-specific errors for the GigLedger application.
package error

import "errors"

// Shift domain errors.
var (
	// ErrShiftNotFound is returned when a shift is not found in the system.
	ErrShiftNotFound = errors.New("shift not found")

	// ErrUnauthorizedShiftAccess is returned when a user accesses another user's shift.
	ErrUnauthorizedShiftAccess = errors.New("unauthorized access to shift")

	// ErrShiftRejected is returned when a shift fails entry validation.
	ErrShiftRejected = errors.New("shift rejected by validation")

	// ErrShiftNotDeleted is returned when a recycle-bin operation targets a live shift.
	ErrShiftNotDeleted = errors.New("shift is not in the recycle bin")

	// ErrShiftAlreadyDeleted is returned when deleting a shift that is already in the recycle bin.
	ErrShiftAlreadyDeleted = errors.New("shift is already deleted")
)

// ShiftErrorCode defines error codes for shift errors.
// Format: SHF-XXYYYY where XX is category and YYYY is specific error.
type ShiftErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeShiftNotFound          ShiftErrorCode = "SHF-010001"
	ErrCodeUnauthorizedShift      ShiftErrorCode = "SHF-010002"
	ErrCodeShiftRejected          ShiftErrorCode = "SHF-010003"
	ErrCodeMissingShiftFields     ShiftErrorCode = "SHF-010004"
	ErrCodeInvalidShiftDate       ShiftErrorCode = "SHF-010005"
	ErrCodeShiftNotDeleted        ShiftErrorCode = "SHF-010006"
	ErrCodeShiftAlreadyDeleted    ShiftErrorCode = "SHF-010007"
	ErrCodeInvalidShiftListFilter ShiftErrorCode = "SHF-010008"
)

// ShiftError represents a shift error with code and message.
type ShiftError struct {
	Code    ShiftErrorCode
	Message string
	Reason  string // Validation rejection reason, empty for other errors
	Err     error
}

// Error implements the error interface.
func (e *ShiftError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ShiftError) Unwrap() error {
	return e.Err
}

// NewShiftError creates a new ShiftError with the given code and message.
func NewShiftError(code ShiftErrorCode, message string, err error) *ShiftError {
	return &ShiftError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewShiftRejectedError creates a ShiftError carrying a validation reason.
func NewShiftRejectedError(reason string) *ShiftError {
	return &ShiftError{
		Code:    ErrCodeShiftRejected,
		Message: "shift rejected: " + reason,
		Reason:  reason,
		Err:     ErrShiftRejected,
	}
}
