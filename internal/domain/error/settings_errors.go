// Package error defines domain-specific errors for the GigLedger application.
package error

import "errors"

// Settings domain errors.
var (
	// ErrSettingsNotFound is returned when a user has no stored settings.
	ErrSettingsNotFound = errors.New("settings not found")

	// ErrInvalidVATRate is returned when the VAT rate is outside [0, 1].
	ErrInvalidVATRate = errors.New("vat rate must be between 0 and 1")

	// ErrInvalidContribution is returned when the monthly contribution is negative.
	ErrInvalidContribution = errors.New("monthly contribution must not be negative")

	// ErrInvalidGoalAmount is returned when an income goal is zero or negative.
	ErrInvalidGoalAmount = errors.New("income goal must be greater than zero")

	// ErrInvalidTheme is returned when the theme preference is unknown.
	ErrInvalidTheme = errors.New("invalid theme preference")
)

// SettingsErrorCode defines error codes for settings errors.
// Format: SET-XXYYYY where XX is category and YYYY is specific error.
type SettingsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidVATRate      SettingsErrorCode = "SET-010001"
	ErrCodeInvalidContribution SettingsErrorCode = "SET-010002"
	ErrCodeInvalidGoalAmount   SettingsErrorCode = "SET-010003"
	ErrCodeInvalidTheme        SettingsErrorCode = "SET-010004"
	ErrCodeInvalidSettings     SettingsErrorCode = "SET-010005"
)

// SettingsError represents a settings error with code and message.
type SettingsError struct {
	Code    SettingsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SettingsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SettingsError) Unwrap() error {
	return e.Err
}

// NewSettingsError creates a new SettingsError with the given code and message.
func NewSettingsError(code SettingsErrorCode, message string, err error) *SettingsError {
	return &SettingsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
