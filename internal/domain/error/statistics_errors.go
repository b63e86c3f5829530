// Package error defines domain-specific errors for the GigLedger application.
package error

import "errors"

// Statistics domain errors.
var (
	// ErrInvalidPeriod is returned when the requested period preset is unknown.
	ErrInvalidPeriod = errors.New("period must be one of: today, week, month, year, last7, last30, custom")

	// ErrMissingStartDate is returned when a custom range has no start_date.
	ErrMissingStartDate = errors.New("start_date is required")

	// ErrMissingEndDate is returned when a custom range has no end_date.
	ErrMissingEndDate = errors.New("end_date is required")

	// ErrInvalidDateRange is returned when end_date is before start_date.
	ErrInvalidDateRange = errors.New("end_date must not be before start_date")

	// ErrInvalidDateFormat is returned when date format is invalid.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
)

// StatisticsErrorCode defines error codes for statistics errors.
// Format: STA-XXYYYY where XX is category and YYYY is specific error.
type StatisticsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPeriod     StatisticsErrorCode = "STA-010001"
	ErrCodeMissingStartDate  StatisticsErrorCode = "STA-010002"
	ErrCodeMissingEndDate    StatisticsErrorCode = "STA-010003"
	ErrCodeInvalidDateRange  StatisticsErrorCode = "STA-010004"
	ErrCodeInvalidDateFormat StatisticsErrorCode = "STA-010005"

	// Internal errors (99XXXX)
	ErrCodeStatisticsInternalError StatisticsErrorCode = "STA-990001"
)

// StatisticsError represents a statistics error with code and message.
type StatisticsError struct {
	Code    StatisticsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StatisticsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *StatisticsError) Unwrap() error {
	return e.Err
}

// NewStatisticsError creates a new StatisticsError with the given code and message.
func NewStatisticsError(code StatisticsErrorCode, message string, err error) *StatisticsError {
	return &StatisticsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
