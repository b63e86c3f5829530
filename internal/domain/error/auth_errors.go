// Package error defines domain-specific errors for the GigLedger application.
package error

import "errors"

// AuthErrorCode identifies an authentication failure. Format AUTH-XXYYYY:
// XX is the flow, YYYY the failure within it.
type AuthErrorCode string

// Registration.
const (
	ErrCodeEmailExists      AuthErrorCode = "AUTH-010001"
	ErrCodeTermsNotAccepted AuthErrorCode = "AUTH-010002"
	ErrCodeWeakPassword     AuthErrorCode = "AUTH-010003"
	ErrCodeInvalidEmail     AuthErrorCode = "AUTH-010004"
	ErrCodeMissingFields    AuthErrorCode = "AUTH-010005"
)

// Login.
const (
	ErrCodeInvalidCredentials AuthErrorCode = "AUTH-020001"
	ErrCodeUserNotFound       AuthErrorCode = "AUTH-020002"
	ErrCodeRateLimited        AuthErrorCode = "AUTH-020003"
)

// Sessions.
const (
	ErrCodeInvalidToken AuthErrorCode = "AUTH-030001"
	ErrCodeExpiredToken AuthErrorCode = "AUTH-030002"
	ErrCodeMissingToken AuthErrorCode = "AUTH-030003"
)

// Password reset.
const (
	ErrCodeInvalidResetToken AuthErrorCode = "AUTH-040001"
	ErrCodeExpiredResetToken AuthErrorCode = "AUTH-040002"
)

// Account deletion.
const (
	ErrCodeInvalidConfirmation AuthErrorCode = "AUTH-050001"
)

// PIN login.
const (
	ErrCodePinNotSet        AuthErrorCode = "AUTH-060001"
	ErrCodeInvalidPinFormat AuthErrorCode = "AUTH-060002"
	ErrCodeInvalidPin       AuthErrorCode = "AUTH-060003"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTermsNotAccepted   = errors.New("terms of service must be accepted")
	ErrWeakPassword       = errors.New("password does not meet minimum requirements")
	ErrInvalidEmail       = errors.New("invalid email format")

	// ErrInvalidToken covers bad signatures, wrong token types and refresh
	// tokens that were already used or revoked.
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")

	ErrInvalidResetToken = errors.New("invalid password reset token")
	ErrExpiredResetToken = errors.New("password reset token has expired")

	ErrInvalidConfirmation = errors.New("confirmation must be exactly 'DELETE'")

	ErrPinNotSet        = errors.New("pin login is not enabled")
	ErrInvalidPinFormat = errors.New("pin must be 4 to 6 digits")
)

// AuthError carries the code a client can branch on next to the cause.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError builds an AuthError.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{Code: code, Message: message, Err: err}
}

// newAuthFailure wraps a sentinel using its own text as the message.
func newAuthFailure(code AuthErrorCode, sentinel error) *AuthError {
	return NewAuthError(code, sentinel.Error(), sentinel)
}

// InvalidCredentials is the single answer for every failed login so an
// attacker cannot tell a wrong email from a wrong secret.
func InvalidCredentials() *AuthError {
	return newAuthFailure(ErrCodeInvalidCredentials, ErrInvalidCredentials)
}

// InvalidSession is returned for refresh tokens that cannot be rotated.
func InvalidSession() *AuthError {
	return NewAuthError(ErrCodeInvalidToken, "invalid or revoked refresh token", ErrInvalidToken)
}

// ResetTokenFailure maps a redeem failure to its client code.
func ResetTokenFailure(err error) *AuthError {
	if errors.Is(err, ErrExpiredResetToken) {
		return newAuthFailure(ErrCodeExpiredResetToken, ErrExpiredResetToken)
	}
	return newAuthFailure(ErrCodeInvalidResetToken, ErrInvalidResetToken)
}

// InvalidPinFormat is returned before any lookup when a PIN is malformed.
func InvalidPinFormat() *AuthError {
	return newAuthFailure(ErrCodeInvalidPinFormat, ErrInvalidPinFormat)
}

// PinNotSet is returned when a PIN flow runs for a user without one.
func PinNotSet() *AuthError {
	return newAuthFailure(ErrCodePinNotSet, ErrPinNotSet)
}
