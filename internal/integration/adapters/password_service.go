package adapters

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/gigledger/backend/internal/application/adapter"
	domainerror "github.com/gigledger/backend/internal/domain/error"
)

const (
	bcryptCost = 12

	minPasswordLength = 8
	// bcrypt ignores everything after 72 bytes.
	maxPasswordBytes = 72

	minPinDigits = 4
	maxPinDigits = 6
)

type passwordService struct {
	cost int
}

// NewPasswordService creates a bcrypt password service.
func NewPasswordService() adapter.PasswordService {
	return &passwordService{cost: bcryptCost}
}

func (s *passwordService) HashPassword(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), s.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

func (s *passwordService) VerifyPassword(hash, secret string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
}

func (s *passwordService) ValidatePasswordStrength(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return fmt.Errorf("%w: at least %d characters", domainerror.ErrWeakPassword, minPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: at most %d bytes", domainerror.ErrWeakPassword, maxPasswordBytes)
	}
	return nil
}

func (s *passwordService) ValidatePinFormat(pin string) error {
	if len(pin) < minPinDigits || len(pin) > maxPinDigits {
		return domainerror.ErrInvalidPinFormat
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return domainerror.ErrInvalidPinFormat
		}
	}
	return nil
}
