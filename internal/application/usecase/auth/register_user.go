package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/gigledger/backend/internal/application/adapter"
	"github.com/gigledger/backend/internal/domain/entity"
	domainerror "github.com/gigledger/backend/internal/domain/error"
)

// RegisterUserInput represents the input for user registration.
type RegisterUserInput struct {
	Email         string
	Name          string
	Password      string
	TermsAccepted bool
}

// RegisterUserUseCase creates a driver account with default settings.
type RegisterUserUseCase struct {
	userRepo        adapter.UserRepository
	settingsRepo    adapter.SettingsRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase instance.
func NewRegisterUserUseCase(
	userRepo adapter.UserRepository,
	settingsRepo adapter.SettingsRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:        userRepo,
		settingsRepo:    settingsRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute registers the driver and signs them straight in.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*Session, error) {
	email := entity.NormalizeEmail(input.Email)
	if err := uc.validate(email, input); err != nil {
		return nil, err
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeEmailExists, domainerror.ErrEmailAlreadyExists.Error(), domainerror.ErrEmailAlreadyExists)
	}

	passwordHash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(email, input.Name, passwordHash, time.Now().UTC())
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := uc.settingsRepo.Upsert(ctx, entity.NewUserSettings(user.ID)); err != nil {
		return nil, fmt.Errorf("failed to create default settings: %w", err)
	}

	return openSession(ctx, uc.tokenService, user, false)
}

func (uc *RegisterUserUseCase) validate(email string, input RegisterUserInput) error {
	if !input.TermsAccepted {
		return domainerror.NewAuthError(domainerror.ErrCodeTermsNotAccepted, domainerror.ErrTermsNotAccepted.Error(), domainerror.ErrTermsNotAccepted)
	}
	if !isValidEmail(email) {
		return domainerror.NewAuthError(domainerror.ErrCodeInvalidEmail, domainerror.ErrInvalidEmail.Error(), domainerror.ErrInvalidEmail)
	}
	if err := uc.passwordService.ValidatePasswordStrength(input.Password); err != nil {
		return domainerror.NewAuthError(domainerror.ErrCodeWeakPassword, domainerror.ErrWeakPassword.Error(), domainerror.ErrWeakPassword)
	}
	return nil
}

// isValidEmail accepts a bare address with a dotted domain. Display names
// such as "Driver <d@example.com>" are rejected.
func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndexByte(email, '@')
	return at > 0 && strings.Contains(email[at+1:], ".")
}
