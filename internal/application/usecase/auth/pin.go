package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gigledger/backend/internal/application/adapter"
	"github.com/gigledger/backend/internal/domain/entity"
	domainerror "github.com/gigledger/backend/internal/domain/error"
)

// SetPinInput represents the input for enabling or replacing PIN login.
type SetPinInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	Pin             string
}

// SetPinUseCase enables quick PIN login after re-checking the password.
type SetPinUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
}

// NewSetPinUseCase creates a new SetPinUseCase instance.
func NewSetPinUseCase(userRepo adapter.UserRepository, passwordService adapter.PasswordService) *SetPinUseCase {
	return &SetPinUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
	}
}

// Execute stores the bcrypt hash of the new PIN.
func (uc *SetPinUseCase) Execute(ctx context.Context, input SetPinInput) error {
	if err := uc.passwordService.ValidatePinFormat(input.Pin); err != nil {
		return domainerror.InvalidPinFormat()
	}

	user, err := findUser(ctx, uc.userRepo, input.UserID)
	if err != nil {
		return err
	}

	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.CurrentPassword); err != nil {
		return domainerror.NewAuthError(domainerror.ErrCodeInvalidCredentials, "invalid password", domainerror.ErrInvalidCredentials)
	}

	pinHash, err := uc.passwordService.HashPassword(input.Pin)
	if err != nil {
		return fmt.Errorf("failed to hash pin: %w", err)
	}

	if err := uc.userRepo.UpdatePin(ctx, user.ID, &pinHash); err != nil {
		return fmt.Errorf("failed to save pin: %w", err)
	}

	slog.Info("PIN login enabled", "userID", user.ID)
	return nil
}

// RemovePinUseCase disables PIN login.
type RemovePinUseCase struct {
	userRepo adapter.UserRepository
}

// NewRemovePinUseCase creates a new RemovePinUseCase instance.
func NewRemovePinUseCase(userRepo adapter.UserRepository) *RemovePinUseCase {
	return &RemovePinUseCase{
		userRepo: userRepo,
	}
}

// Execute clears the stored PIN hash.
func (uc *RemovePinUseCase) Execute(ctx context.Context, userID uuid.UUID) error {
	user, err := findUser(ctx, uc.userRepo, userID)
	if err != nil {
		return err
	}
	if !user.HasPin() {
		return domainerror.PinNotSet()
	}

	if err := uc.userRepo.UpdatePin(ctx, user.ID, nil); err != nil {
		return fmt.Errorf("failed to remove pin: %w", err)
	}

	slog.Info("PIN login disabled", "userID", user.ID)
	return nil
}

// LoginWithPinInput represents the input for PIN login.
type LoginWithPinInput struct {
	Email string
	Pin   string
}

// LoginWithPinUseCase signs a driver in with their PIN.
type LoginWithPinUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewLoginWithPinUseCase creates a new LoginWithPinUseCase instance.
func NewLoginWithPinUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *LoginWithPinUseCase {
	return &LoginWithPinUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute verifies the PIN and opens a standard-length session.
func (uc *LoginWithPinUseCase) Execute(ctx context.Context, input LoginWithPinInput) (*Session, error) {
	if err := uc.passwordService.ValidatePinFormat(input.Pin); err != nil {
		return nil, domainerror.InvalidPinFormat()
	}

	user, err := uc.userRepo.FindByEmail(ctx, entity.NormalizeEmail(input.Email))
	if err != nil {
		return nil, domainerror.InvalidCredentials()
	}
	if !user.HasPin() {
		return nil, domainerror.PinNotSet()
	}

	if err := uc.passwordService.VerifyPassword(*user.PinHash, input.Pin); err != nil {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidPin, "invalid email or pin", domainerror.ErrInvalidCredentials)
	}

	return openSession(ctx, uc.tokenService, user, false)
}

func findUser(ctx context.Context, users adapter.UserRepository, id uuid.UUID) (*entity.User, error) {
	user, err := users.FindByID(ctx, id)
	if err != nil {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeUserNotFound, "user not found", err)
	}
	return user, nil
}
