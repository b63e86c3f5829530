package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gigledger/backend/internal/application/adapter"
	domainerror "github.com/gigledger/backend/internal/domain/error"
)

// deleteConfirmation must be typed by the driver to delete the account.
const deleteConfirmation = "DELETE"

// DeleteAccountInput represents the input for account deletion.
type DeleteAccountInput struct {
	UserID       uuid.UUID
	Password     string
	Confirmation string
}

// DeleteAccountUseCase handles account deletion logic.
type DeleteAccountUseCase struct {
	userRepo        adapter.UserRepository
	shiftRepo       adapter.ShiftRepository
	expenseRepo     adapter.ExpenseRepository
	settingsRepo    adapter.SettingsRepository
	cache           adapter.StatisticsCache
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(
	userRepo adapter.UserRepository,
	shiftRepo adapter.ShiftRepository,
	expenseRepo adapter.ExpenseRepository,
	settingsRepo adapter.SettingsRepository,
	cache adapter.StatisticsCache,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		userRepo:        userRepo,
		shiftRepo:       shiftRepo,
		expenseRepo:     expenseRepo,
		settingsRepo:    settingsRepo,
		cache:           cache,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute removes the account after checking the confirmation word and the
// password. Shifts, expenses, settings and sessions go with it.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) error {
	if input.Confirmation != deleteConfirmation {
		return domainerror.NewAuthError(
			domainerror.ErrCodeInvalidConfirmation,
			domainerror.ErrInvalidConfirmation.Error(),
			domainerror.ErrInvalidConfirmation,
		)
	}

	user, err := findUser(ctx, uc.userRepo, input.UserID)
	if err != nil {
		return err
	}

	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid password",
			domainerror.ErrInvalidCredentials,
		)
	}

	// Revoke first so a session cannot outlive a half-finished delete.
	if err := uc.tokenService.InvalidateAllUserTokens(ctx, input.UserID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	// Remove the driver's records before the account itself
	if err := uc.shiftRepo.DeleteByUserID(ctx, input.UserID); err != nil {
		return fmt.Errorf("failed to delete shifts: %w", err)
	}
	if err := uc.expenseRepo.DeleteByUserID(ctx, input.UserID); err != nil {
		return fmt.Errorf("failed to delete expenses: %w", err)
	}
	if err := uc.settingsRepo.DeleteByUserID(ctx, input.UserID); err != nil {
		return fmt.Errorf("failed to delete settings: %w", err)
	}
	if err := uc.cache.InvalidateUser(ctx, input.UserID); err != nil {
		slog.Warn("Failed to drop cached statistics", "error", err, "userID", input.UserID)
	}

	if err := uc.userRepo.Delete(ctx, input.UserID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	slog.Info("Account deleted", "userID", input.UserID)
	return nil
}
