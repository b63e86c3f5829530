package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gigledger/backend/internal/application/adapter"
	domainerror "github.com/gigledger/backend/internal/domain/error"
)

// ResetPasswordInput represents the input for password reset.
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// ResetPasswordUseCase sets a new password from an emailed reset link.
type ResetPasswordUseCase struct {
	userRepo          adapter.UserRepository
	passwordService   adapter.PasswordService
	resetTokenService adapter.PasswordResetTokenService
	tokenService      adapter.TokenService
}

// NewResetPasswordUseCase creates a new ResetPasswordUseCase instance.
func NewResetPasswordUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	resetTokenService adapter.PasswordResetTokenService,
	tokenService adapter.TokenService,
) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{
		userRepo:          userRepo,
		passwordService:   passwordService,
		resetTokenService: resetTokenService,
		tokenService:      tokenService,
	}
}

// Execute redeems the token, stores the new password and signs every device
// out. A weak password is rejected before the token is spent.
func (uc *ResetPasswordUseCase) Execute(ctx context.Context, input ResetPasswordInput) error {
	if err := uc.passwordService.ValidatePasswordStrength(input.NewPassword); err != nil {
		return domainerror.NewAuthError(domainerror.ErrCodeWeakPassword, domainerror.ErrWeakPassword.Error(), domainerror.ErrWeakPassword)
	}

	resetToken, err := uc.resetTokenService.RedeemResetToken(ctx, input.Token)
	if err != nil {
		if errors.Is(err, domainerror.ErrInvalidResetToken) || errors.Is(err, domainerror.ErrExpiredResetToken) {
			return domainerror.ResetTokenFailure(err)
		}
		return fmt.Errorf("failed to redeem reset token: %w", err)
	}

	passwordHash, err := uc.passwordService.HashPassword(input.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := uc.userRepo.UpdatePassword(ctx, resetToken.UserID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := uc.tokenService.InvalidateAllUserTokens(ctx, resetToken.UserID); err != nil {
		slog.Warn("Failed to revoke sessions after password reset", "error", err, "userID", resetToken.UserID)
	}

	slog.Info("Password reset", "userID", resetToken.UserID)
	return nil
}
