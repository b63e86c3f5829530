package auth

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/gigledger/backend/internal/application/adapter"
	"github.com/gigledger/backend/internal/domain/entity"
	domainerror "github.com/gigledger/backend/internal/domain/error"
)

const (
	resetLinkLifetime = "1 hour"
	resetPath         = "/reset-password"
)

// ForgotPasswordUseCase emails a reset link. Its answer never reveals whether
// the address belongs to an account.
type ForgotPasswordUseCase struct {
	userRepo          adapter.UserRepository
	resetTokenService adapter.PasswordResetTokenService
	emailService      adapter.EmailService
	appBaseURL        string
}

// NewForgotPasswordUseCase creates a new ForgotPasswordUseCase instance.
// A nil email service logs the reset link instead of sending it.
func NewForgotPasswordUseCase(
	userRepo adapter.UserRepository,
	resetTokenService adapter.PasswordResetTokenService,
	emailService adapter.EmailService,
	appBaseURL string,
) *ForgotPasswordUseCase {
	return &ForgotPasswordUseCase{
		userRepo:          userRepo,
		resetTokenService: resetTokenService,
		emailService:      emailService,
		appBaseURL:        appBaseURL,
	}
}

// Execute fails only on a malformed address. Lookup, token and delivery
// failures are logged and swallowed.
func (uc *ForgotPasswordUseCase) Execute(ctx context.Context, email string) error {
	email = entity.NormalizeEmail(email)
	if !isValidEmail(email) {
		return domainerror.NewAuthError(domainerror.ErrCodeInvalidEmail, domainerror.ErrInvalidEmail.Error(), domainerror.ErrInvalidEmail)
	}

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		slog.Debug("Password reset requested for unknown email")
		return nil
	}

	resetToken, err := uc.resetTokenService.GenerateResetToken(ctx, user.ID, user.Email)
	if err != nil {
		slog.Error("Failed to issue reset token", "error", err, "userID", user.ID)
		return nil
	}
	link := uc.resetLink(resetToken.Token)

	if uc.emailService == nil {
		slog.Info("Email delivery disabled, reset link logged", "userID", user.ID, "resetURL", link)
		return nil
	}

	err = uc.emailService.SendPasswordResetEmail(ctx, adapter.PasswordResetEmailInput{
		UserID:    user.ID.String(),
		UserEmail: user.Email,
		UserName:  user.Name,
		ResetURL:  link,
		ExpiresIn: resetLinkLifetime,
	})
	if err != nil {
		slog.Error("Failed to send reset email", "error", err, "userID", user.ID)
		return nil
	}

	slog.Info("Reset email sent", "userID", user.ID)
	return nil
}

func (uc *ForgotPasswordUseCase) resetLink(token string) string {
	return uc.appBaseURL + resetPath + "?" + url.Values{"token": {token}}.Encode()
}
