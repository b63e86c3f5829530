package auth

import (
	"context"
	"log/slog"

	"github.com/gigledger/backend/internal/application/adapter"
)

const (
	loggedOutMessage           = "Logged out"
	loggedOutEverywhereMessage = "Logged out on all devices"
)

// LogoutUserInput represents the input for logout.
type LogoutUserInput struct {
	RefreshToken string
	// AllDevices also revokes every other session of the token's owner.
	AllDevices bool
}

// LogoutUserOutput represents the output of logout.
type LogoutUserOutput struct {
	Message string
}

// LogoutUserUseCase ends a session.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		tokenService: tokenService,
	}
}

// Execute always succeeds: a dead or unknown token is already logged out.
// AllDevices only takes effect when the presented token was live.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) (*LogoutUserOutput, error) {
	claims, err := uc.tokenService.RevokeRefreshToken(ctx, input.RefreshToken)
	if err != nil {
		slog.Debug("Logout with unusable refresh token", "error", err)
	}

	if !input.AllDevices || claims == nil {
		return &LogoutUserOutput{Message: loggedOutMessage}, nil
	}

	if err := uc.tokenService.InvalidateAllUserTokens(ctx, claims.UserID); err != nil {
		slog.Error("Failed to revoke remaining sessions", "error", err, "userID", claims.UserID)
		return &LogoutUserOutput{Message: loggedOutMessage}, nil
	}

	slog.Info("Driver logged out on all devices", "userID", claims.UserID)
	return &LogoutUserOutput{Message: loggedOutEverywhereMessage}, nil
}
