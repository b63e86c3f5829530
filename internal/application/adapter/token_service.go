package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenPair is the access and refresh token handed to a driver's device.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenClaims identifies the driver a token was issued to.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenService issues and revokes driver sessions.
//
// Refresh tokens are single use: RotateRefreshToken and RevokeRefreshToken
// both consume the presented token, so a replayed token is rejected.
type TokenService interface {
	GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string, rememberMe bool) (*TokenPair, error)

	// ValidateAccessToken checks signature, expiry and token type.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)

	// RotateRefreshToken consumes a live refresh token and issues a new pair
	// for the same driver.
	RotateRefreshToken(ctx context.Context, token string) (*TokenPair, *TokenClaims, error)

	// RevokeRefreshToken consumes a refresh token. The claims are nil when
	// the token was unknown, expired or already used.
	RevokeRefreshToken(ctx context.Context, token string) (*TokenClaims, error)

	InvalidateAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// PasswordResetToken is a one-time reset link credential.
type PasswordResetToken struct {
	Token     string
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// PasswordResetTokenService issues and redeems reset tokens.
type PasswordResetTokenService interface {
	GenerateResetToken(ctx context.Context, userID uuid.UUID, email string) (*PasswordResetToken, error)

	// RedeemResetToken marks the token used and returns who it belongs to.
	// It fails with domainerror.ErrInvalidResetToken or
	// domainerror.ErrExpiredResetToken.
	RedeemResetToken(ctx context.Context, token string) (*PasswordResetToken, error)
}
