package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/gigledger/backend/internal/application/adapter"
	domainerror "github.com/gigledger/backend/internal/domain/error"
)

// RefreshTokenInput represents the input for token refresh.
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenOutput holds the rotated token pair.
type RefreshTokenOutput struct {
	AccessToken  string
	RefreshToken string
}

// RefreshTokenUseCase trades a refresh token for a new pair.
type RefreshTokenUseCase struct {
	tokenService adapter.TokenService
}

// NewRefreshTokenUseCase creates a new RefreshTokenUseCase instance.
func NewRefreshTokenUseCase(tokenService adapter.TokenService) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		tokenService: tokenService,
	}
}

// Execute rotates the refresh token. The presented token stops working
// whether or not the caller receives the new pair.
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, input RefreshTokenInput) (*RefreshTokenOutput, error) {
	pair, _, err := uc.tokenService.RotateRefreshToken(ctx, input.RefreshToken)
	switch {
	case errors.Is(err, domainerror.ErrExpiredToken):
		return nil, domainerror.NewAuthError(domainerror.ErrCodeExpiredToken, "refresh token has expired", err)
	case errors.Is(err, domainerror.ErrInvalidToken):
		return nil, domainerror.InvalidSession()
	case err != nil:
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return &RefreshTokenOutput{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}
