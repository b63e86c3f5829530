// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"

	"github.com/gigledger/backend/internal/application/adapter"
	"github.com/gigledger/backend/internal/domain/entity"
)

// Session is what a driver's device receives after signing in.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

func openSession(ctx context.Context, tokens adapter.TokenService, user *entity.User, rememberMe bool) (*Session, error) {
	pair, err := tokens.GenerateTokenPair(ctx, user.ID, user.Email, rememberMe)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	return &Session{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	}, nil
}
