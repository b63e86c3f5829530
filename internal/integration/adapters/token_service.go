// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/gigledger/backend/config"
	"github.com/gigledger/backend/internal/application/adapter"
	domainerror "github.com/gigledger/backend/internal/domain/error"
	"github.com/gigledger/backend/internal/integration/persistence"
)

const (
	// Session lengths when the driver ticks "keep me signed in".
	rememberMeAccessTokenDuration  = 7 * 24 * time.Hour
	rememberMeRefreshTokenDuration = 30 * 24 * time.Hour

	resetTokenDuration = time.Hour
	resetTokenBytes    = 32

	tokenIssuer = "gigledger"

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// sessionClaims is the JWT payload of both token types.
type sessionClaims struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	TokenType  string `json:"token_type"`
	RememberMe bool   `json:"remember_me,omitempty"`
	jwt.RegisteredClaims
}

type tokenService struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	tokens        persistence.TokenRepository
}

// NewTokenService creates a JWT token service backed by the refresh token table.
func NewTokenService(cfg config.JWTConfig, tokens persistence.TokenRepository) adapter.TokenService {
	return &tokenService{
		secret:        []byte(cfg.Secret),
		accessExpiry:  cfg.AccessTokenExpiry,
		refreshExpiry: cfg.RefreshTokenExpiry,
		tokens:        tokens,
	}
}

func (s *tokenService) GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string, rememberMe bool) (*adapter.TokenPair, error) {
	accessTTL, refreshTTL := s.accessExpiry, s.refreshExpiry
	if rememberMe {
		accessTTL, refreshTTL = rememberMeAccessTokenDuration, rememberMeRefreshTokenDuration
	}

	now := time.Now().UTC()
	access, err := s.sign(now, userID, email, tokenTypeAccess, rememberMe, accessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := s.sign(now, userID, email, tokenTypeRefresh, rememberMe, refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	if err := s.tokens.SaveRefreshToken(ctx, refresh, userID, now.Add(refreshTTL)); err != nil {
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return &adapter.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *tokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	claims, err := s.parse(token, tokenTypeAccess)
	if err != nil {
		return nil, err
	}
	return toTokenClaims(claims)
}

func (s *tokenService) RotateRefreshToken(ctx context.Context, token string) (*adapter.TokenPair, *adapter.TokenClaims, error) {
	claims, err := s.consume(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	if claims == nil {
		return nil, nil, domainerror.ErrInvalidToken
	}

	tokenClaims, err := toTokenClaims(claims)
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.GenerateTokenPair(ctx, tokenClaims.UserID, tokenClaims.Email, claims.RememberMe)
	if err != nil {
		return nil, nil, err
	}
	return pair, tokenClaims, nil
}

func (s *tokenService) RevokeRefreshToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	claims, err := s.consume(ctx, token)
	if err != nil || claims == nil {
		return nil, err
	}
	return toTokenClaims(claims)
}

func (s *tokenService) InvalidateAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	return s.tokens.RevokeUserRefreshTokens(ctx, userID)
}

// consume returns the claims of a refresh token it managed to revoke, or nil
// when the token was not live. Malformed tokens are an ErrInvalidToken.
func (s *tokenService) consume(ctx context.Context, token string) (*sessionClaims, error) {
	claims, err := s.parse(token, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	live, err := s.tokens.ConsumeRefreshToken(ctx, token, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to consume refresh token: %w", err)
	}
	if !live {
		return nil, nil
	}
	return claims, nil
}

func (s *tokenService) sign(now time.Time, userID uuid.UUID, email, tokenType string, rememberMe bool, ttl time.Duration) (string, error) {
	claims := sessionClaims{
		UserID:     userID.String(),
		Email:      email,
		TokenType:  tokenType,
		RememberMe: rememberMe,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti keeps two tokens minted in the same second distinct.
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *tokenService) parse(raw, tokenType string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, fmt.Errorf("%w: %w", domainerror.ErrExpiredToken, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainerror.ErrInvalidToken, err)
	}
	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("%w: expected %s token", domainerror.ErrInvalidToken, tokenType)
	}
	return claims, nil
}

func toTokenClaims(claims *sessionClaims) (*adapter.TokenClaims, error) {
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject: %w", domainerror.ErrInvalidToken, err)
	}
	return &adapter.TokenClaims{
		UserID:    userID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

type passwordResetTokenService struct {
	tokens persistence.TokenRepository
}

// NewPasswordResetTokenService creates a reset token service backed by the token table.
func NewPasswordResetTokenService(tokens persistence.TokenRepository) adapter.PasswordResetTokenService {
	return &passwordResetTokenService{tokens: tokens}
}

func (s *passwordResetTokenService) GenerateResetToken(ctx context.Context, userID uuid.UUID, email string) (*adapter.PasswordResetToken, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	token := hex.EncodeToString(buf)
	expiresAt := time.Now().UTC().Add(resetTokenDuration)

	if err := s.tokens.SavePasswordResetToken(ctx, token, userID, email, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to save reset token: %w", err)
	}

	return &adapter.PasswordResetToken{
		Token:     token,
		UserID:    userID,
		Email:     email,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *passwordResetTokenService) RedeemResetToken(ctx context.Context, token string) (*adapter.PasswordResetToken, error) {
	row, err := s.tokens.ConsumePasswordResetToken(ctx, token, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return &adapter.PasswordResetToken{
		Token:     token,
		UserID:    row.UserID,
		Email:     row.Email,
		ExpiresAt: row.ExpiresAt,
	}, nil
}
