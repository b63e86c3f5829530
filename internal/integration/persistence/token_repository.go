package persistence

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainerror "github.com/gigledger/backend/internal/domain/error"
	"github.com/gigledger/backend/internal/integration/persistence/model"
)

// TokenRepository stores refresh and password reset tokens by digest.
// Every method takes the raw token and hashes it before touching the table.
type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error

	// ConsumeRefreshToken revokes the token if it is still live and reports
	// whether it was. Two concurrent calls with the same token cannot both
	// succeed.
	ConsumeRefreshToken(ctx context.Context, token string, now time.Time) (bool, error)

	RevokeUserRefreshTokens(ctx context.Context, userID uuid.UUID) error

	SavePasswordResetToken(ctx context.Context, token string, userID uuid.UUID, email string, expiresAt time.Time) error

	// ConsumePasswordResetToken marks a live reset token as used and returns
	// it. An unknown or used token yields domainerror.ErrInvalidResetToken;
	// an expired one yields domainerror.ErrExpiredResetToken.
	ConsumePasswordResetToken(ctx context.Context, token string, now time.Time) (*model.PasswordResetTokenModel, error)

	// PurgeExpired deletes refresh and reset tokens that expired before now.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new token repository instance.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{
		db: db,
	}
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (r *tokenRepository) SaveRefreshToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Create(&model.RefreshTokenModel{
		ID:        uuid.New(),
		TokenHash: hashToken(token),
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}).Error
}

func (r *tokenRepository) ConsumeRefreshToken(ctx context.Context, token string, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("token_hash = ? AND invalidated = ? AND expires_at > ?", hashToken(token), false, now).
		Update("invalidated", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *tokenRepository) RevokeUserRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("user_id = ? AND invalidated = ?", userID, false).
		Update("invalidated", true).Error
}

func (r *tokenRepository) SavePasswordResetToken(ctx context.Context, token string, userID uuid.UUID, email string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Create(&model.PasswordResetTokenModel{
		ID:        uuid.New(),
		TokenHash: hashToken(token),
		UserID:    userID,
		Email:     email,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}).Error
}

func (r *tokenRepository) ConsumePasswordResetToken(ctx context.Context, token string, now time.Time) (*model.PasswordResetTokenModel, error) {
	digest := hashToken(token)

	var resetToken model.PasswordResetTokenModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("token_hash = ? AND used = ?", digest, false).First(&resetToken).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerror.ErrInvalidResetToken
			}
			return err
		}
		if !resetToken.ExpiresAt.After(now) {
			return domainerror.ErrExpiredResetToken
		}

		result := tx.Model(&model.PasswordResetTokenModel{}).
			Where("id = ? AND used = ?", resetToken.ID, false).
			Updates(map[string]any{"used": true, "used_at": now})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrInvalidResetToken
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resetToken, nil
}

func (r *tokenRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	var purged int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		refresh := tx.Where("expires_at <= ?", now).Delete(&model.RefreshTokenModel{})
		if refresh.Error != nil {
			return refresh.Error
		}
		reset := tx.Where("expires_at <= ?", now).Delete(&model.PasswordResetTokenModel{})
		if reset.Error != nil {
			return reset.Error
		}
		purged = refresh.RowsAffected + reset.RowsAffected
		return nil
	})
	return purged, err
}

// RunTokenPurge deletes expired tokens every interval until ctx is done.
func RunTokenPurge(ctx context.Context, tokens TokenRepository, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := tokens.PurgeExpired(ctx, time.Now().UTC())
			if err != nil {
				slog.Error("Failed to purge expired tokens", "error", err)
				continue
			}
			if purged > 0 {
				slog.Info("Purged expired tokens", "count", purged)
			}
		}
	}
}
