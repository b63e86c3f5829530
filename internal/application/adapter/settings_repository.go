// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/gigledger/backend/internal/domain/entity"
)

// SettingsRepository defines the interface for user settings persistence.
type SettingsRepository interface {
	// FindByUserID retrieves the settings of a user. It returns
	// domainerror.ErrSettingsNotFound when none are stored.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error)

	// Upsert creates or replaces the settings of a user.
	Upsert(ctx context.Context, settings *entity.UserSettings) error

	// DeleteByUserID removes the settings of a user.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
