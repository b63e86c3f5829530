// Package settings contains user settings use cases.
package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/gigledger/backend/internal/application/adapter"
	"github.com/gigledger/backend/internal/domain/entity"
	domainerror "github.com/gigledger/backend/internal/domain/error"
)

// GetSettingsInput represents the input for reading settings.
type GetSettingsInput struct {
	UserID uuid.UUID
}

// GetSettingsOutput represents the output of reading settings.
type GetSettingsOutput struct {
	Settings *entity.UserSettings
}

// GetSettingsUseCase handles reading a user's settings.
type GetSettingsUseCase struct {
	settingsRepo adapter.SettingsRepository
}

// NewGetSettingsUseCase creates a new GetSettingsUseCase instance.
func NewGetSettingsUseCase(settingsRepo adapter.SettingsRepository) *GetSettingsUseCase {
	return &GetSettingsUseCase{
		settingsRepo: settingsRepo,
	}
}

// Execute returns the stored settings, or the defaults when none exist.
func (uc *GetSettingsUseCase) Execute(ctx context.Context, input GetSettingsInput) (*GetSettingsOutput, error) {
	settings, err := LoadOrDefault(ctx, uc.settingsRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetSettingsOutput{
		Settings: settings,
	}, nil
}

// LoadOrDefault reads a user's settings, falling back to defaults.
func LoadOrDefault(ctx context.Context, repo adapter.SettingsRepository, userID uuid.UUID) (*entity.UserSettings, error) {
	settings, err := repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrSettingsNotFound) {
			return entity.NewUserSettings(userID), nil
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}
