package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gigledger/backend/internal/domain/entity"
)

// UserSettingsModel represents the user_settings table in the database.
type UserSettingsModel struct {
	UserID              uuid.UUID        `gorm:"type:uuid;primaryKey"`
	VATRate             decimal.Decimal  `gorm:"type:decimal(5,4);not null"`
	MonthlyContribution decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	DailyGoal           *decimal.Decimal `gorm:"type:decimal(12,2)"`
	WeeklyGoal          *decimal.Decimal `gorm:"type:decimal(12,2)"`
	MonthlyGoal         *decimal.Decimal `gorm:"type:decimal(12,2)"`
	YearlyGoal          *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Theme               string           `gorm:"type:varchar(10);not null;default:'system'"`
	CreatedAt           time.Time        `gorm:"not null"`
	UpdatedAt           time.Time        `gorm:"not null"`
}

// TableName returns the table name for the UserSettingsModel.
func (UserSettingsModel) TableName() string {
	return "user_settings"
}

// ToEntity converts a UserSettingsModel to a domain UserSettings entity.
func (m *UserSettingsModel) ToEntity() *entity.UserSettings {
	theme := entity.ThemePreference(m.Theme)
	if !theme.IsValid() {
		theme = entity.ThemeSystem
	}

	return &entity.UserSettings{
		UserID:              m.UserID,
		VATRate:             m.VATRate,
		MonthlyContribution: m.MonthlyContribution,
		DailyGoal:           m.DailyGoal,
		WeeklyGoal:          m.WeeklyGoal,
		MonthlyGoal:         m.MonthlyGoal,
		YearlyGoal:          m.YearlyGoal,
		Theme:               theme,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// UserSettingsFromEntity creates a UserSettingsModel from a domain UserSettings entity.
func UserSettingsFromEntity(settings *entity.UserSettings) *UserSettingsModel {
	return &UserSettingsModel{
		UserID:              settings.UserID,
		VATRate:             settings.VATRate,
		MonthlyContribution: settings.MonthlyContribution,
		DailyGoal:           settings.DailyGoal,
		WeeklyGoal:          settings.WeeklyGoal,
		MonthlyGoal:         settings.MonthlyGoal,
		YearlyGoal:          settings.YearlyGoal,
		Theme:               string(settings.Theme),
		CreatedAt:           settings.CreatedAt,
		UpdatedAt:           settings.UpdatedAt,
	}
}
