// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Default earnings parameters.
var (
	DefaultVATRate             = decimal.RequireFromString("0.24")
	DefaultMonthlyContribution = decimal.NewFromInt(254)
)

// Goal multipliers used when only a daily goal is configured.
const (
	DaysPerWeekGoal  = 7
	DaysPerMonthGoal = 22
)

// ThemePreference represents the user's UI theme.
type ThemePreference string

const (
	ThemeSystem ThemePreference = "system"
	ThemeLight  ThemePreference = "light"
	ThemeDark   ThemePreference = "dark"
)

// IsValid reports whether the theme is one of the supported values.
func (t ThemePreference) IsValid() bool {
	switch t {
	case ThemeSystem, ThemeLight, ThemeDark:
		return true
	}
	return false
}

// UserSettings holds per-user earnings configuration.
type UserSettings struct {
	UserID              uuid.UUID
	VATRate             decimal.Decimal
	MonthlyContribution decimal.Decimal
	DailyGoal           *decimal.Decimal
	WeeklyGoal          *decimal.Decimal
	MonthlyGoal         *decimal.Decimal
	YearlyGoal          *decimal.Decimal
	Theme               ThemePreference
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewUserSettings creates settings with the default VAT rate and contribution.
func NewUserSettings(userID uuid.UUID) *UserSettings {
	now := time.Now().UTC()

	return &UserSettings{
		UserID:              userID,
		VATRate:             DefaultVATRate,
		MonthlyContribution: DefaultMonthlyContribution,
		Theme:               ThemeSystem,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// EffectiveWeeklyGoal returns the explicit weekly goal, or daily × 7.
func (s *UserSettings) EffectiveWeeklyGoal() *decimal.Decimal {
	return deriveGoal(s.WeeklyGoal, s.DailyGoal, DaysPerWeekGoal)
}

// EffectiveMonthlyGoal returns the explicit monthly goal, or daily × 22.
func (s *UserSettings) EffectiveMonthlyGoal() *decimal.Decimal {
	return deriveGoal(s.MonthlyGoal, s.DailyGoal, DaysPerMonthGoal)
}

func deriveGoal(explicit, daily *decimal.Decimal, days int64) *decimal.Decimal {
	if explicit != nil {
		return explicit
	}
	if daily == nil {
		return nil
	}
	derived := daily.Mul(decimal.NewFromInt(days))
	return &derived
}
