package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gigledger/backend/internal/application/adapter"
	"github.com/gigledger/backend/internal/domain/entity"
	domainerror "github.com/gigledger/backend/internal/domain/error"
)

// GoalKind names one of the configurable income goals.
type GoalKind string

const (
	GoalDaily   GoalKind = "daily"
	GoalWeekly  GoalKind = "weekly"
	GoalMonthly GoalKind = "monthly"
	GoalYearly  GoalKind = "yearly"
)

// UpdateSettingsInput represents a partial settings update.
// Nil fields are left untouched; ClearGoals resets goals to unset.
type UpdateSettingsInput struct {
	UserID              uuid.UUID
	VATRate             *decimal.Decimal
	MonthlyContribution *decimal.Decimal
	DailyGoal           *decimal.Decimal
	WeeklyGoal          *decimal.Decimal
	MonthlyGoal         *decimal.Decimal
	YearlyGoal          *decimal.Decimal
	ClearGoals          []GoalKind
	Theme               *entity.ThemePreference
}

// UpdateSettingsOutput represents the output of a settings update.
type UpdateSettingsOutput struct {
	Settings *entity.UserSettings
}

// UpdateSettingsUseCase handles settings updates.
type UpdateSettingsUseCase struct {
	settingsRepo adapter.SettingsRepository
}

// NewUpdateSettingsUseCase creates a new UpdateSettingsUseCase instance.
func NewUpdateSettingsUseCase(settingsRepo adapter.SettingsRepository) *UpdateSettingsUseCase {
	return &UpdateSettingsUseCase{
		settingsRepo: settingsRepo,
	}
}

// Execute validates and applies the update.
func (uc *UpdateSettingsUseCase) Execute(ctx context.Context, input UpdateSettingsInput) (*UpdateSettingsOutput, error) {
	settings, err := LoadOrDefault(ctx, uc.settingsRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.VATRate != nil {
		if input.VATRate.IsNegative() || input.VATRate.GreaterThan(decimal.NewFromInt(1)) {
			return nil, domainerror.NewSettingsError(
				domainerror.ErrCodeInvalidVATRate,
				domainerror.ErrInvalidVATRate.Error(),
				domainerror.ErrInvalidVATRate,
			)
		}
		settings.VATRate = *input.VATRate
	}

	if input.MonthlyContribution != nil {
		if input.MonthlyContribution.IsNegative() {
			return nil, domainerror.NewSettingsError(
				domainerror.ErrCodeInvalidContribution,
				domainerror.ErrInvalidContribution.Error(),
				domainerror.ErrInvalidContribution,
			)
		}
		settings.MonthlyContribution = *input.MonthlyContribution
	}

	goals := []goalField{
		{GoalDaily, input.DailyGoal, &settings.DailyGoal},
		{GoalWeekly, input.WeeklyGoal, &settings.WeeklyGoal},
		{GoalMonthly, input.MonthlyGoal, &settings.MonthlyGoal},
		{GoalYearly, input.YearlyGoal, &settings.YearlyGoal},
	}
	for _, goal := range goals {
		if goal.value == nil {
			continue
		}
		if !goal.value.IsPositive() {
			return nil, domainerror.NewSettingsError(
				domainerror.ErrCodeInvalidGoalAmount,
				fmt.Sprintf("%s goal must be greater than zero", goal.kind),
				domainerror.ErrInvalidGoalAmount,
			)
		}
		value := *goal.value
		*goal.target = &value
	}
	for _, kind := range input.ClearGoals {
		goal, ok := findGoal(goals, kind)
		if !ok {
			return nil, domainerror.NewSettingsError(
				domainerror.ErrCodeInvalidSettings,
				fmt.Sprintf("unknown goal %q", kind),
				nil,
			)
		}
		*goal.target = nil
	}

	if input.Theme != nil {
		if !input.Theme.IsValid() {
			return nil, domainerror.NewSettingsError(
				domainerror.ErrCodeInvalidTheme,
				"theme must be 'system', 'light', or 'dark'",
				domainerror.ErrInvalidTheme,
			)
		}
		settings.Theme = *input.Theme
	}

	settings.UpdatedAt = time.Now().UTC()

	if err := uc.settingsRepo.Upsert(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	return &UpdateSettingsOutput{
		Settings: settings,
	}, nil
}

type goalField struct {
	kind   GoalKind
	value  *decimal.Decimal
	target **decimal.Decimal
}

func findGoal(goals []goalField, kind GoalKind) (goalField, bool) {
	for _, goal := range goals {
		if goal.kind == kind {
			return goal, true
		}
	}
	return goalField{}, false
}
