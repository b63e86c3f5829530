package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gigledger/backend/internal/application/usecase/settings"
	"github.com/gigledger/backend/internal/domain/entity"
)

// OptionalAmount distinguishes an absent field from an explicit null.
type OptionalAmount struct {
	Set   bool
	Value *decimal.Decimal
}

// UnmarshalJSON records that the field was present, null or not.
func (o *OptionalAmount) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var value decimal.Decimal
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	o.Value = &value
	return nil
}

// UpdateSettingsRequest represents a partial settings update.
// Goals sent as null are cleared.
type UpdateSettingsRequest struct {
	VATRate             *decimal.Decimal `json:"vat_rate"`
	MonthlyContribution *decimal.Decimal `json:"monthly_contribution"`
	DailyGoal           OptionalAmount   `json:"daily_goal"`
	WeeklyGoal          OptionalAmount   `json:"weekly_goal"`
	MonthlyGoal         OptionalAmount   `json:"monthly_goal"`
	YearlyGoal          OptionalAmount   `json:"yearly_goal"`
	Theme               *string          `json:"theme"`
}

// ToInput converts the request into an update for the user.
func (r UpdateSettingsRequest) ToInput(userID uuid.UUID) settings.UpdateSettingsInput {
	input := settings.UpdateSettingsInput{
		UserID:              userID,
		VATRate:             r.VATRate,
		MonthlyContribution: r.MonthlyContribution,
	}

	goals := []struct {
		kind   settings.GoalKind
		field  OptionalAmount
		target **decimal.Decimal
	}{
		{settings.GoalDaily, r.DailyGoal, &input.DailyGoal},
		{settings.GoalWeekly, r.WeeklyGoal, &input.WeeklyGoal},
		{settings.GoalMonthly, r.MonthlyGoal, &input.MonthlyGoal},
		{settings.GoalYearly, r.YearlyGoal, &input.YearlyGoal},
	}
	for _, goal := range goals {
		if !goal.field.Set {
			continue
		}
		if goal.field.Value == nil {
			input.ClearGoals = append(input.ClearGoals, goal.kind)
			continue
		}
		*goal.target = goal.field.Value
	}

	if r.Theme != nil {
		theme := entity.ThemePreference(*r.Theme)
		input.Theme = &theme
	}
	return input
}

// SettingsResponse represents user settings in API responses.
type SettingsResponse struct {
	VATRate              float64   `json:"vat_rate"`
	MonthlyContribution  float64   `json:"monthly_contribution"`
	DailyGoal            *float64  `json:"daily_goal"`
	WeeklyGoal           *float64  `json:"weekly_goal"`
	MonthlyGoal          *float64  `json:"monthly_goal"`
	YearlyGoal           *float64  `json:"yearly_goal"`
	EffectiveWeeklyGoal  *float64  `json:"effective_weekly_goal"`
	EffectiveMonthlyGoal *float64  `json:"effective_monthly_goal"`
	Theme                string    `json:"theme"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// ToSettingsResponse converts domain UserSettings to a SettingsResponse DTO.
func ToSettingsResponse(s *entity.UserSettings) SettingsResponse {
	return SettingsResponse{
		VATRate:              Ratio(s.VATRate),
		MonthlyContribution:  Money(s.MonthlyContribution),
		DailyGoal:            MoneyPtr(s.DailyGoal),
		WeeklyGoal:           MoneyPtr(s.WeeklyGoal),
		MonthlyGoal:          MoneyPtr(s.MonthlyGoal),
		YearlyGoal:           MoneyPtr(s.YearlyGoal),
		EffectiveWeeklyGoal:  MoneyPtr(s.EffectiveWeeklyGoal()),
		EffectiveMonthlyGoal: MoneyPtr(s.EffectiveMonthlyGoal()),
		Theme:                string(s.Theme),
		UpdatedAt:            s.UpdatedAt,
	}
}
