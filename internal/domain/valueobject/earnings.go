// Package valueobject contains immutable values derived from domain entities.
package valueobject

import (
	"github.com/shopspring/decimal"

	"github.com/gigledger/backend/internal/domain/entity"
)

// DefaultWorkingDaysPerMonth is the number of working days the monthly
// contribution is spread over.
const DefaultWorkingDaysPerMonth = 22

// EarningsParams configures the per-shift tax estimation.
type EarningsParams struct {
	VATRate             decimal.Decimal
	MonthlyContribution decimal.Decimal
	WorkingDaysPerMonth int
}

// DefaultEarningsParams returns VAT 0.24, contribution 254 and 22 working days.
func DefaultEarningsParams() EarningsParams {
	return EarningsParams{
		VATRate:             entity.DefaultVATRate,
		MonthlyContribution: entity.DefaultMonthlyContribution,
		WorkingDaysPerMonth: DefaultWorkingDaysPerMonth,
	}
}

// EarningsParamsFromSettings builds params from the user's settings.
// A nil settings value yields the defaults.
func EarningsParamsFromSettings(settings *entity.UserSettings, workingDays int) EarningsParams {
	params := DefaultEarningsParams()
	if workingDays > 0 {
		params.WorkingDaysPerMonth = workingDays
	}
	if settings == nil {
		return params
	}
	params.VATRate = settings.VATRate
	params.MonthlyContribution = settings.MonthlyContribution
	return params
}

// ShiftEarnings is the detailed earnings breakdown of a single shift.
type ShiftEarnings struct {
	GrossIncome    decimal.Decimal `json:"gross_income"`
	Tips           decimal.Decimal `json:"tips"`
	Bonus          decimal.Decimal `json:"bonus"`
	NetIncome      decimal.Decimal `json:"net_income"`
	VAT            decimal.Decimal `json:"vat"`
	DailyShare     decimal.Decimal `json:"daily_contribution_share"`
	NetAfterTax    decimal.Decimal `json:"net_after_tax"`
	IncomePerHour  decimal.Decimal `json:"income_per_hour"`
	IncomePerOrder decimal.Decimal `json:"income_per_order"`
	IncomePerKm    decimal.Decimal `json:"income_per_km"`
	HoursWorked    decimal.Decimal `json:"hours_worked"`
	TotalDistance  decimal.Decimal `json:"total_distance"`
}

// SafeDiv divides a by b, returning zero when b is not positive.
func SafeDiv(a, b decimal.Decimal) decimal.Decimal {
	if !b.IsPositive() {
		return decimal.Zero
	}
	return a.Div(b)
}
