package valueobject

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gigledger/backend/internal/domain/entity"
)

// DailySeriesLength is how many most recent days the income series keeps.
const DailySeriesLength = 14

// DailyIncome is one point of the income sparkline.
type DailyIncome struct {
	Label  string          `json:"label"`
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// PeriodStatistics summarises the shifts and expenses of a period.
type PeriodStatistics struct {
	TotalGross         decimal.Decimal                            `json:"total_gross"`
	TotalTips          decimal.Decimal                            `json:"total_tips"`
	TotalBonus         decimal.Decimal                            `json:"total_bonus"`
	NetIncome          decimal.Decimal                            `json:"net_income"`
	TotalExpenses      decimal.Decimal                            `json:"total_expenses"`
	ExpensesByCategory map[entity.ExpenseCategory]decimal.Decimal `json:"expenses_by_category"`
	TotalShifts        int                                        `json:"total_shifts"`
	TotalOrders        int                                        `json:"total_orders"`
	TotalHours         decimal.Decimal                            `json:"total_hours"`
	TotalDistance      decimal.Decimal                            `json:"total_distance"`
	AvgIncomePerHour   decimal.Decimal                            `json:"avg_income_per_hour"`
	AvgOrdersPerShift  decimal.Decimal                            `json:"avg_orders_per_shift"`
	AvgIncomePerOrder  decimal.Decimal                            `json:"avg_income_per_order"`
	AvgIncomePerKm     decimal.Decimal                            `json:"avg_income_per_km"`
	BestDayDate        *time.Time                                 `json:"best_day_date"`
	BestDayIncome      decimal.Decimal                            `json:"best_day_income"`
	DailyIncome        []DailyIncome                              `json:"daily_income"`
}

// NetProfit returns net income minus total expenses.
func (s *PeriodStatistics) NetProfit() decimal.Decimal {
	return s.NetIncome.Sub(s.TotalExpenses)
}
