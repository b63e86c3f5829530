package dto

import (
	"time"

	"github.com/gigledger/backend/internal/application/usecase/statistics"
	"github.com/gigledger/backend/internal/domain/valueobject"
)

// DailyIncomeResponse is one point of the income series.
type DailyIncomeResponse struct {
	Label  string  `json:"label"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// StatisticsResponse represents period statistics in API responses.
type StatisticsResponse struct {
	StartDate          string                `json:"start_date"`
	EndDate            string                `json:"end_date"`
	Cached             bool                  `json:"cached"`
	TotalGross         float64               `json:"total_gross"`
	TotalTips          float64               `json:"total_tips"`
	TotalBonus         float64               `json:"total_bonus"`
	NetIncome          float64               `json:"net_income"`
	TotalExpenses      float64               `json:"total_expenses"`
	NetProfit          float64               `json:"net_profit"`
	ExpensesByCategory map[string]float64    `json:"expenses_by_category"`
	TotalShifts        int                   `json:"total_shifts"`
	TotalOrders        int                   `json:"total_orders"`
	TotalHours         float64               `json:"total_hours"`
	TotalDistance      float64               `json:"total_distance"`
	AvgIncomePerHour   float64               `json:"avg_income_per_hour"`
	AvgOrdersPerShift  float64               `json:"avg_orders_per_shift"`
	AvgIncomePerOrder  float64               `json:"avg_income_per_order"`
	AvgIncomePerKm     float64               `json:"avg_income_per_km"`
	BestDay            *string               `json:"best_day"`
	BestDayIncome      float64               `json:"best_day_income"`
	DailyIncome        []DailyIncomeResponse `json:"daily_income"`
}

// ToStatisticsResponse converts aggregated statistics of a range to a StatisticsResponse DTO.
func ToStatisticsResponse(dateRange valueobject.DateRange, stats valueobject.PeriodStatistics, cached bool, loc *time.Location) StatisticsResponse {
	response := StatisticsResponse{
		StartDate:          FormatDate(dateRange.Start, loc),
		EndDate:            FormatDate(dateRange.End, loc),
		Cached:             cached,
		TotalGross:         Money(stats.TotalGross),
		TotalTips:          Money(stats.TotalTips),
		TotalBonus:         Money(stats.TotalBonus),
		NetIncome:          Money(stats.NetIncome),
		TotalExpenses:      Money(stats.TotalExpenses),
		NetProfit:          Money(stats.NetProfit()),
		ExpensesByCategory: make(map[string]float64, len(stats.ExpensesByCategory)),
		TotalShifts:        stats.TotalShifts,
		TotalOrders:        stats.TotalOrders,
		TotalHours:         Ratio(stats.TotalHours),
		TotalDistance:      stats.TotalDistance.InexactFloat64(),
		AvgIncomePerHour:   Money(stats.AvgIncomePerHour),
		AvgOrdersPerShift:  Ratio(stats.AvgOrdersPerShift),
		AvgIncomePerOrder:  Money(stats.AvgIncomePerOrder),
		AvgIncomePerKm:     Ratio(stats.AvgIncomePerKm),
		BestDayIncome:      Money(stats.BestDayIncome),
		DailyIncome:        make([]DailyIncomeResponse, len(stats.DailyIncome)),
	}

	for category, amount := range stats.ExpensesByCategory {
		response.ExpensesByCategory[string(category)] = Money(amount)
	}
	if stats.BestDayDate != nil {
		best := FormatDate(*stats.BestDayDate, loc)
		response.BestDay = &best
	}
	for i, point := range stats.DailyIncome {
		response.DailyIncome[i] = DailyIncomeResponse{
			Label:  point.Label,
			Date:   FormatDate(point.Date, loc),
			Amount: Money(point.Amount),
		}
	}
	return response
}

// GoalProgressResponse represents progress toward one goal.
type GoalProgressResponse struct {
	Goal     *float64 `json:"goal"`
	Income   float64  `json:"income"`
	Progress float64  `json:"progress"`
	Reached  bool     `json:"reached"`
}

// DashboardResponse represents the home screen summary.
type DashboardResponse struct {
	Date           string               `json:"date"`
	TodayIncome    float64              `json:"today_income"`
	TodayShifts    int                  `json:"today_shifts"`
	WeekIncome     float64              `json:"week_income"`
	MonthIncome    float64              `json:"month_income"`
	MonthExpenses  float64              `json:"month_expenses"`
	MonthNetProfit float64              `json:"month_net_profit"`
	MonthVAT       float64              `json:"month_vat"`
	DailyGoal      GoalProgressResponse `json:"daily_goal"`
	WeeklyGoal     GoalProgressResponse `json:"weekly_goal"`
	MonthlyGoal    GoalProgressResponse `json:"monthly_goal"`
}

// ToDashboardResponse converts the dashboard output to a DashboardResponse DTO.
func ToDashboardResponse(output *statistics.GetDashboardOutput, loc *time.Location) DashboardResponse {
	return DashboardResponse{
		Date:           FormatDate(output.Date, loc),
		TodayIncome:    Money(output.TodayIncome),
		TodayShifts:    output.TodayShifts,
		WeekIncome:     Money(output.WeekIncome),
		MonthIncome:    Money(output.MonthIncome),
		MonthExpenses:  Money(output.MonthExpenses),
		MonthNetProfit: Money(output.MonthNetProfit),
		MonthVAT:       Money(output.MonthVAT),
		DailyGoal: GoalProgressResponse{
			Goal:     MoneyPtr(output.DailyGoal),
			Income:   Money(output.TodayIncome),
			Progress: output.Progress.Daily,
			Reached:  output.DailyGoalReached,
		},
		WeeklyGoal: GoalProgressResponse{
			Goal:     MoneyPtr(output.WeeklyGoal),
			Income:   Money(output.WeekIncome),
			Progress: output.WeeklyProgress,
			Reached:  output.WeeklyGoalReached,
		},
		MonthlyGoal: GoalProgressResponse{
			Goal:     MoneyPtr(output.MonthlyGoal),
			Income:   Money(output.MonthIncome),
			Progress: output.Progress.Monthly,
			Reached:  output.MonthlyGoalReached,
		},
	}
}
