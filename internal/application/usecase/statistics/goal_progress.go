package statistics

import (
	"github.com/shopspring/decimal"

	"github.com/gigledger/backend/internal/domain/valueobject"
)

var one = decimal.NewFromInt(1)

// EvaluateGoalProgress turns today's and this month's income into progress
// ratios against the optional daily and monthly goals.
func EvaluateGoalProgress(todayIncome, monthIncome decimal.Decimal, dailyGoal, monthlyGoal *decimal.Decimal) valueobject.GoalProgress {
	return valueobject.GoalProgress{
		Daily:   ProgressRatio(todayIncome, dailyGoal),
		Monthly: ProgressRatio(monthIncome, monthlyGoal),
	}
}

// ProgressRatio returns income/goal clamped to [0, 1]. A nil or
// non-positive goal yields 0.
func ProgressRatio(income decimal.Decimal, goal *decimal.Decimal) float64 {
	if goal == nil || !goal.IsPositive() {
		return 0
	}
	ratio := income.Div(*goal)
	if ratio.IsNegative() {
		ratio = decimal.Zero
	}
	if ratio.GreaterThan(one) {
		ratio = one
	}
	return ratio.InexactFloat64()
}

// GoalReached compares raw income against the goal, ignoring clamping.
func GoalReached(income decimal.Decimal, goal *decimal.Decimal) bool {
	if goal == nil || !goal.IsPositive() {
		return false
	}
	return income.GreaterThanOrEqual(*goal)
}
